// Package registry implements SOC's two-tier module registry: a flat
// prelude always in scope, and named modules reached only through
// import (spec.md §4.4). It mirrors the teacher's builtins.Registry
// (builtins/registry.go in the teacher) — a name->function map with
// Register/Get — split into two tiers because prelude precedence has
// to be enforced structurally, not by lookup order alone.
package registry

import "github.com/achronyme/soc/types"

// BuiltinFunc is a plain builtin: it receives already-evaluated
// arguments and returns a Result. Most prelude math and string
// functions, and every named-module kernel wrapper, have this shape.
type BuiltinFunc func(ctx *types.TaskContext, args []types.Value) types.Result

// CallFunc lets a higher-order builtin invoke a SOC Function value
// without the registry importing eval (which would cycle: eval needs
// the registry to resolve calls). The evaluator passes a CallFunc
// wrapping its own Apply method each time it invokes a HOF entry.
type CallFunc func(ctx *types.TaskContext, fn types.Value, args []types.Value) types.Result

// HOFunc is a builtin whose first argument(s) are themselves callable
// (map, filter, reduce, any, all, find, findIndex, count, pipe).
// It receives a CallFunc to apply those callables.
type HOFunc func(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result

// Entry is exactly one of Plain or HOF.
type Entry struct {
	Plain BuiltinFunc
	HOF   HOFunc
}

func plain(f BuiltinFunc) Entry { return Entry{Plain: f} }
func hof(f HOFunc) Entry        { return Entry{HOF: f} }

// Module is a named bundle of exported name->Entry bindings (spec.md
// §4.4 "named modules").
type Module struct {
	Name    string
	Entries map[string]Entry
}

// Registry holds the prelude tier and the named-module tier.
type Registry struct {
	prelude map[string]Entry
	modules map[string]*Module
}

// NewRegistry builds a Registry with the full prelude (spec.md §4.4's
// enumerated ~39 names) and the named kernel modules (stats, dsp,
// numerical, optimization, graph) registered. The HOF entries
// (map/filter/reduce/pipe/any/all/find/findIndex/count, and the
// Function-taking module entries) receive a CallFunc at call time so
// they can apply SOC Function values.
func NewRegistry() *Registry {
	r := &Registry{
		prelude: make(map[string]Entry),
		modules: make(map[string]*Module),
	}
	registerMathPrelude(r)
	registerHOFPrelude(r)
	registerIOPrelude(r)
	registerStringPrelude(r)
	registerStatsModule(r)
	registerDSPModule(r)
	registerNumericalModule(r)
	registerOptimizationModule(r)
	registerGraphModule(r)
	return r
}

// LookupPrelude implements resolution order tier 2 (spec.md §4.4).
func (r *Registry) LookupPrelude(name string) (Entry, bool) {
	e, ok := r.prelude[name]
	return e, ok
}

// HasModule reports whether a named module exists.
func (r *Registry) HasModule(name string) bool {
	_, ok := r.modules[name]
	return ok
}

// LookupModuleMember resolves module.name, used both for `import`
// validation and for calls made through an import alias.
func (r *Registry) LookupModuleMember(module, name string) (Entry, bool) {
	m, ok := r.modules[module]
	if !ok {
		return Entry{}, false
	}
	e, ok := m.Entries[name]
	return e, ok
}

// registerModule creates a named module holding entries, replacing any
// module already registered under name; used by the per-module
// registration files.
func (r *Registry) registerModule(name string, entries map[string]Entry) {
	r.modules[name] = &Module{Name: name, Entries: entries}
}
