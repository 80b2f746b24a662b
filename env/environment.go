// Package env implements SOC's lexical scope chain: a stack of
// scopes, each holding name -> cell bindings, with immutable `let`
// cells and mutable `mut` cells (spec.md §4.3).
package env

import "github.com/achronyme/soc/types"

// cell is a single binding slot. It is heap-allocated and shared by
// pointer so that a closure capturing the enclosing Environment still
// observes later mutations to `mut` bindings, and so that `let rec`
// can patch a placeholder binding in place once its value is known
// (late-bound self-reference, spec.md §4.5).
type cell struct {
	value   types.Value
	mutable bool
}

// Environment is one lexical scope, chained to its parent. The root
// Environment of a program has a nil parent.
type Environment struct {
	vars   map[string]*cell
	parent *Environment
}

// New creates a fresh root environment with no parent.
func New() *Environment {
	return &Environment{vars: make(map[string]*cell)}
}

// PushScope creates a new child scope nested under e.
func (e *Environment) PushScope() *Environment {
	return &Environment{vars: make(map[string]*cell), parent: e}
}

// Snapshot captures the environment for closure storage. Environments
// are already shared by reference through their cell pointers, so a
// snapshot is simply the Environment pointer itself at capture time:
// later assignments to existing `mut` cells remain visible to the
// closure, while scopes pushed after capture are not.
func (e *Environment) Snapshot() *Environment {
	return e
}

// Define introduces name in the current scope, shadowing any binding
// of the same name inherited from an enclosing scope. Redefining name
// within the SAME scope is allowed and simply replaces the binding
// (sequential `let` shadowing, as in `let x = 1` followed later by
// `let x = x + 1` in the same do-block).
func (e *Environment) Define(name string, value types.Value, mutable bool) {
	e.vars[name] = &cell{value: value, mutable: mutable}
}

// DefinePlaceholder reserves a cell for `let rec` before the bound
// expression (typically a lambda) has been evaluated, so the
// expression's closure can capture this Environment and later resolve
// name through the same cell. Call FinalizeRec once the value is
// known.
func (e *Environment) DefinePlaceholder(name string) {
	e.vars[name] = &cell{value: types.NewUnit(), mutable: false}
}

// FinalizeRec patches the value of a cell previously reserved with
// DefinePlaceholder. It is an evaluator-internal operation, not a
// user-visible assignment, so it bypasses the immutability check that
// Assign enforces.
func (e *Environment) FinalizeRec(name string, value types.Value) {
	if c, ok := e.vars[name]; ok {
		c.value = value
	}
}

// Lookup searches the scope chain from the current scope outward.
func (e *Environment) Lookup(name string) (types.Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if c, ok := scope.vars[name]; ok {
			return c.value, true
		}
	}
	return nil, false
}

// AssignResult reports the outcome of an Assign call, distinguishing
// "not found" from "found but immutable" so the evaluator can raise
// the right EvalError code (E_RESOLUTION vs E_IMMUTABLE).
type AssignResult int

const (
	AssignOK AssignResult = iota
	AssignNotFound
	AssignImmutable
)

// Assign rebinds an existing `mut` cell reachable from e. It never
// introduces a new binding: assigning an undeclared name, or a name
// bound with plain `let`, is rejected.
func (e *Environment) Assign(name string, value types.Value) AssignResult {
	for scope := e; scope != nil; scope = scope.parent {
		if c, ok := scope.vars[name]; ok {
			if !c.mutable {
				return AssignImmutable
			}
			c.value = value
			return AssignOK
		}
	}
	return AssignNotFound
}
