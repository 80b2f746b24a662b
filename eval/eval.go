// Package eval implements SOC's tree-walking evaluator: AST dispatch,
// closure application with tail-call optimization, operator
// promotion, and the glue between the environment and module registry
// (spec.md §4.5). The dispatch shape — a switch on the node's dynamic
// type, each case delegating to a small eval<Node> handler returning
// types.Result — is grounded on the teacher's eval.go.
package eval

import (
	"github.com/achronyme/soc/env"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/registry"
	"github.com/achronyme/soc/trace"
	"github.com/achronyme/soc/types"
)

// importBinding records one `import { name as alias } from "module"`
// entry: alias (or name, if unaliased) -> (module, original name).
type importBinding struct {
	Module   string
	Original string
}

// Evaluator owns the top-level environment, the module registry, the
// current file's import aliases, and an optional tracer. A fresh
// Evaluator is a fresh isolated instance (spec.md §5 "spawn fresh
// evaluator instances for isolation").
type Evaluator struct {
	topEnv  *env.Environment
	reg     *registry.Registry
	imports map[string]importBinding
	tracer  *trace.Tracer
}

// NewEvaluator creates an evaluator with an empty top-level scope and
// the full prelude/module registry wired in.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		topEnv:  env.New(),
		reg:     registry.NewRegistry(),
		imports: make(map[string]importBinding),
		tracer:  trace.New(false, nil),
	}
}

// SetTracer replaces the evaluator's tracer (used by interp's
// EnableTrace, which cmd/soc calls when soc.yaml sets trace).
func (e *Evaluator) SetTracer(t *trace.Tracer) { e.tracer = t }

// TopEnv exposes the top-level scope for the host-facing interp
// package's Get/Reset operations.
func (e *Evaluator) TopEnv() *env.Environment { return e.topEnv }

// Reset discards all user bindings and import aliases; the registry
// (prelude + named modules) is untouched (spec.md §6 reset()).
func (e *Evaluator) Reset() {
	e.topEnv = env.New()
	e.imports = make(map[string]importBinding)
}

// Eval dispatches a single AST node to its handler. It is the
// non-tail-position entry point: callers that need tail-call handling
// (function bodies, if/piecewise branches) use evalTail instead. A
// Function call that Eval runs to completion here is a non-tail
// application and counts against the non-tail recursion depth bound.
func (e *Evaluator) Eval(node parser.Node, en *env.Environment, ctx *types.TaskContext) types.Result {
	res, tail := e.evalTail(node, en, ctx)
	if tail != nil {
		if !ctx.EnterNonTailCall() {
			return types.Errf(types.E_RUNTIME, "non-tail recursion depth exceeded")
		}
		defer ctx.ExitNonTailCall()
		return e.runTrampoline(tail, ctx)
	}
	return res
}

// pendingTail is returned by evalTail when the node being evaluated is
// itself a tail call: instead of recursing into Apply, the caller
// (ultimately runTrampoline) loops, replacing the active frame.
type pendingTail struct {
	fn   *Function
	args []types.Value
	self types.Value // non-nil for method-call sugar (r.method(...))
}

// evalTail evaluates node for its value, UNLESS node is syntactically
// a tail call to a user Function, in which case it returns
// (zero Result, *pendingTail) instead of applying it — the trampoline
// in Apply/runTrampoline performs the call without growing the host
// stack (spec.md §4.5 TCO).
func (e *Evaluator) evalTail(node parser.Node, en *env.Environment, ctx *types.TaskContext) (types.Result, *pendingTail) {
	if !ctx.ConsumeTick() {
		return types.Errf(types.E_RUNTIME, "tick budget exhausted"), nil
	}

	switch n := node.(type) {
	case *parser.LiteralExpr:
		return types.Ok(n.Value), nil
	case *parser.ImaginaryExpr:
		return types.Ok(types.NewComplex(0, n.Value)), nil
	case *parser.IdentifierExpr:
		return e.evalIdentifier(n, en), nil
	case *parser.SelfExpr:
		v, ok := en.Lookup("self")
		if !ok {
			return types.Errf(types.E_RESOLUTION, "self used outside a method call"), nil
		}
		return types.Ok(v), nil
	case *parser.RecExpr:
		v, ok := en.Lookup("rec")
		if !ok {
			return types.Errf(types.E_RESOLUTION, "rec used outside a function body"), nil
		}
		return types.Ok(v), nil
	case *parser.ParenExpr:
		return e.evalTail(n.Inner, en, ctx)
	case *parser.UnaryExpr:
		return e.evalUnary(n, en, ctx), nil
	case *parser.BinaryExpr:
		return e.evalBinary(n, en, ctx), nil
	case *parser.PipeExpr:
		return e.evalPipe(n, en, ctx), nil
	case *parser.EdgeExpr:
		return e.evalEdge(n, en, ctx), nil
	case *parser.ArrayExpr:
		return e.evalArray(n, en, ctx), nil
	case *parser.RecordExpr:
		return e.evalRecord(n, en, ctx), nil
	case *parser.LambdaExpr:
		return types.Ok(NewFunction(n.Params, n.Body, en)), nil
	case *parser.DoBlock:
		return e.evalDoBlockTail(n, en, ctx)
	case *parser.IndexMarkerExpr:
		return types.Errf(types.E_TYPE, "index marker used outside an index expression"), nil
	case *parser.RangeExpr:
		return types.Errf(types.E_TYPE, "range used outside an index expression"), nil
	case *parser.IndexExpr:
		return e.evalIndex(n, en, ctx), nil
	case *parser.FieldExpr:
		return e.evalField(n, en, ctx), nil
	case *parser.CallExpr:
		return e.evalCallTail(n, en, ctx)
	case *parser.AssignExpr:
		return e.evalAssign(n, en, ctx), nil
	default:
		return types.Errf(types.E_TYPE, "unhandled node type"), nil
	}
}

// evalIdentifier resolves a bare name used as a value (not a call)
// against the local environment only. Prelude entries and imported
// module members are reachable only in call position (by name or
// through an import alias), never as a bare identifier, since the
// registry has no notion of a first-class builtin value.
func (e *Evaluator) evalIdentifier(n *parser.IdentifierExpr, en *env.Environment) types.Result {
	if v, ok := en.Lookup(n.Name); ok {
		return types.Ok(v)
	}
	return types.Errf(types.E_RESOLUTION, "undefined identifier: "+n.Name)
}
