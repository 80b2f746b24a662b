package eval

import (
	"github.com/achronyme/soc/env"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/registry"
	"github.com/achronyme/soc/types"
)

// evalCallTail evaluates a CallExpr. "if" and "piecewise" are
// recognized as special forms by name when nothing locally shadows
// that name (prelude precedence, spec.md §8 "Prelude precedence");
// their unevaluated branch expressions are tail positions. A bare
// call whose callee is itself a tail call to a Function is reported
// to the caller as a *pendingTail instead of being applied here, so
// the trampoline can reuse the current frame.
func (e *Evaluator) evalCallTail(n *parser.CallExpr, en *env.Environment, ctx *types.TaskContext) (types.Result, *pendingTail) {
	if ident, ok := n.Callee.(*parser.IdentifierExpr); ok {
		if _, shadowed := en.Lookup(ident.Name); !shadowed {
			switch ident.Name {
			case "if":
				return e.evalIf(n, en, ctx)
			case "piecewise":
				return e.evalPiecewise(n, en, ctx)
			}
		}
	}

	calleeVal, self, err := e.resolveCallee(n.Callee, en, ctx)
	if err != nil {
		return *err, nil
	}

	args := make([]types.Value, len(n.Args))
	for i, a := range n.Args {
		res := e.Eval(a, en, ctx)
		if !res.IsNormal() {
			return res, nil
		}
		args[i] = res.Val
	}

	switch callee := calleeVal.(type) {
	case *Function:
		if len(args) != len(callee.Params) {
			return types.Errf(types.E_ARITY, "wrong number of arguments"), nil
		}
		return types.Result{}, &pendingTail{fn: callee, args: args, self: self}
	case registry.Entry:
		return e.callEntry(ctx, callee, args), nil
	default:
		return types.Errf(types.E_TYPE, "value is not callable"), nil
	}
}

// resolveCallee evaluates the call's callee expression down to either
// a *Function value or a registry.Entry, implementing spec.md §4.4's
// resolution order for the identifier case and spec.md §4.6's method
// self-binding for the field-access case.
func (e *Evaluator) resolveCallee(callee parser.Expr, en *env.Environment, ctx *types.TaskContext) (interface{}, types.Value, *types.Result) {
	switch c := callee.(type) {
	case *parser.IdentifierExpr:
		if v, ok := en.Lookup(c.Name); ok {
			e.tracer.Resolve(c.Name, "local", true)
			return v, nil, nil
		}
		if entry, ok := e.reg.LookupPrelude(c.Name); ok {
			e.tracer.Resolve(c.Name, "prelude", true)
			return entry, nil, nil
		}
		if alias, ok := e.imports[c.Name]; ok {
			if entry, ok := e.reg.LookupModuleMember(alias.Module, alias.Original); ok {
				e.tracer.Resolve(c.Name, "import", true)
				return entry, nil, nil
			}
		}
		e.tracer.Resolve(c.Name, "none", false)
		res := types.Errf(types.E_RESOLUTION, "undefined function: "+c.Name)
		return nil, nil, &res
	case *parser.FieldExpr:
		targetRes := e.Eval(c.Target, en, ctx)
		if !targetRes.IsNormal() {
			return nil, nil, &targetRes
		}
		rec, ok := targetRes.Val.(types.Record)
		if !ok {
			res := types.Errf(types.E_TYPE, "field access on a non-record value")
			return nil, nil, &res
		}
		v, ok := rec.Get(c.Field)
		if !ok {
			res := types.Errf(types.E_RESOLUTION, "no such field: "+c.Field)
			return nil, nil, &res
		}
		return v, targetRes.Val, nil
	default:
		res := e.Eval(callee, en, ctx)
		if !res.IsNormal() {
			return nil, nil, &res
		}
		return res.Val, nil, nil
	}
}

// callEntry invokes a registry builtin, threading e.Apply in as the
// CallFunc for higher-order entries.
func (e *Evaluator) callEntry(ctx *types.TaskContext, entry registry.Entry, args []types.Value) types.Result {
	if entry.Plain != nil {
		return entry.Plain(ctx, args)
	}
	return entry.HOF(ctx, e.applyCallFunc, args)
}

// applyCallFunc adapts Apply to registry.CallFunc's signature for
// higher-order builtins (map, filter, reduce, pipe, ...).
func (e *Evaluator) applyCallFunc(ctx *types.TaskContext, fn types.Value, args []types.Value) types.Result {
	return e.Apply(ctx, fn, args, nil)
}

// Apply calls a Function value with already-evaluated arguments. It is
// always a non-tail application from the caller's perspective (tail
// calls are detected earlier, in evalCallTail/evalTail, and handled by
// the trampoline without ever reaching Apply); accordingly Apply
// enforces the non-tail recursion depth bound (spec.md §5).
func (e *Evaluator) Apply(ctx *types.TaskContext, calleeVal types.Value, args []types.Value, self types.Value) types.Result {
	fn, ok := calleeVal.(*Function)
	if !ok {
		return types.Errf(types.E_TYPE, "value is not callable")
	}
	if len(args) != len(fn.Params) {
		return types.Errf(types.E_ARITY, "wrong number of arguments")
	}
	if !ctx.EnterNonTailCall() {
		return types.Errf(types.E_RUNTIME, "non-tail recursion depth exceeded")
	}
	defer ctx.ExitNonTailCall()
	return e.runTrampoline(&pendingTail{fn: fn, args: args, self: self}, ctx)
}

// runTrampoline drives the TCO loop (spec.md §4.5): each iteration
// pushes a fresh scope off the callee's captured environment, binds
// parameters (and self/rec), and evaluates the body in tail position.
// When the body's own tail expression is itself a call to a Function,
// evalTail reports it as a new *pendingTail instead of recursing, and
// the loop simply swaps frames — unbounded tail-recursive depth in
// constant host stack.
func (e *Evaluator) runTrampoline(tail *pendingTail, ctx *types.TaskContext) types.Result {
	for {
		callEnv := tail.fn.Closure.PushScope()
		for i, p := range tail.fn.Params {
			callEnv.Define(p, tail.args[i], false)
		}
		callEnv.Define("rec", tail.fn, false)
		if tail.self != nil {
			callEnv.Define("self", tail.self, false)
		}
		res, next := e.evalTail(tail.fn.Body, callEnv, ctx)
		if next == nil {
			if res.IsReturn() {
				return types.Ok(res.Val)
			}
			return res
		}
		if len(next.args) != len(next.fn.Params) {
			return types.Errf(types.E_ARITY, "wrong number of arguments")
		}
		tail = next
	}
}

// evalIf implements the `if(cond, then, else)` special form (spec.md
// §4.6): cond is evaluated eagerly, exactly one of then/else is
// evaluated, and both branches are tail positions.
func (e *Evaluator) evalIf(n *parser.CallExpr, en *env.Environment, ctx *types.TaskContext) (types.Result, *pendingTail) {
	if len(n.Args) != 3 {
		return types.Errf(types.E_ARITY, "if(cond, then, else) expects 3 arguments"), nil
	}
	condRes := e.Eval(n.Args[0], en, ctx)
	if !condRes.IsNormal() {
		return condRes, nil
	}
	cond, ok := condRes.Val.(types.Boolean)
	if !ok {
		return types.Errf(types.E_TYPE, "if condition must be a boolean"), nil
	}
	if cond.Val {
		return e.evalTail(n.Args[1], en, ctx)
	}
	return e.evalTail(n.Args[2], en, ctx)
}

// evalPiecewise implements `piecewise([c1,v1], [c2,v2], ..., default?)`
// (spec.md §4.6): each [cond, value] pair's cond is evaluated in
// order and must be a Boolean (TypeError otherwise); the first true
// one short-circuits to its value (a tail position), with an optional
// trailing bare default. No match and no default raises PiecewiseError.
func (e *Evaluator) evalPiecewise(n *parser.CallExpr, en *env.Environment, ctx *types.TaskContext) (types.Result, *pendingTail) {
	for i, arg := range n.Args {
		pair, ok := arg.(*parser.ArrayExpr)
		if !ok || len(pair.Elements) != 2 {
			if i == len(n.Args)-1 {
				return e.evalTail(arg, en, ctx)
			}
			return types.Errf(types.E_TYPE, "piecewise expects [cond, value] pairs"), nil
		}
		condRes := e.Eval(pair.Elements[0].Value, en, ctx)
		if !condRes.IsNormal() {
			return condRes, nil
		}
		cond, ok := condRes.Val.(types.Boolean)
		if !ok {
			return types.Errf(types.E_TYPE, "piecewise condition must be a boolean"), nil
		}
		if cond.Val {
			return e.evalTail(pair.Elements[1].Value, en, ctx)
		}
	}
	return types.Err(types.E_PIECEWISE), nil
}

// evalDoBlockTail evaluates a do-block's statements in a fresh scope;
// its value is either an explicit `return`'s value or the value of
// the last statement, which is a tail position.
func (e *Evaluator) evalDoBlockTail(n *parser.DoBlock, en *env.Environment, ctx *types.TaskContext) (types.Result, *pendingTail) {
	blockEnv := en.PushScope()
	if len(n.Stmts) == 0 {
		return types.Ok(types.NewUnit()), nil
	}
	for _, s := range n.Stmts[:len(n.Stmts)-1] {
		res := e.evalStmt(s, blockEnv, ctx)
		if !res.IsNormal() {
			return res, nil
		}
	}
	last := n.Stmts[len(n.Stmts)-1]
	if exprStmt, ok := last.(*parser.ExprStmt); ok {
		return e.evalTail(exprStmt.Expr, blockEnv, ctx)
	}
	if retStmt, ok := last.(*parser.ReturnStmt); ok {
		if retStmt.Value == nil {
			return types.Ok(types.NewUnit()), nil
		}
		return e.evalTail(retStmt.Value, blockEnv, ctx)
	}
	return e.evalStmt(last, blockEnv, ctx), nil
}
