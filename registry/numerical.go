package registry

import (
	"github.com/achronyme/soc/kernels/numerical"
	"github.com/achronyme/soc/types"
)

// registerNumericalModule wires the `numerical` module to
// kernels/numerical. diff and integral take a SOC Function as their
// first argument, so they need the evaluator's CallFunc to bridge a
// Go float64->float64 closure into a user-level call; solve is a
// plain array-in/array-out kernel.
func registerNumericalModule(r *Registry) {
	r.registerModule("numerical", map[string]Entry{
		"diff":     hof(hofDiff),
		"integral": hof(hofIntegral),
		"solve":    plain(fnSolve),
	})
}

func hofDiff(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "diff(f, x) expects 2 arguments")
	}
	x, ok := asScalar(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "diff expects a numeric second argument")
	}
	var callErr types.Result
	f := func(v float64) float64 {
		res := call(ctx, args[0], []types.Value{types.NewNumber(v)})
		if !res.IsNormal() {
			callErr = res
			return 0
		}
		n, ok := asScalar(res.Val)
		if !ok {
			callErr = types.Errf(types.E_TYPE, "diff's function must return a number")
			return 0
		}
		return n
	}
	result := numerical.Diff(f, x)
	if callErr.IsError() {
		return callErr
	}
	return types.Ok(types.NewNumber(result))
}

func hofIntegral(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 3 {
		return types.Errf(types.E_ARITY, "integral(f, a, b) expects 3 arguments")
	}
	a, ok1 := asScalar(args[1])
	b, ok2 := asScalar(args[2])
	if !ok1 || !ok2 {
		return types.Errf(types.E_TYPE, "integral expects numeric bounds")
	}
	var callErr types.Result
	f := func(v float64) float64 {
		res := call(ctx, args[0], []types.Value{types.NewNumber(v)})
		if !res.IsNormal() {
			callErr = res
			return 0
		}
		n, ok := asScalar(res.Val)
		if !ok {
			callErr = types.Errf(types.E_TYPE, "integral's function must return a number")
			return 0
		}
		return n
	}
	const subintervals = 1000
	result := numerical.Integrate(f, a, b, subintervals)
	if callErr.IsError() {
		return callErr
	}
	return types.Ok(types.NewNumber(result))
}

func fnSolve(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "solve(a, b) expects 2 arguments")
	}
	a, ok := matrixOf(args[0])
	if !ok {
		return types.Errf(types.E_TYPE, "solve expects a rank-2 tensor as its first argument")
	}
	b, ok := floatsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "solve expects a numeric vector as its second argument")
	}
	x, err := numerical.Solve(a, b)
	if err != nil {
		return types.Errf(types.E_RUNTIME, err.Error())
	}
	return types.Ok(tensorFromFloats(x))
}
