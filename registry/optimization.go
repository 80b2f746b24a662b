package registry

import (
	"github.com/achronyme/soc/kernels/optimization"
	"github.com/achronyme/soc/types"
)

// registerOptimizationModule wires the `optimization` module to
// kernels/optimization (gonum.org/v1/gonum/optimize).
func registerOptimizationModule(r *Registry) {
	r.registerModule("optimization", map[string]Entry{
		"simplex": hof(hofMinimize),
	})
}

// hofMinimize implements simplex(f, x0) (Nelder-Mead): f is a SOC
// Function taking a Vector/Tensor of n coordinates and returning a
// Number.
func hofMinimize(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "simplex(f, x0) expects 2 arguments")
	}
	x0, ok := floatsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "simplex expects a numeric starting point")
	}
	var callErr types.Result
	f := func(x []float64) float64 {
		res := call(ctx, args[0], []types.Value{tensorFromFloats(x)})
		if !res.IsNormal() {
			callErr = res
			return 0
		}
		n, ok := asScalar(res.Val)
		if !ok {
			callErr = types.Errf(types.E_TYPE, "simplex's function must return a number")
			return 0
		}
		return n
	}
	xmin, fmin, err := optimization.Minimize(f, x0)
	if callErr.IsError() {
		return callErr
	}
	if err != nil {
		return types.Errf(types.E_RUNTIME, err.Error())
	}
	return types.Ok(types.NewRecord([]string{"x", "value"}, map[string]types.Value{
		"x":     tensorFromFloats(xmin),
		"value": types.NewNumber(fmin),
	}))
}
