package registry

import (
	"github.com/achronyme/soc/kernels/stats"
	"github.com/achronyme/soc/types"
)

// registerStatsModule wires the `stats` named module (spec.md §4.4
// "Specialized functions ... live in named modules") to kernels/stats,
// itself a thin wrapper over gonum.org/v1/gonum/stat.
func registerStatsModule(r *Registry) {
	r.registerModule("stats", map[string]Entry{
		"mean":        plain(statsUnary(stats.Mean)),
		"variance":    plain(statsUnary(stats.Variance)),
		"std":         plain(statsUnary(stats.StdDev)),
		"median":      plain(statsUnary(stats.Median)),
		"mode":        plain(statsUnary(stats.Mode)),
		"correlation": plain(statsBinary(stats.Correlation)),
	})
}

func statsUnary(f func([]float64) float64) BuiltinFunc {
	return func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 1 {
			return types.Errf(types.E_ARITY, "expected 1 argument")
		}
		xs, ok := floatsOf(args[0])
		if !ok || len(xs) == 0 {
			return types.Errf(types.E_TYPE, "expected a non-empty numeric array")
		}
		return types.Ok(types.NewNumber(f(xs)))
	}
}

func statsBinary(f func(xs, ys []float64) float64) BuiltinFunc {
	return func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 2 {
			return types.Errf(types.E_ARITY, "expected 2 arguments")
		}
		xs, ok1 := floatsOf(args[0])
		ys, ok2 := floatsOf(args[1])
		if !ok1 || !ok2 || len(xs) != len(ys) || len(xs) == 0 {
			return types.Errf(types.E_SHAPE, "expected two equal-length numeric arrays")
		}
		return types.Ok(types.NewNumber(f(xs, ys)))
	}
}
