package registry

import (
	"math"
	"math/cmplx"

	"github.com/achronyme/soc/types"
)

// registerMathPrelude installs spec.md §4.4's math prelude names:
// sin, cos, tan, sqrt, exp, ln, pow, abs, floor, ceil, round, min,
// max, pi, e.
func registerMathPrelude(r *Registry) {
	r.prelude["pi"] = plain(func(ctx *types.TaskContext, args []types.Value) types.Result {
		return types.Ok(types.NewNumber(math.Pi))
	})
	r.prelude["e"] = plain(func(ctx *types.TaskContext, args []types.Value) types.Result {
		return types.Ok(types.NewNumber(math.E))
	})

	r.prelude["sin"] = plain(unary1(math.Sin, cmplx.Sin))
	r.prelude["cos"] = plain(unary1(math.Cos, cmplx.Cos))
	r.prelude["tan"] = plain(unary1(math.Tan, cmplx.Tan))
	r.prelude["exp"] = plain(unary1(math.Exp, cmplx.Exp))
	r.prelude["abs"] = plain(fnAbs)
	r.prelude["floor"] = plain(unary1Real(math.Floor))
	r.prelude["ceil"] = plain(unary1Real(math.Ceil))
	r.prelude["round"] = plain(unary1Real(math.Round))

	// sqrt/ln: negative real input promotes to Complex following the
	// principal-branch convention (open question in spec.md §9).
	r.prelude["sqrt"] = plain(arity1(func(ctx *types.TaskContext, v types.Value) types.Result {
		return mapUnary(v, func(x float64) (float64, bool) {
			if x < 0 {
				return 0, false
			}
			return math.Sqrt(x), true
		}, cmplx.Sqrt)
	}))
	r.prelude["ln"] = plain(arity1(func(ctx *types.TaskContext, v types.Value) types.Result {
		return mapUnary(v, func(x float64) (float64, bool) {
			if x <= 0 {
				return 0, false
			}
			return math.Log(x), true
		}, cmplx.Log)
	}))

	r.prelude["pow"] = plain(fnPow)
	r.prelude["min"] = plain(fnMin)
	r.prelude["max"] = plain(fnMax)
}

// unary1 builds a BuiltinFunc from a real math.Func and its
// math/cmplx counterpart, applied elementwise via mapUnary. The real
// function always succeeds (sin/cos/tan/exp have no domain
// restriction), so the predicate wrapper always reports ok=true.
func unary1(f func(float64) float64, cf func(complex128) complex128) BuiltinFunc {
	return arity1(func(ctx *types.TaskContext, v types.Value) types.Result {
		return mapUnary(v, func(x float64) (float64, bool) { return f(x), true }, cf)
	})
}

// unary1Real builds a BuiltinFunc for real-only functions with no
// meaningful complex branch (floor/ceil/round).
func unary1Real(f func(float64) float64) BuiltinFunc {
	return arity1(func(ctx *types.TaskContext, v types.Value) types.Result {
		return mapUnary(v, func(x float64) (float64, bool) { return f(x), true }, nil)
	})
}

// arity1 wraps a single-argument handler with an arity check shared
// by every unary prelude function.
func arity1(f func(ctx *types.TaskContext, v types.Value) types.Result) BuiltinFunc {
	return func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 1 {
			return types.Errf(types.E_ARITY, "expected 1 argument")
		}
		return f(ctx, args[0])
	}
}

func fnAbs(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "expected 1 argument")
	}
	switch v := args[0].(type) {
	case types.Number:
		return types.Ok(types.NewNumber(math.Abs(v.Val)))
	case types.Complex:
		return types.Ok(types.NewNumber(cmplx.Abs(v.AsGo())))
	default:
		return mapUnary(args[0], func(x float64) (float64, bool) { return math.Abs(x), true }, nil)
	}
}

func fnPow(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "expected 2 arguments")
	}
	base, baseOK := asScalar(args[0])
	exp, expOK := asScalar(args[1])
	if baseOK && expOK {
		return types.Ok(types.NewNumber(math.Pow(base, exp)))
	}
	bc, bcOK := asComplex(args[0])
	ec, ecOK := asComplex(args[1])
	if bcOK && ecOK {
		return types.Ok(types.FromGoComplex(cmplx.Pow(bc, ec)))
	}
	return types.Errf(types.E_TYPE, "pow expects numeric arguments")
}

func fnMin(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) == 0 {
		return types.Errf(types.E_ARITY, "expected at least 1 argument")
	}
	return foldExtreme(args, func(a, b float64) bool { return a < b })
}

func fnMax(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) == 0 {
		return types.Errf(types.E_ARITY, "expected at least 1 argument")
	}
	return foldExtreme(args, func(a, b float64) bool { return a > b })
}

// foldExtreme supports both min(a, b, ...) varargs and min(vector)
// single-collection forms.
func foldExtreme(args []types.Value, better func(a, b float64) bool) types.Result {
	var xs []float64
	if len(args) == 1 {
		if fs, ok := floatsOf(args[0]); ok {
			xs = fs
		}
	}
	if xs == nil {
		for _, a := range args {
			f, ok := asScalar(a)
			if !ok {
				return types.Errf(types.E_TYPE, "expected numeric arguments")
			}
			xs = append(xs, f)
		}
	}
	if len(xs) == 0 {
		return types.Errf(types.E_TYPE, "empty argument list")
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if better(x, best) {
			best = x
		}
	}
	return types.Ok(types.NewNumber(best))
}
