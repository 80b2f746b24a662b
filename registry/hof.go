package registry

import "github.com/achronyme/soc/types"

// registerHOFPrelude installs spec.md §4.4's array/HOF prelude:
// map, filter, reduce, pipe, any, all, find, findIndex, count, sum,
// len, range, contains. The first nine need to call back into user
// Function values, so they are registered as HOF entries; the
// evaluator supplies the CallFunc implementation at call time.
func registerHOFPrelude(r *Registry) {
	r.prelude["map"] = hof(hofMap)
	r.prelude["filter"] = hof(hofFilter)
	r.prelude["reduce"] = hof(hofReduce)
	r.prelude["pipe"] = hof(hofPipe)
	r.prelude["any"] = hof(hofAny)
	r.prelude["all"] = hof(hofAll)
	r.prelude["find"] = hof(hofFind)
	r.prelude["findIndex"] = hof(hofFindIndex)
	r.prelude["count"] = hof(hofCount)

	r.prelude["sum"] = plain(fnSum)
	r.prelude["len"] = plain(fnLen)
	r.prelude["range"] = plain(fnRange)
	r.prelude["contains"] = plain(fnContains)
}

func hofMap(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "map(fn, arr) expects 2 arguments")
	}
	elems, wasTensor, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "map expects an array as its second argument")
	}
	out := make([]types.Value, len(elems))
	for i, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		out[i] = res.Val
	}
	return types.Ok(rebuildContainer(out, wasTensor))
}

func hofFilter(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "filter(pred, arr) expects 2 arguments")
	}
	elems, wasTensor, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "filter expects an array as its second argument")
	}
	var out []types.Value
	for _, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		if res.Val.Truthy() {
			out = append(out, e)
		}
	}
	return types.Ok(rebuildContainer(out, wasTensor))
}

func hofReduce(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 3 {
		return types.Errf(types.E_ARITY, "reduce(fn, init, arr) expects 3 arguments")
	}
	elems, _, ok := elementsOf(args[2])
	if !ok {
		return types.Errf(types.E_TYPE, "reduce expects an array as its third argument")
	}
	acc := args[1]
	for _, e := range elems {
		res := call(ctx, args[0], []types.Value{acc, e})
		if !res.IsNormal() {
			return res
		}
		acc = res.Val
	}
	return types.Ok(acc)
}

// hofPipe implements pipe(x, f1, f2, ...) -> fn(... f2(f1(x))); the
// infix |> operator lowers to the same sequential application in the
// evaluator's PipeExpr handler.
func hofPipe(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) < 1 {
		return types.Errf(types.E_ARITY, "pipe expects at least 1 argument")
	}
	acc := args[0]
	for _, stage := range args[1:] {
		res := call(ctx, stage, []types.Value{acc})
		if !res.IsNormal() {
			return res
		}
		acc = res.Val
	}
	return types.Ok(acc)
}

func hofAny(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "any(pred, arr) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "any expects an array as its second argument")
	}
	for _, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		if res.Val.Truthy() {
			return types.Ok(types.NewBoolean(true))
		}
	}
	return types.Ok(types.NewBoolean(false))
}

func hofAll(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "all(pred, arr) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "all expects an array as its second argument")
	}
	for _, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		if !res.Val.Truthy() {
			return types.Ok(types.NewBoolean(false))
		}
	}
	return types.Ok(types.NewBoolean(true))
}

func hofFind(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "find(pred, arr) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "find expects an array as its second argument")
	}
	for _, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		if res.Val.Truthy() {
			return types.Ok(e)
		}
	}
	return types.Ok(types.NewUnit())
}

func hofFindIndex(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "findIndex(pred, arr) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "findIndex expects an array as its second argument")
	}
	for i, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		if res.Val.Truthy() {
			return types.Ok(types.NewNumber(float64(i)))
		}
	}
	return types.Ok(types.NewNumber(-1))
}

func hofCount(ctx *types.TaskContext, call CallFunc, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "count(pred, arr) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "count expects an array as its second argument")
	}
	n := 0
	for _, e := range elems {
		res := call(ctx, args[0], []types.Value{e})
		if !res.IsNormal() {
			return res
		}
		if res.Val.Truthy() {
			n++
		}
	}
	return types.Ok(types.NewNumber(float64(n)))
}

// fnSum implements sum(arr); the empty-sum identity sum([]) == 0
// follows spec.md §9's adopted algebraic convention.
func fnSum(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "sum(arr) expects 1 argument")
	}
	elems, _, ok := elementsOf(args[0])
	if !ok {
		return types.Errf(types.E_TYPE, "sum expects an array argument")
	}
	total := 0.0
	for _, e := range elems {
		f, ok := asScalar(e)
		if !ok {
			return types.Errf(types.E_TYPE, "sum expects numeric elements")
		}
		total += f
	}
	return types.Ok(types.NewNumber(total))
}

func fnLen(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Errf(types.E_ARITY, "len(arr) expects 1 argument")
	}
	switch v := args[0].(type) {
	case types.Record:
		return types.Ok(types.NewNumber(float64(v.Len())))
	default:
		elems, _, ok := elementsOf(args[0])
		if !ok {
			return types.Errf(types.E_TYPE, "len expects an array, string, or record")
		}
		return types.Ok(types.NewNumber(float64(len(elems))))
	}
}

// fnRange implements range(start, end[, step]) with an exclusive end
// (spec.md §9's adopted convention).
func fnRange(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 2 || len(args) > 3 {
		return types.Errf(types.E_ARITY, "range expects 2 or 3 arguments")
	}
	start, ok := asScalar(args[0])
	if !ok {
		return types.Errf(types.E_TYPE, "range expects numeric arguments")
	}
	end, ok := asScalar(args[1])
	if !ok {
		return types.Errf(types.E_TYPE, "range expects numeric arguments")
	}
	step := 1.0
	if len(args) == 3 {
		step, ok = asScalar(args[2])
		if !ok {
			return types.Errf(types.E_TYPE, "range expects numeric arguments")
		}
	}
	if step == 0 {
		return types.Errf(types.E_DOMAIN, "range step must be nonzero")
	}
	var out []float64
	if step > 0 {
		for x := start; x < end; x += step {
			out = append(out, x)
		}
	} else {
		for x := start; x > end; x += step {
			out = append(out, x)
		}
	}
	return types.Ok(tensorFromFloats(out))
}

func fnContains(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "contains(arr, x) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[0])
	if !ok {
		return types.Errf(types.E_TYPE, "contains expects an array as its first argument")
	}
	for _, e := range elems {
		if e.Equal(args[1]) {
			return types.Ok(types.NewBoolean(true))
		}
	}
	return types.Ok(types.NewBoolean(false))
}
