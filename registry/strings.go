package registry

import (
	"strings"

	"github.com/achronyme/soc/types"
)

// registerStringPrelude installs spec.md §4.4's string prelude:
// concat, split, join, upper, lower.
func registerStringPrelude(r *Registry) {
	r.prelude["concat"] = plain(fnConcat)
	r.prelude["split"] = plain(fnSplit)
	r.prelude["join"] = plain(fnJoin)
	r.prelude["upper"] = plain(stringUnary(strings.ToUpper))
	r.prelude["lower"] = plain(stringUnary(strings.ToLower))
}

func stringUnary(f func(string) string) BuiltinFunc {
	return func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 1 {
			return types.Errf(types.E_ARITY, "expected 1 argument")
		}
		s, ok := args[0].(types.String)
		if !ok {
			return types.Errf(types.E_TYPE, "expected a string argument")
		}
		return types.Ok(types.NewString(f(s.Val)))
	}
}

func fnConcat(ctx *types.TaskContext, args []types.Value) types.Result {
	var b strings.Builder
	for _, a := range args {
		s, ok := a.(types.String)
		if !ok {
			return types.Errf(types.E_TYPE, "concat expects string arguments")
		}
		b.WriteString(s.Val)
	}
	return types.Ok(types.NewString(b.String()))
}

func fnSplit(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "split(s, sep) expects 2 arguments")
	}
	s, ok := args[0].(types.String)
	if !ok {
		return types.Errf(types.E_TYPE, "split expects string arguments")
	}
	sep, ok := args[1].(types.String)
	if !ok {
		return types.Errf(types.E_TYPE, "split expects string arguments")
	}
	parts := strings.Split(s.Val, sep.Val)
	out := make([]types.Value, len(parts))
	for i, p := range parts {
		out[i] = types.NewString(p)
	}
	return types.Ok(types.NewVector(out))
}

func fnJoin(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 2 {
		return types.Errf(types.E_ARITY, "join(arr, sep) expects 2 arguments")
	}
	elems, _, ok := elementsOf(args[0])
	if !ok {
		return types.Errf(types.E_TYPE, "join expects an array as its first argument")
	}
	sep, ok := args[1].(types.String)
	if !ok {
		return types.Errf(types.E_TYPE, "join expects a string separator")
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		s, ok := e.(types.String)
		if !ok {
			return types.Errf(types.E_TYPE, "join expects an array of strings")
		}
		parts[i] = s.Val
	}
	return types.Ok(types.NewString(strings.Join(parts, sep.Val)))
}
