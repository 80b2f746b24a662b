package registry

import (
	"fmt"

	"github.com/achronyme/soc/types"
)

// registerIOPrelude installs spec.md §4.4's I/O prelude: print, type,
// str. print has a host-side effect (stdout) and is a thin
// fmt.Println wrapper; it does not route through the tracer.
func registerIOPrelude(r *Registry) {
	r.prelude["print"] = plain(func(ctx *types.TaskContext, args []types.Value) types.Result {
		parts := make([]interface{}, len(args))
		for i, a := range args {
			parts[i] = displayString(a)
		}
		fmt.Println(parts...)
		if len(args) == 0 {
			return types.Ok(types.NewUnit())
		}
		return types.Ok(args[len(args)-1])
	})
	r.prelude["type"] = plain(func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 1 {
			return types.Errf(types.E_ARITY, "type(x) expects 1 argument")
		}
		return types.Ok(types.NewString(args[0].Type().String()))
	})
	r.prelude["str"] = plain(func(ctx *types.TaskContext, args []types.Value) types.Result {
		if len(args) != 1 {
			return types.Errf(types.E_ARITY, "str(x) expects 1 argument")
		}
		if s, ok := args[0].(types.String); ok {
			return types.Ok(s)
		}
		return types.Ok(types.NewString(args[0].String()))
	})
}

// displayString renders a string Value without its quoting/escaping,
// since print should show "hello" as hello the way a shell echo would.
func displayString(v types.Value) string {
	if s, ok := v.(types.String); ok {
		return s.Val
	}
	return v.String()
}
