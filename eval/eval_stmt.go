package eval

import (
	"github.com/achronyme/soc/env"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/types"
)

// EvalProgram runs a parsed program's top-level statements against the
// evaluator's persistent top environment (spec.md §6 eval_source),
// returning the value of the last statement.
func (e *Evaluator) EvalProgram(prog *parser.Program, ctx *types.TaskContext) types.Result {
	return e.evalStmts(prog.Stmts, e.topEnv, ctx)
}

// evalStmts runs a statement list in en, honoring `let rec` group
// semantics: a maximal contiguous run of `let rec` statements has all
// of its names declared as placeholders before any of their
// initializers run, so mutually recursive bindings within the same run
// can reference each other regardless of declaration order (spec.md
// §4.5 "Mutual recursion via rec").
func (e *Evaluator) evalStmts(stmts []parser.Stmt, en *env.Environment, ctx *types.TaskContext) types.Result {
	var last types.Result = types.Ok(types.NewUnit())
	i := 0
	for i < len(stmts) {
		if let, ok := stmts[i].(*parser.LetStmt); ok && let.Rec {
			j := i
			for j < len(stmts) {
				l, ok := stmts[j].(*parser.LetStmt)
				if !ok || !l.Rec {
					break
				}
				en.DefinePlaceholder(l.Name)
				j++
			}
			for k := i; k < j; k++ {
				l := stmts[k].(*parser.LetStmt)
				res := e.Eval(l.Value, en, ctx)
				if !res.IsNormal() {
					return res
				}
				en.FinalizeRec(l.Name, res.Val)
			}
			last = types.Ok(types.NewUnit())
			i = j
			continue
		}
		res := e.evalStmt(stmts[i], en, ctx)
		if !res.IsNormal() {
			return res
		}
		last = res
		i++
	}
	return last
}

// evalStmt evaluates a single statement for its value (Unit for
// declarations, the wrapped value for ExprStmt/ReturnStmt).
func (e *Evaluator) evalStmt(stmt parser.Stmt, en *env.Environment, ctx *types.TaskContext) types.Result {
	switch s := stmt.(type) {
	case *parser.LetStmt:
		res := e.Eval(s.Value, en, ctx)
		if !res.IsNormal() {
			return res
		}
		en.Define(s.Name, res.Val, s.Mutable)
		return types.Ok(types.NewUnit())
	case *parser.ImportStmt:
		return e.evalImport(s, en)
	case *parser.ExportStmt:
		return e.evalExport(s, en)
	case *parser.ReturnStmt:
		if s.Value == nil {
			return types.Return(types.NewUnit())
		}
		res := e.Eval(s.Value, en, ctx)
		if !res.IsNormal() {
			return res
		}
		return types.Return(res.Val)
	case *parser.ExprStmt:
		return e.Eval(s.Expr, en, ctx)
	default:
		return types.Errf(types.E_TYPE, "unhandled statement type")
	}
}

// evalImport resolves `import { a, b as c } from "module"` eagerly:
// both the module and every named member must exist in the registry at
// the moment the statement executes, not lazily at first use (spec.md
// §4.4 "raised when the import statement executes").
func (e *Evaluator) evalImport(s *parser.ImportStmt, en *env.Environment) types.Result {
	if !e.reg.HasModule(s.Module) {
		return types.Errf(types.E_RESOLUTION, "unknown module: "+s.Module)
	}
	for _, item := range s.Items {
		if _, ok := e.reg.LookupModuleMember(s.Module, item.Name); !ok {
			return types.Errf(types.E_RESOLUTION, "module "+s.Module+" has no member "+item.Name)
		}
		alias := item.Alias
		if alias == "" {
			alias = item.Name
		}
		e.imports[alias] = importBinding{Module: s.Module, Original: item.Name}
	}
	return types.Ok(types.NewUnit())
}

// evalExport validates that every exported name is bound in en at the
// point of the export statement; SOC's single-evaluator host API has
// no separate module-consumer side to expose these to, so export is
// otherwise a no-op: the exported names are not recorded anywhere.
func (e *Evaluator) evalExport(s *parser.ExportStmt, en *env.Environment) types.Result {
	for _, name := range s.Names {
		if _, ok := en.Lookup(name); !ok {
			return types.Errf(types.E_RESOLUTION, "cannot export undefined name: "+name)
		}
	}
	return types.Ok(types.NewUnit())
}

// evalAssign implements `target = value` against a previously `mut`
// bound identifier, record field, or indexable collection slot
// (spec.md:170 "assignable only if the binding is mutable and the
// record cell is mutable"). Records and Vectors are copy-on-write
// (types.Record.Set/types.Vector.Set each return a new value, never
// mutating in place), so `r.x = 2` and `arr[0] = 2` rebuild the
// container from the assigned leaf outward and reassign the rebuilt
// value through the chain's root identifier, which is where the
// mutability check actually happens.
func (e *Evaluator) evalAssign(n *parser.AssignExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	valRes := e.Eval(n.Value, en, ctx)
	if !valRes.IsNormal() {
		return valRes
	}
	return e.assignTo(n.Target, valRes.Val, en, ctx)
}

// assignTo rewrites target so that it would read back as newVal,
// recursing through FieldExpr/IndexExpr chains and terminating at the
// IdentifierExpr whose cell is actually reassigned.
func (e *Evaluator) assignTo(target parser.Expr, newVal types.Value, en *env.Environment, ctx *types.TaskContext) types.Result {
	switch t := target.(type) {
	case *parser.IdentifierExpr:
		switch en.Assign(t.Name, newVal) {
		case env.AssignOK:
			return types.Ok(newVal)
		case env.AssignImmutable:
			return types.Errf(types.E_IMMUTABLE, "cannot assign to immutable binding: "+t.Name)
		default:
			return types.Errf(types.E_RESOLUTION, "undefined identifier: "+t.Name)
		}

	case *parser.FieldExpr:
		containerRes := e.Eval(t.Target, en, ctx)
		if !containerRes.IsNormal() {
			return containerRes
		}
		rec, ok := containerRes.Val.(types.Record)
		if !ok {
			return types.Errf(types.E_TYPE, "field assignment target is not a record")
		}
		if res := e.assignTo(t.Target, rec.Set(t.Field, newVal), en, ctx); !res.IsNormal() {
			return res
		}
		return types.Ok(newVal)

	case *parser.IndexExpr:
		containerRes := e.Eval(t.Target, en, ctx)
		if !containerRes.IsNormal() {
			return containerRes
		}
		idxRes := e.Eval(t.Index, en, ctx)
		if !idxRes.IsNormal() {
			return idxRes
		}
		updated, errRes := assignIndexElement(containerRes.Val, idxRes.Val, newVal)
		if errRes != nil {
			return *errRes
		}
		if res := e.assignTo(t.Target, updated, en, ctx); !res.IsNormal() {
			return res
		}
		return types.Ok(newVal)

	default:
		return types.Errf(types.E_TYPE, "invalid assignment target")
	}
}

// assignIndexElement returns target with index replaced by newVal,
// mirroring indexElement's (collections.go) supported container
// kinds: Vector accepts any Value, a rank-1 TensorVal accepts only a
// Number (tensor elements are always float64).
func assignIndexElement(target types.Value, index types.Value, newVal types.Value) (types.Value, *types.Result) {
	idxNum, ok := scalarOf(index)
	if !ok {
		res := types.Errf(types.E_TYPE, "index must be a number")
		return nil, &res
	}
	idx := int(idxNum)

	switch val := target.(type) {
	case types.Vector:
		if idx < 0 || idx >= val.Len() {
			res := types.Errf(types.E_SHAPE, "index out of range")
			return nil, &res
		}
		return val.Set(idx, newVal), nil
	case types.TensorVal:
		if val.T.Rank() != 1 {
			res := types.Errf(types.E_SHAPE, "index assignment requires a rank-1 tensor")
			return nil, &res
		}
		n, ok := newVal.(types.Number)
		if !ok {
			res := types.Errf(types.E_TYPE, "tensor elements must be numbers")
			return nil, &res
		}
		updated, err := val.T.Set([]int{idx}, n.Val)
		if err != nil {
			res := types.Errf(types.E_SHAPE, err.Error())
			return nil, &res
		}
		return types.NewTensor(updated), nil
	default:
		res := types.Errf(types.E_TYPE, "value does not support index assignment")
		return nil, &res
	}
}
