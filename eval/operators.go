package eval

import (
	"math"
	"math/cmplx"

	"github.com/achronyme/soc/env"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/tensor"
	"github.com/achronyme/soc/types"
)

// evalUnary implements `-x` and `!x` (spec.md §4.1 unary operators).
func (e *Evaluator) evalUnary(n *parser.UnaryExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	res := e.Eval(n.Operand, en, ctx)
	if !res.IsNormal() {
		return res
	}
	switch n.Op {
	case parser.TOKEN_MINUS:
		return negate(res.Val)
	case parser.TOKEN_NOT:
		b, ok := res.Val.(types.Boolean)
		if !ok {
			return types.Errf(types.E_TYPE, "! requires a boolean operand")
		}
		return types.Ok(types.NewBoolean(!b.Val))
	default:
		return types.Errf(types.E_TYPE, "unsupported unary operator")
	}
}

func negate(v types.Value) types.Result {
	switch val := v.(type) {
	case types.Number:
		return types.Ok(types.NewNumber(-val.Val))
	case types.Complex:
		return types.Ok(types.NewComplex(-val.Re, -val.Im))
	case types.TensorVal:
		return types.Ok(types.NewTensor(val.T.Scale(-1)))
	case types.ComplexTensorVal:
		data := val.T.Data()
		out := make([]complex128, len(data))
		for i, x := range data {
			out[i] = -x
		}
		return types.Ok(types.NewComplexTensor(tensor.NewComplex(out, val.T.Shape().Clone())))
	default:
		return types.Errf(types.E_TYPE, "- requires a numeric operand")
	}
}

// evalBinary dispatches arithmetic, comparison, and logical operators
// over the type-promotion lattice of spec.md §4.1: Number ⊂ Complex,
// RealTensor ⊂ ComplexTensor, scalar broadcasts against tensor. This
// is grounded on the teacher's operators.go coercion-then-dispatch
// pattern (toNumeric/compare), generalized from MOO's int/float/obj
// pairing to SOC's richer numeric tower.
func (e *Evaluator) evalBinary(n *parser.BinaryExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	if n.Op == parser.TOKEN_AND || n.Op == parser.TOKEN_OR {
		return e.evalLogical(n, en, ctx)
	}

	lRes := e.Eval(n.Left, en, ctx)
	if !lRes.IsNormal() {
		return lRes
	}
	rRes := e.Eval(n.Right, en, ctx)
	if !rRes.IsNormal() {
		return rRes
	}
	l, r := lRes.Val, rRes.Val

	switch n.Op {
	case parser.TOKEN_EQ:
		return types.Ok(types.NewBoolean(l.Equal(r)))
	case parser.TOKEN_NE:
		return types.Ok(types.NewBoolean(!l.Equal(r)))
	case parser.TOKEN_LT, parser.TOKEN_GT, parser.TOKEN_LE, parser.TOKEN_GE:
		return compareOrdered(n.Op, l, r)
	case parser.TOKEN_PLUS, parser.TOKEN_MINUS, parser.TOKEN_STAR, parser.TOKEN_SLASH, parser.TOKEN_PERCENT, parser.TOKEN_CARET:
		return evalArithmetic(n.Op, l, r)
	default:
		return types.Errf(types.E_TYPE, "unsupported binary operator")
	}
}

// evalLogical short-circuits && and || (spec.md §4.6).
func (e *Evaluator) evalLogical(n *parser.BinaryExpr, en *env.Environment, ctx *types.TaskContext) types.Result {
	lRes := e.Eval(n.Left, en, ctx)
	if !lRes.IsNormal() {
		return lRes
	}
	lb, ok := lRes.Val.(types.Boolean)
	if !ok {
		return types.Errf(types.E_TYPE, "&&/|| require boolean operands")
	}
	if n.Op == parser.TOKEN_AND && !lb.Val {
		return types.Ok(types.NewBoolean(false))
	}
	if n.Op == parser.TOKEN_OR && lb.Val {
		return types.Ok(types.NewBoolean(true))
	}
	rRes := e.Eval(n.Right, en, ctx)
	if !rRes.IsNormal() {
		return rRes
	}
	rb, ok := rRes.Val.(types.Boolean)
	if !ok {
		return types.Errf(types.E_TYPE, "&&/|| require boolean operands")
	}
	return types.Ok(types.NewBoolean(rb.Val))
}

// compareOrdered implements <, >, <=, >= over Number, rank-0 Tensor,
// and String; Complex and higher-rank tensors have no total order
// (spec.md makes no ordering claim for them), so comparing them is a
// TypeError.
func compareOrdered(op parser.TokenType, l, r types.Value) types.Result {
	if ls, ok := l.(types.String); ok {
		rs, ok := r.(types.String)
		if !ok {
			return types.Errf(types.E_TYPE, "cannot compare string to non-string")
		}
		return types.Ok(types.NewBoolean(stringCompare(op, ls.Val, rs.Val)))
	}
	lf, ok := scalarOf(l)
	if !ok {
		return types.Errf(types.E_TYPE, "comparison requires numbers or strings")
	}
	rf, ok := scalarOf(r)
	if !ok {
		return types.Errf(types.E_TYPE, "comparison requires numbers or strings")
	}
	var result bool
	switch op {
	case parser.TOKEN_LT:
		result = lf < rf
	case parser.TOKEN_GT:
		result = lf > rf
	case parser.TOKEN_LE:
		result = lf <= rf
	case parser.TOKEN_GE:
		result = lf >= rf
	}
	return types.Ok(types.NewBoolean(result))
}

func stringCompare(op parser.TokenType, a, b string) bool {
	switch op {
	case parser.TOKEN_LT:
		return a < b
	case parser.TOKEN_GT:
		return a > b
	case parser.TOKEN_LE:
		return a <= b
	default:
		return a >= b
	}
}

func scalarOf(v types.Value) (float64, bool) {
	switch val := v.(type) {
	case types.Number:
		return val.Val, true
	case types.TensorVal:
		if val.T.IsScalar() {
			f, _ := val.T.At(nil)
			return f, true
		}
	}
	return 0, false
}

func complexOf(v types.Value) (complex128, bool) {
	switch val := v.(type) {
	case types.Number:
		return complex(val.Val, 0), true
	case types.Complex:
		return val.AsGo(), true
	}
	return 0, false
}

// evalArithmetic dispatches +, -, *, /, %, ^ across the promotion
// lattice: string concatenation, real scalar, complex scalar, real
// tensor (with broadcasting), and complex tensor, in that widening
// order.
func evalArithmetic(op parser.TokenType, l, r types.Value) types.Result {
	if op == parser.TOKEN_PLUS {
		if ls, ok := l.(types.String); ok {
			if rs, ok := r.(types.String); ok {
				return types.Ok(types.NewString(ls.Val + rs.Val))
			}
		}
	}

	_, lIsCT := l.(types.ComplexTensorVal)
	_, rIsCT := r.(types.ComplexTensorVal)
	_, lIsT := l.(types.TensorVal)
	_, rIsT := r.(types.TensorVal)
	if lIsCT || rIsCT || ((lIsT || rIsT) && (isComplexScalar(l) || isComplexScalar(r))) {
		return complexTensorArithmetic(op, l, r)
	}
	if lIsT || rIsT {
		return realTensorArithmetic(op, l, r)
	}

	if isComplexScalar(l) || isComplexScalar(r) {
		lc, ok := complexOf(l)
		if !ok {
			return types.Errf(types.E_TYPE, "operand is not numeric")
		}
		rc, ok := complexOf(r)
		if !ok {
			return types.Errf(types.E_TYPE, "operand is not numeric")
		}
		return complexArithmetic(op, lc, rc)
	}

	ln, ok := l.(types.Number)
	if !ok {
		return types.Errf(types.E_TYPE, "operand is not numeric")
	}
	rn, ok := r.(types.Number)
	if !ok {
		return types.Errf(types.E_TYPE, "operand is not numeric")
	}
	switch op {
	case parser.TOKEN_PLUS:
		return types.Ok(types.NewNumber(ln.Val + rn.Val))
	case parser.TOKEN_MINUS:
		return types.Ok(types.NewNumber(ln.Val - rn.Val))
	case parser.TOKEN_STAR:
		return types.Ok(types.NewNumber(ln.Val * rn.Val))
	case parser.TOKEN_SLASH:
		return types.Ok(types.NewNumber(ln.Val / rn.Val))
	case parser.TOKEN_PERCENT:
		return types.Ok(types.NewNumber(math.Mod(ln.Val, rn.Val)))
	case parser.TOKEN_CARET:
		return types.Ok(types.NewNumber(math.Pow(ln.Val, rn.Val)))
	default:
		return types.Errf(types.E_TYPE, "unsupported arithmetic operator")
	}
}

func isComplexScalar(v types.Value) bool {
	_, ok := v.(types.Complex)
	return ok
}

func complexArithmetic(op parser.TokenType, l, r complex128) types.Result {
	switch op {
	case parser.TOKEN_PLUS:
		return types.Ok(types.FromGoComplex(l + r))
	case parser.TOKEN_MINUS:
		return types.Ok(types.FromGoComplex(l - r))
	case parser.TOKEN_STAR:
		return types.Ok(types.FromGoComplex(l * r))
	case parser.TOKEN_SLASH:
		return types.Ok(types.FromGoComplex(l / r))
	case parser.TOKEN_CARET:
		return types.Ok(types.FromGoComplex(cmplx.Pow(l, r)))
	default:
		return types.Errf(types.E_TYPE, "% is not defined on complex numbers")
	}
}

// toRealTensor promotes a Number/TensorVal operand to a *tensor.Tensor
// scalar or tensor (never called for genuinely complex operands).
func toRealTensor(v types.Value) (*tensor.Tensor, bool) {
	switch val := v.(type) {
	case types.Number:
		return tensor.Scalar(val.Val), true
	case types.TensorVal:
		return val.T, true
	}
	return nil, false
}

func realTensorArithmetic(op parser.TokenType, l, r types.Value) types.Result {
	lt, ok := toRealTensor(l)
	if !ok {
		return types.Errf(types.E_TYPE, "operand is not numeric")
	}
	rt, ok := toRealTensor(r)
	if !ok {
		return types.Errf(types.E_TYPE, "operand is not numeric")
	}
	var out *tensor.Tensor
	var err error
	switch op {
	case parser.TOKEN_PLUS:
		out, err = tensor.Add(lt, rt)
	case parser.TOKEN_MINUS:
		out, err = tensor.Sub(lt, rt)
	case parser.TOKEN_STAR:
		out, err = tensor.Mul(lt, rt)
	case parser.TOKEN_SLASH:
		out, err = tensor.Div(lt, rt)
	case parser.TOKEN_CARET:
		out, err = tensor.Pow(lt, rt)
	case parser.TOKEN_PERCENT:
		return types.Errf(types.E_TYPE, "% is not defined on tensors")
	default:
		return types.Errf(types.E_TYPE, "unsupported arithmetic operator")
	}
	if err != nil {
		return types.Errf(types.E_SHAPE, err.Error())
	}
	return types.Ok(types.NewTensor(out))
}

// toComplexTensor promotes any numeric scalar/tensor operand to a
// *tensor.ComplexTensor (spec.md §4.1 "mixing Real and Complex
// promotes to Complex").
func toComplexTensor(v types.Value) (*tensor.ComplexTensor, bool) {
	switch val := v.(type) {
	case types.Number:
		return tensor.NewComplex([]complex128{complex(val.Val, 0)}, tensor.Shape{}), true
	case types.Complex:
		return tensor.NewComplex([]complex128{val.AsGo()}, tensor.Shape{}), true
	case types.TensorVal:
		return tensor.Promote(val.T), true
	case types.ComplexTensorVal:
		return val.T, true
	}
	return nil, false
}

func complexTensorArithmetic(op parser.TokenType, l, r types.Value) types.Result {
	lt, ok := toComplexTensor(l)
	if !ok {
		return types.Errf(types.E_TYPE, "operand is not numeric")
	}
	rt, ok := toComplexTensor(r)
	if !ok {
		return types.Errf(types.E_TYPE, "operand is not numeric")
	}
	var out *tensor.ComplexTensor
	var err error
	switch op {
	case parser.TOKEN_PLUS:
		out, err = tensor.AddC(lt, rt)
	case parser.TOKEN_MINUS:
		out, err = tensor.SubC(lt, rt)
	case parser.TOKEN_STAR:
		out, err = tensor.MulC(lt, rt)
	case parser.TOKEN_SLASH:
		out, err = tensor.DivC(lt, rt)
	case parser.TOKEN_CARET, parser.TOKEN_PERCENT:
		return types.Errf(types.E_TYPE, "complex tensor exponentiation/modulo is not supported")
	default:
		return types.Errf(types.E_TYPE, "unsupported arithmetic operator")
	}
	if err != nil {
		return types.Errf(types.E_SHAPE, err.Error())
	}
	return types.Ok(types.NewComplexTensor(out))
}
