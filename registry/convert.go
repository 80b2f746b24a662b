package registry

import (
	"github.com/achronyme/soc/tensor"
	"github.com/achronyme/soc/types"
)

// asScalar extracts a float64 from a Number or a rank-0 Tensor, the
// common case for math-prelude unary functions.
func asScalar(v types.Value) (float64, bool) {
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

func asComplex(v types.Value) (complex128, bool) {
	switch val := v.(type) {
	case types.Number:
		return complex(val.Val, 0), true
	case types.Complex:
		return val.AsGo(), true
	}
	return 0, false
}

// floatsOf flattens a Value into a []float64, supporting Number,
// TensorVal (any rank, row-major), and a homogeneous-numeric Vector.
// Used by stats/dsp/numerical module wrappers, which operate on flat
// sample buffers regardless of how the caller shaped the literal.
func floatsOf(v types.Value) ([]float64, bool) {
	switch val := v.(type) {
	case types.Number:
		return []float64{val.Val}, true
	case types.TensorVal:
		data := val.T.Data()
		out := make([]float64, len(data))
		copy(out, data)
		return out, true
	case types.Vector:
		out := make([]float64, len(val.Elements))
		for i, e := range val.Elements {
			f, ok := asScalar(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func matrixOf(v types.Value) ([][]float64, bool) {
	tv, ok := v.(types.TensorVal)
	if !ok || tv.T.Rank() != 2 {
		return nil, false
	}
	shape := tv.T.Shape()
	rows, cols := shape[0], shape[1]
	out := make([][]float64, rows)
	data := tv.T.Data()
	for i := 0; i < rows; i++ {
		out[i] = append([]float64(nil), data[i*cols:(i+1)*cols]...)
	}
	return out, true
}

func tensorFromFloats(xs []float64) types.Value {
	return types.NewTensor(tensor.New(xs, tensor.Shape{len(xs)}))
}

// mapUnary applies f elementwise over Number/TensorVal, promoting to
// Complex/ComplexTensorVal via cf whenever f signals an out-of-domain
// real result (cf is nil for functions with no meaningful complex
// branch, e.g. floor/ceil/round).
func mapUnary(v types.Value, f func(float64) (float64, bool), cf func(complex128) complex128) types.Result {
	switch val := v.(type) {
	case types.Number:
		r, ok := f(val.Val)
		if ok {
			return types.Ok(types.NewNumber(r))
		}
		if cf == nil {
			return types.Errf(types.E_DOMAIN, "argument out of domain")
		}
		return types.Ok(types.FromGoComplex(cf(complex(val.Val, 0))))
	case types.Complex:
		if cf == nil {
			return types.Errf(types.E_TYPE, "function does not accept complex arguments")
		}
		return types.Ok(types.FromGoComplex(cf(val.AsGo())))
	case types.TensorVal:
		data := val.T.Data()
		out := make([]float64, len(data))
		needsComplex := false
		for i, x := range data {
			r, ok := f(x)
			if !ok {
				needsComplex = true
				break
			}
			out[i] = r
		}
		if !needsComplex {
			return types.Ok(types.NewTensor(tensor.New(out, val.T.Shape().Clone())))
		}
		if cf == nil {
			return types.Errf(types.E_DOMAIN, "argument out of domain")
		}
		cout := make([]complex128, len(data))
		for i, x := range data {
			cout[i] = cf(complex(x, 0))
		}
		return types.Ok(types.NewComplexTensor(tensor.NewComplex(cout, val.T.Shape().Clone())))
	case types.ComplexTensorVal:
		if cf == nil {
			return types.Errf(types.E_TYPE, "function does not accept complex arguments")
		}
		data := val.T.Data()
		out := make([]complex128, len(data))
		for i, x := range data {
			out[i] = cf(x)
		}
		return types.Ok(types.NewComplexTensor(tensor.NewComplex(out, val.T.Shape().Clone())))
	default:
		return types.Errf(types.E_TYPE, "expected a numeric value")
	}
}
