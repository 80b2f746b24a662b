package types

import "github.com/achronyme/soc/tensor"

// TensorVal wraps a real tensor.Tensor as a Value.
type TensorVal struct {
	T *tensor.Tensor
}

func NewTensor(t *tensor.Tensor) TensorVal { return TensorVal{T: t} }

func (t TensorVal) Type() TypeCode { return TYPE_TENSOR }
func (t TensorVal) String() string { return t.T.String() }

func (t TensorVal) Equal(o Value) bool {
	other, ok := o.(TensorVal)
	return ok && t.T.Equal(other.T)
}

// Truthy: following the tensor-as-scalar convention, a rank-0 tensor is
// truthy iff nonzero; any non-scalar tensor is truthy iff non-empty.
func (t TensorVal) Truthy() bool {
	if t.T.IsScalar() {
		v, _ := t.T.At(nil)
		return v != 0
	}
	return t.T.Len() > 0
}

// ComplexTensorVal wraps a tensor.ComplexTensor as a Value.
type ComplexTensorVal struct {
	T *tensor.ComplexTensor
}

func NewComplexTensor(t *tensor.ComplexTensor) ComplexTensorVal { return ComplexTensorVal{T: t} }

func (t ComplexTensorVal) Type() TypeCode { return TYPE_COMPLEX_TENSOR }
func (t ComplexTensorVal) String() string { return t.T.String() }

func (t ComplexTensorVal) Equal(o Value) bool {
	other, ok := o.(ComplexTensorVal)
	return ok && t.T.Equal(other.T)
}

func (t ComplexTensorVal) Truthy() bool {
	return t.T.Len() > 0
}
