package tensor

import (
	"fmt"
	"strings"
)

// ComplexTensor is the complex128 counterpart to Tensor, reached by
// automatic promotion from Tensor (spec.md §3, §4.1: RealTensor ⊂
// ComplexTensor). It supports broadcasting +, -, *, / (with matrix
// product for rank-2 *); it has no power, slicing, transpose or
// determinant operation.
type ComplexTensor struct {
	shape Shape
	data  []complex128
}

func NewComplex(data []complex128, shape Shape) *ComplexTensor {
	if shape.Size() != len(data) {
		panic(fmt.Sprintf("complex tensor: shape %v does not match data length %d", []int(shape), len(data)))
	}
	return &ComplexTensor{shape: shape.Clone(), data: data}
}

// Promote lifts a real Tensor into a ComplexTensor with zero imaginary
// parts (spec.md §4.1 type promotion: mixing Real and Complex promotes
// to Complex).
func Promote(t *Tensor) *ComplexTensor {
	out := make([]complex128, len(t.data))
	for i, v := range t.data {
		out[i] = complex(v, 0)
	}
	return &ComplexTensor{shape: t.shape.Clone(), data: out}
}

func (c *ComplexTensor) Shape() Shape        { return c.shape }
func (c *ComplexTensor) Rank() int           { return len(c.shape) }
func (c *ComplexTensor) Len() int            { return len(c.data) }
func (c *ComplexTensor) Data() []complex128  { return c.data }
func (c *ComplexTensor) IsScalar() bool      { return c.Rank() == 0 }

func complexBroadcastApply(a, b *ComplexTensor, fn func(x, y complex128) complex128) (*ComplexTensor, error) {
	outShape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	n := outShape.Size()
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		ai := indexFor(i, outShape, a.shape)
		bi := indexFor(i, outShape, b.shape)
		out[i] = fn(a.data[ai], b.data[bi])
	}
	return &ComplexTensor{shape: outShape, data: out}, nil
}

func AddC(a, b *ComplexTensor) (*ComplexTensor, error) {
	return complexBroadcastApply(a, b, func(x, y complex128) complex128 { return x + y })
}
func SubC(a, b *ComplexTensor) (*ComplexTensor, error) {
	return complexBroadcastApply(a, b, func(x, y complex128) complex128 { return x - y })
}
func DivC(a, b *ComplexTensor) (*ComplexTensor, error) {
	return complexBroadcastApply(a, b, func(x, y complex128) complex128 { return x / y })
}
func ElementwiseMulC(a, b *ComplexTensor) (*ComplexTensor, error) {
	return complexBroadcastApply(a, b, func(x, y complex128) complex128 { return x * y })
}

// MulC implements promoted `*`: matrix multiplication for rank-2
// operands, elementwise otherwise — mirroring Mul for real tensors.
func MulC(a, b *ComplexTensor) (*ComplexTensor, error) {
	if a.Rank() == 2 && b.Rank() == 2 {
		return MatMulC(a, b)
	}
	return ElementwiseMulC(a, b)
}

func MatMulC(a, b *ComplexTensor) (*ComplexTensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("matmul requires rank-2 tensors")
	}
	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		return nil, fmt.Errorf("matmul conformance mismatch: (%d,%d) x (%d,%d)", m, k, k2, n)
	}
	out := make([]complex128, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc complex128
			for p := 0; p < k; p++ {
				acc += a.data[i*k+p] * b.data[p*n+j]
			}
			out[i*n+j] = acc
		}
	}
	return NewComplex(out, Shape{m, n}), nil
}

func (c *ComplexTensor) String() string {
	return formatNestedComplex(c.shape, c.data)
}

func formatNestedComplex(shape Shape, data []complex128) string {
	if len(shape) == 0 {
		return formatComplexScalar(data[0])
	}
	if len(shape) == 1 {
		parts := make([]string, len(data))
		for i, v := range data {
			parts[i] = formatComplexScalar(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	rowSize := 1
	for _, d := range shape[1:] {
		rowSize *= d
	}
	parts := make([]string, shape[0])
	for i := 0; i < shape[0]; i++ {
		parts[i] = formatNestedComplex(shape[1:], data[i*rowSize:(i+1)*rowSize])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatComplexScalar(v complex128) string {
	re, im := real(v), imag(v)
	if im == 0 {
		return fmt.Sprintf("%g", re)
	}
	if re == 0 {
		return fmt.Sprintf("%gi", im)
	}
	if im < 0 {
		return fmt.Sprintf("%g%gi", re, im)
	}
	return fmt.Sprintf("%g+%gi", re, im)
}

func (c *ComplexTensor) Equal(o *ComplexTensor) bool {
	if !c.shape.Equal(o.shape) {
		return false
	}
	for i := range c.data {
		if c.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
