package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a real-valued n-dimensional array: a contiguous row-major
// float64 buffer plus a shape. Values are immutable from the outside —
// every transforming method returns a fresh Tensor with its own copy
// of the buffer (Slice, Reshape and Set included). New keeps the
// caller's slice without copying it.
type Tensor struct {
	shape Shape
	data  []float64
}

// New constructs a tensor from a flat row-major buffer and a shape.
// Panics if product(shape) != len(data) — this is a programmer error
// at every call site (all construction paths compute the two together).
func New(data []float64, shape Shape) *Tensor {
	if shape.Size() != len(data) {
		panic(fmt.Sprintf("tensor: shape %v does not match data length %d", []int(shape), len(data)))
	}
	return &Tensor{shape: shape.Clone(), data: data}
}

// Scalar wraps a single float64 as a rank-0 tensor.
func Scalar(v float64) *Tensor { return &Tensor{shape: Shape{}, data: []float64{v}} }

// Zeros builds a tensor of the given shape filled with zero.
func Zeros(shape Shape) *Tensor { return &Tensor{shape: shape.Clone(), data: make([]float64, shape.Size())} }

// FromNested flattens [][]float64 rows (row-major) into a rank-2
// tensor and infers the shape. Ragged rows are signalled by returning
// an error; the evaluator's array literals raise ShapeError for ragged
// rows on their own.
func FromNested(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return New(nil, Shape{0, 0}), nil
	}
	width := len(rows[0])
	data := make([]float64, 0, len(rows)*width)
	for _, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("ragged matrix literal: row length %d != %d", len(r), width)
		}
		data = append(data, r...)
	}
	return New(data, Shape{len(rows), width}), nil
}

func (t *Tensor) Shape() Shape  { return t.shape }
func (t *Tensor) Rank() int     { return len(t.shape) }
func (t *Tensor) Len() int      { return len(t.data) }
func (t *Tensor) Data() []float64 { return t.data }

// IsScalar reports rank 0.
func (t *Tensor) IsScalar() bool { return t.Rank() == 0 }

// At returns the element at the given N-D index (0-based per axis).
func (t *Tensor) At(idx []int) (float64, error) {
	off, err := t.offset(idx)
	if err != nil {
		return 0, err
	}
	return t.data[off], nil
}

func (t *Tensor) offset(idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, fmt.Errorf("index rank %d does not match tensor rank %d", len(idx), len(t.shape))
	}
	strides := RowMajorStrides(t.shape)
	off := 0
	for i, c := range idx {
		if c < 0 || c >= t.shape[i] {
			return 0, fmt.Errorf("index %d out of range [0,%d) on axis %d", c, t.shape[i], i)
		}
		off += c * strides[i]
	}
	return off, nil
}

// Set returns a new tensor with the element at idx replaced by v.
func (t *Tensor) Set(idx []int, v float64) (*Tensor, error) {
	off, err := t.offset(idx)
	if err != nil {
		return nil, err
	}
	nd := make([]float64, len(t.data))
	copy(nd, t.data)
	nd[off] = v
	return &Tensor{shape: t.shape.Clone(), data: nd}, nil
}

// Reshape returns a new tensor viewing the same elements under a
// different shape of equal size.
func (t *Tensor) Reshape(shape Shape) (*Tensor, error) {
	if shape.Size() != len(t.data) {
		return nil, fmt.Errorf("reshape: size %d does not match new shape %v (size %d)", len(t.data), []int(shape), shape.Size())
	}
	nd := make([]float64, len(t.data))
	copy(nd, t.data)
	return &Tensor{shape: shape.Clone(), data: nd}, nil
}

// Transpose reverses the axes of a rank-2 tensor. Non-rank-2 tensors
// are a ShapeError at the caller.
func (t *Tensor) Transpose() (*Tensor, error) {
	if t.Rank() != 2 {
		return nil, fmt.Errorf("transpose requires rank-2 tensor, got rank %d", t.Rank())
	}
	rows, cols := t.shape[0], t.shape[1]
	out := make([]float64, len(t.data))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = t.data[r*cols+c]
		}
	}
	return New(out, Shape{cols, rows}), nil
}

// Scale multiplies every element by a scalar.
func (t *Tensor) Scale(s float64) *Tensor {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = v * s
	}
	return &Tensor{shape: t.shape.Clone(), data: out}
}

// Slice extracts a contiguous range along axis 0 (1-D/rows), with
// 0-based, end-exclusive bounds — the evaluator translates SOC's
// range-expression indexing (§4.2 `index_args`) into these bounds.
func (t *Tensor) Slice(start, end int) (*Tensor, error) {
	if t.Rank() == 0 {
		return nil, fmt.Errorf("cannot slice a scalar")
	}
	n := t.shape[0]
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	rowSize := 1
	for _, d := range t.shape[1:] {
		rowSize *= d
	}
	out := make([]float64, (end-start)*rowSize)
	copy(out, t.data[start*rowSize:end*rowSize])
	newShape := append(Shape{end - start}, t.shape[1:]...)
	return New(out, newShape), nil
}

func (t *Tensor) Equal(o *Tensor) bool {
	if !t.shape.Equal(o.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (t *Tensor) String() string {
	return formatNested(t.shape, t.data)
}

func formatNested(shape Shape, data []float64) string {
	if len(shape) == 0 {
		return trimFloat(data[0])
	}
	if len(shape) == 1 {
		parts := make([]string, len(data))
		for i, v := range data {
			parts[i] = trimFloat(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	rowSize := 1
	for _, d := range shape[1:] {
		rowSize *= d
	}
	parts := make([]string, shape[0])
	for i := 0; i < shape[0]; i++ {
		parts[i] = formatNested(shape[1:], data[i*rowSize:(i+1)*rowSize])
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
