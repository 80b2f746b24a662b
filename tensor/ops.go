package tensor

import (
	"fmt"
	"math"
)

// broadcastApply applies fn elementwise over a and b after computing
// their broadcast shape (spec.md §4.1 Broadcasting).
func broadcastApply(a, b *Tensor, fn func(x, y float64) float64) (*Tensor, error) {
	outShape, err := BroadcastShape(a.shape, b.shape)
	if err != nil {
		return nil, err
	}
	n := outShape.Size()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		ai := indexFor(i, outShape, a.shape)
		bi := indexFor(i, outShape, b.shape)
		out[i] = fn(a.data[ai], b.data[bi])
	}
	return New(out, outShape), nil
}

// Add, Sub, Div, Pow are always elementwise with broadcasting
// (spec.md §4.1 Matrix semantics: "Operators + - / ^ are always
// elementwise").
func Add(a, b *Tensor) (*Tensor, error) { return broadcastApply(a, b, func(x, y float64) float64 { return x + y }) }
func Sub(a, b *Tensor) (*Tensor, error) { return broadcastApply(a, b, func(x, y float64) float64 { return x - y }) }
func Div(a, b *Tensor) (*Tensor, error) { return broadcastApply(a, b, func(x, y float64) float64 { return x / y }) }
func Pow(a, b *Tensor) (*Tensor, error) { return broadcastApply(a, b, math.Pow) }

// ElementwiseMul is always elementwise; Mul (below) decides whether `*`
// means this or matrix multiplication based on operand rank.
func ElementwiseMul(a, b *Tensor) (*Tensor, error) {
	return broadcastApply(a, b, func(x, y float64) float64 { return x * y })
}

// Mul implements `*`: matrix multiplication when both operands are
// rank-2, elementwise (with broadcasting) otherwise (spec.md §4.1
// Matrix semantics).
func Mul(a, b *Tensor) (*Tensor, error) {
	if a.Rank() == 2 && b.Rank() == 2 {
		return MatMul(a, b)
	}
	return ElementwiseMul(a, b)
}

// MatMul computes (m,k) x (k,n) -> (m,n). Both operands must be rank-2
// with conformant inner dimensions.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, fmt.Errorf("matmul requires rank-2 tensors, got ranks %d and %d", a.Rank(), b.Rank())
	}
	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]
	if k != k2 {
		return nil, fmt.Errorf("matmul conformance mismatch: (%d,%d) x (%d,%d)", m, k, k2, n)
	}
	out := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc float64
			for p := 0; p < k; p++ {
				acc += a.data[i*k+p] * b.data[p*n+j]
			}
			out[i*n+j] = acc
		}
	}
	return New(out, Shape{m, n}), nil
}

// Dot computes the inner product of two rank-1 tensors of equal length.
func Dot(a, b *Tensor) (float64, error) {
	if a.Rank() != 1 || b.Rank() != 1 {
		return 0, fmt.Errorf("dot requires rank-1 tensors")
	}
	if a.shape[0] != b.shape[0] {
		return 0, fmt.Errorf("dot length mismatch: %d vs %d", a.shape[0], b.shape[0])
	}
	var acc float64
	for i := range a.data {
		acc += a.data[i] * b.data[i]
	}
	return acc, nil
}

// Cross computes the 3-D cross product of two rank-1, length-3 tensors.
func Cross(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 1 || b.Rank() != 1 || a.shape[0] != 3 || b.shape[0] != 3 {
		return nil, fmt.Errorf("cross requires two length-3 vectors")
	}
	x := a.data[1]*b.data[2] - a.data[2]*b.data[1]
	y := a.data[2]*b.data[0] - a.data[0]*b.data[2]
	z := a.data[0]*b.data[1] - a.data[1]*b.data[0]
	return New([]float64{x, y, z}, Shape{3}), nil
}

// Norm computes the Euclidean (L2) norm of any-rank tensor, treating
// its buffer as a flat vector.
func Norm(a *Tensor) float64 {
	var acc float64
	for _, v := range a.data {
		acc += v * v
	}
	return math.Sqrt(acc)
}

// Trace sums the diagonal of a square rank-2 tensor.
func Trace(a *Tensor) (float64, error) {
	if a.Rank() != 2 || a.shape[0] != a.shape[1] {
		return 0, fmt.Errorf("trace requires a square matrix")
	}
	n := a.shape[0]
	var acc float64
	for i := 0; i < n; i++ {
		acc += a.data[i*n+i]
	}
	return acc, nil
}

// Determinant computes the determinant of a square rank-2 tensor via
// Gaussian elimination with partial pivoting (LU-style), grounded on
// the same pivoting strategy gonum.org/v1/gonum/mat.LU uses internally
// for the tensor engine's own small-matrix fast path; larger or
// ill-conditioned systems route through kernels/numerical, which calls
// into gonum/mat directly (see DESIGN.md).
func Determinant(a *Tensor) (float64, error) {
	if a.Rank() != 2 || a.shape[0] != a.shape[1] {
		return 0, fmt.Errorf("determinant requires a square matrix")
	}
	n := a.shape[0]
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n)
		copy(m[i], a.data[i*n:(i+1)*n])
	}
	det := 1.0
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if m[pivot][col] == 0 {
			return 0, nil
		}
		if pivot != col {
			m[pivot], m[col] = m[col], m[pivot]
			det = -det
		}
		det *= m[col][col]
		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c < n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}
	return det, nil
}
