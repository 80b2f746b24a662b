// Package numerical implements SOC's `numerical` module: finite
// differentiation and quadrature by hand (no gonum equivalent fits
// the single-variable signature SOC's evaluator calls these with),
// plus a gonum/mat-backed linear solve for systems too ill-conditioned
// for tensor.Determinant's plain Gaussian elimination.
package numerical

import "gonum.org/v1/gonum/mat"

// Diff approximates f'(x) with a centered finite difference.
func Diff(f func(float64) float64, x float64) float64 {
	const h = 1e-6
	return (f(x+h) - f(x-h)) / (2 * h)
}

// Integrate approximates the definite integral of f over [a, b] using
// composite Simpson's rule with n (even) subintervals.
func Integrate(f func(float64) float64, a, b float64, n int) float64 {
	if n%2 != 0 {
		n++
	}
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 0 {
			sum += 2 * f(x)
		} else {
			sum += 4 * f(x)
		}
	}
	return sum * h / 3
}

// Solve returns x solving A*x = b via gonum's LU decomposition.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	rows := len(a)
	cols := 0
	if rows > 0 {
		cols = len(a[0])
	}
	flat := make([]float64, 0, rows*cols)
	for _, row := range a {
		flat = append(flat, row...)
	}
	A := mat.NewDense(rows, cols, flat)
	B := mat.NewVecDense(len(b), b)
	var X mat.VecDense
	if err := X.SolveVec(A, B); err != nil {
		return nil, err
	}
	out := make([]float64, X.Len())
	for i := range out {
		out[i] = X.AtVec(i)
	}
	return out, nil
}
