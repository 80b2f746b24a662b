// Package optimization wires SOC's `optimization` module to gonum's
// optimize package (gonum.org/v1/gonum/optimize) for unconstrained
// minimization via Nelder-Mead simplex.
package optimization

import "gonum.org/v1/gonum/optimize"

// Minimize finds a local minimum of f starting from x0 using the
// Nelder-Mead simplex method, returning the argmin and f(argmin).
func Minimize(f func([]float64) float64, x0 []float64) ([]float64, float64, error) {
	problem := optimize.Problem{Func: f}
	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, 0, err
	}
	return result.X, result.F, nil
}
