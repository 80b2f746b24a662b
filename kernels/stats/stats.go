// Package stats wires SOC's `stats` module to gonum's stat package
// (gonum.org/v1/gonum/stat), grounded on the numeric-kernel pattern
// used throughout the retrieval pack's scientific-computing repos.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

func Mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

func Variance(xs []float64) float64 {
	return stat.Variance(xs, nil)
}

func StdDev(xs []float64) float64 {
	return stat.StdDev(xs, nil)
}

func Median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// Mode returns the most frequent value, breaking ties by the smallest
// value (stat.Mode requires sorted, weighted, unique input).
func Mode(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	counts := make([]float64, 0, len(sorted))
	values := make([]float64, 0, len(sorted))
	for _, x := range sorted {
		if len(values) > 0 && values[len(values)-1] == x {
			counts[len(counts)-1]++
			continue
		}
		values = append(values, x)
		counts = append(counts, 1)
	}
	mode, _ := stat.Mode(values, counts)
	return mode
}

func Correlation(xs, ys []float64) float64 {
	return stat.Correlation(xs, ys, nil)
}
