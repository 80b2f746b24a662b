// Package dsp wires SOC's `dsp` module to gonum's discrete Fourier
// transform (gonum.org/v1/gonum/dsp/fourier).
package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT returns the complex spectrum of a real-valued signal.
func FFT(signal []float64) []complex128 {
	fft := fourier.NewFFT(len(signal))
	return fft.Coefficients(nil, signal)
}

// IFFT reconstructs a real-valued signal from its complex spectrum.
func IFFT(spectrum []complex128, n int) []float64 {
	fft := fourier.NewFFT(n)
	return fft.Sequence(nil, spectrum)
}

// Magnitude returns |z| for each bin of an FFT result.
func Magnitude(spectrum []complex128) []float64 {
	out := make([]float64, len(spectrum))
	for i, z := range spectrum {
		out[i] = cmplx.Abs(z)
	}
	return out
}
