package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PowerSpectrum returns the magnitude spectrum of xs, zero-padded to
// the next power of two. Useful for spotting periodic structure in a
// run's crossing-rate series.
func PowerSpectrum(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}

	n := 1
	for n < len(xs) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, xs)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, padded)

	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}
