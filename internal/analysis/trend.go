// Package analysis summarizes stored rate and occupancy series.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SeriesStats returns mean and standard deviation of xs.
func SeriesStats(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(xs, nil)
}

// Trend fits xs against times by least squares and returns the
// intercept and slope. A positive slope on the inside fraction means
// the population is still drifting toward its target.
func Trend(times, xs []float64) (alpha, beta float64) {
	if len(times) < 2 || len(times) != len(xs) {
		return 0, 0
	}
	return stat.LinearRegression(times, xs, nil, false)
}

// EquilibrationTime returns the first time after which the series stays
// within tol of target until the end, or -1 if it never settles.
func EquilibrationTime(times, xs []float64, target, tol float64) float64 {
	if len(times) == 0 || len(times) != len(xs) {
		return -1
	}
	settledAt := -1.0
	for i := range xs {
		if math.Abs(xs[i]-target) <= tol {
			if settledAt < 0 {
				settledAt = times[i]
			}
		} else {
			settledAt = -1
		}
	}
	return settledAt
}
