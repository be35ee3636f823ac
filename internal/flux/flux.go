// Package flux holds the closed-form diffusion-rate formulas paired
// with the particle simulation by the UI readouts. Two variants coexist
// by design; the particle engine's bias constants are independent of
// both, so neither is authoritative for the stepping behavior.
package flux

import "math"

// UI-facing clamp ranges. These are tighter than the simulation clamps
// in the osmo package and are kept separate on purpose: the slider layer
// and the engine layer normalize independently.
const (
	RadiusMinUm = 4.0
	RadiusMaxUm = 30.0

	TempMinC = 0.0
	TempMaxC = 60.0

	GradientMin = 0.0
	GradientMax = 1.0
)

// ClampInputs normalizes formula inputs into their UI-facing ranges.
func ClampInputs(radiusUm, gradient, tempC float64) (float64, float64, float64) {
	return clamp(radiusUm, RadiusMinUm, RadiusMaxUm),
		clamp(gradient, GradientMin, GradientMax),
		clamp(tempC, TempMinC, TempMaxC)
}

// Formula is one analytic estimate of the net diffusion rate.
type Formula interface {
	Name() string
	Rate(radiusUm, gradient, tempC float64) float64
}

// tempFactor is the same bounded linear speed multiplier the particle
// engine uses, mapped over the UI temperature range.
func tempFactor(tempC float64) float64 {
	t := (tempC - TempMinC) / (TempMaxC - TempMinC)
	return 0.6 + 1.8*t
}

// SurfaceRate models exchange proportional to membrane surface area:
// rate = P * 4πr² * gradient, temperature-scaled.
type SurfaceRate struct {
	Permeability float64
}

func NewSurfaceRate() *SurfaceRate {
	return &SurfaceRate{Permeability: 0.05}
}

func (f *SurfaceRate) Name() string { return "surface" }

func (f *SurfaceRate) Rate(radiusUm, gradient, tempC float64) float64 {
	r, g, t := ClampInputs(radiusUm, gradient, tempC)
	return f.Permeability * 4 * math.Pi * r * r * g * tempFactor(t)
}

// RelaxationRate models two-compartment equilibration: the rate constant
// is the surface-to-volume ratio times permeability, k = 3P/r, so larger
// cells relax slower.
type RelaxationRate struct {
	Permeability float64
}

func NewRelaxationRate() *RelaxationRate {
	return &RelaxationRate{Permeability: 1.2}
}

func (f *RelaxationRate) Name() string { return "relaxation" }

func (f *RelaxationRate) Rate(radiusUm, gradient, tempC float64) float64 {
	r, g, t := ClampInputs(radiusUm, gradient, tempC)
	return 3 * f.Permeability / r * g * tempFactor(t)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
