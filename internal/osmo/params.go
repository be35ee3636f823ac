package osmo

// Simulation-side clamp ranges. The analytic flux layer carries its own,
// tighter UI-facing ranges; the two are deliberately independent.
const (
	RadiusMinUm = 1.0
	RadiusMaxUm = 200.0

	GradientMin = 0.0
	GradientMax = 1.0

	TempMinC = -10.0
	TempMaxC = 80.0
)

// Params is the externally owned parameter snapshot. It is read-only to
// the engine within a step; changes apply between steps only.
type Params struct {
	RadiusUm     float64
	Gradient     float64
	TemperatureC float64
}

func DefaultParams() Params {
	return Params{
		RadiusUm:     12.0,
		Gradient:     0.5,
		TemperatureC: 25.0,
	}
}

// Clamped normalizes every field into its valid simulation range.
// Out-of-range inputs are silently clamped, never rejected.
func (p Params) Clamped() Params {
	return Params{
		RadiusUm:     clamp(p.RadiusUm, RadiusMinUm, RadiusMaxUm),
		Gradient:     clamp(p.Gradient, GradientMin, GradientMax),
		TemperatureC: clamp(p.TemperatureC, TempMinC, TempMaxC),
	}
}

// TempNorm maps the clamped temperature onto [0, 1].
func (p Params) TempNorm() float64 {
	t := clamp(p.TemperatureC, TempMinC, TempMaxC)
	return (t - TempMinC) / (TempMaxC - TempMinC)
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
