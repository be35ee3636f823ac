package engine

import "math"

const (
	// fraction of pool capacity simulated at gradient zero
	minPopulationFrac = 0.35

	// inside-target band; clamped interior so neither side ever empties
	insideFracMin = 0.25
	insideFracMax = 0.75

	// seeding shells, as fractions of the membrane radius
	innerShellFrac = 0.95
	outerShellFrac = 1.05

	seedSpeed = 2.0
)

// ActiveCount maps the gradient onto the simulated population size by
// linear interpolation between the minimum population and capacity.
func ActiveCount(capacity int, gradient float64) int {
	minPop := int(math.Round(float64(capacity) * minPopulationFrac))
	if minPop < 1 {
		minPop = 1
	}
	if minPop > capacity {
		minPop = capacity
	}
	return minPop + int(math.Round(gradient*float64(capacity-minPop)))
}

// InsideTargetFraction maps the gradient onto the target inside share of
// the active population. Monotonic increasing, never 0 or 1.
func InsideTargetFraction(gradient float64) float64 {
	return insideFracMin + (insideFracMax-insideFracMin)*gradient
}

// Reseed redistributes the pool to match the current gradient: the first
// round(activeCount*insideTargetFraction) active slots are seeded inside
// the membrane, the rest outside, each on a fresh shell position with a
// small random velocity. Remaining slots are parked. Target counts are
// deterministic given the gradient; only placement draws on the RNG.
func (e *Engine) Reseed() {
	r := e.params.RadiusUm
	g := e.params.Gradient

	active := ActiveCount(e.pool.Capacity(), g)
	insideCount := int(math.Round(float64(active) * InsideTargetFraction(g)))
	e.pool.SetActive(active)

	for i := 0; i < active; i++ {
		pt := e.pool.At(i)
		inside := i < insideCount

		var radius float64
		if inside {
			radius = randRange(e.rng.Float64(), r*minRadiusFrac, r*innerShellFrac)
		} else {
			radius = randRange(e.rng.Float64(), r*outerShellFrac, r*maxRadiusFrac)
		}
		pt.Pos = e.randomDirection().Scale(radius)
		pt.Vel = e.randomDirection().Scale(e.rng.Float64() * seedSpeed)
		pt.Outside = !inside
	}
	for i := active; i < e.pool.Capacity(); i++ {
		e.pool.Park(i)
	}

	e.seeded = true
	e.agg.Reset()
}

func randRange(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}
