// Package engine advances the particle population one frame at a time:
// biased random walk, stochastic membrane crossing, crossing detection,
// and reseeding on parameter changes.
package engine

import (
	"fmt"
	"math"

	"github.com/san-kum/membrane/internal/events"
	"github.com/san-kum/membrane/internal/metrics"
	"github.com/san-kum/membrane/internal/osmo"
)

// Motion constants. Units are intentionally approximate; these were
// tuned for visual plausibility, not physical accuracy.
const (
	baseAccel     = 30.0
	baseMove      = 1.0
	dampingPerSec = 0.12 // velocity fraction surviving one second
	refRadiusUm   = 12.0

	speedFactorMin = 0.6
	speedFactorMax = 2.4

	// soft radial containment, as fractions of the membrane radius
	minRadiusFrac = 0.05
	maxRadiusFrac = 2.4

	// fraction of R kept between a reflected particle and the surface
	boundaryPad = 1e-3

	// ratio of the outer containment volume to the membrane interior.
	// A mixed population attempts entries this much less often than
	// exits, so the inward rate constant is scaled up to match.
	shellVolumeRatio = (maxRadiusFrac*maxRadiusFrac*maxRadiusFrac - 1) /
		(1 - minRadiusFrac*minRadiusFrac*minRadiusFrac)

	// occupancy feedback on the crossing rates, bounded so neither
	// direction ever shuts off
	pressureGain = 16.0
	pressureMax  = 20.0
)

// Engine owns one particle pool for the duration of each step. Steps and
// parameter changes must be applied serially; the engine has no internal
// clock or goroutines, the host supplies delta explicitly.
type Engine struct {
	pool   *osmo.Pool
	params osmo.Params
	perm   Permeability
	rng    osmo.Rand
	queue  *events.Queue
	agg    *metrics.RateAggregator
	time   float64
	seeded bool
}

func New(pool *osmo.Pool, perm Permeability, rng osmo.Rand, window float64) *Engine {
	return &Engine{
		pool:   pool,
		params: osmo.DefaultParams(),
		perm:   perm,
		rng:    rng,
		queue:  events.NewQueue(events.DefaultCapacity, events.DefaultTTL),
		agg:    metrics.NewRateAggregator(window),
	}
}

func (e *Engine) Pool() *osmo.Pool { return e.pool }
func (e *Engine) Params() osmo.Params { return e.params }
func (e *Engine) Events() *events.Queue { return e.queue }
func (e *Engine) Rates() *metrics.RateAggregator { return e.agg }
func (e *Engine) Permeability() Permeability { return e.perm }
func (e *Engine) Time() float64 { return e.time }

// Configure clamps and applies a parameter snapshot between steps. A
// gradient or radius change invalidates the current population split and
// triggers a reseed; the first call always seeds.
func (e *Engine) Configure(p osmo.Params) {
	p = p.Clamped()
	changed := !e.seeded ||
		p.Gradient != e.params.Gradient ||
		p.RadiusUm != e.params.RadiusUm
	e.params = p
	if changed {
		e.Reseed()
	}
}

// Step advances every active particle exactly once by delta seconds.
// A non-positive delta is a strict no-op: positions, velocities, side
// flags, event ages and window counters all stay untouched.
func (e *Engine) Step(delta float64) {
	if delta <= 0 {
		return
	}

	p := e.params
	r := p.RadiusUm
	speed := speedFactorMin + (speedFactorMax-speedFactorMin)*p.TempNorm()
	radiusFactor := refRadiusUm / r
	accel := baseAccel * speed * radiusFactor
	moveScale := baseMove * speed * radiusFactor
	damp := math.Pow(dampingPerSec, delta)

	// regime rates, corrected for the attempt-rate asymmetry between the
	// interior and the outer shell and for the gap between the current
	// and target inside fraction; the stationary occupancy sits at
	// InsideTargetFraction(gradient)
	kEnter, kExit := e.perm.Rates(p.Gradient)
	press := occupancyPressure(
		InsideTargetFraction(p.Gradient),
		e.pool.Occupancy().InsideFraction(),
	)
	kEnter *= shellVolumeRatio * press
	kExit /= press

	for i := 0; i < e.pool.Active(); i++ {
		pt := e.pool.At(i)
		dist0 := pt.Pos.Norm()

		// impulse scales with delta so the walk is frame-rate neutral
		pt.Vel = pt.Vel.Add(e.randomDirection().Scale(accel * delta))
		pt.Vel = pt.Vel.Scale(damp)
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(delta * moveScale))

		dist1 := pt.Pos.Norm()
		switch {
		case dist0 < r && dist1 >= r:
			if e.rng.Float64() > CrossProbability(kExit, delta) {
				reflect(pt, r, dist1, true)
			}
		case dist0 >= r && dist1 < r:
			if e.rng.Float64() > CrossProbability(kEnter, delta) {
				reflect(pt, r, dist1, false)
			}
		}

		clampRadial(pt, r)
		e.detectCrossing(pt, r)
	}

	e.time += delta
	e.queue.Advance(delta)
	e.agg.Advance(delta, e.pool.Occupancy())
}

// detectCrossing compares the finalized position against the stored side
// flag and emits an event on a genuine side change. Runs exactly once
// per particle per step; a rejected crossing never reaches this point on
// the wrong side, so reflections produce no events.
func (e *Engine) detectCrossing(pt *osmo.Particle, r float64) {
	outside := pt.Pos.Norm() >= r
	if outside == pt.Outside {
		return
	}

	n := pt.Pos.Normalized()
	kind := osmo.Enter
	if outside {
		kind = osmo.Exit
		e.agg.RecordExit()
	} else {
		e.agg.RecordEnter()
	}
	e.queue.Push(osmo.CrossingEvent{Kind: kind, Pos: n.Scale(r), Normal: n})
	pt.Outside = outside
}

// reflect resolves a rejected crossing: the radial overshoot is mirrored
// back across the membrane and the radial velocity component inverted,
// leaving the particle strictly on its pre-step side. Specular
// reflection avoids the stuck boundary oscillation a plain position
// reset would cause.
func reflect(pt *osmo.Particle, r, dist float64, stayInside bool) {
	n := pt.Pos.Normalized()
	target := 2*r - dist
	pad := r * boundaryPad
	if stayInside {
		if target > r-pad {
			target = r - pad
		}
		if target < r*minRadiusFrac {
			target = r * minRadiusFrac
		}
	} else {
		if target < r+pad {
			target = r + pad
		}
		if target > r*maxRadiusFrac {
			target = r * maxRadiusFrac
		}
	}
	pt.Pos = n.Scale(target)

	vr := pt.Vel.Dot(n)
	pt.Vel = pt.Vel.Sub(n.Scale(2 * vr))
}

// clampRadial keeps |pos| within the soft containment band. This is a
// visual bound, not a physical one; it never moves a particle across
// the membrane because the band straddles R on both sides.
func clampRadial(pt *osmo.Particle, r float64) {
	lo, hi := r*minRadiusFrac, r*maxRadiusFrac
	dist := pt.Pos.Norm()
	if dist >= lo && dist <= hi {
		return
	}
	n := pt.Pos.Normalized()
	if dist < 1e-9 {
		n = osmo.Vec3{X: 1}
	}
	if dist < lo {
		pt.Pos = n.Scale(lo)
	} else {
		pt.Pos = n.Scale(hi)
	}
}

// occupancyPressure maps the deficit between the target and current
// inside fraction onto a bounded multiplier. The engine applies it to
// the inward rate and its inverse to the outward rate; at the clamp
// limits both directions remain strictly positive.
func occupancyPressure(target, current float64) float64 {
	press := math.Exp(pressureGain * (target - current))
	if press > pressureMax {
		return pressureMax
	}
	if press < 1/pressureMax {
		return 1 / pressureMax
	}
	return press
}

// randomDirection samples a uniform point on the unit sphere.
func (e *Engine) randomDirection() osmo.Vec3 {
	z := 2*e.rng.Float64() - 1
	phi := 2 * math.Pi * e.rng.Float64()
	s := math.Sqrt(1 - z*z)
	return osmo.Vec3{X: s * math.Cos(phi), Y: s * math.Sin(phi), Z: z}
}

// CheckInvariant verifies that every active particle's side flag matches
// its position and that all state is finite. Intended for tests and
// debug assertions; a violation silently corrupts crossing counts.
func (e *Engine) CheckInvariant() error {
	r := e.params.RadiusUm
	for i := 0; i < e.pool.Active(); i++ {
		pt := e.pool.At(i)
		if !pt.Pos.IsValid() || !pt.Vel.IsValid() {
			return fmt.Errorf("particle %d: %w", i, osmo.ErrNonFinite)
		}
		if pt.Outside != (pt.Pos.Norm() >= r) {
			return fmt.Errorf("particle %d: %w", i, osmo.ErrSideDesync)
		}
	}
	return nil
}
