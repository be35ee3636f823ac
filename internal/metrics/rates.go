// Package metrics aggregates crossing events into windowed rate and
// occupancy observables.
package metrics

import "github.com/san-kum/membrane/internal/osmo"

const (
	// DefaultWindow is the sampling window in simulated seconds.
	DefaultWindow = 1.0

	// minElapsed guards the rate division when a window closes with a
	// pathologically small elapsed time.
	minElapsed = 1e-9
)

// RateAggregator counts enter/exit events over a fixed sampling window
// and emits a rate sample plus an occupancy snapshot each time the
// window elapses. Counters and elapsed time reset after every emission.
type RateAggregator struct {
	window  float64
	elapsed float64
	enters  int
	exits   int

	onRates     func(osmo.RateSample)
	onOccupancy func(osmo.Occupancy)
}

func NewRateAggregator(window float64) *RateAggregator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RateAggregator{window: window}
}

func (a *RateAggregator) OnRates(fn func(osmo.RateSample)) { a.onRates = fn }
func (a *RateAggregator) OnOccupancy(fn func(osmo.Occupancy)) { a.onOccupancy = fn }

func (a *RateAggregator) RecordEnter() { a.enters++ }
func (a *RateAggregator) RecordExit()  { a.exits++ }

// Pending reports the counts and elapsed time accumulated in the
// current, not yet emitted window.
func (a *RateAggregator) Pending() (enters, exits int, elapsed float64) {
	return a.enters, a.exits, a.elapsed
}

func (a *RateAggregator) Window() float64 { return a.window }

// Advance adds delta to the window clock and, when the window is full,
// emits the sample and resets. A zero delta never closes a window.
func (a *RateAggregator) Advance(delta float64, occ osmo.Occupancy) {
	if delta <= 0 {
		return
	}
	a.elapsed += delta
	if a.elapsed < a.window {
		return
	}

	elapsed := a.elapsed
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	sample := osmo.RateSample{
		InRate:  float64(a.enters) / elapsed,
		OutRate: float64(a.exits) / elapsed,
	}

	if a.onOccupancy != nil {
		a.onOccupancy(occ)
	}
	if a.onRates != nil {
		a.onRates(sample)
	}

	a.enters = 0
	a.exits = 0
	a.elapsed = 0
}

// Reset discards the current window without emitting.
func (a *RateAggregator) Reset() {
	a.enters = 0
	a.exits = 0
	a.elapsed = 0
}
