package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/membrane/internal/osmo"
)

func TestNetFluxMean(t *testing.T) {
	m := NewNetFlux()
	if m.Value() != 0 {
		t.Errorf("value before any sample = %f, want 0", m.Value())
	}

	m.Observe(osmo.RateSample{InRate: 5, OutRate: 2}, osmo.Occupancy{})
	m.Observe(osmo.RateSample{InRate: 1, OutRate: 2}, osmo.Occupancy{})

	if got := m.Value(); math.Abs(got-1) > 1e-12 {
		t.Errorf("net flux = %f, want 1 (mean of +3 and -1)", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset = %f, want 0", m.Value())
	}
}

func TestPeakRateTracksBothDirections(t *testing.T) {
	m := NewPeakRate()
	m.Observe(osmo.RateSample{InRate: 3, OutRate: 7}, osmo.Occupancy{})
	m.Observe(osmo.RateSample{InRate: 5, OutRate: 1}, osmo.Occupancy{})

	if got := m.Value(); got != 7 {
		t.Errorf("peak = %f, want 7", got)
	}
}

func TestInsideFractionKeepsLastWindow(t *testing.T) {
	m := NewInsideFraction()
	m.Observe(osmo.RateSample{}, osmo.Occupancy{Inside: 1, Outside: 3})
	m.Observe(osmo.RateSample{}, osmo.Occupancy{Inside: 3, Outside: 1})

	if got := m.Value(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("inside fraction = %f, want 0.75 from last window", got)
	}
}
