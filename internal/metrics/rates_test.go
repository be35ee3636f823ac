package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/membrane/internal/osmo"
)

func TestAggregatorEmitsOnWindowBoundary(t *testing.T) {
	agg := NewRateAggregator(1.0)

	var samples []osmo.RateSample
	var occs []osmo.Occupancy
	agg.OnRates(func(s osmo.RateSample) { samples = append(samples, s) })
	agg.OnOccupancy(func(o osmo.Occupancy) { occs = append(occs, o) })

	// deltas of 0.25 are exactly representable, so four of them close
	// the 1s window without accumulation error
	occ := osmo.Occupancy{Inside: 10, Outside: 5}
	for i := 0; i < 3; i++ {
		agg.RecordEnter()
		agg.RecordEnter()
		agg.RecordEnter()
		agg.Advance(0.25, occ)
	}
	if len(samples) != 0 {
		t.Fatalf("window emitted early: %d samples", len(samples))
	}

	agg.RecordEnter()
	agg.RecordExit()
	agg.Advance(0.25, occ) // elapsed reaches 1.0

	if len(samples) != 1 || len(occs) != 1 {
		t.Fatalf("expected one sample and one occupancy, got %d / %d", len(samples), len(occs))
	}
	if math.Abs(samples[0].InRate-10) > 1e-9 || math.Abs(samples[0].OutRate-1) > 1e-9 {
		t.Errorf("rates = %+v, want 10 in / 1 out per second", samples[0])
	}
	if occs[0] != occ {
		t.Errorf("occupancy snapshot = %+v, want %+v", occs[0], occ)
	}

	enters, exits, elapsed := agg.Pending()
	if enters != 0 || exits != 0 || elapsed != 0 {
		t.Errorf("counters not reset after emission: (%d, %d, %f)", enters, exits, elapsed)
	}
}

func TestAggregatorZeroDeltaNeverCloses(t *testing.T) {
	agg := NewRateAggregator(0.5)
	fired := false
	agg.OnRates(func(osmo.RateSample) { fired = true })

	agg.Advance(0.5, osmo.Occupancy{}) // closes the first window
	fired = false

	agg.RecordEnter()
	for i := 0; i < 100; i++ {
		agg.Advance(0, osmo.Occupancy{})
	}
	if fired {
		t.Error("zero delta closed a window")
	}
	if enters, _, _ := agg.Pending(); enters != 1 {
		t.Errorf("pending enters = %d, want 1", enters)
	}
}

func TestAggregatorQuietWindowEmitsZeroRates(t *testing.T) {
	agg := NewRateAggregator(1.0)
	var got osmo.RateSample
	fired := false
	agg.OnRates(func(s osmo.RateSample) { got, fired = s, true })

	agg.Advance(1.0, osmo.Occupancy{})

	if !fired {
		t.Fatal("quiet window did not emit")
	}
	if got.InRate != 0 || got.OutRate != 0 {
		t.Errorf("quiet window rates = %+v, want zeros", got)
	}
}

func TestNewRateAggregatorDefaultWindow(t *testing.T) {
	if w := NewRateAggregator(-2).Window(); w != DefaultWindow {
		t.Errorf("window = %f, want default %f", w, DefaultWindow)
	}
}

func TestAggregatorReset(t *testing.T) {
	agg := NewRateAggregator(1.0)
	agg.RecordEnter()
	agg.RecordExit()
	agg.Advance(0.4, osmo.Occupancy{})

	agg.Reset()

	if enters, exits, elapsed := agg.Pending(); enters != 0 || exits != 0 || elapsed != 0 {
		t.Errorf("reset left pending state: (%d, %d, %f)", enters, exits, elapsed)
	}
}
