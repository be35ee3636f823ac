package metrics

import (
	"math"

	"github.com/san-kum/membrane/internal/osmo"
)

// Metric observes emitted window samples and reduces them to a single
// value reported at the end of a run.
type Metric interface {
	Name() string
	Observe(s osmo.RateSample, occ osmo.Occupancy)
	Value() float64
	Reset()
}

// NetFlux reports the mean inward-minus-outward rate across windows.
// Positive values mean net transport into the cell.
type NetFlux struct {
	sum     float64
	samples int
}

func NewNetFlux() *NetFlux { return &NetFlux{} }

func (m *NetFlux) Name() string { return "net_flux" }

func (m *NetFlux) Observe(s osmo.RateSample, occ osmo.Occupancy) {
	m.sum += s.InRate - s.OutRate
	m.samples++
}

func (m *NetFlux) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *NetFlux) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakRate reports the largest single-direction rate seen in any window.
type PeakRate struct {
	peak float64
}

func NewPeakRate() *PeakRate { return &PeakRate{} }

func (m *PeakRate) Name() string { return "peak_rate" }

func (m *PeakRate) Observe(s osmo.RateSample, occ osmo.Occupancy) {
	m.peak = math.Max(m.peak, math.Max(s.InRate, s.OutRate))
}

func (m *PeakRate) Value() float64 { return m.peak }

func (m *PeakRate) Reset() { m.peak = 0 }

// InsideFraction reports the inside share of the active population at
// the last emitted window.
type InsideFraction struct {
	frac float64
}

func NewInsideFraction() *InsideFraction { return &InsideFraction{} }

func (m *InsideFraction) Name() string { return "inside_fraction" }

func (m *InsideFraction) Observe(s osmo.RateSample, occ osmo.Occupancy) {
	m.frac = occ.InsideFraction()
}

func (m *InsideFraction) Value() float64 { return m.frac }

func (m *InsideFraction) Reset() { m.frac = 0 }
