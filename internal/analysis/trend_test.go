package analysis

import (
	"math"
	"testing"
)

func TestSeriesStats(t *testing.T) {
	mean, std := SeriesStats([]float64{1, 2, 3})
	if math.Abs(mean-2) > 1e-12 {
		t.Errorf("mean = %f, want 2", mean)
	}
	if math.Abs(std-1) > 1e-12 {
		t.Errorf("std = %f, want 1", std)
	}
}

func TestSeriesStatsEmpty(t *testing.T) {
	mean, std := SeriesStats(nil)
	if mean != 0 || std != 0 {
		t.Errorf("empty series stats = (%f, %f), want zeros", mean, std)
	}
}

func TestTrendRecoversLine(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	xs := make([]float64, len(times))
	for i, tt := range times {
		xs[i] = 2*tt + 1
	}

	alpha, beta := Trend(times, xs)
	if math.Abs(alpha-1) > 1e-9 || math.Abs(beta-2) > 1e-9 {
		t.Errorf("fit = (%f, %f), want (1, 2)", alpha, beta)
	}
}

func TestTrendDegenerateInput(t *testing.T) {
	if a, b := Trend([]float64{1}, []float64{5}); a != 0 || b != 0 {
		t.Errorf("single point fit = (%f, %f), want zeros", a, b)
	}
	if a, b := Trend([]float64{1, 2}, []float64{5}); a != 0 || b != 0 {
		t.Errorf("mismatched lengths fit = (%f, %f), want zeros", a, b)
	}
}

func TestEquilibrationTime(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}

	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"settles and stays", []float64{0.1, 0.3, 0.48, 0.5, 0.51}, 2},
		{"leaves the band again", []float64{0.5, 0.5, 0.9, 0.5, 0.5}, 3},
		{"never settles", []float64{0.9, 0.9, 0.9, 0.9, 0.9}, -1},
		{"settled from the start", []float64{0.5, 0.5, 0.5, 0.5, 0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquilibrationTime(times, tt.xs, 0.5, 0.05)
			if got != tt.want {
				t.Errorf("EquilibrationTime = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPowerSpectrum(t *testing.T) {
	// constant series: all energy in the DC bin
	ps := PowerSpectrum([]float64{1, 1, 1, 1})
	if len(ps) != 3 { // real FFT of n=4 yields n/2+1 coefficients
		t.Fatalf("got %d coefficients, want 3", len(ps))
	}
	if math.Abs(ps[0]-4) > 1e-9 {
		t.Errorf("DC magnitude = %f, want 4", ps[0])
	}
	for i, v := range ps[1:] {
		if v > 1e-9 {
			t.Errorf("bin %d magnitude = %f, want ~0 for a constant series", i+1, v)
		}
	}
}

func TestPowerSpectrumPadsToPowerOfTwo(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 5)) // padded to 8
	if len(ps) != 5 {                       // 8/2+1
		t.Errorf("got %d coefficients, want 5", len(ps))
	}
}

func TestPowerSpectrumEmpty(t *testing.T) {
	if ps := PowerSpectrum(nil); ps != nil {
		t.Errorf("expected nil for empty input, got %v", ps)
	}
}
