package osmo

import (
	"math"
	"testing"
)

func TestParamsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"in range", Params{12, 0.5, 25}, Params{12, 0.5, 25}},
		{"radius low", Params{0.2, 0.5, 25}, Params{1, 0.5, 25}},
		{"radius high", Params{999, 0.5, 25}, Params{200, 0.5, 25}},
		{"gradient low", Params{12, -3, 25}, Params{12, 0, 25}},
		{"gradient high", Params{12, 1.7, 25}, Params{12, 1, 25}},
		{"temp low", Params{12, 0.5, -40}, Params{12, 0.5, -10}},
		{"temp high", Params{12, 0.5, 200}, Params{12, 0.5, 80}},
		{"all out of range", Params{-5, 9, 999}, Params{1, 1, 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamped()
			if got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTempNorm(t *testing.T) {
	tests := []struct {
		temp float64
		want float64
	}{
		{TempMinC, 0},
		{TempMaxC, 1},
		{35, 0.5},
		{-100, 0}, // clamped before normalizing
		{500, 1},
	}

	for _, tt := range tests {
		p := Params{RadiusUm: 12, TemperatureC: tt.temp}
		if got := p.TempNorm(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("TempNorm(%.1f) = %f, want %f", tt.temp, got, tt.want)
		}
	}
}
