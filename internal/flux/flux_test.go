package flux

import "testing"

func TestClampInputs(t *testing.T) {
	tests := []struct {
		name    string
		r, g, c float64
		wantR   float64
		wantG   float64
		wantC   float64
	}{
		{"in range", 12, 0.5, 25, 12, 0.5, 25},
		{"below", 1, -0.2, -5, RadiusMinUm, GradientMin, TempMinC},
		{"above", 99, 2, 150, RadiusMaxUm, GradientMax, TempMaxC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, c := ClampInputs(tt.r, tt.g, tt.c)
			if r != tt.wantR || g != tt.wantG || c != tt.wantC {
				t.Errorf("got (%f, %f, %f), want (%f, %f, %f)", r, g, c, tt.wantR, tt.wantG, tt.wantC)
			}
		})
	}
}

func TestSurfaceRateGrowsWithRadius(t *testing.T) {
	f := NewSurfaceRate()
	small := f.Rate(6, 0.5, 25)
	large := f.Rate(24, 0.5, 25)
	if large <= small {
		t.Errorf("surface rate should grow with radius: %f <= %f", large, small)
	}
	// 4x radius means 16x area at fixed gradient and temperature
	if got := large / small; got < 15.9 || got > 16.1 {
		t.Errorf("area scaling ratio = %f, want ~16", got)
	}
}

func TestRelaxationRateShrinksWithRadius(t *testing.T) {
	f := NewRelaxationRate()
	small := f.Rate(6, 0.5, 25)
	large := f.Rate(24, 0.5, 25)
	if large >= small {
		t.Errorf("relaxation rate should shrink with radius: %f >= %f", large, small)
	}
}

func TestFormulasIncreaseWithGradientAndTemperature(t *testing.T) {
	formulas := []Formula{NewSurfaceRate(), NewRelaxationRate()}
	for _, f := range formulas {
		if f.Rate(12, 0.8, 25) <= f.Rate(12, 0.2, 25) {
			t.Errorf("%s: rate not increasing with gradient", f.Name())
		}
		if f.Rate(12, 0.5, 50) <= f.Rate(12, 0.5, 10) {
			t.Errorf("%s: rate not increasing with temperature", f.Name())
		}
	}
}

func TestZeroGradientMeansZeroRate(t *testing.T) {
	formulas := []Formula{NewSurfaceRate(), NewRelaxationRate()}
	for _, f := range formulas {
		if got := f.Rate(12, 0, 25); got != 0 {
			t.Errorf("%s: rate at zero gradient = %f, want 0", f.Name(), got)
		}
	}
}
