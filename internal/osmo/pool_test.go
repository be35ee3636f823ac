package osmo

import "testing"

func TestNewPoolParksEverything(t *testing.T) {
	p := NewPool(8)
	if p.Capacity() != 8 {
		t.Fatalf("expected capacity 8, got %d", p.Capacity())
	}
	if p.Active() != 0 {
		t.Errorf("fresh pool should have no active particles, got %d", p.Active())
	}
	for i := 0; i < p.Capacity(); i++ {
		pt := p.At(i)
		if !pt.Outside {
			t.Errorf("slot %d: parked slot must be flagged outside", i)
		}
		if pt.Pos.X != ParkDistance || (pt.Vel != Vec3{}) {
			t.Errorf("slot %d: not parked: %+v", i, pt)
		}
	}
}

func TestNewPoolMinimumCapacity(t *testing.T) {
	if got := NewPool(0).Capacity(); got != 1 {
		t.Errorf("expected capacity floor of 1, got %d", got)
	}
}

func TestSetActiveClamps(t *testing.T) {
	p := NewPool(10)

	tests := []struct {
		n    int
		want int
	}{
		{5, 5},
		{-3, 0},
		{99, 10},
	}

	for _, tt := range tests {
		p.SetActive(tt.n)
		if p.Active() != tt.want {
			t.Errorf("SetActive(%d): got %d, want %d", tt.n, p.Active(), tt.want)
		}
	}
}

func TestOccupancyCountsActiveOnly(t *testing.T) {
	p := NewPool(6)
	p.SetActive(4)
	for i := 0; i < 4; i++ {
		p.At(i).Outside = i >= 3 // three inside, one outside
	}

	occ := p.Occupancy()
	if occ.Inside != 3 || occ.Outside != 1 {
		t.Errorf("expected 3 inside / 1 outside, got %+v", occ)
	}
}

func TestActiveParticlesLength(t *testing.T) {
	p := NewPool(6)
	p.SetActive(2)
	if got := len(p.ActiveParticles()); got != 2 {
		t.Errorf("expected 2 active particles, got %d", got)
	}
}
