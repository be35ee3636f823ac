package osmo

// ParkDistance is where inactive slots are moved, far outside any
// plausible scene radius. Parked slots keep their storage so activating
// them later never allocates.
const ParkDistance = 1e6

// Pool is a fixed-capacity particle arena. Slots are addressed by index;
// indices below Active() are simulated, the rest are parked. The backing
// array is allocated once and mutated in place.
type Pool struct {
	particles []Particle
	active    int
}

func NewPool(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	p := &Pool{particles: make([]Particle, capacity)}
	for i := range p.particles {
		p.Park(i)
	}
	return p
}

func (p *Pool) Capacity() int { return len(p.particles) }
func (p *Pool) Active() int   { return p.active }

// SetActive resizes the active prefix, clamped to [0, capacity].
func (p *Pool) SetActive(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(p.particles) {
		n = len(p.particles)
	}
	p.active = n
}

// At returns the slot at index i for in-place mutation.
func (p *Pool) At(i int) *Particle {
	return &p.particles[i]
}

// ActiveParticles returns the simulated prefix of the backing array.
// Callers outside the engine must treat it as read-only.
func (p *Pool) ActiveParticles() []Particle {
	return p.particles[:p.active]
}

// Park moves slot i far from the scene with zero velocity and flags it
// outside, so a later reactivation cannot register a spurious enter.
func (p *Pool) Park(i int) {
	p.particles[i] = Particle{
		Pos:     Vec3{X: ParkDistance},
		Outside: true,
	}
}

// Occupancy counts active particles by membrane-side flag.
func (p *Pool) Occupancy() Occupancy {
	var occ Occupancy
	for i := 0; i < p.active; i++ {
		if p.particles[i].Outside {
			occ.Outside++
		} else {
			occ.Inside++
		}
	}
	return occ
}
