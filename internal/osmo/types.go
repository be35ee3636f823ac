package osmo

import "math"

// normEps is the floor used when normalizing near-zero vectors.
const normEps = 1e-9

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector along v. Near-zero vectors are
// normalized against an epsilon floor instead of dividing by zero.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n < normEps {
		n = normEps
	}
	return v.Scale(1 / n)
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Particle is one slot in the pool. Outside is the authoritative record
// of the particle's last-known membrane side; the engine compares it
// against the post-step position to detect genuine crossings.
type Particle struct {
	Pos     Vec3
	Vel     Vec3
	Outside bool
}

type CrossingKind int

const (
	Enter CrossingKind = iota // outside -> inside
	Exit                      // inside -> outside
)

func (k CrossingKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// CrossingEvent records a genuine membrane crossing. Pos is snapped to
// the membrane surface along the particle's radial direction; Normal is
// the outward surface normal at that point. Age is advanced by the
// engine each step until the event expires.
type CrossingEvent struct {
	Kind   CrossingKind
	Pos    Vec3
	Normal Vec3
	Age    float64
}

// RateSample is one windowed crossing-rate estimate in crossings per
// second of simulated time.
type RateSample struct {
	InRate  float64
	OutRate float64
}

// Occupancy counts active particles per membrane side at the moment a
// sampling window closes.
type Occupancy struct {
	Inside  int
	Outside int
}

// InsideFraction returns the inside share of the active population,
// or 0 when the pool is empty.
func (o Occupancy) InsideFraction() float64 {
	total := o.Inside + o.Outside
	if total == 0 {
		return 0
	}
	return float64(o.Inside) / float64(total)
}
