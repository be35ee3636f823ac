package osmo

import "math/rand"

// Rand is the random source injected into the engine. Production wires
// a seeded math/rand source; tests replay fixed sequences.
type Rand interface {
	Float64() float64
}

func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
