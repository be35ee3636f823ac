// Package osmo provides core primitives for the membrane transport
// simulation.
//
// The package defines the fundamental types shared by the stepping engine
// and its observers:
//
//   - [Vec3]: 3D vector, world coordinates relative to the cell center
//   - [Particle]: one slot in the particle arena
//   - [Pool]: fixed-capacity, index-addressed particle arena
//   - [Params]: membrane radius, concentration gradient, temperature
//   - [CrossingEvent]: a particle passing through the membrane
//   - [RateSample], [Occupancy]: windowed observables
//
// # Thread Safety
//
// A Pool is owned by exactly one stepping engine; steps and parameter
// changes must be applied serially, never concurrently.
package osmo
