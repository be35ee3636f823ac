package osmo

import "errors"

// Domain errors. Parameter inputs are clamped rather than rejected, so
// these cover only invariant violations and harness misuse.
var (
	// ErrSideDesync indicates a particle's side flag disagrees with its
	// position. Crossing counts are silently wrong once this happens.
	ErrSideDesync = errors.New("osmo: side flag desynchronized from position")

	// ErrNonFinite indicates NaN or Inf in a particle's state.
	ErrNonFinite = errors.New("osmo: non-finite particle state")
)
