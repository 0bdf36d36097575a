package manifold

import "errors"

// Error taxonomy per spec.md §7. InvalidOrder, NotReady, and Cancelled are
// fatal to the call that returns them but never corrupt manifold state
// (Cancelled resets it to Cleared, which is itself a well-defined state).
// BadInput (empty cellMax<=cellMin or yMax<=yMin ranges) is deliberately
// not an error: it is a no-op build that still reaches Complete with zero
// rings, per spec.md §7's "no-op, not fatal."
var (
	// ErrInvalidOrder is returned when a partial-update step is invoked out
	// of the Clear < CreatePoles < CreatePartialRings < ReconstructRings <
	// ConnectEdges < Complete sequence.
	ErrInvalidOrder = errors.New("walkmanifold: construction step invoked out of order")

	// ErrNotReady is returned by any query made before the manifold reaches
	// the Complete state.
	ErrNotReady = errors.New("walkmanifold: manifold is not in the Complete state")

	// ErrCancelled is returned by UpdateAsync when the caller's context is
	// cancelled; the manifold is reset to Cleared before this error is
	// returned.
	ErrCancelled = errors.New("walkmanifold: build cancelled")
)
