// Package controller drives a cylindrical agent across a manifold.Manifold
// (C8 in the design): ground snapping, step-height clamped movement, and a
// short position history for stuck/teleport detection.
package controller

import "errors"

// ErrNoSurface is returned by Move and SimpleMove when neither the move
// itself nor any recorded history position yields a reachable ring, per
// spec.md §4.8: the controller never silently leaves the manifold, it
// refuses the move instead.
var ErrNoSurface = errors.New("walkmanifold: no surface near destination")
