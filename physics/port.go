// Package physics defines the query surface the manifold build pipeline
// needs from a physics engine (C1 in the design), plus a synthetic
// in-memory implementation for testing and for callers with no physics
// engine on hand. Real adapters (PhysX, Jolt, Bullet, a game engine's own
// scene query API, ...) implement Port directly; the manifold package never
// imports a concrete physics engine.
package physics

import "github.com/Amarcolina/WalkManifold/common"

// ColliderID is an opaque handle to whatever collider produced a hit. The
// manifold core never dereferences it; it is carried through to callers
// that do know how to resolve it against their own scene.
type ColliderID uint64

// LayerMask is a bitmask of physics layers. Layer i is bit i.
type LayerMask uint64

// Layer returns the single-bit mask for layer index i.
func Layer(i uint) LayerMask { return LayerMask(1) << i }

// Has reports whether mask contains any bit of other.
func (mask LayerMask) Has(other LayerMask) bool { return mask&other != 0 }

// Hit is the result of a successful downward raycast.
type Hit struct {
	Point    common.Vec3
	Normal   common.Vec3
	Distance float32
	Collider ColliderID
	Layer    LayerMask
}

// Port is the three operations the build pipeline consumes. Triggers are
// always excluded by the implementation; the port is thread-confined to
// its single caller (the manifold under construction) for the duration of
// a build, per the shared-resource policy in the design.
type Port interface {
	// RaycastDown casts a ray from origin straight down (-Y) for up to
	// maxDistance, restricted to layerMask, and returns the nearest hit.
	RaycastDown(origin common.Vec3, maxDistance float32, layerMask LayerMask) (Hit, bool)

	// CapsuleOccupied reports whether any non-trigger collider in layerMask
	// overlaps the capsule between pointA and pointB with the given radius.
	CapsuleOccupied(pointA, pointB common.Vec3, radius float32, layerMask LayerMask) bool

	// SyncTransforms forces the backend to finalize any pending transform
	// updates before a build begins. Implementations that update transforms
	// synchronously may make this a no-op.
	SyncTransforms()
}

// Transform resolves a collider's world transform so the character
// controller can carry an agent riding a moving platform. This is not one
// of the three Port operations C3/C5 consume during a build — it belongs
// to the controller's own collaboration with the physics engine, since
// raycasts never need a collider's pose, only its surface.
type Transform interface {
	// LocalToWorld maps a point in the collider's local space to world
	// space.
	LocalToWorld(local common.Vec3) common.Vec3
	// WorldToLocal is the inverse of LocalToWorld.
	WorldToLocal(world common.Vec3) common.Vec3
	// LocalToWorldDir maps a direction in the collider's local space to
	// world space (no translation).
	LocalToWorldDir(localDir common.Vec3) common.Vec3
	// WorldToLocalDir is the inverse of LocalToWorldDir.
	WorldToLocalDir(worldDir common.Vec3) common.Vec3
	// Static reports whether the collider never moves. The controller only
	// pushes position history for a static floor (spec scenario 6).
	Static() bool
}

// TransformLocator resolves a ColliderID to its current Transform. Real
// adapters typically back this with the same scene the Port queries.
type TransformLocator interface {
	Transform(id ColliderID) (Transform, bool)
}
