package controller

import (
	"math"

	"go.uber.org/zap"

	"github.com/Amarcolina/WalkManifold/common"
	"github.com/Amarcolina/WalkManifold/manifold"
	"github.com/Amarcolina/WalkManifold/physics"
	"github.com/Amarcolina/WalkManifold/settings"
)

// Controller walks one cylindrical agent across a Manifold, clamping every
// step to a surface the manifold actually contains, per spec.md §4.8. It
// owns the Manifold it walks: every Move rebuilds it as a fresh atomic
// patch over the segment from the agent's current position to its
// candidate destination, so the controller always answers against a live
// local snapshot of the scene rather than a snapshot that might be stale
// after another system moved a platform.
type Controller struct {
	manifold *manifold.Manifold
	settings settings.Settings
	locator  physics.TransformLocator
	log      *zap.Logger

	// TranslateWithColliders and RotateWithColliders enable moving
	// platform carry (spec.md §4.8 steps 2-3). Both default to true.
	TranslateWithColliders bool
	RotateWithColliders    bool

	position common.Vec3
	history  PositionHistory

	hasFloor          bool
	floorCollider     physics.ColliderID
	floorLocalPos     common.Vec3
	floorLocalForward common.Vec3
	worldForward      common.Vec3
}

// New constructs a Controller starting at position, immediately seeding
// the position history with that starting point. locator resolves a
// collider's current pose for moving-platform carry; pass
// physics.NewSceneLocator() (or nil) if the scene has no moving colliders
// the controller needs to track.
func New(m *manifold.Manifold, s settings.Settings, locator physics.TransformLocator, position common.Vec3, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if locator == nil {
		locator = physics.NewSceneLocator()
	}
	c := &Controller{
		manifold:               m,
		settings:               s,
		locator:                locator,
		log:                    log,
		TranslateWithColliders: true,
		RotateWithColliders:    true,
		position:               position,
		worldForward:           common.Vec3{0, 0, 1},
	}
	c.history.Reset(position)
	return c
}

// Position returns the controller's last accepted position.
func (c *Controller) Position() common.Vec3 { return c.position }

// History returns the controller's position trail.
func (c *Controller) History() *PositionHistory { return &c.history }

// ResetPositionHistory discards every recorded sample and reseeds the
// trail at the controller's current position.
func (c *Controller) ResetPositionHistory() {
	c.history.Reset(c.position)
}

// Move attempts to translate the agent by delta, clamped to the XZ plane,
// rebuilding a local patch of the manifold over the move and snapping the
// result onto the nearest surface reachable from the starting point, per
// spec.md §4.8. On success it returns the new position; on failure it
// rewinds through recorded history looking for any position the agent can
// still stand at, and only returns ErrNoSurface (position unchanged) if
// every one of those attempts also fails.
func (c *Controller) Move(delta common.Vec3) (common.Vec3, error) {
	delta = common.Vec3{delta.X(), 0, delta.Z()}

	src := c.position
	if c.TranslateWithColliders && c.hasFloor {
		if tr, ok := c.locator.Transform(c.floorCollider); ok {
			src = tr.LocalToWorld(c.floorLocalPos)
		}
	}
	if c.RotateWithColliders && c.hasFloor {
		if tr, ok := c.locator.Transform(c.floorCollider); ok {
			newForward := tr.LocalToWorldDir(c.floorLocalForward)
			angle := common.AngleXZ(c.worldForward, newForward)
			delta = common.RotateY(delta, angle)
			c.worldForward = newForward
		}
	}
	dst := src.Add(delta)

	if point, ringIdx, poleVertex, ok := c.tryFindNextPosition(src, dst, 1); ok {
		c.accept(point, ringIdx, poleVertex)
		return c.position, nil
	}

	for i := 0; i < c.history.Len(); i++ {
		h := c.history.AtFromOldest(i)
		if point, ringIdx, poleVertex, ok := c.tryFindNextPosition(h, h, 0); ok {
			c.accept(point, ringIdx, poleVertex)
			return c.position, nil
		}
	}

	return c.position, ErrNoSurface
}

// SimpleMove is a convenience wrapper over Move for direction/speed/dt
// input, projecting direction onto the XZ plane before scaling.
func (c *Controller) SimpleMove(direction common.Vec3, speed, dt float32) (common.Vec3, error) {
	flat := common.Vec3{direction.X(), 0, direction.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	delta := flat.Mul(speed * dt)
	return c.Move(delta)
}

// tryFindNextPosition rebuilds the controller's manifold over the
// rectangle spanning src and dst (padded by extrude cells) and a generous
// vertical band, marks every ring reachable from src, and answers the
// closest point to dst among those, per spec.md §4.8's
// tryFindNextPosition.
func (c *Controller) tryFindNextPosition(src, dst common.Vec3, extrude int32) (common.Vec3, int32, manifold.VertexIndex, bool) {
	cellMin, cellMax := c.queryBounds(src, dst, extrude)

	dist := src.Sub(dst).Len()
	maxHeightDelta := dist/c.settings.CellSize + 1 + c.settings.StepHeight
	floorMin := minF(src.Y(), dst.Y()) - maxHeightDelta
	floorMax := maxF(src.Y(), dst.Y()) + maxHeightDelta

	if err := c.manifold.Update(cellMin, cellMax, floorMin, floorMax); err != nil {
		c.log.Debug("tryFindNextPosition: manifold rebuild failed", zap.Error(err))
		return common.Vec3{}, 0, 0, false
	}

	startRing, ok := c.manifold.FindClosestRingIndex(src, common.Vec3{}, false)
	if !ok {
		return common.Vec3{}, 0, 0, false
	}
	c.manifold.ClearReachability()
	c.manifold.MarkReachableIndex(startRing)

	return c.manifold.FindClosestPoint(dst, common.Vec3{}, true)
}

// queryBounds computes the cell rectangle covering [min(src,dst),
// max(src,dst)] in XZ, padded by extrude cells on every side.
func (c *Controller) queryBounds(src, dst common.Vec3, extrude int32) (manifold.CellCoord, manifold.CellCoord) {
	cs := c.settings.CellSize
	minX, maxX := minF(src.X(), dst.X()), maxF(src.X(), dst.X())
	minZ, maxZ := minF(src.Z(), dst.Z()), maxF(src.Z(), dst.Z())
	cellMin := manifold.CellCoord{
		X: int32(math.Floor(float64(minX/cs))) - extrude,
		Z: int32(math.Floor(float64(minZ/cs))) - extrude,
	}
	// Cell x covers [x*cs, (x+1)*cs) and cellMax is exclusive, so the cell
	// holding maxX is floor(maxX/cs) and the bound is one past it.
	cellMax := manifold.CellCoord{
		X: int32(math.Floor(float64(maxX/cs))) + 1 + extrude,
		Z: int32(math.Floor(float64(maxZ/cs))) + 1 + extrude,
	}
	return cellMin, cellMax
}

// accept commits a successful query result: teleport to point, update the
// carried-floor bookkeeping, and push a history sample when the new floor
// is static and the move travelled far enough to be worth recording, per
// spec.md §4.8 step 8.
func (c *Controller) accept(point common.Vec3, _ int32, poleVertex manifold.VertexIndex) {
	c.position = point

	collider, ok := c.manifold.ColliderAt(poleVertex)
	c.hasFloor = ok
	if !ok {
		return
	}
	c.floorCollider = collider

	tr, ok := c.locator.Transform(collider)
	if !ok {
		return
	}
	c.floorLocalPos = tr.WorldToLocal(point)
	c.floorLocalForward = tr.WorldToLocalDir(c.worldForward)

	if tr.Static() && common.Dist2D(point, c.history.At(0)) > c.settings.CellSize {
		c.history.Push(point)
	}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
