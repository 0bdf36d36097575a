package manifold

import (
	"go.uber.org/zap"

	"github.com/Amarcolina/WalkManifold/common"
)

// sin3Degrees is sin(3°), the threshold refineCornerIntersection uses to
// reject two probe lines that are within 3 degrees of parallel, per
// spec.md §4.5.
const sin3Degrees = 0.05233595624294383

// ReconstructRings walks every queued partialRing and completes it into a
// full Ring by bisecting the true edge between its set and unset corners,
// per spec.md §4.5. It must run after CreatePartialRings and before
// ConnectEdges.
func (m *Manifold) ReconstructRings() error {
	if err := m.requireAnyState(StateCreatingPartials, StateReconstructing); err != nil {
		return err
	}
	m.state = StateReconstructing
	start := len(m.Rings)
	for _, pr := range m.partials {
		ring, ok := m.completeRing(pr)
		if !ok {
			continue
		}
		m.appendRing(ring)
	}
	m.partials = m.partials[:0]
	m.log.Debug("reconstructed partial rings", zap.Int("rings_added", len(m.Rings)-start))
	return nil
}

// completeRing dispatches to the per-type completion formula from
// spec.md §4.5. pr is always pre-rotated so V0 is set and V3 is unset.
func (m *Manifold) completeRing(pr partialRing) (Ring, bool) {
	switch pr.typ {
	case RingCorner:
		return m.completeCorner(pr)
	case RingEdge:
		return m.completeEdge(pr)
	case RingDiagonal:
		return m.completeDiagonal(pr)
	case RingInvertedCorner:
		return m.completeInvertedCorner(pr)
	default:
		return Ring{}, false
	}
}

// completeCorner builds the triangle [e03, V0, e01], where e01 and e03 are
// the true-edge crossings along the two edges leaving the occupied corner.
// When cfg.CornerReconstruction is enabled, an intersection of two
// exploratory probe lines may refine the open side into a quad by
// appending a fourth vertex between e01 and e03, per spec.md §4.5's
// corner-intersection refinement.
func (m *Manifold) completeCorner(pr partialRing) (Ring, bool) {
	e01, ok1 := m.trueEdge(pr.v[0], pr.corner[0], pr.corner[1])
	e03, ok3 := m.trueEdge(pr.v[0], pr.corner[0], pr.corner[3])
	if !ok1 || !ok3 {
		return Ring{}, false
	}
	ring := Ring{Cell: pr.cell, Type: RingCorner, Count: 3}
	ring.Indices[0], ring.Indices[1], ring.Indices[2] = e03, pr.v[0], e01
	if refined, ok := m.refineCornerIntersection(pr, e01, e03); ok {
		ring.Indices[3] = refined
		ring.Count = 4
	}
	return ring, true
}

// completeEdge builds the quad [V0, V1, e12, e03], where the ring keeps
// both occupied corners and crosses the true edge on each open side.
func (m *Manifold) completeEdge(pr partialRing) (Ring, bool) {
	e12, ok1 := m.trueEdge(pr.v[1], pr.corner[1], pr.corner[2])
	e03, ok2 := m.trueEdge(pr.v[0], pr.corner[0], pr.corner[3])
	if !ok1 || !ok2 {
		return Ring{}, false
	}
	ring := Ring{Cell: pr.cell, Type: RingEdge, Count: 4}
	ring.Indices[0], ring.Indices[1], ring.Indices[2], ring.Indices[3] = pr.v[0], pr.v[1], e12, e03
	return ring, true
}

// completeInvertedCorner builds the pentagon [V0, V1, V2, e23, e03], the
// complement of completeCorner: every corner but one is occupied.
func (m *Manifold) completeInvertedCorner(pr partialRing) (Ring, bool) {
	e23, ok1 := m.trueEdge(pr.v[2], pr.corner[2], pr.corner[3])
	e03, ok2 := m.trueEdge(pr.v[0], pr.corner[0], pr.corner[3])
	if !ok1 || !ok2 {
		return Ring{}, false
	}
	ring := Ring{Cell: pr.cell, Type: RingInvertedCorner, Count: 5}
	ring.Indices[0], ring.Indices[1], ring.Indices[2], ring.Indices[3], ring.Indices[4] =
		pr.v[0], pr.v[1], pr.v[2], e23, e03
	return ring, true
}

// completeDiagonal stitches the two diagonal corner regions into a single
// hexagon [V0, e01, e21, V2, e23, e03].
func (m *Manifold) completeDiagonal(pr partialRing) (Ring, bool) {
	e01, ok1 := m.trueEdge(pr.v[0], pr.corner[0], pr.corner[1])
	e21, ok2 := m.trueEdge(pr.v[2], pr.corner[2], pr.corner[1])
	e23, ok3 := m.trueEdge(pr.v[2], pr.corner[2], pr.corner[3])
	e03, ok4 := m.trueEdge(pr.v[0], pr.corner[0], pr.corner[3])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Ring{}, false
	}
	ring := Ring{Cell: pr.cell, Type: RingDiagonal, Count: 6}
	ring.Indices[0], ring.Indices[1], ring.Indices[2] = pr.v[0], e01, e21
	ring.Indices[3], ring.Indices[4], ring.Indices[5] = pr.v[2], e23, e03
	return ring, true
}

// trueEdge bisects the boundary between src (an accepted pole vertex at
// srcCorner) and the unoccupied corner dstCorner, returning the index of a
// newly appended boundary vertex at the crossing. Results are cached by
// (src, direction) since the same edge is walked from both rings that
// share it.
func (m *Manifold) trueEdge(src VertexIndex, srcCorner, dstCorner CellCoord) (VertexIndex, bool) {
	key := trueEdgeKey{Src: src, Dir: dirOffset{X: dstCorner.X - srcCorner.X, Z: dstCorner.Z - srcCorner.Z}}
	if v, ok := m.trueEdgeCache[key]; ok {
		return v, true
	}

	cfg := m.settings
	srcPoint := m.vertex(src)
	dstWorldXZ := common.Vec3{float32(dstCorner.X) * cfg.CellSize, srcPoint.Y(), float32(dstCorner.Z) * cfg.CellSize}

	point := m.trueEdgePoint(srcPoint, dstWorldXZ)
	idx := m.appendBoundaryVertex(point)
	m.trueEdgeCache[key] = idx
	return idx, true
}

// trueEdgePoint runs the bisection search of spec.md §4.5's true_edge
// between src and dst (dst's Y is ignored; only its XZ matters), returning
// the best accepted boundary point found. src is always a valid answer
// (the running best is seeded with it), so this never fails outright.
func (m *Manifold) trueEdgePoint(src, dst common.Vec3) common.Vec3 {
	cfg := m.settings

	sampleAt := func(t float32) (bool, common.Vec3) {
		xz := common.Vec3{
			src.X() + (dst.X()-src.X())*t,
			src.Y() + cfg.StepHeight,
			src.Z() + (dst.Z()-src.Z())*t,
		}
		hit, ok := m.port.RaycastDown(xz, cfg.StepHeight*2, cfg.RelevantLayers)
		if !ok {
			return false, common.Vec3{}
		}
		// spec.md §4.5: accepted iff slope, walkable-layer, and
		// capsule-occupancy pass -- no headroom-distance gate here, unlike
		// §4.3's pole descent.
		accepted := passesSurfaceAndLayer(hit, cfg) && standable(m.port, hit, cfg)
		return accepted, hit.Point
	}

	// lo always stays classified as accepted: src (t=0) is treated as the
	// accepted end of the search, and each iteration only advances lo when
	// the midpoint's acceptance still matches it, otherwise shrinking hi.
	// loPoint is seeded with src so an entirely-rejected search still
	// returns a valid point.
	lo, hi := float32(0), float32(1)
	loPoint := src
	for i := uint32(0); i < cfg.ReconstructionIterations; i++ {
		mid := (lo + hi) / 2
		ok, point := sampleAt(mid)
		if ok {
			lo = mid
			loPoint = point
		} else {
			hi = mid
		}
	}
	return loPoint
}

// refineCornerIntersection implements spec.md §4.5's corner-intersection
// refinement: two exploratory segments, offset from V0 along the axis
// opposite each true-edge crossing, are themselves bisected with
// trueEdgePoint; the lines from each crossing through its exploratory
// probe are then intersected in the XZ plane. Returns the new boundary
// vertex and true only if the probe lines aren't near-parallel, the
// intersection lands strictly inside the cell, and it preserves convex CCW
// winding of e01 -> intersection -> e03.
func (m *Manifold) refineCornerIntersection(pr partialRing, e01, e03 VertexIndex) (VertexIndex, bool) {
	if !m.settings.CornerReconstruction {
		return NoVertex, false
	}
	cfg := m.settings

	v0 := m.vertex(pr.v[0])
	v1 := m.vertex(e01)
	v3 := m.vertex(e03)

	c0, c1, c3 := pr.corner[0], pr.corner[1], pr.corner[3]
	dirA := common.Vec3{float32(c1.X - c0.X), 0, float32(c1.Z - c0.Z)} // V0 -> P1 direction (unit).
	dirB := common.Vec3{float32(c3.X - c0.X), 0, float32(c3.Z - c0.Z)} // V0 -> P3 direction (unit).

	d1 := common.Dist2D(v0, v1)
	d3 := common.Dist2D(v0, v3)

	a0 := common.Vec3{v0.X() + dirA.X()*0.5*d1, v0.Y(), v0.Z() + dirA.Z()*0.5*d1}
	a1 := common.Vec3{a0.X() + dirB.X()*cfg.CellSize, a0.Y(), a0.Z() + dirB.Z()*cfg.CellSize}
	bPrime := m.trueEdgePoint(a0, a1)

	c0Pt := common.Vec3{v0.X() + dirB.X()*0.5*d3, v0.Y(), v0.Z() + dirB.Z()*0.5*d3}
	c1Pt := common.Vec3{c0Pt.X() + dirA.X()*cfg.CellSize, c0Pt.Y(), c0Pt.Z() + dirA.Z()*cfg.CellSize}
	dPrime := m.trueEdgePoint(c0Pt, c1Pt)

	dir1 := common.Vec3{bPrime.X() - v1.X(), 0, bPrime.Z() - v1.Z()}
	dir2 := common.Vec3{dPrime.X() - v3.X(), 0, dPrime.Z() - v3.Z()}
	len1, len2 := dir1.Len(), dir2.Len()
	if len1 == 0 || len2 == 0 {
		return NoVertex, false
	}
	cross := dir1.X()*dir2.Z() - dir1.Z()*dir2.X()
	sinAngle := cross / (len1 * len2)
	if sinAngle < 0 {
		sinAngle = -sinAngle
	}
	if sinAngle < sin3Degrees {
		return NoVertex, false // within 3 degrees of parallel: skip.
	}

	diffX, diffZ := v3.X()-v1.X(), v3.Z()-v1.Z()
	s := (diffX*dir2.Z() - diffZ*dir2.X()) / cross

	ix := v1.X() + dir1.X()*s
	iz := v1.Z() + dir1.Z()*s
	iy := v1.Y() + (bPrime.Y()-v1.Y())*s // Y interpolated along the first line by s.

	cellMinX := float32(pr.cell.X) * cfg.CellSize
	cellMinZ := float32(pr.cell.Z) * cfg.CellSize
	if ix <= cellMinX || ix >= cellMinX+cfg.CellSize || iz <= cellMinZ || iz >= cellMinZ+cfg.CellSize {
		return NoVertex, false // not strictly inside the cell.
	}

	intersect := common.Vec3{ix, iy, iz}
	// Strict rejection of an exact-zero cross product per spec.md §9: a
	// collinear result is treated as non-convex, not accepted.
	if common.Area2XZ(v1, intersect, v3) >= 0 {
		return NoVertex, false
	}

	idx := m.appendBoundaryVertex(intersect)
	return idx, true
}
