package manifold

import (
	"github.com/Amarcolina/WalkManifold/common"
)

// FindClosestRingIndex returns the ring index closest to point, searching
// within an axis-aligned box derived from extents, per spec.md §4.7. When
// onlyMarked is set, rings with Marked == false are skipped entirely (used
// by the character controller to restrict a destination search to the set
// reached by a prior MarkReachable call).
//
// Known quirk, preserved deliberately per spec.md §9: the box this builds
// is always degenerate -- its half-extents collapse to zero regardless of
// what the caller passes in extents -- so the search always reduces to
// plain nearest-center-distance across every eligible ring. The extents
// parameter is accepted (and threaded through the controller/public API)
// for interface parity with the source this was ported from, but it has no
// effect on the result. Do not "fix" this without the test suite calling
// for it. The distance itself is full 3D (X, Y, and Z), matching the
// bounds-distance formula the quirk degenerates from -- only the extents
// term collapses to zero, not an axis of the metric.
func (m *Manifold) FindClosestRingIndex(point common.Vec3, extents common.Vec3, onlyMarked bool) (int32, bool) {
	if err := m.requireComplete(); err != nil {
		return 0, false
	}
	_ = extents // accepted for API parity; see the quirk note above.

	best := int32(-1)
	bestDist := float32(0)
	for i := range m.Rings {
		ring := &m.Rings[i]
		if onlyMarked && !ring.Marked {
			continue
		}
		c := m.ringBoundsCenter(ring)
		diff := point.Sub(c)
		d := diff.Dot(diff)
		if best == -1 || d < bestDist {
			best = int32(i)
			bestDist = d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// ringBoundsCenter returns the center of ring's vertex bounding box. It
// stands in for the "boundsMin + boundsExtents" the real algorithm would
// compute against extents, but per spec.md §9 the extents term collapses to
// zero by construction, so this reduces to the plain box center.
func (m *Manifold) ringBoundsCenter(ring *Ring) common.Vec3 {
	min := m.vertex(ring.Indices[0])
	max := min
	for i := int32(1); i < ring.Count; i++ {
		v := m.vertex(ring.Indices[i])
		min = common.Vec3{minF(min.X(), v.X()), minF(min.Y(), v.Y()), minF(min.Z(), v.Z())}
		max = common.Vec3{maxF(max.X(), v.X()), maxF(max.Y(), v.Y()), maxF(max.Z(), v.Z())}
	}
	return min.Add(max).Mul(0.5)
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

// FindClosestPoint returns the closest point on the manifold to point, per
// spec.md §4.7: every eligible ring is scanned directly (not just the ring
// FindClosestRingIndex would pick by bounds-center distance), keeping
// whichever candidate -- an interior interpolation or an edge clamp -- lands
// nearest point in XZ across the whole manifold.
//
// poleVertex is the closest vertex on the winning ring that is a pole
// vertex (index < PoleVerticesCount), so a caller can resolve it to a
// collider via VertexColliders/ColliderAt; it is NoVertex if the ring has
// no pole vertex at all. When onlyMarked is set, the search is restricted
// to rings with Marked == true (spec.md §4.7's "reachable query").
func (m *Manifold) FindClosestPoint(point common.Vec3, extents common.Vec3, onlyMarked bool) (common.Vec3, int32, VertexIndex, bool) {
	if err := m.requireComplete(); err != nil {
		return common.Vec3{}, 0, NoVertex, false
	}
	_ = extents

	best := int32(-1)
	var bestPoint common.Vec3
	bestDist := float32(0)
	consider := func(ringIdx int32, p common.Vec3) {
		d := common.Dist2DSqr(point, p)
		if best == -1 || d < bestDist {
			best, bestPoint, bestDist = ringIdx, p, d
		}
	}

	for i := range m.Rings {
		ring := &m.Rings[i]
		if onlyMarked && !ring.Marked {
			continue
		}
		if m.pointInRingCellXZ(ring, point) {
			if p, ok := m.projectInterior(ring, point); ok {
				consider(int32(i), p)
			}
		}
		for e := int32(0); e < ring.Count; e++ {
			a, b := m.vertexAt(ring, e), m.vertexAt(ring, (e+1)%ring.Count)
			consider(int32(i), closestPointOnSegmentXZ(a, b, point))
		}
	}
	if best == -1 {
		return common.Vec3{}, 0, NoVertex, false
	}
	return bestPoint, best, m.closestPoleVertex(&m.Rings[best], bestPoint), true
}

// pointInRingCellXZ reports whether point's XZ falls within the grid cell
// ring occupies, the cheap pre-filter spec.md §4.7 runs before attempting
// the more expensive interior interpolation.
func (m *Manifold) pointInRingCellXZ(ring *Ring, point common.Vec3) bool {
	cs := m.settings.CellSize
	minX := float32(ring.Cell.X) * cs
	minZ := float32(ring.Cell.Z) * cs
	return point.X() >= minX && point.X() < minX+cs && point.Z() >= minZ && point.Z() < minZ+cs
}

// closestPoleVertex returns ring's pole vertex (index < PoleVerticesCount)
// nearest to point in 3D, or NoVertex if the ring has none, per spec.md
// §4.7's closestPoleVertexIndex output.
func (m *Manifold) closestPoleVertex(ring *Ring, point common.Vec3) VertexIndex {
	best := NoVertex
	bestDist := float32(0)
	for i := int32(0); i < ring.Count; i++ {
		idx := ring.Indices[i]
		if int(idx) >= m.poleVerticesCount {
			continue
		}
		diff := m.vertex(idx).Sub(point)
		d := diff.Dot(diff)
		if best == NoVertex || d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

// projectInterior implements spec.md §4.7's "Interior interpolation": walk
// ring's edges to find the unique X-decreasing edge and the unique
// X-increasing edge whose X-range straddles point.x, linearly interpolate
// each at the parameter matching point.x, then interpolate those two
// samples in Z. Fails (second return false) if point is outside ring's
// convex footprint or either straddling edge is missing (a near-degenerate,
// collinear-edge ring).
func (m *Manifold) projectInterior(ring *Ring, point common.Vec3) (common.Vec3, bool) {
	var falling, rising [2]common.Vec3
	haveFalling, haveRising := false, false

	for i := int32(0); i < ring.Count; i++ {
		a, b := m.vertexAt(ring, i), m.vertexAt(ring, (i+1)%ring.Count)

		lo, hi := a.X(), b.X()
		decreasing := a.X() > b.X()
		if decreasing {
			lo, hi = hi, lo
		}
		if point.X() < lo || point.X() > hi {
			continue // point.x lies outside this edge's X-range.
		}
		if !common.LeftOnXZ(a, b, point) {
			return common.Vec3{}, false // point is outside the ring on this side.
		}
		if decreasing {
			falling, haveFalling = [2]common.Vec3{a, b}, true
		} else {
			rising, haveRising = [2]common.Vec3{a, b}, true
		}
	}
	if !haveFalling || !haveRising {
		return common.Vec3{}, false
	}

	left := interpolateAtX(falling[0], falling[1], point.X())
	right := interpolateAtX(rising[0], rising[1], point.X())

	t := float32(0.5)
	if dz := right.Z() - left.Z(); dz != 0 {
		t = common.Clamp((point.Z()-left.Z())/dz, 0, 1)
	}
	h := common.Lerp(left, right, t).Y()
	return common.Vec3{point.X(), h, point.Z()}, true
}

// interpolateAtX linearly interpolates the point on segment (a,b) whose X
// coordinate equals x.
func interpolateAtX(a, b common.Vec3, x float32) common.Vec3 {
	dx := b.X() - a.X()
	if dx == 0 {
		return a
	}
	return common.Lerp(a, b, (x-a.X())/dx)
}

func (m *Manifold) vertexAt(ring *Ring, i int32) common.Vec3 {
	return m.vertex(ring.Indices[i])
}

func closestPointOnSegmentXZ(a, b, p common.Vec3) common.Vec3 {
	abX, abZ := b.X()-a.X(), b.Z()-a.Z()
	apX, apZ := p.X()-a.X(), p.Z()-a.Z()
	denom := abX*abX + abZ*abZ
	if denom == 0 {
		return a
	}
	t := (apX*abX + apZ*abZ) / denom
	t = common.Clamp(t, 0, 1)
	return common.Lerp(a, b, t)
}

// MarkReachable flood-fills ring reachability from the ring closest to
// seed, marking every ring connected to it through shared edges, per
// spec.md §4.7. Returns the number of rings marked. Rings not reached by
// this call keep whatever Marked value they already had; call
// ClearReachability first to reset the whole manifold.
func (m *Manifold) MarkReachable(seed common.Vec3, extents common.Vec3) int {
	start, ok := m.FindClosestRingIndex(seed, extents, false)
	if !ok {
		return 0
	}
	return m.MarkReachableIndex(start)
}

// MarkReachableIndex is MarkReachable for a caller that already knows the
// starting ring index (avoids a redundant nearest-ring search when the
// caller just computed it, as the character controller does).
func (m *Manifold) MarkReachableIndex(start int32) int {
	if start < 0 || int(start) >= len(m.Rings) {
		return 0
	}
	queue := []int32{start}
	m.Rings[start].Marked = true
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		ring := &m.Rings[cur]
		for e := int32(0); e < ring.Count; e++ {
			u, v := ring.Edge(e)
			next, ok := m.neighborOf(u, v, cur)
			if !ok || m.Rings[next].Marked {
				continue
			}
			m.Rings[next].Marked = true
			count++
			queue = append(queue, next)
		}
	}
	return count
}

// ClearReachability resets every ring's Marked flag to false.
func (m *Manifold) ClearReachability() {
	for i := range m.Rings {
		m.Rings[i].Marked = false
	}
}
