package manifold

import (
	"go.uber.org/zap"

	"github.com/Amarcolina/WalkManifold/common"
)

// CreatePoles samples one pole per grid corner in [cellMin, cellMax]
// (inclusive of both corners, since a rectangle of W x H cells has
// (W+1) x (H+1) corners) within the vertical band [floorMin, floorMax],
// per spec.md §4.3. It may be called more than once with disjoint corner
// ranges while in the Cleared or CreatingPoles state, to support building
// a manifold over a union of disjoint rectangles (spec.md §4.9).
func (m *Manifold) CreatePoles(cellMin, cellMax CellCoord, floorMin, floorMax float32) error {
	if err := m.requireAnyState(StateCleared, StateCreatingPoles); err != nil {
		return err
	}
	m.state = StateCreatingPoles
	if cellMax.X < cellMin.X || cellMax.Z < cellMin.Z || floorMax <= floorMin {
		return nil // BadInput: empty range, no-op (spec.md §7).
	}
	start := len(m.Vertices)
	for x := cellMin.X; x <= cellMax.X; x++ {
		for z := cellMin.Z; z <= cellMax.Z; z++ {
			m.samplePole(CellCoord{X: x, Z: z}, floorMin, floorMax)
		}
	}
	m.log.Debug("sampled poles",
		zap.Int32("cell_min_x", cellMin.X), zap.Int32("cell_min_z", cellMin.Z),
		zap.Int32("cell_max_x", cellMax.X), zap.Int32("cell_max_z", cellMax.Z),
		zap.Int("vertices_added", len(m.Vertices)-start))
	return nil
}

// samplePole descends through [floorMin, floorMax] at one grid corner,
// appending every accepted stand-height vertex, per spec.md §4.3.
func (m *Manifold) samplePole(corner CellCoord, floorMin, floorMax float32) {
	cfg := m.settings
	worldX := float32(corner.X) * cfg.CellSize
	worldZ := float32(corner.Z) * cfg.CellSize

	start := VertexIndex(len(m.Vertices))
	count := int32(0)

	y := floorMax + cfg.StepHeight
	for y > floorMin {
		origin := common.Vec3{worldX, y, worldZ}
		maxDist := y - floorMin
		hit, ok := m.port.RaycastDown(origin, maxDist, cfg.RelevantLayers)
		if !ok {
			break
		}
		y = hit.Point.Y() - cfg.AgentHeight

		if hit.Distance >= cfg.StepHeight &&
			passesSurfaceAndLayer(hit, cfg) &&
			standable(m.port, hit, cfg) {
			m.appendPoleVertex(hit.Point, hit.Collider)
			count++
		}
	}

	if count > 0 {
		m.poles[corner] = Pole{Start: start, Count: count}
	}
}
