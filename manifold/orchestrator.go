package manifold

import (
	"context"

	"go.uber.org/zap"
)

// Update runs a full build over one rectangle of cells in a single call:
// Clear, CreatePoles, CreatePartialRings, ReconstructRings, ConnectEdges,
// per spec.md §4.9's synchronous convenience wrapper around C3-C6. cellMax
// is exclusive in cell space (inclusive in corner space), matching
// CreatePartialRings.
func (m *Manifold) Update(cellMin, cellMax CellCoord, floorMin, floorMax float32) error {
	m.Clear()
	if m.settings.SyncPhysicsOnUpdate {
		m.port.SyncTransforms()
	}
	if err := m.CreatePoles(cellMin, cellMax, floorMin, floorMax); err != nil {
		return err
	}
	if err := m.CreatePartialRings(cellMin, cellMax); err != nil {
		return err
	}
	if err := m.ReconstructRings(); err != nil {
		return err
	}
	if err := m.ConnectEdges(); err != nil {
		return err
	}
	m.log.Info("manifold build complete", zap.Int("rings", len(m.Rings)), zap.Int("vertices", len(m.Vertices)))
	return nil
}

// UpdateAsync runs the same build as Update but yields cooperatively so a
// caller can cancel a build that would otherwise block a single-threaded
// game loop for too long in one frame, per spec.md §4.9 and §5. Pole
// sampling is batched over chunkSize x chunkSize cell tiles with a
// cancellation check between tiles; ring reconstruction is sliced at
// max(1, chunkSize^2/(1+reconstructionIterations)) partial rings per slice
// with a check between slices. On cancellation the manifold is reset to
// Cleared before returning ErrCancelled.
func (m *Manifold) UpdateAsync(ctx context.Context, cellMin, cellMax CellCoord, floorMin, floorMax float32, chunkSize int32) error {
	m.Clear()
	if m.settings.SyncPhysicsOnUpdate {
		m.port.SyncTransforms()
	}
	if cellMax.X < cellMin.X || cellMax.Z < cellMin.Z || floorMax <= floorMin {
		m.state = StateComplete // BadInput: empty range, no-op build with zero rings.
		return nil
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	m.state = StateCreatingPoles
	for tileX := cellMin.X; tileX <= cellMax.X; tileX += chunkSize {
		tileMaxX := minI32(tileX+chunkSize-1, cellMax.X)
		for tileZ := cellMin.Z; tileZ <= cellMax.Z; tileZ += chunkSize {
			if err := ctx.Err(); err != nil {
				m.Clear()
				return ErrCancelled
			}
			tileMaxZ := minI32(tileZ+chunkSize-1, cellMax.Z)
			for x := tileX; x <= tileMaxX; x++ {
				for z := tileZ; z <= tileMaxZ; z++ {
					m.samplePole(CellCoord{X: x, Z: z}, floorMin, floorMax)
				}
			}
		}
	}

	m.state = StateCreatingPartials
	for tileX := cellMin.X; tileX < cellMax.X; tileX += chunkSize {
		tileMaxX := minI32(tileX+chunkSize-1, cellMax.X-1)
		for tileZ := cellMin.Z; tileZ < cellMax.Z; tileZ += chunkSize {
			if err := ctx.Err(); err != nil {
				m.Clear()
				return ErrCancelled
			}
			tileMaxZ := minI32(tileZ+chunkSize-1, cellMax.Z-1)
			for x := tileX; x <= tileMaxX; x++ {
				for z := tileZ; z <= tileMaxZ; z++ {
					m.buildCellRings(CellCoord{X: x, Z: z})
				}
			}
		}
	}

	if err := ctx.Err(); err != nil {
		m.Clear()
		return ErrCancelled
	}

	m.state = StateReconstructing
	sliceSize := int(chunkSize) * int(chunkSize) / (1 + int(m.settings.ReconstructionIterations))
	if sliceSize < 1 {
		sliceSize = 1
	}
	start := len(m.Rings)
	for i := 0; i < len(m.partials); i += sliceSize {
		if err := ctx.Err(); err != nil {
			m.Clear()
			return ErrCancelled
		}
		end := i + sliceSize
		if end > len(m.partials) {
			end = len(m.partials)
		}
		for _, pr := range m.partials[i:end] {
			ring, ok := m.completeRing(pr)
			if !ok {
				continue
			}
			m.appendRing(ring)
		}
	}
	m.partials = m.partials[:0]
	m.log.Debug("reconstructed partial rings (async)", zap.Int("rings_added", len(m.Rings)-start))

	if err := ctx.Err(); err != nil {
		m.Clear()
		return ErrCancelled
	}
	if err := m.ConnectEdges(); err != nil {
		return err
	}
	m.log.Info("manifold async build complete", zap.Int("rings", len(m.Rings)), zap.Int("vertices", len(m.Vertices)))
	return nil
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// GetCell returns every ring occupying the given cell.
func (m *Manifold) GetCell(cell CellCoord) []Ring {
	idxs := m.cellToRings[cell]
	if len(idxs) == 0 {
		return nil
	}
	rings := make([]Ring, len(idxs))
	for i, idx := range idxs {
		rings[i] = m.Rings[idx]
	}
	return rings
}
