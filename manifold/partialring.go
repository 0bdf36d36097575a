package manifold

import "go.uber.org/zap"

// cellCursor is a consumable view into one corner's Pole: the vertex list
// itself is never mutated, only this local top-of-stack pointer. A single
// Pole is read by up to four cells, so each cell's build gets its own
// fresh cursors.
type cellCursor struct {
	next      VertexIndex // index of the current top vertex, or NoVertex if exhausted
	remaining int32
}

func (m *Manifold) cursorFor(corner CellCoord) cellCursor {
	pole, ok := m.poles[corner]
	if !ok || pole.Count == 0 {
		return cellCursor{next: NoVertex}
	}
	return cellCursor{next: pole.Start, remaining: pole.Count}
}

func (c *cellCursor) exhausted() bool { return c.next == NoVertex }

func (c *cellCursor) advance() {
	c.remaining--
	if c.remaining <= 0 {
		c.next = NoVertex
		return
	}
	c.next++
}

// CreatePartialRings assembles rings for every cell in [cellMin, cellMax)
// from the four corner poles sampled by CreatePoles, per spec.md §4.4. It
// may be called more than once with disjoint cell ranges while in the
// CreatingPoles or CreatingPartials state.
func (m *Manifold) CreatePartialRings(cellMin, cellMax CellCoord) error {
	if err := m.requireAnyState(StateCreatingPoles, StateCreatingPartials); err != nil {
		return err
	}
	m.state = StateCreatingPartials
	if cellMax.X <= cellMin.X || cellMax.Z <= cellMin.Z {
		return nil // BadInput: empty range, no-op.
	}
	complete, partial := 0, 0
	for x := cellMin.X; x < cellMax.X; x++ {
		for z := cellMin.Z; z < cellMax.Z; z++ {
			c, p := m.buildCellRings(CellCoord{X: x, Z: z})
			complete += c
			partial += p
		}
	}
	m.log.Debug("assembled partial rings",
		zap.Int("complete_rings", complete), zap.Int("partial_rings", partial))
	return nil
}

// buildCellRings runs the height-sorted greedy pairing over one cell's four
// corner poles, emitting Complete rings directly and queuing the rest as
// partialRings for the reconstructor.
func (m *Manifold) buildCellRings(cell CellCoord) (completeCount, partialCount int) {
	cfg := m.settings
	var cursors [4]cellCursor
	for i, off := range cellCorners {
		cursors[i] = m.cursorFor(CellCoord{X: cell.X + off.X, Z: cell.Z + off.Z})
	}

	for {
		order := m.sortCursorsDescending(cursors)
		top := order[0]
		if cursors[top].exhausted() {
			break
		}

		var occupied [4]VertexIndex
		for i := range occupied {
			occupied[i] = NoVertex
		}

		seedVertex := cursors[top].next
		occupied[top] = seedVertex
		prevY := m.vertex(seedVertex).Y()

		for k := 1; k < 4; k++ {
			c := order[k]
			if cursors[c].exhausted() {
				continue
			}
			nextY := m.vertex(cursors[c].next).Y()
			if prevY-nextY > cfg.StepHeight {
				break // remaining corners in sorted order are even lower.
			}
			occupied[c] = cursors[c].next
			prevY = nextY
			cursors[c].advance()
		}
		cursors[top].advance()

		typ, rot := classify(occupied)
		if typ == RingInvalid {
			break // unreachable given the seed always sets a bit; kept for parity with spec.md's classification table.
		}

		if typ == RingComplete {
			ring := Ring{Cell: cell, Type: RingComplete, Count: 4}
			for i := 0; i < 4; i++ {
				ring.Indices[i] = occupied[i]
			}
			m.appendRing(ring)
			completeCount++
			continue
		}

		if !cfg.EdgeReconstruction {
			continue
		}
		pr := partialRing{cell: cell, typ: typ}
		for i := 0; i < 4; i++ {
			srcCorner := (i + rot) % 4
			pr.v[i] = occupied[srcCorner]
			pr.corner[i] = CellCoord{X: cell.X + cellCorners[srcCorner].X, Z: cell.Z + cellCorners[srcCorner].Z}
		}
		m.partials = append(m.partials, pr)
		partialCount++
	}
	return completeCount, partialCount
}

// sortCursorsDescending returns corner indices 0..3 ordered by descending
// top-vertex Y, with exhausted cursors sorted last. A small insertion sort
// suffices (spec.md §4.4: "a 4-element sorting network is acceptable").
func (m *Manifold) sortCursorsDescending(cursors [4]cellCursor) [4]int {
	order := [4]int{0, 1, 2, 3}
	topY := func(i int) float32 {
		if cursors[i].exhausted() {
			return -maxFloat32
		}
		return m.vertex(cursors[i].next).Y()
	}
	for i := 1; i < 4; i++ {
		j := i
		for j > 0 && topY(order[j-1]) < topY(order[j]) {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	return order
}

const maxFloat32 = 3.40282346638528859811704183484516925440e+38

func (m *Manifold) appendRing(r Ring) {
	idx := int32(len(m.Rings))
	m.Rings = append(m.Rings, r)
	m.cellToRings[r.Cell] = append(m.cellToRings[r.Cell], idx)
}

// classify determines the RingType for the occupied-corner pattern and the
// rotation needed to align it so slot 0 is set and slot 3 is unset (except
// Complete, which needs no rotation), per spec.md §4.4's classification
// table and §4.5's per-type completion order.
func classify(occupied [4]VertexIndex) (RingType, int) {
	var occ [4]bool
	n := 0
	for i, v := range occupied {
		if v != NoVertex {
			occ[i] = true
			n++
		}
	}
	switch n {
	case 0:
		return RingInvalid, 0
	case 4:
		return RingComplete, 0
	case 1:
		for i := 0; i < 4; i++ {
			if occ[i] {
				return RingCorner, i
			}
		}
	case 2:
		for c := 0; c < 4; c++ {
			if occ[c] && occ[(c+1)%4] {
				return RingEdge, c
			}
		}
		// Not adjacent: the two set bits are opposite corners (Diagonal).
		first := -1
		for i := 0; i < 4; i++ {
			if occ[i] {
				if first == -1 {
					first = i
				}
			}
		}
		return RingDiagonal, first
	case 3:
		missing := -1
		for i := 0; i < 4; i++ {
			if !occ[i] {
				missing = i
			}
		}
		return RingInvertedCorner, (missing + 1) % 4
	}
	return RingInvalid, 0
}
