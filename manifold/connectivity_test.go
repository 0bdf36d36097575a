package manifold

import (
	"testing"

	"go.uber.org/zap"
)

func TestConnectEdgesOutOfOrderFails(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.CreatePoles(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("CreatePoles: %v", err)
	}
	if err := m.ConnectEdges(); err == nil {
		t.Errorf("expected ErrInvalidOrder calling ConnectEdges right after CreatePoles")
	}
}

func TestIsSharedEdgeIsSymmetric(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	found := false
	for i := range m.Rings {
		ring := &m.Rings[i]
		for e := int32(0); e < ring.Count; e++ {
			u, v := ring.Edge(e)
			if !m.IsSharedEdge(u, v) {
				continue
			}
			found = true
			if !m.IsSharedEdge(v, u) {
				t.Errorf("IsSharedEdge(%d,%d) true but IsSharedEdge(%d,%d) false", u, v, v, u)
			}
		}
	}
	if !found {
		t.Fatal("expected at least one shared edge on a 2x2 connected grid")
	}
}

func TestNeighborOfReturnsTheOtherRing(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	for i := range m.Rings {
		ring := &m.Rings[i]
		for e := int32(0); e < ring.Count; e++ {
			u, v := ring.Edge(e)
			neighbor, ok := m.neighborOf(u, v, int32(i))
			if !ok {
				continue // boundary edge.
			}
			if neighbor == int32(i) {
				t.Errorf("neighborOf returned the same ring %d for edge (%d,%d)", i, u, v)
			}
			// Walking back from the neighbor across the reversed edge must
			// land on the original ring.
			back, ok := m.neighborOf(v, u, neighbor)
			if !ok || back != int32(i) {
				t.Errorf("neighborOf(%d,%d,%d) = (%d,%v), want (%d,true)", v, u, neighbor, back, ok, i)
			}
		}
	}
}

func TestNoSelfDualEdges(t *testing.T) {
	// No ring edge may join a vertex to itself (u==v), since such an edge
	// would hash against its own reverse. Checked over the flat 2x2 grid,
	// which has both shared and boundary edges.
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	for i := range m.Rings {
		ring := &m.Rings[i]
		for e := int32(0); e < ring.Count; e++ {
			u, v := ring.Edge(e)
			if u == v {
				t.Errorf("ring %d edge %d is degenerate (u==v)", i, e)
			}
		}
	}
}

