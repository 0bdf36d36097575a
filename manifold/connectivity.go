package manifold

import "go.uber.org/zap"

// ConnectEdges indexes every ring edge by its undirected vertex pair so
// adjacent rings can be found in O(1), per spec.md §4.6. It must run
// after ReconstructRings.
func (m *Manifold) ConnectEdges() error {
	if err := m.requireAnyState(StateReconstructing, StateConnectingEdges); err != nil {
		return err
	}
	m.state = StateConnectingEdges
	clear(m.edgeToRing)
	for i := range m.Rings {
		ring := &m.Rings[i]
		for e := int32(0); e < ring.Count; e++ {
			u, v := ring.Edge(e)
			key := canonicalEdge(u, v)
			rings := m.edgeToRing[key]
			switch rings.Count {
			case 0:
				rings.First = int32(i)
			case 1:
				rings.Second = int32(i)
			default:
				// Three+ rings sharing an edge means two rings in the same
				// cell emitted the same boundary segment; keep the first two.
			}
			rings.Count++
			m.edgeToRing[key] = rings
		}
	}
	m.state = StateComplete
	m.log.Debug("indexed ring connectivity", zap.Int("edges", len(m.edgeToRing)))
	return nil
}

// canonicalEdge orders an edge's endpoints so (u,v) and (v,u) map to the
// same key.
func canonicalEdge(u, v VertexIndex) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{U: u, V: v}
}

// IsSharedEdge reports whether the edge (u,v) borders two rings.
func (m *Manifold) IsSharedEdge(u, v VertexIndex) bool {
	rings, ok := m.edgeToRing[canonicalEdge(u, v)]
	return ok && rings.Count >= 2
}

// neighborOf returns the ring index on the other side of edge (u,v) from
// ring "from", or false if the edge is a boundary edge.
func (m *Manifold) neighborOf(u, v VertexIndex, from int32) (int32, bool) {
	rings, ok := m.edgeToRing[canonicalEdge(u, v)]
	if !ok || rings.Count < 2 {
		return 0, false
	}
	if rings.First == from {
		return rings.Second, true
	}
	return rings.First, true
}
