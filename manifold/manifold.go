// Package manifold builds and queries the walkable surface manifold for a
// cylindrical agent (C3 through C7 and C9 in the design: pole sampling,
// partial-ring assembly, ring reconstruction, connectivity indexing, the
// query engine, and the orchestrator state machine that drives them).
//
// All bulk containers are long-lived and reused across builds; Clear
// truncates them rather than freeing them, so steady-state allocation is
// zero after the first build (spec.md §5).
package manifold

import (
	"github.com/Amarcolina/WalkManifold/common"
	"github.com/Amarcolina/WalkManifold/physics"
	"github.com/Amarcolina/WalkManifold/settings"
	"go.uber.org/zap"
)

// Manifold is one agent's walkable surface over one scene configuration.
// It is not safe for concurrent use: the design's single-threaded
// cooperative scheduling model (spec.md §5) means all construction and
// query methods run on the manifold's owning goroutine.
type Manifold struct {
	settings settings.Settings
	port     physics.Port
	log      *zap.Logger

	state State

	// Vertices holds every vertex appended this build: poles first
	// ([0, poleCount)), then reconstructed-boundary vertices. Append-only
	// within a build, truncated (not freed) by Clear.
	Vertices []common.Vec3

	// VertexColliders is a parallel array to Vertices[:PoleVerticesCount]:
	// the opaque collider handle each pole vertex came from.
	VertexColliders []physics.ColliderID

	poleVerticesCount int

	poles map[CellCoord]Pole

	// Rings holds every finished ring; Complete rings are appended first
	// (during CreatePartialRings) so they stay contiguous at the front.
	Rings []Ring

	cellToRings map[CellCoord][]int32

	partials []partialRing

	trueEdgeCache map[trueEdgeKey]VertexIndex

	edgeToRing map[edgeKey]edgeRings
}

// New constructs an empty Manifold bound to the given settings and physics
// port. The returned value is in the Cleared state.
func New(s settings.Settings, port physics.Port, log *zap.Logger) *Manifold {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manifold{
		settings:      s,
		port:          port,
		log:           log,
		poles:         make(map[CellCoord]Pole),
		cellToRings:   make(map[CellCoord][]int32),
		trueEdgeCache: make(map[trueEdgeKey]VertexIndex),
		edgeToRing:    make(map[edgeKey]edgeRings),
	}
	return m
}

// State returns the orchestrator's current construction phase.
func (m *Manifold) State() State { return m.state }

// PoleVerticesCount is the number of vertices in the pole segment of
// Vertices; VertexColliders is sized to match.
func (m *Manifold) PoleVerticesCount() int { return m.poleVerticesCount }

// Clear resets the manifold to the Cleared state, truncating (not
// freeing) every bulk container. Legal from any state.
func (m *Manifold) Clear() {
	m.Vertices = m.Vertices[:0]
	m.VertexColliders = m.VertexColliders[:0]
	m.poleVerticesCount = 0
	clear(m.poles)
	m.Rings = m.Rings[:0]
	clear(m.cellToRings)
	m.partials = m.partials[:0]
	clear(m.trueEdgeCache)
	clear(m.edgeToRing)
	m.state = StateCleared
	m.log.Debug("manifold cleared")
}

// appendPoleVertex appends a pole vertex and its collider, returning its
// index.
func (m *Manifold) appendPoleVertex(p common.Vec3, collider physics.ColliderID) VertexIndex {
	idx := VertexIndex(len(m.Vertices))
	m.Vertices = append(m.Vertices, p)
	m.VertexColliders = append(m.VertexColliders, collider)
	m.poleVerticesCount++
	return idx
}

// appendBoundaryVertex appends a reconstructed-boundary vertex (no
// collider) and returns its index.
func (m *Manifold) appendBoundaryVertex(p common.Vec3) VertexIndex {
	idx := VertexIndex(len(m.Vertices))
	m.Vertices = append(m.Vertices, p)
	return idx
}

func (m *Manifold) vertex(idx VertexIndex) common.Vec3 {
	return m.Vertices[idx]
}

// ColliderAt resolves the opaque collider handle for a pole vertex index,
// or false if idx is NoVertex or refers to a reconstructed-boundary
// vertex (no collider), per spec.md §6's vertex_colliders read access.
func (m *Manifold) ColliderAt(idx VertexIndex) (physics.ColliderID, bool) {
	return colliderOf(m.VertexColliders, idx)
}

func (m *Manifold) requireState(want State) error {
	if m.state != want {
		return ErrInvalidOrder
	}
	return nil
}

func (m *Manifold) requireAnyState(allowed ...State) error {
	for _, s := range allowed {
		if m.state == s {
			return nil
		}
	}
	return ErrInvalidOrder
}

func (m *Manifold) requireComplete() error {
	if m.state != StateComplete {
		return ErrNotReady
	}
	return nil
}
