package manifold

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Amarcolina/WalkManifold/common"
	"github.com/Amarcolina/WalkManifold/physics"
)

func TestNewStartsCleared(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if m.State() != StateCleared {
		t.Errorf("State() = %v, want Cleared", m.State())
	}
	if len(m.Vertices) != 0 || m.PoleVerticesCount() != 0 || len(m.Rings) != 0 {
		t.Errorf("expected a freshly constructed manifold to be empty")
	}
}

func TestAppendPoleVertexTracksColliderAndCount(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	idx := m.appendPoleVertex(common.Vec3{1, 2, 3}, physics.ColliderID(5))
	if m.vertex(idx) != (common.Vec3{1, 2, 3}) {
		t.Errorf("vertex(idx) = %v, want (1,2,3)", m.vertex(idx))
	}
	if m.PoleVerticesCount() != 1 {
		t.Errorf("PoleVerticesCount() = %d, want 1", m.PoleVerticesCount())
	}
	collider, ok := m.ColliderAt(idx)
	if !ok || collider != physics.ColliderID(5) {
		t.Errorf("ColliderAt(idx) = (%v,%v), want (5,true)", collider, ok)
	}
}

func TestAppendBoundaryVertexHasNoCollider(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	idx := m.appendBoundaryVertex(common.Vec3{4, 5, 6})
	if m.PoleVerticesCount() != 0 {
		t.Errorf("PoleVerticesCount() = %d, want 0 (boundary vertices are not poles)", m.PoleVerticesCount())
	}
	if _, ok := m.ColliderAt(idx); ok {
		t.Errorf("expected ColliderAt to fail for a reconstructed-boundary vertex")
	}
}

func TestColliderAtRejectsNoVertex(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if _, ok := m.ColliderAt(NoVertex); ok {
		t.Errorf("expected ColliderAt(NoVertex) to fail")
	}
}

func TestClearTruncatesButReusesContainers(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(m.Vertices) == 0 || len(m.Rings) == 0 {
		t.Fatal("expected a non-empty build before Clear")
	}
	verticesCap, ringsCap := cap(m.Vertices), cap(m.Rings)

	m.Clear()

	if m.State() != StateCleared {
		t.Errorf("State() after Clear = %v, want Cleared", m.State())
	}
	if len(m.Vertices) != 0 || len(m.Rings) != 0 || m.PoleVerticesCount() != 0 {
		t.Errorf("expected Clear to truncate every bulk container to length 0")
	}
	if cap(m.Vertices) != verticesCap || cap(m.Rings) != ringsCap {
		t.Errorf("expected Clear to reuse backing arrays rather than reallocate")
	}

	// The manifold must be fully rebuildable after Clear.
	if err := m.Update(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update after Clear: %v", err)
	}
	if len(m.Rings) == 0 {
		t.Errorf("expected rings again after rebuilding a cleared manifold")
	}
}

func TestRequireStateGuardsRejectWrongPhase(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.requireState(StateComplete); err != ErrInvalidOrder {
		t.Errorf("requireState on a Cleared manifold = %v, want ErrInvalidOrder", err)
	}
	if err := m.requireAnyState(StateCreatingPoles, StateComplete); err != ErrInvalidOrder {
		t.Errorf("requireAnyState on a Cleared manifold = %v, want ErrInvalidOrder", err)
	}
	if err := m.requireComplete(); err != ErrNotReady {
		t.Errorf("requireComplete on a Cleared manifold = %v, want ErrNotReady", err)
	}
}

func TestRequireCompleteSucceedsAfterUpdate(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -1, Z: -1}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := m.requireComplete(); err != nil {
		t.Errorf("requireComplete() after Update = %v, want nil", err)
	}
}
