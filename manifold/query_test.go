package manifold

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Amarcolina/WalkManifold/common"
)

func TestFindClosestPointInteriorInterpolatesFlatPlane(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -2, Z: -2}, CellCoord{X: 2, Z: 2}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	point, ringIdx, poleVertex, ok := m.FindClosestPoint(common.Vec3{0.3, 5, -0.7}, common.Vec3{1, 1, 1}, false)
	if !ok {
		t.Fatalf("expected a closest point on a flat plane")
	}
	if point != (common.Vec3{0.3, 0, -0.7}) {
		t.Errorf("point = %v, want (0.3, 0, -0.7)", point)
	}
	if ringIdx < 0 || int(ringIdx) >= len(m.Rings) {
		t.Fatalf("ringIdx = %d out of range", ringIdx)
	}
	if poleVertex == NoVertex {
		t.Errorf("expected a pole vertex on a ring built entirely from Complete (all-pole) rings")
	}
	if _, hasCollider := m.ColliderAt(poleVertex); !hasCollider {
		t.Errorf("expected ColliderAt(poleVertex) to resolve a collider")
	}
}

func TestFindClosestPointClampsToEdgeOutsideFootprint(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: 0, Z: 0}, CellCoord{X: 1, Z: 1}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Far outside the single built cell [0,1]x[0,1]: the answer must clamp
	// onto the ring's boundary, not extrapolate past it.
	point, _, _, ok := m.FindClosestPoint(common.Vec3{100, 5, 0.5}, common.Vec3{1, 1, 1}, false)
	if !ok {
		t.Fatalf("expected a closest point")
	}
	if point.X() > 1 {
		t.Errorf("point.X() = %v, want clamped to <= 1 (the built cell's far edge)", point.X())
	}
}

func TestFindClosestPointOnlyMarkedSkipsUnmarkedRings(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	if err := m.Update(CellCoord{X: -2, Z: -2}, CellCoord{X: 2, Z: 2}, -1, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(m.Rings) == 0 {
		t.Fatal("expected at least one ring")
	}
	// Nothing is marked yet: onlyMarked must reject every ring.
	if _, _, _, ok := m.FindClosestPoint(common.Vec3{0.3, 5, -0.7}, common.Vec3{}, true); ok {
		t.Fatalf("expected onlyMarked search to fail with no rings marked")
	}

	seedRing, ok := m.FindClosestRingIndex(common.Vec3{0.3, 5, -0.7}, common.Vec3{}, false)
	if !ok {
		t.Fatal("expected a starting ring")
	}
	m.MarkReachableIndex(seedRing)
	if _, _, _, ok := m.FindClosestPoint(common.Vec3{0.3, 5, -0.7}, common.Vec3{}, true); !ok {
		t.Errorf("expected onlyMarked search to succeed once the seed ring is marked")
	}
}

func TestFindClosestRingIndexEmptyManifoldFails(t *testing.T) {
	m := New(testSettings(t), flatScene(), zap.NewNop())
	// A build over a region with no floor corners at all (far above the
	// flat plane, out of raycast range) yields zero rings.
	if err := m.Update(CellCoord{X: 0, Z: 0}, CellCoord{X: 1, Z: 1}, 100, 101); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(m.Rings) != 0 {
		t.Fatalf("expected zero rings with no reachable floor, got %d", len(m.Rings))
	}
	if _, ok := m.FindClosestRingIndex(common.Vec3{}, common.Vec3{}, false); ok {
		t.Errorf("expected FindClosestRingIndex to fail on a ring-less manifold")
	}
}
