package settings

import (
	"errors"
	"testing"

	"github.com/Amarcolina/WalkManifold/common"
)

func validParams() Params {
	return Params{
		AgentRadius:            0.2,
		AgentHeight:            1.0,
		StepHeight:             0.35,
		MaxSurfaceAngleDegrees: 45,
		CellSize:               1,
	}
}

func TestNewRejectsNonPositiveAgentRadius(t *testing.T) {
	p := validParams()
	p.AgentRadius = 0
	if _, err := New(p); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewRejectsNonPositiveAgentHeight(t *testing.T) {
	p := validParams()
	p.AgentHeight = -1
	if _, err := New(p); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewRejectsNegativeStepHeight(t *testing.T) {
	p := validParams()
	p.StepHeight = -0.1
	if _, err := New(p); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewRejectsOutOfRangeAngle(t *testing.T) {
	p := validParams()
	p.MaxSurfaceAngleDegrees = 91
	if _, err := New(p); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewClampsCellSize(t *testing.T) {
	p := validParams()
	p.CellSize = 0
	s, err := New(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CellSize != minCellSize {
		t.Errorf("CellSize = %v, want clamp to %v", s.CellSize, minCellSize)
	}
}

func TestNewDerivesThreshold(t *testing.T) {
	p := validParams()
	p.MaxSurfaceAngleDegrees = 0
	s, err := New(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SurfaceNormalYThreshold < 0.999 {
		t.Errorf("a zero-degree max angle should demand a near-vertical normal, got threshold %v", s.SurfaceNormalYThreshold)
	}
}

func TestNewDerivesRelevantLayers(t *testing.T) {
	p := validParams()
	p.WalkableLayers = 1 << 0
	p.BlockingLayers = 1 << 1
	s, err := New(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.RelevantLayers != 0b11 {
		t.Errorf("RelevantLayers = %v, want union of walkable and blocking", s.RelevantLayers)
	}
}

func TestCapsuleEndpoints(t *testing.T) {
	p := validParams()
	s, err := New(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ground := common.Vec3{1, 2, 3}
	a, b := s.CapsuleEndpoints(ground)
	if a.Y() != ground.Y()+s.StepHeight+s.AgentRadius {
		t.Errorf("capsule bottom wrong: %v", a)
	}
	if b.Y() != ground.Y()+s.AgentHeight-s.AgentRadius {
		t.Errorf("capsule top wrong: %v", b)
	}
	if a.X() != ground.X() || a.Z() != ground.Z() {
		t.Errorf("capsule endpoint should keep the XZ of the ground point")
	}
}
