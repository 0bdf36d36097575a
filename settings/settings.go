// Package settings holds the immutable per-build configuration consumed by
// every stage of the manifold pipeline (C2 in the design). It mirrors the
// shape of the teacher's recast.RcConfig: a plain value struct with
// documented per-field limits, constructed once through a validating
// factory rather than built up field by field.
package settings

import (
	"errors"
	"math"

	"github.com/Amarcolina/WalkManifold/common"
	"github.com/Amarcolina/WalkManifold/physics"
)

// ErrInvalidConfig is returned by New when a field is out of range in a way
// that cannot be silently clamped (spec.md §7: InvalidConfig).
var ErrInvalidConfig = errors.New("walkmanifold: invalid config")

const minCellSize = 0.01

// Settings is the immutable configuration for one agent/build combination.
type Settings struct {
	AgentRadius              float32
	AgentHeight              float32
	StepHeight               float32
	MaxSurfaceAngleDegrees   float32
	CellSize                 float32
	EdgeReconstruction       bool
	CornerReconstruction     bool
	ReconstructionIterations uint32
	WalkableLayers           physics.LayerMask
	BlockingLayers           physics.LayerMask
	SyncPhysicsOnUpdate      bool

	// Derived fields, computed once by New.
	RelevantLayers          physics.LayerMask
	SurfaceNormalYThreshold float32
}

// Params is the raw, unvalidated input to New. It exists so callers (and
// the YAML adapter in settingsfile) have a plain serializable struct to
// populate before validation runs.
type Params struct {
	AgentRadius              float32
	AgentHeight              float32
	StepHeight               float32
	MaxSurfaceAngleDegrees   float32
	CellSize                 float32
	EdgeReconstruction       bool
	CornerReconstruction     bool
	ReconstructionIterations uint32
	WalkableLayers           physics.LayerMask
	BlockingLayers           physics.LayerMask
	SyncPhysicsOnUpdate      bool
}

// New validates p and returns the derived Settings. agent_radius,
// agent_height must be strictly positive; step_height must be
// non-negative; max_surface_angle_degrees must fall in [0, 90]. Those four
// are rejected with ErrInvalidConfig rather than clamped. cell_size is
// clamped to at least 0.01; reconstruction_iterations is unsigned, so it
// needs no lower clamp and is taken as given.
func New(p Params) (Settings, error) {
	if p.AgentRadius <= 0 {
		return Settings{}, errors.Join(ErrInvalidConfig, errors.New("agent_radius must be > 0"))
	}
	if p.AgentHeight <= 0 {
		return Settings{}, errors.Join(ErrInvalidConfig, errors.New("agent_height must be > 0"))
	}
	if p.StepHeight < 0 {
		return Settings{}, errors.Join(ErrInvalidConfig, errors.New("step_height must be >= 0"))
	}
	if p.MaxSurfaceAngleDegrees < 0 || p.MaxSurfaceAngleDegrees > 90 {
		return Settings{}, errors.Join(ErrInvalidConfig, errors.New("max_surface_angle_degrees must be in [0, 90]"))
	}

	cellSize := p.CellSize
	if cellSize < minCellSize {
		cellSize = minCellSize
	}

	s := Settings{
		AgentRadius:              p.AgentRadius,
		AgentHeight:              p.AgentHeight,
		StepHeight:               p.StepHeight,
		MaxSurfaceAngleDegrees:   p.MaxSurfaceAngleDegrees,
		CellSize:                 cellSize,
		EdgeReconstruction:       p.EdgeReconstruction,
		CornerReconstruction:     p.CornerReconstruction,
		ReconstructionIterations: p.ReconstructionIterations,
		WalkableLayers:           p.WalkableLayers,
		BlockingLayers:           p.BlockingLayers,
		SyncPhysicsOnUpdate:      p.SyncPhysicsOnUpdate,
	}
	s.RelevantLayers = p.WalkableLayers | p.BlockingLayers
	s.SurfaceNormalYThreshold = float32(math.Cos(float64(p.MaxSurfaceAngleDegrees) * math.Pi / 180))
	return s, nil
}

// CapsuleEndpoints returns the two endpoints of the headroom capsule
// standing on ground, per spec.md §4.1: the capsule runs from
// stepHeight+radius up to agentHeight-radius above the ground point.
func (s Settings) CapsuleEndpoints(ground common.Vec3) (a, b common.Vec3) {
	a = common.Vec3{ground[0], ground[1] + s.StepHeight + s.AgentRadius, ground[2]}
	b = common.Vec3{ground[0], ground[1] + s.AgentHeight - s.AgentRadius, ground[2]}
	return a, b
}
