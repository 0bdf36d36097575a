// Package settingsfile persists settings.Params to and from YAML. It is
// deliberately outside the settings and manifold packages: spec.md §6 is
// explicit that the core mandates no file format, so this adapter is
// opt-in plumbing a host application can use (or not) without the core
// ever importing an encoding package.
//
// Grounded on the teacher module's indirect dependency on gopkg.in/yaml.v3
// (pulled in transitively through lumberjack) and on voxelcraft.ai's direct
// use of the same library for its own config files.
package settingsfile

import (
	"os"

	"github.com/Amarcolina/WalkManifold/physics"
	"github.com/Amarcolina/WalkManifold/settings"
	"gopkg.in/yaml.v3"
)

// document is the YAML-serializable mirror of settings.Params. Layer masks
// are persisted as plain uint64s rather than settings.Params's
// physics.LayerMask so this package never needs a custom yaml.Marshaler.
type document struct {
	AgentRadius              float32 `yaml:"agent_radius"`
	AgentHeight              float32 `yaml:"agent_height"`
	StepHeight               float32 `yaml:"step_height"`
	MaxSurfaceAngleDegrees   float32 `yaml:"max_surface_angle"`
	CellSize                 float32 `yaml:"cell_size"`
	EdgeReconstruction       bool    `yaml:"edge_reconstruction"`
	CornerReconstruction     bool    `yaml:"corner_reconstruction"`
	ReconstructionIterations uint32  `yaml:"reconstruction_iterations"`
	WalkableLayers           uint64  `yaml:"walkable_layers"`
	BlockingLayers           uint64  `yaml:"blocking_layers"`
	SyncPhysicsOnUpdate      bool    `yaml:"sync_physics_on_update"`
}

func toDocument(p settings.Params) document {
	return document{
		AgentRadius:              p.AgentRadius,
		AgentHeight:              p.AgentHeight,
		StepHeight:               p.StepHeight,
		MaxSurfaceAngleDegrees:   p.MaxSurfaceAngleDegrees,
		CellSize:                 p.CellSize,
		EdgeReconstruction:       p.EdgeReconstruction,
		CornerReconstruction:     p.CornerReconstruction,
		ReconstructionIterations: p.ReconstructionIterations,
		WalkableLayers:           uint64(p.WalkableLayers),
		BlockingLayers:           uint64(p.BlockingLayers),
		SyncPhysicsOnUpdate:      p.SyncPhysicsOnUpdate,
	}
}

func (d document) toParams() settings.Params {
	return settings.Params{
		AgentRadius:              d.AgentRadius,
		AgentHeight:              d.AgentHeight,
		StepHeight:               d.StepHeight,
		MaxSurfaceAngleDegrees:   d.MaxSurfaceAngleDegrees,
		CellSize:                 d.CellSize,
		EdgeReconstruction:       d.EdgeReconstruction,
		CornerReconstruction:     d.CornerReconstruction,
		ReconstructionIterations: d.ReconstructionIterations,
		WalkableLayers:           physics.LayerMask(d.WalkableLayers),
		BlockingLayers:           physics.LayerMask(d.BlockingLayers),
		SyncPhysicsOnUpdate:      d.SyncPhysicsOnUpdate,
	}
}

// Load reads and parses a YAML settings document from path.
func Load(path string) (settings.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return settings.Params{}, err
	}
	var d document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return settings.Params{}, err
	}
	return d.toParams(), nil
}

// Save writes p to path as YAML, creating or truncating the file.
func Save(path string, p settings.Params) error {
	data, err := yaml.Marshal(toDocument(p))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
