package manifold

import (
	"github.com/Amarcolina/WalkManifold/physics"
	"github.com/Amarcolina/WalkManifold/settings"
)

// passesSurfaceAndLayer reports whether a hit's slope and layer satisfy the
// walkable-surface conditions shared by pole sampling (C3) and true-edge
// reconstruction (C5): spec.md §4.3 steps 5 and §4.5's true_edge both check
// "slope, walkable-layer" identically.
func passesSurfaceAndLayer(hit physics.Hit, cfg settings.Settings) bool {
	return hit.Normal.Y() >= cfg.SurfaceNormalYThreshold && cfg.WalkableLayers.Has(hit.Layer)
}

// standable reports whether the agent's headroom capsule at hit.Point is
// unoccupied, per spec.md §4.1/§4.3.
func standable(port physics.Port, hit physics.Hit, cfg settings.Settings) bool {
	a, b := cfg.CapsuleEndpoints(hit.Point)
	return !port.CapsuleOccupied(a, b, cfg.AgentRadius, cfg.RelevantLayers)
}
