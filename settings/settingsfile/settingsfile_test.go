package settingsfile

import (
	"path/filepath"
	"testing"

	"github.com/Amarcolina/WalkManifold/physics"
	"github.com/Amarcolina/WalkManifold/settings"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	want := settings.Params{
		AgentRadius:              0.25,
		AgentHeight:              1.1,
		StepHeight:               0.3,
		MaxSurfaceAngleDegrees:   42,
		CellSize:                 0.5,
		EdgeReconstruction:       true,
		CornerReconstruction:     false,
		ReconstructionIterations: 8,
		WalkableLayers:           physics.Layer(0),
		BlockingLayers:           physics.Layer(3),
		SyncPhysicsOnUpdate:      true,
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error loading a missing file")
	}
}
