package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Field.Width != 1400 || cfg.Field.Height != 800 {
		t.Errorf("field = %gx%g, want 1400x800", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Derived.PlayWidth != 1200 {
		t.Errorf("PlayWidth = %g, want 1200", cfg.Derived.PlayWidth)
	}
	if cfg.Derived.NumPredators != 10 || cfg.Derived.NumPrey != 90 {
		t.Errorf("predators/prey = %d/%d, want 10/90", cfg.Derived.NumPredators, cfg.Derived.NumPrey)
	}
	if len(cfg.RestrictedAreas) != 3 {
		t.Errorf("restricted areas = %d, want 3", len(cfg.RestrictedAreas))
	}
	if cfg.Energy.Initial != 100 || cfg.Energy.LossInterval != 10 {
		t.Errorf("energy = %+v", cfg.Energy)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "birds.yaml")
	data := []byte("population:\n  num_birds: 2\n  predator_ratio: 0.5\nrestricted_areas: []\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Population.NumBirds != 2 {
		t.Errorf("NumBirds = %d, want 2", cfg.Population.NumBirds)
	}
	if cfg.Derived.NumPredators != 1 {
		t.Errorf("NumPredators = %d, want 1", cfg.Derived.NumPredators)
	}
	if len(cfg.RestrictedAreas) != 0 {
		t.Errorf("restricted areas = %d, want 0", len(cfg.RestrictedAreas))
	}
	// Untouched sections keep their defaults
	if cfg.Zones.CollisionRadius != 15 {
		t.Errorf("CollisionRadius = %g, want default 15", cfg.Zones.CollisionRadius)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"predator ratio above one", func(c *Config) { c.Population.PredatorRatio = 1.5 }},
		{"predator ratio negative", func(c *Config) { c.Population.PredatorRatio = -0.1 }},
		{"zero width field", func(c *Config) { c.Field.Width = 0 }},
		{"zero height field", func(c *Config) { c.Field.Height = 0 }},
		{"panel covers field", func(c *Config) { c.Field.PanelWidth = c.Field.Width }},
		{"interaction below collision", func(c *Config) { c.Zones.InteractionRadius = 10 }},
		{"inertia above one", func(c *Config) { c.Motion.Inertia = 1.2 }},
		{"cell too small", func(c *Config) { c.Zones.CellSize = 10 }},
		{"zero loss interval", func(c *Config) { c.Energy.LossInterval = 0 }},
		{"zero initial energy", func(c *Config) { c.Energy.Initial = 0 }},
		{"negative birds", func(c *Config) { c.Population.NumBirds = -1 }},
		{"empty restricted area", func(c *Config) { c.RestrictedAreas = []RectConfig{{X: 1, Y: 1}} }},
		{"no placement attempts", func(c *Config) { c.Placement.MaxAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	p := Default().Params()
	if err := p.Validate(50); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	p.InteractionRadius = 101
	if err := p.Validate(50); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("radius beyond two cells: err = %v", err)
	}

	if got := Default().Params().AvoidanceRadius(); got != 30 {
		t.Errorf("AvoidanceRadius = %g, want 30", got)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.NumBirds = 42
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Population.NumBirds != 42 {
		t.Errorf("NumBirds = %d, want 42", loaded.Population.NumBirds)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()

	clone.RestrictedAreas[0].Width = 1
	clone.Motion.Inertia = 0.1
	if cfg.RestrictedAreas[0].Width == 1 || cfg.Motion.Inertia == 0.1 {
		t.Error("editing the clone changed the original")
	}
}
