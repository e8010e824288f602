// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen          ScreenConfig     `yaml:"screen"`
	Field           FieldConfig      `yaml:"field"`
	Population      PopulationConfig `yaml:"population"`
	Zones           ZonesConfig      `yaml:"zones"`
	Motion          MotionConfig     `yaml:"motion"`
	Species         SpeciesConfig    `yaml:"species"`
	Energy          EnergyConfig     `yaml:"energy"`
	RestrictedAreas []RectConfig     `yaml:"restricted_areas"`
	Placement       PlacementConfig  `yaml:"placement"`
	Parallel        ParallelConfig   `yaml:"parallel"`
	Telemetry       TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds the field dimensions.
// The right-most PanelWidth units are reserved for the control panel and are
// treated as outside the field by boundary avoidance.
type FieldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PanelWidth float64 `yaml:"panel_width"`
}

// PopulationConfig holds the initial population composition.
type PopulationConfig struct {
	NumBirds      int     `yaml:"num_birds"`
	PredatorRatio float64 `yaml:"predator_ratio"`
}

// ZonesConfig holds the initial zone radii and the spatial grid cell size.
type ZonesConfig struct {
	CollisionRadius   float64 `yaml:"collision_radius"`
	InteractionRadius float64 `yaml:"interaction_radius"`
	CellSize          float64 `yaml:"cell_size"`
}

// MotionConfig holds flocking and motion constants.
type MotionConfig struct {
	Inertia          float64 `yaml:"inertia"`
	ShiftToBuddy     float64 `yaml:"shift_to_buddy"`
	SpeedAdjustment  float64 `yaml:"speed_adjustment"`
	AvoidStrength    float64 `yaml:"avoid_strength"`
	NoiseSigma       float64 `yaml:"noise_sigma"`
	Jitter           float64 `yaml:"jitter"`
	SpeedReduction   float64 `yaml:"speed_reduction"`
	AlignmentFalloff bool    `yaml:"alignment_falloff"`
	SmoothTurning    bool    `yaml:"smooth_turning"`
	MaxTurnDeg       float64 `yaml:"max_turn_deg"`
	InitialSpeed     float64 `yaml:"initial_speed"` // initial velocity components drawn from [-v, v]
	ConeDeg          float64 `yaml:"cone_deg"`      // frontal cone width
}

// SpeciesConfig holds per-species ratios.
type SpeciesConfig struct {
	BaseSize float64      `yaml:"base_size"`
	Prey     SpeciesTraits `yaml:"prey"`
	Predator SpeciesTraits `yaml:"predator"`
}

// SpeciesTraits holds size and speed ratios relative to the base bird.
type SpeciesTraits struct {
	SizeRatio  float64 `yaml:"size_ratio"`
	SpeedRatio float64 `yaml:"speed_ratio"`
}

// EnergyConfig holds the predator energy constants.
type EnergyConfig struct {
	Initial      float64 `yaml:"initial"`
	LossInterval int     `yaml:"loss_interval"` // ticks between energy losses
	LossAmount   float64 `yaml:"loss_amount"`
	SpeedCost    float64 `yaml:"speed_cost"` // extra cost per unit of speed above BaseSpeed
	BaseSpeed    float64 `yaml:"base_speed"`
}

// RectConfig is an axis-aligned restricted area.
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlacementConfig bounds random placement.
type PlacementConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// ParallelConfig controls the compute worker pool.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum live birds before the pool is used
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	HistoryLength int `yaml:"history_length"`
	StatsWindow   int `yaml:"stats_window"`
	PerfWindow    int `yaml:"perf_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PlayWidth    float64 // Field.Width minus the panel
	NumPredators int
	NumPrey      int
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and computes derived values.
// Ambiguous values are rejected, never clamped.
func (c *Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return invalid("field must have positive size, got %gx%g", c.Field.Width, c.Field.Height)
	}
	if c.Field.PanelWidth < 0 || c.Field.PanelWidth >= c.Field.Width {
		return invalid("panel_width %g leaves no usable field width %g", c.Field.PanelWidth, c.Field.Width)
	}
	if c.Population.NumBirds < 0 {
		return invalid("num_birds must not be negative, got %d", c.Population.NumBirds)
	}
	if c.Population.PredatorRatio < 0 || c.Population.PredatorRatio > 1 {
		return invalid("predator_ratio must be in [0,1], got %g", c.Population.PredatorRatio)
	}
	if c.Zones.CellSize <= 0 {
		return invalid("cell_size must be positive, got %g", c.Zones.CellSize)
	}
	if err := c.Params().Validate(c.Zones.CellSize); err != nil {
		return err
	}
	if c.Motion.NoiseSigma < 0 || c.Motion.Jitter < 0 {
		return invalid("noise_sigma and jitter must not be negative")
	}
	if c.Motion.SpeedReduction <= 0 {
		return invalid("speed_reduction must be positive, got %g", c.Motion.SpeedReduction)
	}
	if c.Motion.ConeDeg <= 0 || c.Motion.ConeDeg > 360 {
		return invalid("cone_deg must be in (0,360], got %g", c.Motion.ConeDeg)
	}
	if c.Motion.SmoothTurning && c.Motion.MaxTurnDeg <= 0 {
		return invalid("max_turn_deg must be positive when smooth_turning is on")
	}
	if c.Species.Prey.SpeedRatio <= 0 || c.Species.Predator.SpeedRatio <= 0 {
		return invalid("species speed ratios must be positive")
	}
	if c.Energy.Initial <= 0 {
		return invalid("energy.initial must be positive, got %g", c.Energy.Initial)
	}
	if c.Energy.LossInterval <= 0 {
		return invalid("energy.loss_interval must be positive, got %d", c.Energy.LossInterval)
	}
	if c.Energy.LossAmount < 0 || c.Energy.SpeedCost < 0 {
		return invalid("energy costs must not be negative")
	}
	for i, r := range c.RestrictedAreas {
		if r.Width <= 0 || r.Height <= 0 {
			return invalid("restricted area %d has non-positive size %gx%g", i, r.Width, r.Height)
		}
	}
	if c.Placement.MaxAttempts <= 0 {
		return invalid("placement.max_attempts must be positive, got %d", c.Placement.MaxAttempts)
	}
	if c.Telemetry.HistoryLength <= 0 || c.Telemetry.StatsWindow <= 0 {
		return invalid("telemetry history_length and stats_window must be positive")
	}

	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.PlayWidth = c.Field.Width - c.Field.PanelWidth
	c.Derived.NumPredators = int(float64(c.Population.NumBirds) * c.Population.PredatorRatio)
	c.Derived.NumPrey = c.Population.NumBirds - c.Derived.NumPredators
}

// Params returns the initial live parameters.
func (c *Config) Params() Params {
	return Params{
		Inertia:           c.Motion.Inertia,
		CollisionRadius:   c.Zones.CollisionRadius,
		InteractionRadius: c.Zones.InteractionRadius,
		ShiftToBuddy:      c.Motion.ShiftToBuddy,
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.RestrictedAreas = append([]RectConfig(nil), c.RestrictedAreas...)
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
