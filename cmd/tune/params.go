package main

import (
	"github.com/pthm-cable/birdies/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Path    string // config path for logging
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters, with
// defaults taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	maxInteraction := 2 * base.Zones.CellSize
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "inertia", Path: "motion.inertia", Min: 0.5, Max: 0.99, Default: base.Motion.Inertia},
			{Name: "shift_to_buddy", Path: "motion.shift_to_buddy", Min: 0, Max: 1.5, Default: base.Motion.ShiftToBuddy},
			{Name: "collision_radius", Path: "zones.collision_radius", Min: 5, Max: 30, Default: base.Zones.CollisionRadius},
			{Name: "interaction_radius", Path: "zones.interaction_radius", Min: 10, Max: maxInteraction, Default: base.Zones.InteractionRadius},
			{Name: "avoid_strength", Path: "motion.avoid_strength", Min: 0.05, Max: 0.6, Default: base.Motion.AvoidStrength},
			{Name: "noise_sigma", Path: "motion.noise_sigma", Min: 0, Max: 0.6, Default: base.Motion.NoiseSigma},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values, clamped to bounds.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return pv.Clamp(v)
}

// Normalize converts raw parameter values to the [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg. Order must match Specs.
// The interaction radius is raised to the collision radius when the search
// proposes a smaller one.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Motion.Inertia = c[0]
	cfg.Motion.ShiftToBuddy = c[1]
	cfg.Zones.CollisionRadius = c[2]
	cfg.Zones.InteractionRadius = max(c[3], c[2])
	cfg.Motion.AvoidStrength = c[4]
	cfg.Motion.NoiseSigma = c[5]
}
