package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/telemetry"
)

func TestApplyToConfigStaysValid(t *testing.T) {
	base := config.Default()
	pv := NewParamVector(base)

	tests := []struct {
		name string
		x    []float64
	}{
		{"lower bounds", []float64{0, 0, 0, 0, 0, 0}},
		{"upper bounds", []float64{1, 1, 1, 1, 1, 1}},
		{"beyond bounds", []float64{-3, 2, 5, -1, 9, -2}},
		{"interaction below collision", []float64{0.5, 0.5, 1, 0, 0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base.Clone()
			pv.ApplyToConfig(cfg, pv.Denormalize(tt.x))
			if err := cfg.Validate(); err != nil {
				t.Errorf("tuned config invalid: %v", err)
			}
		})
	}
}

func TestNormalizeInvertsDenormalize(t *testing.T) {
	pv := NewParamVector(config.Default())
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: %g -> %g", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestComputeQuality(t *testing.T) {
	ideal := telemetry.WindowStats{
		PreyCount:     50,
		PredCount:     5,
		KillRate:      targetKillRate,
		PredEnergyP50: 50,
		Alignments:    1_000_000,
	}

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		lo, hi  float64
	}{
		{"no windows", nil, 0, 0},
		{"only extinct windows", []telemetry.WindowStats{{PreyCount: 0, PredCount: 3}}, 0, 0},
		{"ideal", []telemetry.WindowStats{ideal}, 0.99, 1},
		{"no hunting", []telemetry.WindowStats{{PreyCount: 50, PredCount: 5, PredEnergyP50: 50}}, 0.29, 0.31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeQuality(tt.windows, 100)
			if got < tt.lo || got > tt.hi {
				t.Errorf("quality = %g, want in [%g, %g]", got, tt.lo, tt.hi)
			}
		})
	}
}

func TestEvaluateShortRun(t *testing.T) {
	base := config.Default()
	base.Population.NumBirds = 20
	base.Telemetry.StatsWindow = 50
	if err := base.Validate(); err != nil {
		t.Fatal(err)
	}

	pv := NewParamVector(base)
	fe := NewFitnessEvaluator(pv, 100, []int64{1, 2}, base)

	fitness := fe.Evaluate(pv.DefaultVector())
	if err := fe.LastError(); err != nil {
		t.Fatalf("evaluation error: %v", err)
	}
	if fitness > 0 || fitness < -100*1.2 {
		t.Errorf("fitness = %g, want in [-120, 0]", fitness)
	}
	if q := fe.LastQuality(); q < 0 || q > 1 {
		t.Errorf("quality = %g out of [0,1]", q)
	}
}
