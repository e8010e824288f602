package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
)

func TestRunHeadlessStopsAtMaxTicks(t *testing.T) {
	tests := []struct {
		name     string
		steps    int
		maxTicks int
	}{
		{"steps divide max", 5, 20},
		{"steps overshoot max", 7, 10},
		{"steps above max", 50, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Population.NumBirds = 10
			if err := cfg.Validate(); err != nil {
				t.Fatal(err)
			}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			g, err := game.NewGame(cfg, game.Options{Seed: 1, Logger: logger})
			if err != nil {
				t.Fatal(err)
			}
			defer g.Close()

			err = runHeadless(context.Background(), g, logger, options{maxTicks: tt.maxTicks, stepsPerUpdate: tt.steps})
			if err != nil {
				t.Fatal(err)
			}
			if int(g.Tick()) != tt.maxTicks {
				t.Errorf("stopped at tick %d, want %d", g.Tick(), tt.maxTicks)
			}
		})
	}
}
