package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/config"
)

func TestAvoidBase(t *testing.T) {
	tests := []struct {
		d, want float64
	}{
		{-3, 1},
		{0, 1},
		{15, 0.25},
		{29.999, (1 - 29.999/30) * 0.5},
		{30, 0},
		{45, 0},
	}
	for _, tt := range tests {
		if got := avoidBase(tt.d, 30); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("avoidBase(%g, 30) = %g, want %g", tt.d, got, tt.want)
		}
	}
}

func TestBorderForce(t *testing.T) {
	b := Bounds{Width: 1200, Height: 800}

	tests := []struct {
		name  string
		pos   r2.Vec
		speed float64
		want  r2.Vec
	}{
		{"centre", r2.Vec{X: 600, Y: 400}, 1, r2.Vec{}},
		{"near left", r2.Vec{X: 10, Y: 400}, 0.5, r2.Vec{X: 1.0 / 3}},
		{"near right", r2.Vec{X: 1195, Y: 400}, 1, r2.Vec{X: -(1 - 5.0/30) * 0.5}},
		{"near top scaled by speed", r2.Vec{X: 600, Y: 10}, 2, r2.Vec{Y: 2.0 / 3}},
		{"past bottom", r2.Vec{X: 600, Y: 805}, 1, r2.Vec{Y: -1}},
		{"corner", r2.Vec{X: 0, Y: 0}, 1, r2.Vec{X: 1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BorderForce(tt.pos, tt.speed, b, 30)
			if !vecNear(got, tt.want) {
				t.Errorf("BorderForce = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObstacleForce(t *testing.T) {
	box := BoxFromConfig(config.RectConfig{X: 100, Y: 100, Width: 100, Height: 100})
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name string
		pos  r2.Vec
		want r2.Vec
	}{
		{"approaching left edge", r2.Vec{X: 90, Y: 150}, r2.Vec{X: -1.0 / 3}},
		{"approaching bottom edge", r2.Vec{X: 150, Y: 215}, r2.Vec{Y: 0.25}},
		{"far away", r2.Vec{X: 0, Y: 0}, r2.Vec{}},
		{"inside near left", r2.Vec{X: 110, Y: 150}, r2.Vec{X: -1}},
		{"inside near bottom", r2.Vec{X: 150, Y: 195}, r2.Vec{Y: 1}},
		{"inside near top", r2.Vec{X: 150, Y: 102}, r2.Vec{Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObstacleForce(tt.pos, 1, box, 30, rng)
			if !vecNear(got, tt.want) {
				t.Errorf("ObstacleForce = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObstacleForceOnEdge(t *testing.T) {
	box := BoxFromConfig(config.RectConfig{X: 100, Y: 100, Width: 100, Height: 100})
	rng := rand.New(rand.NewSource(3))

	got := ObstacleForce(r2.Vec{X: 100, Y: 150}, 2, box, 30, rng)
	if n := r2.Norm(got); math.Abs(n-2) > 1e-9 {
		t.Errorf("on-edge push magnitude = %f, want 2", n)
	}
}

func TestContains(t *testing.T) {
	box := r2.Box{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 10, Y: 10}}
	if !Contains(box, r2.Vec{X: 10, Y: 5}) {
		t.Error("boundary point should be contained")
	}
	if Contains(box, r2.Vec{X: 11, Y: 5}) {
		t.Error("outside point should not be contained")
	}
}
