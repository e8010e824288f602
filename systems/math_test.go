package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestInFrontalCone(t *testing.T) {
	cone := 100 * math.Pi / 180
	deg := math.Pi / 180

	tests := []struct {
		name    string
		bearing float64
		heading float64
		want    bool
	}{
		{"dead ahead", 0, 0, true},
		{"just inside left", 49 * deg, 0, true},
		{"just outside left", 51 * deg, 0, false},
		{"just inside right", -49 * deg, 0, true},
		{"just outside right", -51 * deg, 0, false},
		{"behind", math.Pi, 0, false},
		{"wraps past zero", 355 * deg, 10 * deg, true},
		{"heading west", math.Pi - 0.1, math.Pi, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InFrontalCone(tt.bearing, tt.heading, cone); got != tt.want {
				t.Errorf("InFrontalCone(%.3f, %.3f) = %v, want %v", tt.bearing, tt.heading, got, tt.want)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAngle(%.3f) = %.6f, want %.6f", tt.in, got, tt.want)
		}
	}
}

func TestRoundVecHalfToEven(t *testing.T) {
	got := RoundVec(r2.Vec{X: 2.5, Y: -2.5})
	if got.X != 2 || got.Y != -2 {
		t.Errorf("RoundVec(2.5, -2.5) = %v, want (2, -2)", got)
	}
	got = RoundVec(r2.Vec{X: 3.5, Y: 0.49})
	if got.X != 4 || got.Y != 0 {
		t.Errorf("RoundVec(3.5, 0.49) = %v, want (4, 0)", got)
	}
}

func TestRandomUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 100 {
		v := RandomUnit(rng)
		if n := r2.Norm(v); math.Abs(n-1) > 1e-9 {
			t.Fatalf("RandomUnit norm = %f, want 1", n)
		}
	}
}

func TestBearingAndHeading(t *testing.T) {
	if got := Bearing(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 100, Y: 110}); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("Bearing down = %f, want Pi/2", got)
	}
	if got := Heading(r2.Vec{}); got != 0 {
		t.Errorf("Heading of zero velocity = %f, want 0", got)
	}
	if got := Distance(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 3, Y: 4}); got != 5 {
		t.Errorf("Distance = %f, want 5", got)
	}
}
