package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestBlendInertia(t *testing.T) {
	got := BlendInertia(r2.Vec{X: 1}, r2.Vec{Y: 1}, 0.9)
	if !vecNear(got, r2.Vec{X: 0.9, Y: 0.1}) {
		t.Errorf("BlendInertia = %v, want (0.9, 0.1)", got)
	}
	if got := BlendInertia(r2.Vec{X: 1}, r2.Vec{Y: 1}, 0); !vecNear(got, r2.Vec{Y: 1}) {
		t.Errorf("zero inertia = %v, want proposal", got)
	}
}

func TestClampTurn(t *testing.T) {
	maxTurn := 5 * math.Pi / 180

	got := ClampTurn(r2.Vec{X: 1}, r2.Vec{Y: 2}, maxTurn)
	if h := Heading(got); math.Abs(h-maxTurn) > 1e-9 {
		t.Errorf("clamped heading = %f, want %f", h, maxTurn)
	}
	if n := r2.Norm(got); math.Abs(n-2) > 1e-9 {
		t.Errorf("clamped speed = %f, want 2", n)
	}

	got = ClampTurn(r2.Vec{X: 1}, r2.Vec{X: 1}, maxTurn)
	if !vecNear(got, r2.Vec{X: 1}) {
		t.Errorf("straight line altered: %v", got)
	}

	// Turning right clamps to a negative angle
	got = ClampTurn(r2.Vec{X: 1}, r2.Vec{X: 1, Y: -1}, maxTurn)
	if h := Heading(got); math.Abs(h+maxTurn) > 1e-9 {
		t.Errorf("clamped right turn = %f, want %f", h, -maxTurn)
	}

	if got := ClampTurn(r2.Vec{}, r2.Vec{Y: 1}, maxTurn); !vecNear(got, r2.Vec{Y: 1}) {
		t.Errorf("zero previous velocity = %v, want next unchanged", got)
	}
}

func TestPerturb(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := r2.Vec{X: 1, Y: 2}
	if got := Perturb(v, 0, 0, rng); got != v {
		t.Errorf("Perturb with zero noise = %v, want %v", got, v)
	}

	a := Perturb(v, 0.35, 0.1, rand.New(rand.NewSource(9)))
	b := Perturb(v, 0.35, 0.1, rand.New(rand.NewSource(9)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}
