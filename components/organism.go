// Package components defines ECS components for the simulation.
package components

import "math"

// Bird bundles identity and life state.
// Index is the bird's stable slot for the lifetime of the run.
type Bird struct {
	Index   int
	Species Species
	Alive   bool
}

// Energy tracks a predator's reserves. Prey entities do not carry it.
type Energy struct {
	Value float64
	Max   float64 // value restored by feeding
	Cycle int     // ticks since the last periodic loss
}

func hypot(x, y float64) float64 {
	return math.Hypot(x, y)
}
