package config

// Params holds the tunables a UI may change while the simulation runs.
// The core reads one copy per tick.
type Params struct {
	Inertia           float64
	CollisionRadius   float64
	InteractionRadius float64
	ShiftToBuddy      float64

	// ShowZones is rendering-only; the core never reads it.
	ShowZones bool
}

// Validate checks params against the grid cell size.
// The 3x3 neighbour query only sees one cell beyond the bird's own cell, so
// the interaction radius may not exceed two cell widths.
func (p Params) Validate(cellSize float64) error {
	if p.Inertia < 0 || p.Inertia > 1 {
		return invalid("inertia must be in [0,1], got %g", p.Inertia)
	}
	if p.CollisionRadius <= 0 {
		return invalid("collision radius must be positive, got %g", p.CollisionRadius)
	}
	if p.InteractionRadius < p.CollisionRadius {
		return invalid("interaction radius %g is smaller than collision radius %g",
			p.InteractionRadius, p.CollisionRadius)
	}
	if p.InteractionRadius > 2*cellSize {
		return invalid("interaction radius %g exceeds twice the grid cell size %g",
			p.InteractionRadius, cellSize)
	}
	if p.ShiftToBuddy < 0 {
		return invalid("shift_to_buddy must not be negative, got %g", p.ShiftToBuddy)
	}
	return nil
}

// AvoidanceRadius is the distance at which border and obstacle forces start.
func (p Params) AvoidanceRadius() float64 {
	return 2 * p.CollisionRadius
}
