package components

// Position represents a bird's field position.
// Values stay integral because motion adds rounded velocity.
type Position struct {
	X, Y float64
}

// Velocity represents a bird's velocity and the velocity committed on the
// previous tick, which inertia blends against.
type Velocity struct {
	X, Y         float64
	LastX, LastY float64
}

// Speed returns the magnitude of the current velocity.
func (v Velocity) Speed() float64 {
	return hypot(v.X, v.Y)
}

// Stop zeroes both current and last velocity.
func (v *Velocity) Stop() {
	*v = Velocity{}
}
