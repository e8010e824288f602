package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/config"
)

// Bounds is the usable field, from the origin to (Width, Height).
type Bounds struct {
	Width, Height float64
}

// BoxFromConfig converts a restricted area to a box.
func BoxFromConfig(rc config.RectConfig) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: rc.X, Y: rc.Y},
		Max: r2.Vec{X: rc.X + rc.Width, Y: rc.Y + rc.Height},
	}
}

// avoidBase is the push magnitude at distance d from a boundary:
// full strength at or past the boundary, a linear ramp within radius.
func avoidBase(d, radius float64) float64 {
	if d <= 0 {
		return 1
	}
	if d < radius {
		return (1 - d/radius) * 0.5
	}
	return 0
}

// BorderForce returns the push back into the field from all four borders.
// The push scales with speed once speed exceeds 1.
func BorderForce(pos r2.Vec, speed float64, b Bounds, radius float64) r2.Vec {
	mult := math.Max(1, speed)

	var f r2.Vec
	f.X += avoidBase(pos.X, radius) * mult
	f.X -= avoidBase(b.Width-pos.X, radius) * mult
	f.Y += avoidBase(pos.Y, radius) * mult
	f.Y -= avoidBase(b.Height-pos.Y, radius) * mult
	return f
}

// ObstacleForce returns the push away from a restricted area.
// Outside the box the push points away from the closest boundary point.
// Inside, it points out through the nearest edge at full strength.
// A bird exactly on the boundary gets a random direction.
func ObstacleForce(pos r2.Vec, speed float64, box r2.Box, radius float64, rng *rand.Rand) r2.Vec {
	mult := math.Max(1, speed)

	if insideBox(pos, box) {
		return r2.Scale(mult, exitDirection(pos, box))
	}

	closest := r2.Vec{
		X: clampFloat(pos.X, box.Min.X, box.Max.X),
		Y: clampFloat(pos.Y, box.Min.Y, box.Max.Y),
	}
	away := r2.Sub(pos, closest)
	d := r2.Norm(away)
	if d >= radius {
		return r2.Vec{}
	}
	if d == 0 {
		return r2.Scale(mult, RandomUnit(rng))
	}
	return r2.Scale(avoidBase(d, radius)*mult/d, away)
}

// insideBox reports whether p lies strictly inside box.
func insideBox(p r2.Vec, box r2.Box) bool {
	return p.X > box.Min.X && p.X < box.Max.X && p.Y > box.Min.Y && p.Y < box.Max.Y
}

// exitDirection returns the unit axis pointing out through the nearest edge.
func exitDirection(p r2.Vec, box r2.Box) r2.Vec {
	dir := r2.Vec{X: -1}
	best := p.X - box.Min.X
	if d := box.Max.X - p.X; d < best {
		best, dir = d, r2.Vec{X: 1}
	}
	if d := p.Y - box.Min.Y; d < best {
		best, dir = d, r2.Vec{Y: -1}
	}
	if d := box.Max.Y - p.Y; d < best {
		dir = r2.Vec{Y: 1}
	}
	return dir
}

// Contains reports whether p lies inside box or on its boundary.
func Contains(box r2.Box, p r2.Vec) bool {
	return p.X >= box.Min.X && p.X <= box.Max.X && p.Y >= box.Min.Y && p.Y <= box.Max.Y
}
