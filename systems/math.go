package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

const twoPi = 2 * math.Pi

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeHeading wraps a heading to [0, 2*Pi).
func normalizeHeading(h float64) float64 {
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(a float64) float64 {
	a = normalizeHeading(a)
	if a > math.Pi {
		a -= twoPi
	}
	return a
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Bearing returns the angle of the line from one point to another.
func Bearing(from, to r2.Vec) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Heading returns the direction of travel of a velocity.
// A zero velocity faces along +X.
func Heading(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// InFrontalCone reports whether bearing lies within a cone of the given
// full width centred on heading.
func InFrontalCone(bearing, heading, coneWidth float64) bool {
	half := coneWidth / 2
	diff := normalizeHeading(bearing - heading)
	return diff < half || diff > twoPi-half
}

// FromAngle returns the unit vector pointing at angle a.
func FromAngle(a float64) r2.Vec {
	return r2.Vec{X: math.Cos(a), Y: math.Sin(a)}
}

// RandomUnit returns a uniformly random unit vector.
func RandomUnit(rng *rand.Rand) r2.Vec {
	return FromAngle(rng.Float64() * twoPi)
}

// RoundVec rounds each component half to even.
func RoundVec(v r2.Vec) r2.Vec {
	return r2.Vec{X: math.RoundToEven(v.X), Y: math.RoundToEven(v.Y)}
}
