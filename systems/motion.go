package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Perturb adds Gaussian noise with the given sigma to each component,
// followed by uniform jitter in [-jitter, jitter].
func Perturb(v r2.Vec, sigma, jitter float64, rng *rand.Rand) r2.Vec {
	v.X += rng.NormFloat64() * sigma
	v.Y += rng.NormFloat64() * sigma
	v.X += (rng.Float64()*2 - 1) * jitter
	v.Y += (rng.Float64()*2 - 1) * jitter
	return v
}

// BlendInertia mixes the previous velocity with the proposed one.
func BlendInertia(last, proposed r2.Vec, inertia float64) r2.Vec {
	return r2.Add(r2.Scale(inertia, last), r2.Scale(1-inertia, proposed))
}

// ClampTurn limits the change of heading from prev to next to maxTurn
// radians, keeping next's speed. Zero velocities are returned unchanged.
func ClampTurn(prev, next r2.Vec, maxTurn float64) r2.Vec {
	if r2.Norm(prev) == 0 || r2.Norm(next) == 0 {
		return next
	}

	delta := normalizeAngle(Heading(next) - Heading(prev))
	if math.Abs(delta) <= maxTurn {
		return next
	}

	turn := math.Copysign(maxTurn, delta)
	return r2.Scale(r2.Norm(next), r2.Unit(r2.Rotate(prev, turn, r2.Vec{})))
}
