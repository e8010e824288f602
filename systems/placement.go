package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrPlacementFailed is returned when no free position was found.
var ErrPlacementFailed = errors.New("placement failed")

// PlaceOutside draws integer positions in the field until one lies outside
// every box, trying at most maxAttempts times.
func PlaceOutside(rng *rand.Rand, b Bounds, boxes []r2.Box, maxAttempts int) (r2.Vec, error) {
	w := int(b.Width)
	h := int(b.Height)

	for range maxAttempts {
		p := r2.Vec{X: float64(rng.Intn(w + 1)), Y: float64(rng.Intn(h + 1))}

		blocked := false
		for _, box := range boxes {
			if Contains(box, p) {
				blocked = true
				break
			}
		}
		if !blocked {
			return p, nil
		}
	}

	return r2.Vec{}, fmt.Errorf("%w: no free position after %d attempts", ErrPlacementFailed, maxAttempts)
}
