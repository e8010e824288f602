package systems

import (
	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/config"
)

// EnergyParams holds the predator energy constants.
type EnergyParams struct {
	Initial      float64
	LossInterval int
	LossAmount   float64
	SpeedCost    float64
	BaseSpeed    float64
}

// EnergyParamsFromConfig converts the energy config section.
func EnergyParamsFromConfig(cfg *config.EnergyConfig) EnergyParams {
	return EnergyParams{
		Initial:      cfg.Initial,
		LossInterval: cfg.LossInterval,
		LossAmount:   cfg.LossAmount,
		SpeedCost:    cfg.SpeedCost,
		BaseSpeed:    cfg.BaseSpeed,
	}
}

// EnergyState is the predator energy state.
type EnergyState uint8

const (
	EnergyFed EnergyState = iota
	EnergyDecaying
	EnergyStarved
)

func (s EnergyState) String() string {
	switch s {
	case EnergyFed:
		return "fed"
	case EnergyDecaying:
		return "decaying"
	case EnergyStarved:
		return "starved"
	default:
		return "unknown"
	}
}

// StateOf reports the energy state of a predator.
func StateOf(e components.Energy, alive bool) EnergyState {
	switch {
	case !alive || e.Value <= 0:
		return EnergyStarved
	case e.Value >= e.Max:
		return EnergyFed
	default:
		return EnergyDecaying
	}
}

// UpdateEnergy advances the loss cycle by one tick and applies the periodic
// loss when the cycle completes. Faster predators pay extra per unit of speed
// above the base speed. Returns true if the predator starved on this tick.
func UpdateEnergy(e *components.Energy, bird *components.Bird, speed float64, p EnergyParams) bool {
	if !bird.Alive {
		return false
	}

	e.Cycle++
	if e.Cycle < p.LossInterval {
		return false
	}
	e.Cycle = 0

	loss := p.LossAmount
	if speed > p.BaseSpeed {
		loss += (speed - p.BaseSpeed) * p.SpeedCost
	}
	e.Value -= loss

	if e.Value <= 0 {
		e.Value = 0
		bird.Alive = false
		return true
	}
	return false
}

// Feed restores a living predator to full energy. The loss cycle is kept.
func Feed(e *components.Energy, bird *components.Bird) {
	if !bird.Alive {
		return
	}
	e.Value = e.Max
}

// EnergyBand buckets an energy fraction for display.
type EnergyBand uint8

const (
	BandLow EnergyBand = iota
	BandMedium
	BandHigh
)

// BandOf returns the display band for value out of max:
// high above 70%, medium above 30%, low otherwise.
func BandOf(value, max float64) EnergyBand {
	if max <= 0 {
		return BandLow
	}
	frac := value / max
	switch {
	case frac > 0.7:
		return BandHigh
	case frac > 0.3:
		return BandMedium
	default:
		return BandLow
	}
}
