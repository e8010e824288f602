package components

import "github.com/pthm-cable/birdies/config"

// Species tags a bird as prey or predator.
type Species uint8

const (
	SpeciesPrey Species = iota
	SpeciesPredator
	numSpecies
)

// String returns the species name.
func (s Species) String() string {
	switch s {
	case SpeciesPrey:
		return "prey"
	case SpeciesPredator:
		return "predator"
	default:
		return "unknown"
	}
}

// Capabilities holds the behavioural constants of a species.
type Capabilities struct {
	CanKill     bool
	CanBeKilled bool
	HasEnergy   bool
	SizeRatio   float64 // relative to the base bird size
	SpeedRatio  float64 // applied to the initial velocity
}

var capabilityTable = [numSpecies]Capabilities{
	SpeciesPrey:     {CanBeKilled: true, SizeRatio: 1.0, SpeedRatio: 1.0},
	SpeciesPredator: {CanKill: true, HasEnergy: true, SizeRatio: 2.0, SpeedRatio: 0.6},
}

// CapabilitiesOf returns the built-in capabilities of a species.
func CapabilitiesOf(s Species) Capabilities {
	if s >= numSpecies {
		return Capabilities{SizeRatio: 1, SpeedRatio: 1}
	}
	return capabilityTable[s]
}

// CapabilitiesFromConfig returns capabilities with ratios taken from config.
func CapabilitiesFromConfig(s Species, cfg *config.SpeciesConfig) Capabilities {
	caps := CapabilitiesOf(s)
	traits := cfg.Prey
	if s == SpeciesPredator {
		traits = cfg.Predator
	}
	caps.SizeRatio = traits.SizeRatio
	caps.SpeedRatio = traits.SpeedRatio
	return caps
}

// CanKill reports whether birds of this species hunt.
func (s Species) CanKill() bool { return CapabilitiesOf(s).CanKill }

// CanBeKilled reports whether birds of this species are hunted.
func (s Species) CanBeKilled() bool { return CapabilitiesOf(s).CanBeKilled }

// HasEnergy reports whether birds of this species carry an Energy component.
func (s Species) HasEnergy() bool { return CapabilitiesOf(s).HasEnergy }
