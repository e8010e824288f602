package game

import (
	"math"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/systems"
)

// BirdView is the read-only state of one bird for renderers.
type BirdView struct {
	Index     int
	X, Y      float64
	Heading   float64 // atan2(dy, dx)
	Species   components.Species
	Alive     bool
	Size      float64 // base size times the species size ratio
	HasEnergy bool
	Energy    float64
	MaxEnergy float64
	Kills     int
}

// EnergyBand returns the display band of the bird's energy.
func (v BirdView) EnergyBand() systems.EnergyBand {
	return systems.BandOf(v.Energy, v.MaxEnergy)
}

// EnergyState returns the predator energy state. Prey always report fed.
func (v BirdView) EnergyState() systems.EnergyState {
	if !v.HasEnergy {
		return systems.EnergyFed
	}
	return systems.StateOf(components.Energy{Value: v.Energy, Max: v.MaxEnergy}, v.Alive)
}

// View appends the state of every bird, in index order, to dst.
// Reuse dst across frames to avoid allocations.
func (g *Game) View(dst []BirdView) []BirdView {
	for i, e := range g.entities {
		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		bird := g.birdMap.Get(e)
		caps := components.CapabilitiesFromConfig(bird.Species, &g.cfg.Species)

		v := BirdView{
			Index:   i,
			X:       pos.X,
			Y:       pos.Y,
			Heading: math.Atan2(vel.Y, vel.X),
			Species: bird.Species,
			Alive:   bird.Alive,
			Size:    g.cfg.Species.BaseSize * caps.SizeRatio,
			Kills:   g.lifetimes.Get(i).Kills,
		}
		if g.energyMap.Has(e) {
			energy := g.energyMap.Get(e)
			v.HasEnergy = true
			v.Energy = energy.Value
			v.MaxEnergy = energy.Max
		}
		dst = append(dst, v)
	}
	return dst
}

// Len returns the number of birds, alive or dead.
func (g *Game) Len() int {
	return len(g.entities)
}
