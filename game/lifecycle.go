package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/systems"
)

// spawnPopulation creates every bird. Predators take the lowest indices.
func (g *Game) spawnPopulation() error {
	cfg := g.cfg
	g.entities = make([]ecs.Entity, 0, cfg.Population.NumBirds)

	for i := 0; i < cfg.Population.NumBirds; i++ {
		species := components.SpeciesPrey
		if i < cfg.Derived.NumPredators {
			species = components.SpeciesPredator
		}

		pos, vel, err := g.drawStart(species)
		if err != nil {
			return fmt.Errorf("spawning bird %d: %w", i, err)
		}
		bird := components.Bird{Index: i, Species: species, Alive: true}

		if species.HasEnergy() {
			energy := g.freshEnergy()
			g.entities = append(g.entities, g.predMapper.NewEntity(&pos, &vel, &bird, &energy))
		} else {
			g.entities = append(g.entities, g.preyMapper.NewEntity(&pos, &vel, &bird))
		}
	}
	return nil
}

// drawStart draws a free position and an initial velocity for a bird.
func (g *Game) drawStart(species components.Species) (components.Position, components.Velocity, error) {
	p, err := systems.PlaceOutside(g.rng, g.bounds, g.boxes, g.cfg.Placement.MaxAttempts)
	if err != nil {
		return components.Position{}, components.Velocity{}, err
	}

	caps := components.CapabilitiesFromConfig(species, &g.cfg.Species)
	v := r2.Vec{
		X: (g.rng.Float64()*2 - 1) * g.cfg.Motion.InitialSpeed,
		Y: (g.rng.Float64()*2 - 1) * g.cfg.Motion.InitialSpeed,
	}
	v = r2.Scale(caps.SpeedRatio, v)

	return components.Position{X: p.X, Y: p.Y},
		components.Velocity{X: v.X, Y: v.Y, LastX: v.X, LastY: v.Y},
		nil
}

type birdStart struct {
	pos components.Position
	vel components.Velocity
}

func (g *Game) freshEnergy() components.Energy {
	return components.Energy{Value: g.cfg.Energy.Initial, Max: g.cfg.Energy.Initial}
}

// Reset re-seeds every bird in place: new positions and velocities, full
// energy, everyone alive. Indices are kept. History, window counters,
// lifetimes, bookmarks and the tick counter start over.
//
// Every start is drawn before any bird is touched, so a placement failure
// leaves the game unchanged.
func (g *Game) Reset() error {
	starts := make([]birdStart, len(g.entities))
	for i, e := range g.entities {
		pos, vel, err := g.drawStart(g.birdMap.Get(e).Species)
		if err != nil {
			return fmt.Errorf("resetting bird %d: %w", i, err)
		}
		starts[i] = birdStart{pos: pos, vel: vel}
	}

	for i, e := range g.entities {
		bird := g.birdMap.Get(e)
		*g.posMap.Get(e) = starts[i].pos
		*g.velMap.Get(e) = starts[i].vel
		bird.Alive = true
		if g.energyMap.Has(e) {
			*g.energyMap.Get(e) = g.freshEnergy()
		}
	}

	g.tick = 0
	g.history.Reset()
	g.collector.Reset(0)
	g.lifetimes.Reset()
	g.bookmarks.Reset()
	g.marks = nil
	g.pending = g.pending[:0]
	g.updateCounts()

	g.logger.Info("game reset", "birds", len(g.entities))
	return nil
}

// PlaceBird moves bird i to the given position and velocity. A dead bird is
// revived, and a revived predator gets fresh energy. Used to set up
// scenarios.
func (g *Game) PlaceBird(i int, pos, vel r2.Vec) error {
	if i < 0 || i >= len(g.entities) {
		return fmt.Errorf("place bird: index %d out of range [0,%d)", i, len(g.entities))
	}
	e := g.entities[i]
	*g.posMap.Get(e) = components.Position{X: pos.X, Y: pos.Y}
	*g.velMap.Get(e) = components.Velocity{X: vel.X, Y: vel.Y, LastX: vel.X, LastY: vel.Y}

	bird := g.birdMap.Get(e)
	if !bird.Alive {
		bird.Alive = true
		if g.energyMap.Has(e) {
			*g.energyMap.Get(e) = g.freshEnergy()
		}
	}
	g.updateCounts()
	return nil
}
