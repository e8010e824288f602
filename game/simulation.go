package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/systems"
	"github.com/pthm-cable/birdies/telemetry"
)

// Step advances the simulation by one tick.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	params := g.Params()
	rules := systems.NewRuleParams(params, &g.cfg.Motion)

	// 1. Snapshot and spatial grid
	g.perfCollector.StartPhase(telemetry.PhaseSpatialGrid)
	alive := g.buildSnapshot()

	// 2. Rules, possibly in parallel
	g.perfCollector.StartPhase(telemetry.PhaseRules)
	g.computeIntents(&rules, alive)

	// 3. Kills, first claimer wins
	g.perfCollector.StartPhase(telemetry.PhaseKills)
	g.commitKills()

	// 4-8. Velocity and position
	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	g.applyMotion(params.Inertia, params.AvoidanceRadius())

	// 9. Energy, then feeding
	g.perfCollector.StartPhase(telemetry.PhaseEnergy)
	g.updateEnergy()

	g.tick++

	// 10. Counts and telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.updateCounts()
	g.recordTelemetry()

	g.perfCollector.EndTick()
}

// Run advances the simulation by n ticks.
func (g *Game) Run(n int) {
	for range n {
		g.Step()
	}
}

// buildSnapshot copies every bird into the snapshot in index order and
// rebuilds the spatial grid from the live ones. Returns the live count.
func (g *Game) buildSnapshot() int {
	g.grid.Clear()
	snaps := g.parallel.snapshots[:0]
	alive := 0

	for i, e := range g.entities {
		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		bird := g.birdMap.Get(e)

		snaps = append(snaps, systems.BirdSnapshot{
			Index:   i,
			Species: bird.Species,
			Alive:   bird.Alive,
			Pos:     r2.Vec{X: pos.X, Y: pos.Y},
			Vel:     r2.Vec{X: vel.X, Y: vel.Y},
		})
		if bird.Alive {
			g.grid.Insert(i, pos.X, pos.Y)
			alive++
		}
	}

	g.parallel.snapshots = snaps
	return alive
}

// commitKills applies kill intents in index order. A prey already taken by
// a lower-indexed predator this tick is skipped, and only predators that
// actually caught something are queued for feeding.
func (g *Game) commitKills() {
	g.killers = g.killers[:0]

	for i := range g.parallel.intents {
		intent := &g.parallel.intents[i]
		caught := false
		for _, j := range intent.Kills {
			prey := g.entities[j]
			bird := g.birdMap.Get(prey)
			if !bird.Alive {
				continue
			}
			bird.Alive = false
			g.velMap.Get(prey).Stop()
			g.collector.RecordKill()
			g.pending = append(g.pending, telemetry.Event{Type: telemetry.EventKill, Bird: j, Killer: i})
			caught = true
		}
		if caught {
			g.killers = append(g.killers, i)
		}
	}
}

// applyMotion turns each live bird's intent into its new velocity and moves
// it. All random draws happen here, in index order.
func (g *Game) applyMotion(inertia, avoidRadius float64) {
	motion := &g.cfg.Motion
	maxTurn := motion.MaxTurnDeg * math.Pi / 180

	var collisions, alignments int
	for i, e := range g.entities {
		if !g.birdMap.Get(e).Alive {
			continue
		}
		intent := &g.parallel.intents[i]
		collisions += intent.Collisions
		alignments += intent.Alignments

		pos := g.posMap.Get(e)
		vel := g.velMap.Get(e)
		here := r2.Vec{X: pos.X, Y: pos.Y}
		last := r2.Vec{X: vel.LastX, Y: vel.LastY}

		proposed := intent.Proposed
		for range intent.Overlapping {
			proposed = r2.Sub(proposed, r2.Scale(motion.AvoidStrength, systems.RandomUnit(g.rng)))
		}

		v := systems.BlendInertia(last, proposed, inertia)
		v = systems.Perturb(v, motion.NoiseSigma, motion.Jitter, g.rng)
		v = r2.Scale(motion.SpeedReduction, v)

		speed := r2.Norm(v)
		v = r2.Add(v, systems.BorderForce(here, speed, g.bounds, avoidRadius))
		for _, box := range g.boxes {
			v = r2.Add(v, systems.ObstacleForce(here, speed, box, avoidRadius, g.rng))
		}

		if motion.SmoothTurning {
			v = systems.ClampTurn(last, v, maxTurn)
		}

		*vel = components.Velocity{X: v.X, Y: v.Y, LastX: v.X, LastY: v.Y}

		step := systems.RoundVec(v)
		pos.X += step.X
		pos.Y += step.Y
	}

	g.collector.RecordInteractions(collisions, alignments)
}

// updateEnergy runs the energy cycle for every predator, then feeds the
// predators that caught prey this tick.
func (g *Game) updateEnergy() {
	query := g.predFilter.Query()
	for query.Next() {
		bird, energy := query.Get()
		if !bird.Alive {
			continue
		}

		vel := g.velMap.Get(query.Entity())
		if systems.UpdateEnergy(energy, bird, vel.Speed(), g.energyParams) {
			vel.Stop()
			g.collector.RecordStarvation()
			g.pending = append(g.pending, telemetry.Event{Type: telemetry.EventStarvation, Bird: bird.Index, Killer: -1})
			g.logger.Debug("predator starved", "index", bird.Index, "tick", g.tick)
		}
	}

	for _, i := range g.killers {
		e := g.entities[i]
		if g.energyMap.Has(e) {
			systems.Feed(g.energyMap.Get(e), g.birdMap.Get(e))
		}
	}
}

// updateCounts recounts the population and pins dead birds in place.
func (g *Game) updateCounts() {
	var c telemetry.Counts
	for _, e := range g.entities {
		bird := g.birdMap.Get(e)
		if !bird.Alive {
			g.velMap.Get(e).Stop()
		}

		switch {
		case bird.Species == components.SpeciesPredator && bird.Alive:
			c.Predators++
		case bird.Species == components.SpeciesPredator:
			c.DeadPredators++
		case bird.Alive:
			c.Prey++
		default:
			c.DeadPrey++
		}
	}
	g.counts = c
}
