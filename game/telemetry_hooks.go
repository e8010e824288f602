package game

import (
	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/telemetry"
)

// recordTelemetry pushes the tick's counts into history and output, and
// flushes the stats window when it is due.
func (g *Game) recordTelemetry() {
	sample := telemetry.Sample{Tick: g.tick, Prey: g.counts.Prey, Predators: g.counts.Predators}
	g.history.Push(sample)
	if err := g.outputManager.WritePopulation(sample); err != nil {
		g.logger.Error("failed to write population", "error", err)
	}

	for i := range g.pending {
		g.pending[i].Tick = g.tick
		g.lifetimes.Record(g.pending[i])
	}
	if err := g.outputManager.WriteEvents(g.pending); err != nil {
		g.logger.Error("failed to write events", "error", err)
	}
	g.pending = g.pending[:0]

	g.collector.RecordPredators(g.counts.Predators)
	if g.collector.ShouldFlush(g.tick) {
		g.flushTelemetry()
	}
}

// flushTelemetry closes the current stats window.
func (g *Game) flushTelemetry() {
	stats := g.collector.Flush(g.tick, g.sampleWindow())
	perfStats := g.perfCollector.Stats()

	for _, b := range g.bookmarks.Check(stats) {
		g.marks = append(g.marks, b)
		g.logger.Info("bookmark", "bookmark", b)
	}

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		g.logger.Info("stats", "window", stats)
		g.logger.Info("perf", "perf", perfStats)
	}

	if err := g.outputManager.WriteWindow(stats); err != nil {
		g.logger.Error("failed to write window stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
}

// sampleWindow collects per-bird values for the window summary.
func (g *Game) sampleWindow() telemetry.WindowSample {
	s := telemetry.WindowSample{Counts: g.counts}

	for _, e := range g.entities {
		bird := g.birdMap.Get(e)
		if !bird.Alive {
			continue
		}
		speed := g.velMap.Get(e).Speed()
		if bird.Species == components.SpeciesPredator {
			s.PredatorSpeeds = append(s.PredatorSpeeds, speed)
		} else {
			s.PreySpeeds = append(s.PreySpeeds, speed)
		}
		if g.energyMap.Has(e) {
			s.PredEnergies = append(s.PredEnergies, g.energyMap.Get(e).Value)
		}
	}
	return s
}
