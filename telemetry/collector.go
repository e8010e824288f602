package telemetry

// Collector accumulates events within windows of ticks and produces
// WindowStats.
type Collector struct {
	windowTicks int32

	windowStartTick int32

	// Event counters for current window
	kills        int
	starvations  int
	collisions   int
	alignments   int
	predatorTick int // sum of living predators over the window's ticks
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// RecordKill records a prey caught by a predator.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordStarvation records a predator starving.
func (c *Collector) RecordStarvation() {
	c.starvations++
}

// RecordInteractions adds the collision and alignment counts of one tick.
func (c *Collector) RecordInteractions(collisions, alignments int) {
	c.collisions += collisions
	c.alignments += alignments
}

// RecordPredators adds the number of living predators during one tick.
func (c *Collector) RecordPredators(n int) {
	c.predatorTick += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// WindowSample holds the per-bird values measured at window end.
type WindowSample struct {
	Counts         Counts
	PredEnergies   []float64
	PreySpeeds     []float64
	PredatorSpeeds []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s WindowSample) WindowStats {
	var killRate float64
	if c.predatorTick > 0 {
		killRate = float64(c.kills) / float64(c.predatorTick)
	}

	es := ComputeEnergyStats(s.PredEnergies)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		PreyCount: s.Counts.Prey,
		PredCount: s.Counts.Predators,

		Kills:       c.kills,
		Starvations: c.starvations,
		Collisions:  c.collisions,
		Alignments:  c.alignments,
		KillRate:    killRate,

		PredEnergyMean: es.Mean,
		PredEnergyStd:  es.Std,
		PredEnergyP10:  es.P10,
		PredEnergyP50:  es.P50,
		PredEnergyP90:  es.P90,

		PreySpeedMean: Mean(s.PreySpeeds),
		PredSpeedMean: Mean(s.PredatorSpeeds),
	}

	c.Reset(currentTick)
	return stats
}

// Reset clears all counters and starts a new window at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.kills = 0
	c.starvations = 0
	c.collisions = 0
	c.alignments = 0
	c.predatorTick = 0
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
