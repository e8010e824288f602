// Package game owns the bird population and advances it one tick at a time.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/systems"
	"github.com/pthm-cable/birdies/telemetry"
)

// Options configures a Game beyond the static config.
type Options struct {
	Seed          int64
	OutputDir     string // empty disables CSV output
	LogStats      bool
	StatsCallback func(telemetry.WindowStats)
	Logger        *slog.Logger // nil uses slog.Default()
}

// Game holds the complete simulation state.
//
// Step, Reset and View must be called from one goroutine. SetParams and
// Params may be called from any goroutine; a tick reads one params copy at
// its start.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	seed   int64
	logger *slog.Logger

	world      *ecs.World
	preyMapper *ecs.Map3[components.Position, components.Velocity, components.Bird]
	predMapper *ecs.Map4[components.Position, components.Velocity, components.Bird, components.Energy]
	predFilter *ecs.Filter2[components.Bird, components.Energy]

	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	birdMap   *ecs.Map[components.Bird]
	energyMap *ecs.Map[components.Energy]

	// entities[i] is the bird with stable index i
	entities []ecs.Entity

	params atomic.Pointer[config.Params]

	grid         *systems.SpatialGrid
	bounds       systems.Bounds
	boxes        []r2.Box
	energyParams systems.EnergyParams

	parallel *parallelState
	killers  []int

	tick   int32
	counts telemetry.Counts

	history       *telemetry.History
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	lifetimes     *telemetry.LifetimeTracker
	bookmarks     *telemetry.BookmarkDetector
	marks         []telemetry.Bookmark
	pending       []telemetry.Event // deaths of the current tick, stamped on record
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGame creates a game with a freshly placed population.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		seed:   opts.Seed,
		logger: logger,
		world:  world,

		preyMapper: ecs.NewMap3[components.Position, components.Velocity, components.Bird](world),
		predMapper: ecs.NewMap4[components.Position, components.Velocity, components.Bird, components.Energy](world),
		predFilter: ecs.NewFilter2[components.Bird, components.Energy](world),
		posMap:     ecs.NewMap[components.Position](world),
		velMap:     ecs.NewMap[components.Velocity](world),
		birdMap:    ecs.NewMap[components.Bird](world),
		energyMap:  ecs.NewMap[components.Energy](world),

		bounds:       systems.Bounds{Width: cfg.Derived.PlayWidth, Height: cfg.Field.Height},
		energyParams: systems.EnergyParamsFromConfig(&cfg.Energy),

		history:       telemetry.NewHistory(cfg.Telemetry.HistoryLength),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		lifetimes:     telemetry.NewLifetimeTracker(cfg.Population.NumBirds),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	params := cfg.Params()
	g.params.Store(&params)

	g.grid = systems.NewSpatialGrid(g.bounds.Width, g.bounds.Height, cfg.Zones.CellSize)
	for _, rc := range cfg.RestrictedAreas {
		g.boxes = append(g.boxes, systems.BoxFromConfig(rc))
	}
	g.parallel = newParallelState(cfg.Parallel.Workers, cfg.Population.NumBirds)

	if err := g.spawnPopulation(); err != nil {
		g.Close()
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		g.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	g.updateCounts()
	g.logger.Info("game created",
		"birds", len(g.entities),
		"predators", g.counts.Predators,
		"prey", g.counts.Prey,
		"seed", opts.Seed,
	)
	return g, nil
}

// SetParams validates and installs new live params.
// The change takes effect at the start of the next tick.
func (g *Game) SetParams(p config.Params) error {
	if err := p.Validate(g.cfg.Zones.CellSize); err != nil {
		return err
	}
	g.params.Store(&p)
	return nil
}

// Params returns a copy of the live params.
func (g *Game) Params() config.Params {
	return *g.params.Load()
}

// Config returns the static configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Tick returns the number of ticks since creation or the last reset.
func (g *Game) Tick() int32 {
	return g.tick
}

// Counts returns the population counts after the last tick.
func (g *Game) Counts() telemetry.Counts {
	return g.counts
}

// History returns the bounded population history.
func (g *Game) History() *telemetry.History {
	return g.history
}

// Lifetime returns the death record and kill count of bird i.
func (g *Game) Lifetime(i int) telemetry.LifetimeStats {
	return g.lifetimes.Get(i)
}

// TopHunter returns the predator with the most kills so far.
func (g *Game) TopHunter() (index, kills int, ok bool) {
	return g.lifetimes.TopHunter()
}

// Bookmarks returns the notable moments detected since creation or the
// last reset, oldest first.
func (g *Game) Bookmarks() []telemetry.Bookmark {
	return g.marks
}

// PerfStats returns tick timing over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame records frame timing for graphical viewers.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Field returns the usable field size, excluding the control panel.
func (g *Game) Field() (width, height float64) {
	return g.bounds.Width, g.bounds.Height
}

// Restricted returns the restricted areas.
func (g *Game) Restricted() []r2.Box {
	return g.boxes
}

// Close stops the worker pool and flushes output files.
func (g *Game) Close() error {
	g.parallel.stopWorkers()
	return g.outputManager.Close()
}
