package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
	"github.com/pthm-cable/birdies/tui"
	"github.com/pthm-cable/birdies/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("term", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logFile := flag.String("log-file", "birdies.log", "Log file for terminal mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (a run_id subdirectory is created)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	stopOnExtinction := flag.Bool("stop-on-extinction", false, "Stop a headless run once a species has died out")
	flag.Parse()

	if err := run(options{
		configPath:       *configPath,
		headless:         *headless,
		term:             *term,
		logStats:         *logStats,
		logFile:          *logFile,
		outputDir:        *outputDir,
		seed:             *seed,
		maxTicks:         *maxTicks,
		stepsPerUpdate:   *stepsPerUpdate,
		stopOnExtinction: *stopOnExtinction,
	}); err != nil {
		slog.Error("birdies failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath       string
	headless         bool
	term             bool
	logStats         bool
	logFile          string
	outputDir        string
	seed             int64
	maxTicks         int
	stepsPerUpdate   int
	stopOnExtinction bool
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rngSeed := opts.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := uuid.New()

	// Terminal mode owns stdout, so it logs to a file
	logOut := os.Stdout
	if opts.term && !opts.headless {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil)).With("run_id", runID.String())
	slog.SetDefault(logger)

	outDir := ""
	if opts.outputDir != "" {
		outDir = filepath.Join(opts.outputDir, runID.String())
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      rngSeed,
		OutputDir: outDir,
		LogStats:  opts.logStats,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case opts.headless:
		logger.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", opts.maxTicks,
			"steps_per_update", opts.stepsPerUpdate,
			"output_dir", outDir,
		)
		return runHeadless(ctx, g, logger, opts)

	case opts.term:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initialising terminal screen: %w", err)
		}
		defer screen.Fini()

		logger.Info("starting terminal viewer", "seed", rngSeed)
		return tui.New(screen, g, opts.stepsPerUpdate, logger).Run(ctx, opts.maxTicks)

	default:
		logger.Info("starting window viewer", "seed", rngSeed)
		return ui.NewViewer(g, opts.stepsPerUpdate, logger).Run(opts.maxTicks)
	}
}

// runHeadless steps the game until max ticks, extinction (when requested)
// or an interrupt.
func runHeadless(ctx context.Context, g *game.Game, logger *slog.Logger, opts options) error {
	steps := max(1, opts.stepsPerUpdate)
	extinct := false
	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "tick", g.Tick())
			return nil
		default:
		}

		n := steps
		if opts.maxTicks > 0 {
			n = min(n, opts.maxTicks-int(g.Tick()))
		}
		g.Run(n)

		if opts.maxTicks > 0 && int(g.Tick()) >= opts.maxTicks {
			logger.Info("max ticks reached", "tick", g.Tick(), "counts", g.Counts())
			return nil
		}
		if c := g.Counts(); c.Extinct() && !extinct {
			extinct = true
			logger.Info("species extinct", "tick", g.Tick(), "prey", c.Prey, "predators", c.Predators)
			if opts.stopOnExtinction {
				return nil
			}
		}
	}
}
