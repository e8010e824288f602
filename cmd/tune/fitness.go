package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
	"github.com/pthm-cable/birdies/telemetry"
)

// FitnessEvaluator runs headless simulations and scores coexistence.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	logger     *slog.Logger

	mu          sync.Mutex
	lastQuality float64 // quality from the most recent Evaluate call
	lastErr     error
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastError returns the first game construction error of the most recent
// evaluation, if any.
func (fe *FitnessEvaluator) LastError() error {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastErr
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32 // ticks until a species died out, or maxTicks
	windowStats   []telemetry.WindowStats
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is -(survivalTicks × (1 + 0.2 × quality)), averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	// Seeds already run in parallel
	cfg.Parallel.Workers = 1

	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))
	errs := make([]error, len(fe.seeds))

	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := fe.runSimulation(cfg, seed)
			if err != nil {
				errs[i] = err
				return
			}
			quality[i] = computeQuality(r.windowStats, cfg.Energy.Initial)
			fitness[i] = computeFitness(r.survivalTicks, quality[i])
		}()
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.lastErr = nil
	for _, err := range errs {
		if err != nil {
			fe.lastErr = err
			break
		}
	}
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes one headless run until a species is gone or
// maxTicks is reached. cfg is shared between seeds and only read.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}
	g, err := game.NewGame(cfg, game.Options{
		Seed:   seed,
		Logger: fe.logger,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Close()

	for g.Tick() < fe.maxTicks {
		g.Step()
		if c := g.Counts(); c.Prey == 0 || c.Predators == 0 {
			result.survivalTicks = g.Tick()
			return result, nil
		}
	}
	result.survivalTicks = fe.maxTicks
	return result, nil
}

// computeFitness combines survival and quality (lower = better).
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightHunting  = 0.4
	qualityWeightEnergy   = 0.3
	qualityWeightFlocking = 0.3

	// Kills per predator per tick that just offset the default energy loss
	targetKillRate = 0.002
)

// computeQuality scores window stats in [0, 1]. Windows without both
// species are skipped.
func computeQuality(windows []telemetry.WindowStats, maxEnergy float64) float64 {
	var hunting, energy, flocking []float64

	for _, w := range windows {
		if w.PreyCount == 0 || w.PredCount == 0 {
			continue
		}

		// Hunting: log-normal bump around the sustaining kill rate
		if w.KillRate > 0 {
			logErr := math.Log(w.KillRate / targetKillRate)
			hunting = append(hunting, math.Exp(-logErr*logErr))
		} else {
			hunting = append(hunting, 0)
		}

		// Energy: median predator energy near half full
		frac := w.PredEnergyP50 / maxEnergy
		energy = append(energy, math.Exp(-math.Pow((frac-0.5)/0.25, 2)))

		// Flocking: alignments per live bird per window, saturating
		live := float64(w.PreyCount + w.PredCount)
		flocking = append(flocking, 1-math.Exp(-float64(w.Alignments)/live/100))
	}

	if len(hunting) == 0 {
		return 0
	}

	scores := []float64{mean(hunting), mean(energy), mean(flocking)}
	weights := []float64{qualityWeightHunting, qualityWeightEnergy, qualityWeightFlocking}
	floats.Mul(scores, weights)
	return clamp01(floats.Sum(scores))
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
