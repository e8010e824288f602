package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events during window
	Kills       int `csv:"kills"`
	Starvations int `csv:"starvations"`
	Collisions  int `csv:"collisions"`
	Alignments  int `csv:"alignments"`

	// Kills per living predator per tick, averaged over the window
	KillRate float64 `csv:"kill_rate"`

	// Predator energy distribution (sampled at window end)
	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyStd  float64 `csv:"pred_energy_std"`
	PredEnergyP10  float64 `csv:"pred_energy_p10"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
	PredEnergyP90  float64 `csv:"pred_energy_p90"`

	// Mean speed of living birds at window end
	PreySpeedMean float64 `csv:"prey_speed_mean"`
	PredSpeedMean float64 `csv:"pred_speed_mean"`
}

// EnergyStats summarises a set of energy values.
type EnergyStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeEnergyStats calculates mean, standard deviation and empirical
// percentiles. Returns zeros for an empty slice.
func ComputeEnergyStats(values []float64) EnergyStats {
	if len(values) == 0 {
		return EnergyStats{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var es EnergyStats
	if len(sorted) == 1 {
		es.Mean = sorted[0]
	} else {
		es.Mean, es.Std = stat.MeanStdDev(sorted, nil)
	}
	es.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	es.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	es.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return es
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("kills", s.Kills),
		slog.Int("starvations", s.Starvations),
		slog.Int("collisions", s.Collisions),
		slog.Int("alignments", s.Alignments),
		slog.Float64("kill_rate", s.KillRate),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
		slog.Float64("pred_energy_std", s.PredEnergyStd),
		slog.Float64("pred_energy_p10", s.PredEnergyP10),
		slog.Float64("pred_energy_p50", s.PredEnergyP50),
		slog.Float64("pred_energy_p90", s.PredEnergyP90),
		slog.Float64("prey_speed_mean", s.PreySpeedMean),
		slog.Float64("pred_speed_mean", s.PredSpeedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
