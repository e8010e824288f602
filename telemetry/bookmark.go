package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHuntSurge       BookmarkType = "hunt_surge"
	BookmarkPreyCrash       BookmarkType = "prey_crash"
	BookmarkPredatorDieOff  BookmarkType = "predator_die_off"
	BookmarkExtinction      BookmarkType = "extinction"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark marks a notable moment of the run.
type Bookmark struct {
	Type        BookmarkType
	Tick        int32
	Description string
}

// LogValue implements slog.LogValuer.
func (b Bookmark) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(b.Type)),
		slog.Int("tick", int(b.Tick)),
		slog.String("description", b.Description),
	)
}

// stableWindows is the run of low-variance windows that counts as stable.
const stableWindows = 5

// BookmarkDetector detects notable moments from successive window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	recentPreyPeak     int
	stableWindowsCount int
	preyExtinct        bool
	predExtinct        bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	// stable ecosystem detection needs four windows of history
	historySize = max(historySize, 5)
	return &BookmarkDetector{history: make([]WindowStats, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkHuntSurge,
			bd.checkPreyCrash,
			bd.checkPredatorDieOff,
			bd.checkStableEcosystem,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}
	bookmarks = append(bookmarks, bd.checkExtinction(stats)...)

	bd.addToHistory(stats)
	bd.recentPreyPeak = max(bd.recentPreyPeak, stats.PreyCount)
	return bookmarks
}

// Reset forgets all history.
func (bd *BookmarkDetector) Reset() {
	*bd = BookmarkDetector{history: make([]WindowStats, len(bd.history))}
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns stored windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, len(bd.history))
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

// checkHuntSurge fires when the kill rate is over twice the rolling mean.
func (bd *BookmarkDetector) checkHuntSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	rates := make([]float64, len(history))
	for i, h := range history {
		rates[i] = h.KillRate
	}
	avg := stat.Mean(rates, nil)
	if avg == 0 {
		return nil
	}

	if stats.KillRate > avg*2.0 && stats.Kills >= 3 {
		return &Bookmark{
			Type:        BookmarkHuntSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Kill rate %.4f is %.1fx average (%.4f)", stats.KillRate, stats.KillRate/avg, avg),
		}
	}
	return nil
}

// checkPreyCrash fires when prey drop more than 30% below the recent peak.
func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if drop > 0.30 && stats.PreyCount < bd.recentPreyPeak-10 {
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.PreyCount),
		}
	}
	return nil
}

// checkPredatorDieOff fires when a third or more of the predators alive at
// the previous window starved in this one.
func (bd *BookmarkDetector) checkPredatorDieOff(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	prev := history[len(history)-1].PredCount
	if prev < 3 || stats.Starvations*3 < prev {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPredatorDieOff,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d predators starved", stats.Starvations, prev),
	}
}

// checkExtinction fires once per species when its count reaches zero after
// having members.
func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var out []Bookmark
	history := bd.getHistory()
	hadPrey, hadPred := stats.Kills > 0, stats.Starvations > 0
	for _, h := range history {
		hadPrey = hadPrey || h.PreyCount > 0
		hadPred = hadPred || h.PredCount > 0
	}

	if !bd.preyExtinct && hadPrey && stats.PreyCount == 0 {
		bd.preyExtinct = true
		out = append(out, Bookmark{Type: BookmarkExtinction, Tick: stats.WindowEndTick, Description: "Prey extinct"})
	}
	if !bd.predExtinct && hadPred && stats.PredCount == 0 {
		bd.predExtinct = true
		out = append(out, Bookmark{Type: BookmarkExtinction, Tick: stats.WindowEndTick, Description: "Predators extinct"})
	}
	return out
}

// checkStableEcosystem fires once both populations have stayed within a
// 20% coefficient of variation for stableWindows consecutive windows.
func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.PreyCount < 10 || stats.PredCount < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	prey := make([]float64, len(recent))
	pred := make([]float64, len(recent))
	for i, h := range recent {
		prey[i] = float64(h.PreyCount)
		pred[i] = float64(h.PredCount)
	}

	if lowVariation(prey) && lowVariation(pred) {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == stableWindows {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators", stats.PreyCount, stats.PredCount),
		}
	}
	return nil
}

// lowVariation reports a coefficient of variation below 0.2, using the
// population variance.
func lowVariation(v []float64) bool {
	mean, variance := stat.PopMeanVariance(v, nil)
	if mean == 0 {
		return false
	}
	return variance/(mean*mean) < 0.04
}
