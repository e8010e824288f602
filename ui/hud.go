package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/telemetry"
)

// HUDData holds the data for the heads-up text in the panel.
type HUDData struct {
	Tick           int32
	Counts         telemetry.Counts
	StepsPerUpdate int
	Paused         bool
	FPS            int32
	LastBookmark   string // empty until something notable happens
}

// HUD renders the status block at the top of the panel.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD(r *Renderer) *HUD {
	return &HUD{renderer: r}
}

// Draw renders the HUD at (x, y) and returns the Y below it.
func (h *HUD) Draw(x, y int32, data HUDData) int32 {
	r := h.renderer
	rl.DrawText("Birdies", x, y, 20, rl.White)
	y += 26

	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Prey", fmt.Sprintf("%d (%d dead)", data.Counts.Prey, data.Counts.DeadPrey))
	y = r.DrawLabelValue(x, y, "Predators", fmt.Sprintf("%d (%d dead)", data.Counts.Predators, data.Counts.DeadPredators))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%dx  FPS %d", data.StepsPerUpdate, data.FPS))

	if data.LastBookmark != "" {
		rl.DrawText(data.LastBookmark, x, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight
	}

	if data.Paused {
		rl.DrawText("PAUSED", x, y, 16, rl.Yellow)
		y += r.Theme.LineHeight + 2
	} else if data.Counts.Extinct() {
		rl.DrawText("EXTINCT", x, y, 16, rl.Orange)
		y += r.Theme.LineHeight + 2
	}
	return y + 4
}

// PerfPanel renders tick timing per phase.
type PerfPanel struct {
	renderer *Renderer
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(r *Renderer) *PerfPanel {
	return &PerfPanel{renderer: r}
}

// Draw renders stats at (x, y) and returns the Y below it.
func (p *PerfPanel) Draw(x, y int32, stats telemetry.PerfStats) int32 {
	r := p.renderer
	y = r.DrawSectionHeader(x, y, "Perf")

	rl.DrawText(fmt.Sprintf("tick %s  %.0f/s", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight

	for i := range stats.PhaseAvg {
		pct := stats.PhasePct[i]
		color := r.Theme.LabelColor
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %6s %4.1f%%", telemetry.Phase(i), stats.PhaseAvg[i].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight - 2
	}
	return y + 4
}
