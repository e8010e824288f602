package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/telemetry"
)

// PopulationChart plots prey and predator counts from the game history.
type PopulationChart struct {
	renderer *Renderer
	samples  []telemetry.Sample
	prey     []rl.Vector2
	pred     []rl.Vector2
}

// NewPopulationChart creates an empty chart.
func NewPopulationChart(r *Renderer) *PopulationChart {
	return &PopulationChart{renderer: r}
}

// chartPoints maps samples into bounds. The x axis spans the history
// capacity so the plot scrolls once the history is full; the y axis spans
// [0, top]. Both series are appended to their dst slices.
func chartPoints(prey, pred []rl.Vector2, samples []telemetry.Sample, capacity int, top int, bounds rl.Rectangle) ([]rl.Vector2, []rl.Vector2) {
	if len(samples) == 0 || capacity < 2 {
		return prey, pred
	}
	if top < 1 {
		top = 1
	}

	dx := bounds.Width / float32(capacity-1)
	scale := bounds.Height / float32(top)
	bottom := bounds.Y + bounds.Height

	for i, s := range samples {
		x := bounds.X + float32(i)*dx
		prey = append(prey, rl.Vector2{X: x, Y: bottom - float32(s.Prey)*scale})
		pred = append(pred, rl.Vector2{X: x, Y: bottom - float32(s.Predators)*scale})
	}
	return prey, pred
}

// Draw renders the chart inside bounds and returns the Y below it.
// The y scale follows the largest count in the history.
func (c *PopulationChart) Draw(history *telemetry.History, bounds rl.Rectangle) int32 {
	t := c.renderer.Theme
	rl.DrawRectangleRec(bounds, t.BarBg)
	rl.DrawRectangleLinesEx(bounds, 1, t.PanelBorder)

	c.samples = history.Samples(c.samples[:0])
	c.prey, c.pred = chartPoints(c.prey[:0], c.pred[:0], c.samples, history.Cap(), history.Max(), bounds)

	if len(c.prey) > 1 {
		rl.DrawLineStrip(c.prey, t.ChartPrey)
		rl.DrawLineStrip(c.pred, t.ChartPredator)
	}

	y := int32(bounds.Y + bounds.Height + 4)
	rl.DrawText("prey", int32(bounds.X), y, t.FontSize, t.ChartPrey)
	rl.DrawText("predators", int32(bounds.X)+50, y, t.FontSize, t.ChartPredator)
	return y + t.LineHeight
}
