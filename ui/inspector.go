package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/game"
)

// Inspector shows the state of one selected bird.
type Inspector struct {
	renderer *Renderer
	selected int
	active   bool
}

// NewInspector creates an inspector with nothing selected.
func NewInspector(r *Renderer) *Inspector {
	return &Inspector{renderer: r}
}

// pickBird returns the index of the bird nearest to (x, y) within maxDist.
// Ties go to the lower index.
func pickBird(view []game.BirdView, x, y, maxDist float64) (int, bool) {
	best, bestDist := -1, maxDist
	for _, v := range view {
		d := math.Hypot(v.X-x, v.Y-y)
		if d <= bestDist && (best < 0 || d < bestDist) {
			best, bestDist = v.Index, d
		}
	}
	return best, best >= 0
}

// HandleClick selects the bird under (x, y), or clears the selection when
// the click hits empty field.
func (ins *Inspector) HandleClick(view []game.BirdView, x, y float64) {
	ins.selected, ins.active = pickBird(view, x, y, 15)
}

// Clear drops the selection.
func (ins *Inspector) Clear() {
	ins.active = false
}

// Selected returns the selected index, if any.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.active
}

// DrawHighlight circles the selected bird on the field.
func (ins *Inspector) DrawHighlight(view []game.BirdView) {
	if !ins.active || ins.selected >= len(view) {
		return
	}
	v := view[ins.selected]
	rl.DrawCircleLines(int32(v.X), int32(v.Y), float32(v.Size+4), rl.Yellow)
}

// Draw renders the selected bird's details at (x, y) and returns the Y below.
func (ins *Inspector) Draw(x, y, width int32, view []game.BirdView) int32 {
	if !ins.active || ins.selected >= len(view) {
		return y
	}
	r := ins.renderer
	v := view[ins.selected]

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Bird #%d", v.Index))
	y = r.DrawLabelValue(x, y, "Species", v.Species.String())
	status := "alive"
	if !v.Alive {
		status = "dead"
	}
	y = r.DrawLabelValue(x, y, "Status", status)
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.0f, %.0f", v.X, v.Y))
	y = r.DrawLabelValue(x, y, "Heading", fmt.Sprintf("%.0f°", v.Heading*180/math.Pi))

	if v.HasEnergy {
		y = r.DrawLabelValue(x, y, "State", v.EnergyState().String())
		y = r.DrawLabelValue(x, y, "Kills", fmt.Sprintf("%d", v.Kills))
		y = r.DrawEnergyBar(x, y, "Energy", v.Energy, v.MaxEnergy, width)
	}
	return y + 4
}
