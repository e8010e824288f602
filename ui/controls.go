package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/config"
)

// SliderRange bounds one control panel slider.
type SliderRange struct {
	Min, Max float64
}

// ControlRanges holds the slider bounds for the live params.
type ControlRanges struct {
	Inertia           SliderRange
	CollisionRadius   SliderRange
	InteractionRadius SliderRange
	ShiftToBuddy      SliderRange
}

// DefaultControlRanges returns slider bounds for a grid with the given
// cell size. The interaction slider stops at the largest radius the grid
// can serve.
func DefaultControlRanges(cellSize float64) ControlRanges {
	return ControlRanges{
		Inertia:           SliderRange{0, 1},
		CollisionRadius:   SliderRange{1, 50},
		InteractionRadius: SliderRange{1, 2 * cellSize},
		ShiftToBuddy:      SliderRange{0, 2},
	}
}

// ControlResult reports what the user changed this frame.
type ControlResult struct {
	Params  config.Params
	Changed bool
	Reset   bool
}

// ControlsPanel renders the right-hand panel with the tunables.
type ControlsPanel struct {
	renderer *Renderer
	ranges   ControlRanges
	x, width int32
}

// NewControlsPanel creates a panel starting at x.
func NewControlsPanel(r *Renderer, x, width int32, ranges ControlRanges) *ControlsPanel {
	return &ControlsPanel{renderer: r, ranges: ranges, x: x, width: width}
}

// Draw renders the sliders, the show-zones checkbox and the reset button
// starting at y. It returns the edited params and the Y below the panel.
func (c *ControlsPanel) Draw(y int32, p config.Params) (ControlResult, int32) {
	r := c.renderer
	pad := r.Theme.Padding
	x := c.x + pad
	w := c.width - 2*pad

	y = r.DrawSectionHeader(x, y, "Controls")

	next := p
	rg := c.ranges
	next.Inertia, y = r.DrawSlider(x, y, w, "Inertia", "%.2f", p.Inertia, rg.Inertia.Min, rg.Inertia.Max)
	next.CollisionRadius, y = r.DrawSlider(x, y, w, "Collision zone", "%.0f", p.CollisionRadius, rg.CollisionRadius.Min, rg.CollisionRadius.Max)
	next.InteractionRadius, y = r.DrawSlider(x, y, w, "Interaction zone", "%.0f", p.InteractionRadius, rg.InteractionRadius.Min, rg.InteractionRadius.Max)
	next.ShiftToBuddy, y = r.DrawSlider(x, y, w, "Shift to buddy", "%.2f", p.ShiftToBuddy, rg.ShiftToBuddy.Min, rg.ShiftToBuddy.Max)

	next.ShowZones = gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14}, "Show zones [Z]", p.ShowZones)
	y += 24

	reset := gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: 24}, "Reset [R]")
	y += 32

	return ControlResult{
		Params:  clampParams(next),
		Changed: next != p,
		Reset:   reset,
	}, y
}

// clampParams keeps the collision radius inside the interaction radius
// while a slider is dragged.
func clampParams(p config.Params) config.Params {
	if p.InteractionRadius < p.CollisionRadius {
		p.InteractionRadius = p.CollisionRadius
	}
	return p
}

// DrawLegend renders the key bindings and overlay states.
func (c *ControlsPanel) DrawLegend(y int32, overlays *OverlayRegistry) int32 {
	r := c.renderer
	x := c.x + r.Theme.Padding

	y = r.DrawSectionHeader(x, y, "Keys")
	rl.DrawText("Space pause  </> speed", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	rl.DrawText("Wheel zoom  RMB pan  Home view", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight

	for _, desc := range overlays.All() {
		color := r.Theme.LabelColor
		if overlays.IsEnabled(desc.ID) {
			color = r.Theme.ValueColor
		}
		rl.DrawText(fmt.Sprintf("[%s] %s", desc.KeyLabel, desc.Name), x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
	return y
}
