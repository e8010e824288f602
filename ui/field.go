package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
)

// FieldRenderer draws the birds and the restricted areas.
type FieldRenderer struct {
	renderer *Renderer
}

// NewFieldRenderer creates a field renderer.
func NewFieldRenderer(r *Renderer) *FieldRenderer {
	return &FieldRenderer{renderer: r}
}

// DrawRestricted fills every restricted area.
func (f *FieldRenderer) DrawRestricted(boxes []r2.Box) {
	for _, b := range boxes {
		rect := rl.Rectangle{
			X:      float32(b.Min.X),
			Y:      float32(b.Min.Y),
			Width:  float32(b.Max.X - b.Min.X),
			Height: float32(b.Max.Y - b.Min.Y),
		}
		rl.DrawRectangleRec(rect, f.renderer.Theme.Restricted)
	}
}

// DrawGrid outlines the spatial grid cells.
func (f *FieldRenderer) DrawGrid(width, height, cell float64) {
	color := rl.Color{R: 200, G: 205, B: 215, A: 255}
	for x := cell; x < width; x += cell {
		rl.DrawLine(int32(x), 0, int32(x), int32(height), color)
	}
	for y := cell; y < height; y += cell {
		rl.DrawLine(0, int32(y), int32(width), int32(y), color)
	}
}

// DrawBirds draws every bird. Zones are drawn under the live birds when
// p.ShowZones is set; dead birds are skipped unless showDead.
func (f *FieldRenderer) DrawBirds(view []game.BirdView, p config.Params, showDead, energyBars bool) {
	t := f.renderer.Theme

	if p.ShowZones {
		for _, v := range view {
			if !v.Alive {
				continue
			}
			rl.DrawCircleLines(int32(v.X), int32(v.Y), float32(p.InteractionRadius), t.InteractionZone)
			rl.DrawCircleLines(int32(v.X), int32(v.Y), float32(p.CollisionRadius), t.CollisionZone)
		}
	}

	for _, v := range view {
		if !v.Alive && !showDead {
			continue
		}
		drawOrientedTriangle(float32(v.X), float32(v.Y), float32(v.Heading), float32(v.Size)/2, t.SpeciesColor(v.Species, v.Alive))

		if energyBars && v.HasEnergy && v.Alive {
			f.drawEnergyBar(v)
		}
	}
}

// drawEnergyBar draws a small bar above a predator.
func (f *FieldRenderer) drawEnergyBar(v game.BirdView) {
	t := f.renderer.Theme
	width := float32(v.Size * 1.5)
	x := float32(v.X) - width/2
	y := float32(v.Y-v.Size) - 4

	ratio := float32(0)
	if v.MaxEnergy > 0 {
		ratio = float32(min(v.Energy/v.MaxEnergy, 1))
	}
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: width, Height: 3}, t.BarBg)
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: width * ratio, Height: 3}, t.BandColor(v.EnergyBand()))
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	h := float64(heading)
	front := rl.Vector2{
		X: x + float32(math.Cos(h))*radius*1.5,
		Y: y + float32(math.Sin(h))*radius*1.5,
	}
	backLeft := rl.Vector2{
		X: x + float32(math.Cos(h+math.Pi*0.8))*radius,
		Y: y + float32(math.Sin(h+math.Pi*0.8))*radius,
	}
	backRight := rl.Vector2{
		X: x + float32(math.Cos(h-math.Pi*0.8))*radius,
		Y: y + float32(math.Sin(h-math.Pi*0.8))*radius,
	}

	// DrawTriangle requires counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
}
