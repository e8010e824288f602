package ui

import (
	"fmt"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/camera"
	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
	"github.com/pthm-cable/birdies/telemetry"
)

const maxStepsPerUpdate = 20

// Viewer runs the simulation in a raylib window.
type Viewer struct {
	game   *game.Game
	logger *slog.Logger

	renderer  *Renderer
	hud       *HUD
	perf      *PerfPanel
	controls  *ControlsPanel
	chart     *PopulationChart
	field     *FieldRenderer
	inspector *Inspector
	overlays  *OverlayRegistry
	camera    *camera.Camera

	view           []game.BirdView
	paused         bool
	stepsPerUpdate int
	panelX         int32
	panelWidth     int32
}

// NewViewer creates a viewer for g. The panel fills the strip to the right
// of the field.
func NewViewer(g *game.Game, stepsPerUpdate int, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := g.Config()
	r := NewRenderer()
	panelX := int32(cfg.Derived.PlayWidth)
	panelWidth := int32(cfg.Field.Width) - panelX
	fieldW, fieldH := g.Field()

	return &Viewer{
		game:      g,
		logger:    logger,
		renderer:  r,
		hud:       NewHUD(r),
		perf:      NewPerfPanel(r),
		controls:  NewControlsPanel(r, panelX, panelWidth, DefaultControlRanges(cfg.Zones.CellSize)),
		chart:     NewPopulationChart(r),
		field:     NewFieldRenderer(r),
		inspector: NewInspector(r),
		overlays:  NewOverlayRegistry(),
		camera:    camera.New(fieldW, fieldH, fieldW, fieldH),

		stepsPerUpdate: max(1, min(stepsPerUpdate, maxStepsPerUpdate)),
		panelX:         panelX,
		panelWidth:     panelWidth,
	}
}

// Run opens the window and loops until it is closed or maxTicks is reached
// (0 = unlimited).
func (v *Viewer) Run(maxTicks int) error {
	cfg := v.game.Config()
	rl.InitWindow(int32(cfg.Field.Width), int32(cfg.Field.Height), "Birdies")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v.view = v.game.View(v.view[:0])
	for !rl.WindowShouldClose() {
		if err := v.handleInput(); err != nil {
			return err
		}

		if !v.paused {
			v.game.Run(v.stepsPerUpdate)
		}
		v.view = v.game.View(v.view[:0])

		if err := v.draw(); err != nil {
			return err
		}

		if maxTicks > 0 && int(v.game.Tick()) >= maxTicks {
			v.logger.Info("max ticks reached", "tick", v.game.Tick())
			return nil
		}
	}
	return nil
}

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() error {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) && v.stepsPerUpdate > 1 {
		v.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.stepsPerUpdate < maxStepsPerUpdate {
		v.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyZ) {
		p := v.game.Params()
		p.ShowZones = !p.ShowZones
		v.applyParams(p)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := v.reset(); err != nil {
			return err
		}
	}

	v.overlays.HandleInput()
	v.handleCameraInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		if int32(mouse.X) < v.panelX {
			wx, wy := v.camera.ScreenToWorld(float64(mouse.X), float64(mouse.Y))
			v.inspector.HandleClick(v.view, wx, wy)
		}
	}
	return nil
}

// handleCameraInput zooms with the wheel, pans with a right drag or the
// arrow keys, and resets the view on Home.
func (v *Viewer) handleCameraInput() {
	mouse := rl.GetMousePosition()
	overField := int32(mouse.X) < v.panelX

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && overField {
		v.camera.ZoomAt(float64(mouse.X), float64(mouse.Y), math.Pow(1.1, float64(wheel)))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) && overField {
		d := rl.GetMouseDelta()
		v.camera.Pan(-float64(d.X), -float64(d.Y))
	}

	const panStep = 10
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(-panStep, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(panStep, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, -panStep)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, panStep)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}

// camera2D converts the camera into raylib's form for BeginMode2D.
func (v *Viewer) camera2D() rl.Camera2D {
	c := v.camera
	return rl.Camera2D{
		Offset: rl.Vector2{X: float32(c.ViewportW / 2), Y: float32(c.ViewportH / 2)},
		Target: rl.Vector2{X: float32(c.X), Y: float32(c.Y)},
		Zoom:   float32(c.Zoom),
	}
}

// applyParams forwards panel edits to the game. Rejected values leave the
// live params unchanged.
func (v *Viewer) applyParams(p config.Params) {
	if err := v.game.SetParams(p); err != nil {
		v.logger.Debug("params rejected", "error", err)
	}
}

// reset restarts the population and clears the selection.
func (v *Viewer) reset() error {
	if err := v.game.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	v.inspector.Clear()
	v.view = v.game.View(v.view[:0])
	v.logger.Info("simulation reset")
	return nil
}

// draw renders one frame.
func (v *Viewer) draw() error {
	v.game.RecordFrame()
	t := v.renderer.Theme
	params := v.game.Params()
	width, height := v.game.Field()

	rl.BeginDrawing()
	rl.ClearBackground(t.Background)

	rl.BeginScissorMode(0, 0, v.panelX, int32(height))
	rl.BeginMode2D(v.camera2D())
	if v.overlays.IsEnabled(OverlayGrid) {
		v.field.DrawGrid(width, height, v.game.Config().Zones.CellSize)
	}
	v.field.DrawRestricted(v.game.Restricted())
	v.field.DrawBirds(v.view, params, v.overlays.IsEnabled(OverlayCarcasses), v.overlays.IsEnabled(OverlayEnergyBars))
	v.inspector.DrawHighlight(v.view)
	rl.EndMode2D()
	rl.EndScissorMode()

	// Panel
	v.renderer.DrawPanel(v.panelX, 0, v.panelWidth, int32(height))
	x := v.panelX + t.Padding
	inner := v.panelWidth - 2*t.Padding

	y := v.hud.Draw(x, t.Padding, HUDData{
		Tick:           v.game.Tick(),
		Counts:         v.game.Counts(),
		StepsPerUpdate: v.stepsPerUpdate,
		Paused:         v.paused,
		FPS:            rl.GetFPS(),
		LastBookmark:   lastBookmark(v.game.Bookmarks()),
	})

	y = v.chart.Draw(v.game.History(), rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: 80})
	res, y := v.controls.Draw(y+4, params)
	y = v.inspector.Draw(x, y, inner, v.view)
	if v.overlays.IsEnabled(OverlayPerf) {
		y = v.perf.Draw(x, y, v.game.PerfStats())
	}
	v.controls.DrawLegend(y, v.overlays)

	rl.EndDrawing()

	if res.Changed {
		v.applyParams(res.Params)
	}
	if res.Reset {
		return v.reset()
	}
	return nil
}

// lastBookmark formats the most recent bookmark for the HUD.
func lastBookmark(marks []telemetry.Bookmark) string {
	if len(marks) == 0 {
		return ""
	}
	b := marks[len(marks)-1]
	return fmt.Sprintf("t%d %s", b.Tick, b.Description)
}
