package ui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
	"github.com/pthm-cable/birdies/telemetry"
)

func TestOverlayRegistry(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayEnergyBars) || reg.IsEnabled(OverlayGrid) {
		t.Fatal("unexpected default overlay states")
	}

	id, on, ok := reg.HandleKeyPress(rl.KeyG)
	if !ok || id != OverlayGrid || !on {
		t.Errorf("HandleKeyPress(G) = %q, %v, %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyQ); ok {
		t.Error("unbound key matched an overlay")
	}
	if reg.Toggle(OverlayGrid) {
		t.Error("second toggle left grid on")
	}
	if reg.Toggle("missing") {
		t.Error("toggling an unknown overlay returned true")
	}

	all := reg.All()
	if len(all) != 4 || all[0].ID != OverlayEnergyBars || all[3].ID != OverlayPerf {
		t.Errorf("All() order = %v", all)
	}

	reg.Register(OverlayDescriptor{ID: OverlayGrid, Name: "Cells", Key: rl.KeyC})
	if got := reg.All(); len(got) != 4 || got[2].Name != "Cells" {
		t.Errorf("re-register changed order or was ignored: %v", got)
	}
}

func TestChartPoints(t *testing.T) {
	samples := []telemetry.Sample{
		{Tick: 1, Prey: 10, Predators: 0},
		{Tick: 2, Prey: 5, Predators: 10},
	}
	bounds := rl.Rectangle{X: 100, Y: 20, Width: 40, Height: 50}

	prey, pred := chartPoints(nil, nil, samples, 5, 10, bounds)
	if len(prey) != 2 || len(pred) != 2 {
		t.Fatalf("got %d/%d points, want 2/2", len(prey), len(pred))
	}

	tests := []struct {
		name string
		got  rl.Vector2
		want rl.Vector2
	}{
		{"first prey at top", prey[0], rl.Vector2{X: 100, Y: 20}},
		{"first predator at bottom", pred[0], rl.Vector2{X: 100, Y: 70}},
		{"second prey halfway", prey[1], rl.Vector2{X: 110, Y: 45}},
		{"second predator at top", pred[1], rl.Vector2{X: 110, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(float64(tt.got.X-tt.want.X)) > 1e-4 || math.Abs(float64(tt.got.Y-tt.want.Y)) > 1e-4 {
				t.Errorf("point = %+v, want %+v", tt.got, tt.want)
			}
		})
	}

	if p, _ := chartPoints(nil, nil, nil, 5, 10, bounds); len(p) != 0 {
		t.Errorf("empty history produced %d points", len(p))
	}
}

func TestPickBird(t *testing.T) {
	view := []game.BirdView{
		{Index: 0, X: 100, Y: 100},
		{Index: 1, X: 110, Y: 100},
		{Index: 2, X: 105, Y: 100},
	}

	tests := []struct {
		name   string
		x, y   float64
		want   int
		wantOK bool
	}{
		{"nearest", 109, 100, 1, true},
		{"tie goes to lower index", 102.5, 100, 0, true},
		{"too far", 300, 300, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBird(view, tt.x, tt.y, 15)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("pickBird(%g, %g) = %d, %v; want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestControlRangesValidate(t *testing.T) {
	cfg := config.Default()
	cell := cfg.Zones.CellSize
	rg := DefaultControlRanges(cell)

	// Every slider extreme must be accepted by the game
	p := cfg.Params()
	p.Inertia = rg.Inertia.Max
	p.CollisionRadius = rg.CollisionRadius.Max
	p.InteractionRadius = rg.InteractionRadius.Max
	p.ShiftToBuddy = rg.ShiftToBuddy.Max
	if err := p.Validate(cell); err != nil {
		t.Errorf("slider maxima rejected: %v", err)
	}

	p.CollisionRadius = 30
	p.InteractionRadius = 10
	if got := clampParams(p); got.InteractionRadius != 30 {
		t.Errorf("clampParams interaction = %g, want 30", got.InteractionRadius)
	}
}

func TestLastBookmark(t *testing.T) {
	if got := lastBookmark(nil); got != "" {
		t.Errorf("lastBookmark(nil) = %q", got)
	}
	marks := []telemetry.Bookmark{
		{Type: telemetry.BookmarkPreyCrash, Tick: 600, Description: "Prey crashed"},
		{Type: telemetry.BookmarkExtinction, Tick: 1200, Description: "Prey extinct"},
	}
	if got, want := lastBookmark(marks), "t1200 Prey extinct"; got != want {
		t.Errorf("lastBookmark = %q, want %q", got, want)
	}
}
