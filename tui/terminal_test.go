package tui

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/config"
	"github.com/pthm-cable/birdies/game"
)

func newTestTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen, *game.Game) {
	t.Helper()
	cfg := config.Default()
	cfg.Population.NumBirds = 2
	cfg.Population.PredatorRatio = 0.5
	cfg.RestrictedAreas = nil
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g, err := game.NewGame(cfg, game.Options{Seed: 1, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { g.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)

	return New(screen, g, 1, logger), screen, g
}

func TestCellOf(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantC, wantR int
	}{
		{"origin", 0, 0, 0, 0},
		{"middle", 600, 400, 40, 11},
		{"far edge clamps", 1200, 800, 79, 21},
		{"negative clamps", -30, -5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := cellOf(tt.x, tt.y, 1200, 800, 80, 22)
			if c != tt.wantC || r != tt.wantR {
				t.Errorf("cellOf(%g, %g) = (%d, %d), want (%d, %d)", tt.x, tt.y, c, r, tt.wantC, tt.wantR)
			}
		})
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{-math.Pi / 2, '↑'},
		{math.Pi, '←'},
		{-math.Pi, '←'},
		{-math.Pi / 4, '↗'},
		{0.3, '→'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.heading); got != tt.want {
			t.Errorf("headingGlyph(%g) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestDrawPlacesBirds(t *testing.T) {
	term, screen, g := newTestTerminal(t, 80, 24)
	if err := g.PlaceBird(0, r2.Vec{X: 100, Y: 100}, r2.Vec{X: 1, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceBird(1, r2.Vec{X: 900, Y: 600}, r2.Vec{X: 0, Y: -1}); err != nil {
		t.Fatal(err)
	}

	term.Draw()

	width, height := g.Field()
	tests := []struct {
		name string
		x, y float64
		want rune
	}{
		{"predator heading east", 100, 100, '→'},
		{"prey heading north", 900, 600, '↑'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := cellOf(tt.x, tt.y, width, height, 80, 24-statusLines)
			got, _, _, _ := screen.GetContent(c, r)
			if got != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q", c, r, got, tt.want)
			}
		})
	}

	status, _, _, _ := screen.GetContent(1, 24-statusLines)
	if status != 't' {
		t.Errorf("status line starts with %q, want 't'", status)
	}
}

func TestKeysAdjustParams(t *testing.T) {
	term, _, g := newTestTerminal(t, 80, 24)
	start := g.Params()

	steps := []struct {
		ch    rune
		check func(p config.Params) bool
	}{
		{'i', func(p config.Params) bool { return math.Abs(p.Inertia-(start.Inertia-0.05)) < 1e-9 }},
		{'C', func(p config.Params) bool { return p.CollisionRadius == start.CollisionRadius+1 }},
		{'A', func(p config.Params) bool { return p.InteractionRadius == start.InteractionRadius+1 }},
		{'S', func(p config.Params) bool { return math.Abs(p.ShiftToBuddy-(start.ShiftToBuddy+0.05)) < 1e-9 }},
		{'z', func(p config.Params) bool { return p.ShowZones != start.ShowZones }},
	}
	for _, s := range steps {
		quit, err := term.handleKey(tcell.KeyRune, s.ch)
		if quit || err != nil {
			t.Fatalf("key %q: quit=%v err=%v", s.ch, quit, err)
		}
		if !s.check(g.Params()) {
			t.Errorf("key %q: params = %+v", s.ch, g.Params())
		}
	}

	// Shrinking the interaction zone below the collision zone is rejected
	p := g.Params()
	for range int(p.InteractionRadius-p.CollisionRadius) + 5 {
		term.handleKey(tcell.KeyRune, 'a')
	}
	if got := g.Params(); got.InteractionRadius < got.CollisionRadius {
		t.Errorf("interaction %g fell below collision %g", got.InteractionRadius, got.CollisionRadius)
	}
}

func TestKeysControlLoop(t *testing.T) {
	term, _, g := newTestTerminal(t, 80, 24)

	term.handleKey(tcell.KeyRune, ' ')
	if !term.paused {
		t.Error("space did not pause")
	}
	term.handleKey(tcell.KeyRune, '+')
	term.handleKey(tcell.KeyRune, '+')
	if term.stepsPerUpdate != 3 {
		t.Errorf("stepsPerUpdate = %d, want 3", term.stepsPerUpdate)
	}

	g.Run(10)
	if _, err := term.handleKey(tcell.KeyRune, 'r'); err != nil {
		t.Fatal(err)
	}
	if g.Tick() != 0 {
		t.Errorf("tick after reset = %d", g.Tick())
	}

	if quit, _ := term.handleKey(tcell.KeyRune, 'q'); !quit {
		t.Error("q did not quit")
	}
	if quit, _ := term.handleKey(tcell.KeyEscape, 0); !quit {
		t.Error("escape did not quit")
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	term, _, g := newTestTerminal(t, 80, 24)
	term.stepsPerUpdate = 5

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := term.Run(ctx, 20); err != nil {
		t.Fatal(err)
	}
	if g.Tick() < 20 {
		t.Errorf("Run returned at tick %d, want >= 20", g.Tick())
	}
}
