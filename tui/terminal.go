// Package tui renders the simulation as text in a terminal.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/game"
	"github.com/pthm-cable/birdies/systems"
)

const (
	statusLines       = 2
	maxStepsPerUpdate = 20
	frameInterval     = 33 * time.Millisecond
)

var (
	styleDefault    = tcell.StyleDefault
	stylePrey       = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleDead       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRestricted = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorSilver)

	// predator color by energy band
	stylePredator = [...]tcell.Style{
		systems.BandLow:    tcell.StyleDefault.Foreground(tcell.ColorRed),
		systems.BandMedium: tcell.StyleDefault.Foreground(tcell.ColorYellow),
		systems.BandHigh:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	}
)

// headingGlyphs are indexed by heading octant, starting east and turning
// clockwise in screen coordinates (y grows down).
var headingGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Terminal drives a game and draws it on a tcell screen.
type Terminal struct {
	screen tcell.Screen
	game   *game.Game
	logger *slog.Logger

	view           []game.BirdView
	paused         bool
	stepsPerUpdate int
}

// New creates a terminal viewer. The screen must already be initialised.
func New(screen tcell.Screen, g *game.Game, stepsPerUpdate int, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{
		screen:         screen,
		game:           g,
		logger:         logger,
		stepsPerUpdate: max(1, min(stepsPerUpdate, maxStepsPerUpdate)),
	}
}

// Run loops until the user quits, ctx is done or maxTicks is reached
// (0 = unlimited). Events are read on a separate goroutine; the game is only
// touched from this one.
func (t *Terminal) Run(ctx context.Context, maxTicks int) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				// screen finalised
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := t.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			if !t.paused {
				t.game.Run(t.stepsPerUpdate)
			}
			t.Draw()

			if maxTicks > 0 && int(t.game.Tick()) >= maxTicks {
				t.logger.Info("max ticks reached", "tick", t.game.Tick())
				return nil
			}
		}
	}
}

// handleEvent applies one terminal event. Returns true when the user quits.
func (t *Terminal) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false, nil
}

// Draw renders one frame.
func (t *Terminal) Draw() {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	fieldRows := rows - statusLines
	if cols <= 0 || fieldRows <= 0 {
		t.screen.Show()
		return
	}
	width, height := t.game.Field()

	for _, box := range t.game.Restricted() {
		c0, r0 := cellOf(box.Min.X, box.Min.Y, width, height, cols, fieldRows)
		c1, r1 := cellOf(box.Max.X, box.Max.Y, width, height, cols, fieldRows)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				t.screen.SetContent(c, r, '░', nil, styleRestricted)
			}
		}
	}

	// Dead birds first so live ones sharing a cell stay visible
	t.view = t.game.View(t.view[:0])
	for pass := 0; pass < 2; pass++ {
		for _, v := range t.view {
			if v.Alive != (pass == 1) {
				continue
			}
			c, r := cellOf(v.X, v.Y, width, height, cols, fieldRows)
			glyph, style := birdGlyph(v)
			t.screen.SetContent(c, r, glyph, nil, style)
		}
	}

	t.drawStatus(cols, rows)
	t.screen.Show()
}

// drawStatus writes the counts and params on the bottom two lines.
func (t *Terminal) drawStatus(cols, rows int) {
	counts := t.game.Counts()
	p := t.game.Params()

	state := ""
	switch {
	case t.paused:
		state = " PAUSED"
	case counts.Extinct():
		state = " EXTINCT"
	}
	if idx, kills, ok := t.game.TopHunter(); ok {
		state += fmt.Sprintf("  top #%d:%d", idx, kills)
	}
	status := fmt.Sprintf(" tick %d  prey %d/%d  pred %d/%d  inertia %.2f  coll %.0f  inter %.0f  shift %.2f  x%d%s",
		t.game.Tick(),
		counts.Prey, counts.Prey+counts.DeadPrey,
		counts.Predators, counts.Predators+counts.DeadPredators,
		p.Inertia, p.CollisionRadius, p.InteractionRadius, p.ShiftToBuddy,
		t.stepsPerUpdate, state,
	)
	drawText(t.screen, 0, rows-2, cols, status, styleStatus)
	drawText(t.screen, 0, rows-1, cols, " q quit  space pause  r reset  i/I inertia  c/C coll  a/A inter  s/S shift  -/+ speed", styleHelp)
}

// drawText writes s from (x, y), padding the line to width with the style.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

// cellOf maps a field position onto a cols x rows grid, clamped to it.
func cellOf(x, y, width, height float64, cols, rows int) (int, int) {
	c := int(math.Floor(x / width * float64(cols)))
	r := int(math.Floor(y / height * float64(rows)))
	return min(max(c, 0), cols-1), min(max(r, 0), rows-1)
}

// birdGlyph picks the rune and style for a bird.
func birdGlyph(v game.BirdView) (rune, tcell.Style) {
	if !v.Alive {
		return 'x', styleDead
	}
	glyph := headingGlyph(v.Heading)
	if v.Species == components.SpeciesPredator {
		return glyph, stylePredator[v.EnergyBand()].Bold(true)
	}
	return glyph, stylePrey
}

// headingGlyph returns the arrow nearest to heading.
func headingGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}
