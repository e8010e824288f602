package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/birdies/config"
)

// paramStep is one key binding that nudges a live param.
type paramStep struct {
	apply func(p *config.Params, sign float64)
	up    rune
	down  rune
}

var paramSteps = []paramStep{
	{up: 'I', down: 'i', apply: func(p *config.Params, s float64) { p.Inertia = clamp(p.Inertia+s*0.05, 0, 1) }},
	{up: 'C', down: 'c', apply: func(p *config.Params, s float64) { p.CollisionRadius += s }},
	{up: 'A', down: 'a', apply: func(p *config.Params, s float64) { p.InteractionRadius += s }},
	{up: 'S', down: 's', apply: func(p *config.Params, s float64) { p.ShiftToBuddy = max(0, p.ShiftToBuddy+s*0.05) }},
}

// handleKey applies one key press. Returns true when the user quits.
func (t *Terminal) handleKey(key tcell.Key, ch rune) (bool, error) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyRune:
	default:
		return false, nil
	}

	switch ch {
	case 'q':
		return true, nil
	case ' ':
		t.paused = !t.paused
	case 'r':
		if err := t.game.Reset(); err != nil {
			return false, fmt.Errorf("reset: %w", err)
		}
		t.logger.Info("simulation reset")
	case 'z':
		p := t.game.Params()
		p.ShowZones = !p.ShowZones
		t.setParams(p)
	case '+', '=':
		t.stepsPerUpdate = min(t.stepsPerUpdate+1, maxStepsPerUpdate)
	case '-':
		t.stepsPerUpdate = max(t.stepsPerUpdate-1, 1)
	default:
		for _, step := range paramSteps {
			sign := 0.0
			switch ch {
			case step.up:
				sign = 1
			case step.down:
				sign = -1
			default:
				continue
			}
			p := t.game.Params()
			step.apply(&p, sign)
			t.setParams(p)
			break
		}
	}
	return false, nil
}

// setParams installs p, logging and dropping values the game rejects.
func (t *Terminal) setParams(p config.Params) {
	if err := t.game.SetParams(p); err != nil {
		t.logger.Debug("params rejected", "error", err)
	}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
