// Package ui draws the simulation in a raylib window and exposes the live
// tunables through a raygui control panel on the right of the field.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/systems"
)

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color

	Prey       rl.Color
	Predator   rl.Color
	Dead       rl.Color
	Restricted rl.Color

	CollisionZone   rl.Color
	InteractionZone rl.Color

	BarBg         rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	ChartPrey     rl.Color
	ChartPredator rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    rl.Color{R: 235, G: 240, B: 245, A: 255},
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,

		Prey:       rl.Color{R: 40, G: 90, B: 200, A: 255},
		Predator:   rl.Color{R: 200, G: 50, B: 40, A: 255},
		Dead:       rl.Color{R: 120, G: 120, B: 120, A: 160},
		Restricted: rl.Color{R: 90, G: 90, B: 100, A: 200},

		CollisionZone:   rl.Color{R: 220, G: 60, B: 60, A: 90},
		InteractionZone: rl.Color{R: 60, G: 160, B: 60, A: 60},

		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:    rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium: rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:   rl.Color{R: 100, G: 200, B: 100, A: 255},

		ChartPrey:     rl.Color{R: 100, G: 150, B: 240, A: 255},
		ChartPredator: rl.Color{R: 240, G: 100, B: 90, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// SpeciesColor returns the body color of a bird.
func (t Theme) SpeciesColor(s components.Species, alive bool) rl.Color {
	if !alive {
		return t.Dead
	}
	if s == components.SpeciesPredator {
		return t.Predator
	}
	return t.Prey
}

// BandColor returns the energy bar fill for a band.
func (t Theme) BandColor(b systems.EnergyBand) rl.Color {
	switch b {
	case systems.BandHigh:
		return t.BarFillHigh
	case systems.BandMedium:
		return t.BarFillMedium
	default:
		return t.BarFillLow
	}
}
