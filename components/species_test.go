package components

import (
	"testing"

	"github.com/pthm-cable/birdies/config"
)

func TestCapabilityTable(t *testing.T) {
	tests := []struct {
		species     Species
		canKill     bool
		canBeKilled bool
		hasEnergy   bool
	}{
		{SpeciesPrey, false, true, false},
		{SpeciesPredator, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.species.String(), func(t *testing.T) {
			if got := tt.species.CanKill(); got != tt.canKill {
				t.Errorf("CanKill = %v, want %v", got, tt.canKill)
			}
			if got := tt.species.CanBeKilled(); got != tt.canBeKilled {
				t.Errorf("CanBeKilled = %v, want %v", got, tt.canBeKilled)
			}
			if got := tt.species.HasEnergy(); got != tt.hasEnergy {
				t.Errorf("HasEnergy = %v, want %v", got, tt.hasEnergy)
			}
		})
	}
}

func TestCapabilitiesFromConfig(t *testing.T) {
	cfg := config.SpeciesConfig{
		Prey:     config.SpeciesTraits{SizeRatio: 1, SpeedRatio: 1.5},
		Predator: config.SpeciesTraits{SizeRatio: 3, SpeedRatio: 0.5},
	}

	pred := CapabilitiesFromConfig(SpeciesPredator, &cfg)
	if pred.SizeRatio != 3 || pred.SpeedRatio != 0.5 || !pred.CanKill {
		t.Errorf("predator caps = %+v", pred)
	}
	prey := CapabilitiesFromConfig(SpeciesPrey, &cfg)
	if prey.SpeedRatio != 1.5 || prey.CanKill {
		t.Errorf("prey caps = %+v", prey)
	}
}

func TestVelocityStop(t *testing.T) {
	v := Velocity{X: 3, Y: 4, LastX: 1, LastY: 1}
	if v.Speed() != 5 {
		t.Errorf("Speed = %v, want 5", v.Speed())
	}
	v.Stop()
	if v != (Velocity{}) {
		t.Errorf("Stop left %+v", v)
	}
}
