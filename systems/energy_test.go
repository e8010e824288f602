package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/birdies/components"
)

func testEnergyParams() EnergyParams {
	return EnergyParams{Initial: 100, LossInterval: 10, LossAmount: 1, SpeedCost: 0.2, BaseSpeed: 1}
}

func TestUpdateEnergyInterval(t *testing.T) {
	p := testEnergyParams()
	e := components.Energy{Value: 100, Max: 100}
	b := components.Bird{Alive: true}

	for i := 0; i < 9; i++ {
		UpdateEnergy(&e, &b, 0.5, p)
	}
	if e.Value != 100 || e.Cycle != 9 {
		t.Fatalf("after 9 ticks: value=%g cycle=%d, want 100/9", e.Value, e.Cycle)
	}

	UpdateEnergy(&e, &b, 0.5, p)
	if e.Value != 99 || e.Cycle != 0 {
		t.Errorf("after 10 ticks: value=%g cycle=%d, want 99/0", e.Value, e.Cycle)
	}
}

func TestUpdateEnergySpeedCost(t *testing.T) {
	p := testEnergyParams()
	e := components.Energy{Value: 100, Max: 100, Cycle: 9}
	b := components.Bird{Alive: true}

	UpdateEnergy(&e, &b, 2, p)
	if math.Abs(e.Value-98.8) > 1e-9 {
		t.Errorf("value = %g, want 98.8", e.Value)
	}
}

func TestUpdateEnergyStarves(t *testing.T) {
	p := testEnergyParams()
	e := components.Energy{Value: 1, Max: 100, Cycle: 9}
	b := components.Bird{Alive: true}

	if starved := UpdateEnergy(&e, &b, 3, p); !starved {
		t.Fatal("expected starvation")
	}
	if b.Alive || e.Value != 0 {
		t.Errorf("alive=%v value=%g, want dead with 0 energy", b.Alive, e.Value)
	}

	// Dead predators stay dead and untouched
	for range 20 {
		if UpdateEnergy(&e, &b, 3, p) {
			t.Fatal("starved twice")
		}
	}
	if e.Value != 0 || b.Alive {
		t.Errorf("dead predator changed: value=%g alive=%v", e.Value, b.Alive)
	}
}

func TestFeed(t *testing.T) {
	e := components.Energy{Value: 40, Max: 100, Cycle: 4}
	b := components.Bird{Alive: true}

	Feed(&e, &b)
	if e.Value != 100 || e.Cycle != 4 {
		t.Errorf("after Feed: value=%g cycle=%d, want 100/4", e.Value, e.Cycle)
	}

	dead := components.Energy{Value: 0, Max: 100}
	Feed(&dead, &components.Bird{})
	if dead.Value != 0 {
		t.Errorf("fed a dead predator: value=%g", dead.Value)
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		alive bool
		want  EnergyState
	}{
		{"full", 100, true, EnergyFed},
		{"partial", 50, true, EnergyDecaying},
		{"empty", 0, false, EnergyStarved},
		{"dead with energy", 20, false, EnergyStarved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StateOf(components.Energy{Value: tt.value, Max: 100}, tt.alive)
			if got != tt.want {
				t.Errorf("StateOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		value float64
		want  EnergyBand
	}{
		{100, BandHigh},
		{71, BandHigh},
		{70, BandMedium},
		{31, BandMedium},
		{30, BandLow},
		{0, BandLow},
	}
	for _, tt := range tests {
		if got := BandOf(tt.value, 100); got != tt.want {
			t.Errorf("BandOf(%g) = %v, want %v", tt.value, got, tt.want)
		}
	}
	if BandOf(5, 0) != BandLow {
		t.Error("zero max should be low")
	}
}
