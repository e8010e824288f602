package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/birdies/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Nil manager is a no-op
	if err := om.WritePopulation(Sample{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := range 3 {
		if err := om.WritePopulation(Sample{Tick: int32(i), Prey: 90 - i, Predators: 10}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteWindow(WindowStats{WindowEndTick: 600, PreyCount: 80, Kills: 10}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEvents(nil); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEvents([]Event{NewKillEvent(7, 1, 12), NewStarvationEvent(9, 3)}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "population.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("population.csv has %d lines, want header + 3:\n%s", len(lines), data)
	}
	if lines[0] != "tick,prey,predators" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[3] != "2,88,10" {
		t.Errorf("last row = %q", lines[3])
	}

	data, err = os.ReadFile(filepath.Join(dir, "windows.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "window_end,prey,pred,kills") {
		t.Errorf("windows.csv header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	wantEvents := "tick,type,bird,killer\n7,kill,12,1\n9,starvation,3,-1"
	if got := strings.TrimSpace(string(data)); got != wantEvents {
		t.Errorf("events.csv = %q, want %q", got, wantEvents)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}
