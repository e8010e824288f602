package systems

import (
	"slices"
	"testing"
)

func TestSpatialGridQuery(t *testing.T) {
	g := NewSpatialGrid(1200, 800, 50)
	g.Insert(0, 10, 10)
	g.Insert(1, 60, 10)   // neighbouring cell
	g.Insert(2, 200, 200) // far away
	g.Insert(3, 90, 90)   // diagonal neighbour

	got := g.QueryInto(nil, 10, 10)
	slices.Sort(got)
	want := []int{0, 1, 3}
	if !slices.Equal(got, want) {
		t.Errorf("QueryInto = %v, want %v", got, want)
	}
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	g.Insert(0, -20, -20)
	g.Insert(1, 500, 500)

	if got := g.QueryInto(nil, 0, 0); !slices.Contains(got, 0) {
		t.Errorf("bird left of the field not found near origin: %v", got)
	}
	if got := g.QueryInto(nil, 100, 100); !slices.Contains(got, 1) {
		t.Errorf("bird past the far corner not found near it: %v", got)
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	g.Insert(0, 10, 10)
	g.Clear()
	if got := g.QueryInto(nil, 10, 10); len(got) != 0 {
		t.Errorf("after Clear, QueryInto = %v, want empty", got)
	}
	if g.CellSize() != 50 {
		t.Errorf("CellSize = %g, want 50", g.CellSize())
	}
}

func TestSpatialGridReusesBuffer(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	g.Insert(7, 10, 10)
	buf := make([]int, 0, 16)
	buf = g.QueryInto(buf[:0], 10, 10)
	buf = g.QueryInto(buf[:0], 10, 10)
	if len(buf) != 1 || buf[0] != 7 {
		t.Errorf("QueryInto with reused buffer = %v, want [7]", buf)
	}
}
