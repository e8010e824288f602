// Package systems provides the per-bird simulation systems.
package systems

// SpatialGrid buckets bird indices into uniform cells for neighbour queries.
//
// Queries return the 3x3 block of cells around a position. Pairs further
// apart than one cell width beyond the bird's own cell are missed; the
// interaction radius is kept within two cell widths so this stays rare.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a spatial grid covering the given field size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// CellSize returns the grid cell size.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Clear removes all birds from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a bird index at the given position.
// Positions outside the field land in the nearest edge cell.
func (g *SpatialGrid) Insert(index int, x, y float64) {
	col, row := g.cellCoords(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryInto appends the indices stored in the cell containing (x, y) and
// its 8 neighbours to dst and returns the extended slice.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryInto(dst []int, x, y float64) []int {
	centerCol, centerRow := g.cellCoords(x, y)

	for dr := -1; dr <= 1; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}

	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float64) (int, int) {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	if x < 0 {
		col = 0
	}
	if y < 0 {
		row = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
