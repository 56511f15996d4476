package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Grid is a fixed-size board of cells stored row-major in a flat slice
type Grid struct {
	rows    int
	columns int
	cells   []bool
}

// NewGrid creates a grid from flattened row-major data, where cell (row, column)
// lives at index row*columns + column. The data is copied.
func NewGrid(rows, columns int, data []bool) *Grid {
	if rows < 0 || columns < 0 {
		panic(errors.Errorf("[NewGrid] negative dimensions %dx%d", rows, columns))
	}
	if len(data) != rows*columns {
		panic(errors.Errorf("[NewGrid] data length %d does not match %dx%d", len(data), rows, columns))
	}

	cells := make([]bool, len(data))
	copy(cells, data)
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   cells,
	}
}

// NewEmptyGrid creates an all-dead grid with the specified dimensions
func NewEmptyGrid(rows, columns int) *Grid {
	return NewGrid(rows, columns, make([]bool, rows*columns))
}

// GetRows returns the number of rows in the grid
func (g *Grid) GetRows() int {
	return g.rows
}

// GetColumns returns the number of columns in the grid
func (g *Grid) GetColumns() int {
	return g.columns
}

// index maps a coordinate onto the backing slice. Out-of-range coordinates
// are a bug in the caller and panic instead of wrapping.
func (g *Grid) index(row, column int) int {
	if row < 0 || row >= g.rows || column < 0 || column >= g.columns {
		panic(errors.Errorf("[Grid] cell (%d, %d) out of range for %dx%d grid", row, column, g.rows, g.columns))
	}
	return row*g.columns + column
}

// Get returns the state of a cell
func (g *Grid) Get(row, column int) bool {
	return g.cells[g.index(row, column)]
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(row, column int, alive bool) {
	g.cells[g.index(row, column)] = alive
}

// Clone returns a deep copy with independent storage
func (g *Grid) Clone() *Grid {
	return NewGrid(g.rows, g.columns, g.cells)
}

// SameSize reports whether both grids have identical dimensions
func (g *Grid) SameSize(other *Grid) bool {
	return g.rows == other.rows && g.columns == other.columns
}

// Equal reports whether both grids have the same dimensions and content
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) {
		return false
	}
	for i, alive := range g.cells {
		if other.cells[i] != alive {
			return false
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return
}

// setClipped sets a cell only when it is in range, for pattern stamping
func (g *Grid) setClipped(row, column int, alive bool) {
	if row >= 0 && row < g.rows && column >= 0 && column < g.columns {
		g.cells[row*g.columns+column] = alive
	}
}

// Randomize fills the grid with living cells at the given density
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.cells {
		g.cells[i] = rng.Float64() < density
	}
}

// AddGlider adds a glider pattern with its top-left corner at (startRow, startColumn).
// Cells falling outside the grid are dropped.
func (g *Grid) AddGlider(startRow, startColumn int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for r, row := range pattern {
		for c, cell := range row {
			g.setClipped(startRow+r, startColumn+c, cell)
		}
	}
}

// AddBlinker adds a horizontal blinker oscillator starting at (startRow, startColumn)
func (g *Grid) AddBlinker(startRow, startColumn int) {
	for c := range 3 {
		g.setClipped(startRow, startColumn+c, true)
	}
}
