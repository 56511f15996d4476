package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

// neighborOffsets lists the eight (row, column) offsets around a cell
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// World advances a grid one generation at a time. It owns two buffers of the
// same size: current is the visible generation and next is scratch space that
// is fully written before the two are swapped.
//
// A World is not safe for concurrent use.
type World struct {
	current    *Grid
	next       *Grid
	generation int
	stepped    bool
}

// NewWorld creates a world whose first generation is a copy of initial
func NewWorld(initial *Grid) *World {
	return &World{
		current: initial.Clone(),
		next:    initial.Clone(),
	}
}

// Current returns the current generation. Callers must treat it as read-only.
func (w *World) Current() *Grid {
	return w.current
}

// Generation returns the number of completed steps since construction or the last Reset
func (w *World) Generation() int {
	return w.generation
}

// Reset replaces the current generation with a copy of g and rewinds the
// generation counter. g must have the world's dimensions.
func (w *World) Reset(g *Grid) {
	if !g.SameSize(w.current) {
		panic(errors.Errorf("[World.Reset] grid is %dx%d, world is %dx%d",
			g.GetRows(), g.GetColumns(), w.current.GetRows(), w.current.GetColumns()))
	}
	copy(w.current.cells, g.cells)
	copy(w.next.cells, g.cells)
	w.generation = 0
	w.stepped = false
}

// Step computes the next generation into the scratch buffer and then makes it current
func (w *World) Step() {
	rows, columns := w.current.rows, w.current.columns
	for i := range rows {
		for j := range columns {
			w.next.cells[i*columns+j] = w.NextValue(i, j)
		}
	}

	// After the swap, next holds the previous generation; it is overwritten in full on the next Step.
	w.current, w.next = w.next, w.current
	w.generation++
	w.stepped = true
}

// Stable reports whether the last Step left every cell unchanged
func (w *World) Stable() bool {
	return w.stepped && w.current.Equal(w.next)
}

// AliveNeighbors counts the living cells among the eight neighbors of (i, j).
// Neighbor coordinates wrap around the grid edges; (i, j) itself must be in range.
func (w *World) AliveNeighbors(i, j int) int {
	w.current.index(i, j)

	rows, columns := w.current.rows, w.current.columns
	count := 0
	for _, offset := range neighborOffsets {
		r := (i + offset[0] + rows) % rows
		c := (j + offset[1] + columns) % columns
		if w.current.Get(r, c) {
			count++
		}
	}
	return count
}

// NextValue returns the state of (i, j) in the next generation. Border cells
// are always dead; interior cells follow Conway's rules.
func (w *World) NextValue(i, j int) bool {
	if rules.IsBorder(i, j, w.current.rows, w.current.columns) {
		return false
	}
	return rules.ApplyConwayRules(w.AliveNeighbors(i, j), w.current.Get(i, j))
}
