package model

import (
	"math/rand/v2"
	"testing"
)

func TestNextValueRules(t *testing.T) {
	tests := []struct {
		name string
		data []bool
		want bool
	}{
		{
			name: "underpopulation",
			data: []bool{
				false, false, false,
				false, true, true,
				false, false, false,
			},
			want: false,
		},
		{
			name: "survival",
			data: []bool{
				false, false, false,
				false, true, true,
				false, false, true,
			},
			want: true,
		},
		{
			name: "overcrowding",
			data: []bool{
				true, true, true,
				false, true, true,
				false, false, false,
			},
			want: false,
		},
		{
			name: "reproduction",
			data: []bool{
				false, true, true,
				false, false, true,
				false, false, false,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := NewWorld(NewGrid(3, 3, tt.data))
			if got := world.NextValue(1, 1); got != tt.want {
				t.Fatalf("NextValue(1, 1) = %v, want %v", got, tt.want)
			}

			world.Step()
			if got := world.Current().Get(1, 1); got != tt.want {
				t.Fatalf("center after Step = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAliveNeighbors(t *testing.T) {
	world := NewWorld(NewGrid(5, 5, []bool{
		false, false, true, false, true,
		false, false, true, false, true,
		false, true, true, false, true,
		false, true, true, true, true,
		false, true, true, false, true,
	}))

	tests := []struct {
		i, j int
		want int
	}{
		{1, 1, 4},
		{2, 2, 5},
		{3, 3, 6},
	}
	for _, tt := range tests {
		if got := world.AliveNeighbors(tt.i, tt.j); got != tt.want {
			t.Errorf("AliveNeighbors(%d, %d) = %d, want %d", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestAliveNeighborsWraparound(t *testing.T) {
	g := NewEmptyGrid(4, 4)
	g.Set(3, 3, true)
	g.Set(3, 0, true)
	g.Set(0, 3, true)
	world := NewWorld(g)

	if got := world.AliveNeighbors(0, 0); got != 3 {
		t.Fatalf("AliveNeighbors(0, 0) = %d, want 3 via wraparound", got)
	}
	// Border cells are still dead next generation despite three neighbors
	if world.NextValue(0, 0) {
		t.Fatalf("NextValue(0, 0) = true for a border cell")
	}
}

func TestAliveNeighborsOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		grid *Grid
		i, j int
	}{
		{"past the end", NewEmptyGrid(3, 3), 4, 4},
		{"negative", NewEmptyGrid(3, 3), -1, 1},
		{"empty grid", NewEmptyGrid(0, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := NewWorld(tt.grid)
			defer func() {
				if recover() == nil {
					t.Fatalf("AliveNeighbors(%d, %d) did not panic", tt.i, tt.j)
				}
			}()
			world.AliveNeighbors(tt.i, tt.j)
		})
	}
}

func TestBordersDeadAfterStep(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	sizes := [][2]int{{1, 1}, {1, 7}, {2, 2}, {3, 3}, {5, 8}, {16, 16}, {9, 31}}

	for _, size := range sizes {
		rows, columns := size[0], size[1]
		g := NewEmptyGrid(rows, columns)
		g.Randomize(rng, 0.6)

		world := NewWorld(g)
		for range 3 {
			world.Step()
			cur := world.Current()
			for i := range rows {
				for j := range columns {
					border := i == 0 || i == rows-1 || j == 0 || j == columns-1
					if border && cur.Get(i, j) {
						t.Fatalf("%dx%d: border cell (%d,%d) alive after generation %d",
							rows, columns, i, j, world.Generation())
					}
				}
			}
		}
	}
}

func TestNarrowGridsDieInOneStep(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {2, 9}, {9, 2}, {1, 5}}
	for _, size := range sizes {
		data := make([]bool, size[0]*size[1])
		for i := range data {
			data[i] = true
		}
		world := NewWorld(NewGrid(size[0], size[1], data))
		world.Step()
		if n := world.Current().CountLivingCells(); n != 0 {
			t.Fatalf("%dx%d: %d cells alive after one step, want 0", size[0], size[1], n)
		}
	}
}

func TestAllDeadStaysDead(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {10, 4}, {25, 25}} {
		world := NewWorld(NewEmptyGrid(size[0], size[1]))
		for range 5 {
			world.Step()
			if n := world.Current().CountLivingCells(); n != 0 {
				t.Fatalf("%dx%d: dead board grew %d cells", size[0], size[1], n)
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := NewEmptyGrid(5, 5)
	g.Set(1, 2, true)
	g.Set(2, 2, true)
	g.Set(3, 2, true)
	vertical := g.Clone()

	world := NewWorld(g)
	world.Step()

	horizontal := NewEmptyGrid(5, 5)
	horizontal.AddBlinker(2, 1)
	if !world.Current().Equal(horizontal) {
		t.Fatalf("blinker did not turn horizontal after one step")
	}

	world.Step()
	if !world.Current().Equal(vertical) {
		t.Fatalf("blinker did not return to vertical after two steps")
	}
	if world.Generation() != 2 {
		t.Fatalf("Generation() = %d, want 2", world.Generation())
	}
}

func TestGliderMoves(t *testing.T) {
	g := NewEmptyGrid(10, 10)
	g.AddGlider(1, 1)
	world := NewWorld(g)

	for range 4 {
		world.Step()
	}

	want := NewEmptyGrid(10, 10)
	want.AddGlider(2, 2)
	if !world.Current().Equal(want) {
		t.Fatalf("glider did not move one cell diagonally after four steps")
	}
}

func TestStable(t *testing.T) {
	g := NewEmptyGrid(6, 6)
	g.Set(2, 2, true)
	g.Set(2, 3, true)
	g.Set(3, 2, true)
	g.Set(3, 3, true)
	world := NewWorld(g)

	if world.Stable() {
		t.Fatalf("Stable() = true before any step")
	}
	world.Step()
	if !world.Stable() {
		t.Fatalf("block should be stable after one step")
	}

	blinker := NewEmptyGrid(6, 6)
	blinker.AddBlinker(2, 1)
	world = NewWorld(blinker)
	world.Step()
	if world.Stable() {
		t.Fatalf("blinker reported stable")
	}
}

func TestDeterminism(t *testing.T) {
	g := NewEmptyGrid(24, 24)
	g.Randomize(rand.New(rand.NewPCG(99, 0)), 0.35)

	a := NewWorld(g)
	b := NewWorld(g.Clone())
	for range 40 {
		a.Step()
		b.Step()
		if !a.Current().Equal(b.Current()) {
			t.Fatalf("worlds diverged at generation %d", a.Generation())
		}
	}
}

func TestNewWorldCopiesInitialGrid(t *testing.T) {
	g := NewEmptyGrid(5, 5)
	g.AddBlinker(2, 1)
	world := NewWorld(g)

	g.Set(2, 2, false)
	g.Set(0, 0, true)
	if !world.Current().Get(2, 2) || world.Current().Get(0, 0) {
		t.Fatalf("world shares storage with its initial grid")
	}
}

func TestReset(t *testing.T) {
	g := NewEmptyGrid(5, 5)
	g.AddBlinker(2, 1)
	world := NewWorld(g)
	world.Step()
	world.Step()
	world.Step()

	world.Reset(g)
	if world.Generation() != 0 {
		t.Fatalf("Generation() = %d after Reset, want 0", world.Generation())
	}
	if !world.Current().Equal(g) {
		t.Fatalf("Reset did not restore the grid")
	}
	if world.Stable() {
		t.Fatalf("Stable() = true right after Reset")
	}
}

func TestResetPanicsOnDimensionMismatch(t *testing.T) {
	world := NewWorld(NewEmptyGrid(5, 5))
	defer func() {
		if recover() == nil {
			t.Fatalf("Reset accepted a grid of different dimensions")
		}
	}()
	world.Reset(NewEmptyGrid(4, 5))
}
