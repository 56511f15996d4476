package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of an interior cell.

  - alive with 0 or 1 neighbors dies (underpopulation)
  - alive with 2 or 3 neighbors survives
  - alive with 4 or more neighbors dies (overcrowding)
  - dead with exactly 3 neighbors is born (reproduction)
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// IsBorder reports whether (row, column) lies in the first or last row or column
func IsBorder(row, column, rows, columns int) bool {
	return row == 0 || row == rows-1 || column == 0 || column == columns-1
}
