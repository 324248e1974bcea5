package connect4

const runLength = 4

type direction struct {
	dRow, dCol int
}

// scan order matters only for which of several simultaneous runs is reported.
var directions = []direction{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// runFrom - builds the run of four cells starting at (row, col) in direction d
// and reports whether all of them are in bounds and owned by order.
func (that *Board) runFrom(row, col int, d direction, order int) ([]Cell, bool) {
	run := make([]Cell, 0, runLength)
	for i := 0; i < runLength; i++ {
		r, c := row+i*d.dRow, col+i*d.dCol
		if !that.inBounds(r, c) || that.cells[r][c] != order {
			return nil, false
		}
		run = append(run, Cell{Row: r, Column: c})
	}
	return run, true
}

// HasFourInARow - checks the whole board cell-by-cell for "does a win for order start here?".
func (that *Board) HasFourInARow(order int) ([]Cell, bool) {
	for row := 0; row < that.height; row++ {
		for col := 0; col < that.width; col++ {
			for _, d := range directions {
				if run, ok := that.runFrom(row, col, d, order); ok {
					return run, true
				}
			}
		}
	}
	return nil, false
}

// runThrough - checks only the four lines passing through the given cell.
// Any new four-in-a-row must contain the newest piece, so this agrees with
// HasFourInARow when called after every drop.
func (that *Board) runThrough(cell Cell, order int) ([]Cell, bool) {
	if that.at(cell.Row, cell.Column) != order {
		return nil, false
	}

	for _, d := range directions {
		back := that.stretch(cell, -d.dRow, -d.dCol, order)
		forward := that.stretch(cell, d.dRow, d.dCol, order)
		if back+forward+1 < runLength {
			continue
		}

		shift := min(back, runLength-1)
		return that.runFrom(cell.Row-shift*d.dRow, cell.Column-shift*d.dCol, d, order)
	}

	return nil, false
}

// stretch - counts consecutive cells owned by order, walking away from cell.
func (that *Board) stretch(cell Cell, dRow, dCol, order int) int {
	n := 0
	r, c := cell.Row+dRow, cell.Column+dCol
	for that.at(r, c) == order {
		n++
		r += dRow
		c += dCol
	}
	return n
}
