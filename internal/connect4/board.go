package connect4

const emptyCell = -1

// Cell is a board coordinate. Row 0 is the top row.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Board is a grid of player orders, emptyCell where no piece has landed.
type Board struct {
	height int
	width  int
	cells  [][]int
}

func newBoard(height, width int) *Board {
	cells := make([][]int, height)
	for row := range cells {
		cells[row] = make([]int, width)
		for col := range cells[row] {
			cells[row][col] = emptyCell
		}
	}

	return &Board{
		height: height,
		width:  width,
		cells:  cells,
	}
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.height && col >= 0 && col < that.width
}

func (that *Board) at(row, col int) int {
	if !that.inBounds(row, col) {
		return emptyCell
	}
	return that.cells[row][col]
}

// landingRow - given column col, returns the lowest empty row, or -1 if the column is filled.
func (that *Board) landingRow(col int) int {
	for row := that.height - 1; row >= 0; row-- {
		if that.cells[row][col] == emptyCell {
			return row
		}
	}
	return -1
}

func (that *Board) place(row, col, order int) {
	that.cells[row][col] = order
}

func (that *Board) isFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == emptyCell {
				return false
			}
		}
	}
	return true
}

func (that *Board) count(order int) int {
	n := 0
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == order {
				n++
			}
		}
	}
	return n
}
