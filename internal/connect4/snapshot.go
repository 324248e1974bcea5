package connect4

import (
	"errors"
	"fmt"
)

var ErrCorruptSnapshot = errors.New("snapshot does not describe a reachable game")

// Snapshot is the serialisable image of a game. Grid rows run top to bottom
// and hold the occupying player's order, or -1 for an empty cell.
type Snapshot struct {
	Height int     `json:"height"`
	Width  int     `json:"width"`
	Grid   [][]int `json:"grid"`
	Turn   int     `json:"turn"`
	Status Status  `json:"status"`
}

func (that *Game) Snapshot() Snapshot {
	grid := make([][]int, that.board.height)
	for row := range grid {
		grid[row] = append([]int(nil), that.board.cells[row]...)
	}

	return Snapshot{
		Height: that.board.height,
		Width:  that.board.width,
		Grid:   grid,
		Turn:   that.CurrentPlayer().Order,
		Status: that.status,
	}
}

// Restore - rebuilds a game from a snapshot. The outcome is recomputed with a
// whole-board scan and must agree with the stored status and turn.
func Restore(snapshot Snapshot) (*Game, error) {
	game, err := NewGame(snapshot.Height, snapshot.Width, [2]Player{{Order: 0}, {Order: 1}})
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if err = game.fill(snapshot.Grid); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	first, second := game.board.count(0), game.board.count(1)
	if first != second && first != second+1 {
		return nil, fmt.Errorf("%w: %d pieces against %d", ErrCorruptSnapshot, first, second)
	}

	lastMover := 1
	if first > second {
		lastMover = 0
	}

	if err = game.settle(lastMover); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	if game.status != snapshot.Status || game.turn != snapshot.Turn {
		return nil, fmt.Errorf("%w: stored %s/turn %d, board says %s/turn %d",
			ErrCorruptSnapshot, snapshot.Status, snapshot.Turn, game.status, game.turn)
	}

	return game, nil
}

// fill - copies grid onto the empty board, checking shape, values and gravity.
func (that *Game) fill(grid [][]int) error {
	if len(grid) != that.board.height {
		return fmt.Errorf("grid has %d rows, want %d", len(grid), that.board.height)
	}

	for row, cells := range grid {
		if len(cells) != that.board.width {
			return fmt.Errorf("row %d has %d cells, want %d", row, len(cells), that.board.width)
		}

		for col, order := range cells {
			if order < emptyCell || order >= len(that.players) {
				return fmt.Errorf("cell %d-%d holds unknown player %d", row, col, order)
			}
			that.board.place(row, col, order)
		}
	}

	for row := 0; row < that.board.height-1; row++ {
		for col := 0; col < that.board.width; col++ {
			if that.board.cells[row][col] != emptyCell && that.board.cells[row+1][col] == emptyCell {
				return fmt.Errorf("piece at %d-%d is floating", row, col)
			}
		}
	}

	return nil
}

// settle - derives status and turn from the filled board.
func (that *Game) settle(lastMover int) error {
	var winners []int
	for order := range that.players {
		if run, ok := that.board.HasFourInARow(order); ok {
			winners = append(winners, order)
			that.run = run
		}
	}

	switch {
	case len(winners) > 1:
		return errors.New("both players have four in a row")
	case len(winners) == 1:
		if winners[0] != lastMover {
			return fmt.Errorf("player %d has four in a row but did not move last", winners[0])
		}
		that.status = StatusWon
		that.winner = lastMover
		that.turn = lastMover
	case that.board.isFull():
		that.status = StatusTied
		that.turn = lastMover
	default:
		that.turn = (lastMover + 1) % len(that.players)
	}

	return nil
}
