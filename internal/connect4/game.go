package connect4

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("board height and width must be positive")
	ErrInvalidPlayers    = errors.New("players must have orders 0 and 1")
)

// Player is an immutable identity. Order decides who moves first and how the
// player is numbered in announcements; presentation lives outside the engine.
type Player struct {
	Order int `json:"order"`
}

// Game owns the board and the turn state of a single Connect Four game.
// It is not safe for concurrent use; callers serialise moves.
type Game struct {
	board   *Board
	players []Player
	turn    int
	status  Status
	winner  int
	run     []Cell
}

// NewGame - creates an empty board; players[0] moves first.
func NewGame(height, width int, players [2]Player) (*Game, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}

	for i, player := range players {
		if player.Order != i {
			return nil, fmt.Errorf("%w: got %d at position %d", ErrInvalidPlayers, player.Order, i)
		}
	}

	return &Game{
		board:   newBoard(height, width),
		players: players[:],
		status:  StatusInProgress,
		winner:  emptyCell,
	}, nil
}

// DropPiece - drops the current player's piece into column. Moves after the
// game ended, into a full column or outside the board are rejected and leave
// the game untouched.
func (that *Game) DropPiece(column int) MoveResult {
	mover := that.CurrentPlayer()

	if that.IsComplete() {
		return rejected(mover, ReasonGameComplete)
	}

	if column < 0 || column >= that.board.width {
		return rejected(mover, ReasonColumnOutOfRange)
	}

	row := that.board.landingRow(column)
	if row < 0 {
		return rejected(mover, ReasonColumnFull)
	}

	cell := Cell{Row: row, Column: column}
	that.board.place(row, column, mover.Order)

	// win first: a board-filling move can also complete a four-in-a-row
	if run, ok := that.board.runThrough(cell, mover.Order); ok {
		that.status = StatusWon
		that.winner = mover.Order
		that.run = run
		return MoveResult{Outcome: OutcomeWon, Player: mover, Cell: cell, Run: run}
	}

	if that.board.isFull() {
		that.status = StatusTied
		return MoveResult{Outcome: OutcomeTied, Player: mover, Cell: cell}
	}

	that.turn = (that.turn + 1) % len(that.players)

	return MoveResult{Outcome: OutcomeContinued, Player: mover, Cell: cell}
}

func (that *Game) CurrentPlayer() Player {
	return that.players[that.turn]
}

func (that *Game) IsComplete() bool {
	return that.status != StatusInProgress
}

func (that *Game) Status() Status {
	return that.status
}

// Winner - returns the winning player once the game is won.
func (that *Game) Winner() (Player, bool) {
	if that.status != StatusWon {
		return Player{}, false
	}
	return that.players[that.winner], true
}

// WinningRun - the four cells that decided the game, nil unless won.
func (that *Game) WinningRun() []Cell {
	return append([]Cell(nil), that.run...)
}

// CellAt - returns the player occupying (row, col). Empty and out-of-range cells report false.
func (that *Game) CellAt(row, col int) (Player, bool) {
	order := that.board.at(row, col)
	if order == emptyCell {
		return Player{}, false
	}
	return that.players[order], true
}

func (that *Game) Height() int {
	return that.board.height
}

func (that *Game) Width() int {
	return that.board.width
}

func (that *Game) Players() [2]Player {
	return [2]Player{that.players[0], that.players[1]}
}
