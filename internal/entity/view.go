package entity

import "github.com/rocketscienceinc/connectfour-backend/internal/connect4"

// MatchView is what a page needs to draw a match: the grid holds -1 for an
// empty cell or the order of the occupying player.
type MatchView struct {
	ID            string           `json:"id"`
	Palette       Palette          `json:"palette"`
	Height        int              `json:"height"`
	Width         int              `json:"width"`
	Grid          [][]int          `json:"grid"`
	CurrentPlayer connect4.Player  `json:"current_player"`
	Status        connect4.Status  `json:"status"`
	Complete      bool             `json:"complete"`
	Winner        *connect4.Player `json:"winner,omitempty"`
	WinningRun    []connect4.Cell  `json:"winning_run,omitempty"`
}

func (that *Match) View() (*MatchView, error) {
	game, err := that.Load()
	if err != nil {
		return nil, err
	}

	grid := make([][]int, game.Height())
	for row := range grid {
		grid[row] = make([]int, game.Width())
		for col := range grid[row] {
			grid[row][col] = -1
			if player, ok := game.CellAt(row, col); ok {
				grid[row][col] = player.Order
			}
		}
	}

	view := &MatchView{
		ID:            that.ID,
		Palette:       that.Palette,
		Height:        game.Height(),
		Width:         game.Width(),
		Grid:          grid,
		CurrentPlayer: game.CurrentPlayer(),
		Status:        game.Status(),
		Complete:      game.IsComplete(),
		WinningRun:    game.WinningRun(),
	}

	if winner, ok := game.Winner(); ok {
		view.Winner = &winner
	}

	return view, nil
}
