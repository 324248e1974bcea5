package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
)

// Match is one live game owned by a browser page. It replaces a process-wide
// game: every page holds its own match ID and restarting removes the match.
type Match struct {
	ID      string            `json:"id"`
	Palette Palette           `json:"palette"`
	Game    connect4.Snapshot `json:"game"`
}

func NewMatch(id string, palette Palette, game *connect4.Game) *Match {
	return &Match{
		ID:      id,
		Palette: palette,
		Game:    game.Snapshot(),
	}
}

// Load - rebuilds the engine state stored in the match.
func (that *Match) Load() (*connect4.Game, error) {
	game, err := connect4.Restore(that.Game)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", that.ID, err)
	}
	return game, nil
}

// Save - stores the engine state back into the match.
func (that *Match) Save(game *connect4.Game) {
	that.Game = game.Snapshot()
}

func (that *Match) IsFinished() bool {
	return that.Game.Status != connect4.StatusInProgress
}
