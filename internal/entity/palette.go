package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
)

// Palette holds the display colors of the two players, indexed by player order.
// The engine never looks at it.
type Palette [2]string

func (that Palette) Validate() error {
	if that[0] == "" || that[1] == "" || that[0] == that[1] {
		return fmt.Errorf("%w: %q, %q", apperror.ErrInvalidPalette, that[0], that[1])
	}
	return nil
}

func (that Palette) ColorOf(player connect4.Player) string {
	return that[player.Order]
}
