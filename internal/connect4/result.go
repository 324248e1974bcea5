package connect4

import "fmt"

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusTied       Status = "tied"
)

type Outcome string

const (
	OutcomeRejected  Outcome = "rejected"
	OutcomeContinued Outcome = "continued"
	OutcomeWon       Outcome = "won"
	OutcomeTied      Outcome = "tied"
)

// RejectReason tells the caller why a drop was ignored. All of them mean the
// game was left untouched.
type RejectReason string

const (
	ReasonNone             RejectReason = ""
	ReasonGameComplete     RejectReason = "game_complete"
	ReasonColumnFull       RejectReason = "column_full"
	ReasonColumnOutOfRange RejectReason = "column_out_of_range"
)

// MoveResult reports what a single drop did to the game.
type MoveResult struct {
	Outcome Outcome      `json:"outcome"`
	Reason  RejectReason `json:"reason,omitempty"`
	Player  Player       `json:"player"`
	Cell    Cell         `json:"cell"`
	Run     []Cell       `json:"run,omitempty"`
}

func rejected(player Player, reason RejectReason) MoveResult {
	return MoveResult{
		Outcome: OutcomeRejected,
		Reason:  reason,
		Player:  player,
	}
}

func (that MoveResult) IsRejected() bool {
	return that.Outcome == OutcomeRejected
}

func (that MoveResult) IsTerminal() bool {
	return that.Outcome == OutcomeWon || that.Outcome == OutcomeTied
}

// Announcement - the end-of-game message for the page, empty while the game goes on.
func (that MoveResult) Announcement() string {
	switch that.Outcome {
	case OutcomeWon:
		return fmt.Sprintf("Player %d won!", that.Player.Order+1)
	case OutcomeTied:
		return "Tie!"
	default:
		return ""
	}
}
