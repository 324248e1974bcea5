package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

// MatchManager owns the live matches of all open pages. Drops are serialised:
// the engine expects one move at a time.
type MatchManager struct {
	logger    *slog.Logger
	matchRepo matchRepo

	board   config.Board
	palette entity.Palette

	mu sync.Mutex
}

func NewMatchManager(logger *slog.Logger, matchRepo matchRepo, board config.Board, palette entity.Palette) *MatchManager {
	return &MatchManager{
		logger:    logger.With("component", "match_manager"),
		matchRepo: matchRepo,

		board:   board,
		palette: palette,
	}
}

// StartMatch - creates a fresh game; a nil palette falls back to the configured colors.
func (that *MatchManager) StartMatch(ctx context.Context, palette *entity.Palette) (*entity.Match, error) {
	log := that.logger.With("method", "StartMatch")

	colors := that.palette
	if palette != nil {
		colors = *palette
	}

	if err := colors.Validate(); err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}

	game, err := connect4.NewGame(that.board.Height, that.board.Width, [2]connect4.Player{{Order: 0}, {Order: 1}})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	match := entity.NewMatch(uuid.NewString(), colors, game)
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("match started", "matchID", match.ID)

	return match, nil
}

// DropPiece - plays column for whoever's turn it is. Rejected drops are
// reported in the result and never written back.
func (that *MatchManager) DropPiece(ctx context.Context, matchID string, column int) (*entity.Match, connect4.MoveResult, error) {
	log := that.logger.With("method", "DropPiece", "matchID", matchID)

	that.mu.Lock()
	defer that.mu.Unlock()

	match, err := that.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, connect4.MoveResult{}, fmt.Errorf("failed to get match: %w", err)
	}

	game, err := match.Load()
	if err != nil {
		return nil, connect4.MoveResult{}, fmt.Errorf("failed to load game: %w", err)
	}

	result := game.DropPiece(column)
	if result.IsRejected() {
		log.Debug("drop ignored", "column", column, "reason", result.Reason)

		return match, result, nil
	}

	match.Save(game)
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, connect4.MoveResult{}, fmt.Errorf("failed to update match: %w", err)
	}

	if result.IsTerminal() {
		log.Info("match finished", "outcome", result.Outcome, "announcement", result.Announcement())
	}

	return match, result, nil
}

func (that *MatchManager) GetMatch(ctx context.Context, matchID string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// RemoveMatch - discards the match; the page starts a new one to play again.
func (that *MatchManager) RemoveMatch(ctx context.Context, matchID string) error {
	log := that.logger.With("method", "RemoveMatch")

	if err := that.matchRepo.DeleteByID(ctx, matchID); err != nil {
		return fmt.Errorf("failed to remove match: %w", err)
	}

	log.Info("match removed", "matchID", matchID)

	return nil
}
