package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
)

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	err := json.Unmarshal(msg.Payload, &payload)
	return payload, err
}

// publicError - maps usecase errors to what the page may see.
func publicError(err error) string {
	switch {
	case errors.Is(err, apperror.ErrMatchNotFound):
		return apperror.ErrMatchNotFound.Error()
	case errors.Is(err, apperror.ErrInvalidPalette):
		return apperror.ErrInvalidPalette.Error()
	case errors.Is(err, connect4.ErrCorruptSnapshot):
		return "match state is corrupt, start a new match"
	default:
		return "internal error"
	}
}

func (that *Server) handleStart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleStart")

	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, "malformed payload")
	}

	match, err := that.uMatch.StartMatch(ctx, payload.Palette)
	if err != nil {
		log.Error("failed to start match", "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	view, err := match.View()
	if err != nil {
		log.Error("failed to render match", "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{MatchID: match.ID, Match: view})
}

func (that *Server) handleDrop(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleDrop")

	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, "malformed payload")
	}

	if payload.Column == nil {
		return that.sendError(conn, msg.Action, apperror.ErrInvalidColumn.Error())
	}

	match, result, err := that.uMatch.DropPiece(ctx, payload.MatchID, *payload.Column)
	if err != nil {
		log.Error("failed to drop piece", "matchID", payload.MatchID, "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	view, err := match.View()
	if err != nil {
		log.Error("failed to render match", "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{
		MatchID: match.ID,
		Match:   view,
		Result:  newMoveResult(result),
	})
}

func (that *Server) handleState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleState")

	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, "malformed payload")
	}

	match, err := that.uMatch.GetMatch(ctx, payload.MatchID)
	if err != nil {
		log.Error("failed to get match", "matchID", payload.MatchID, "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	view, err := match.View()
	if err != nil {
		log.Error("failed to render match", "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{MatchID: match.ID, Match: view})
}

func (that *Server) handleRemove(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleRemove")

	payload, err := decodePayload(msg)
	if err != nil {
		return that.sendError(conn, msg.Action, "malformed payload")
	}

	if err = that.uMatch.RemoveMatch(ctx, payload.MatchID); err != nil {
		log.Error("failed to remove match", "matchID", payload.MatchID, "error", err)
		return that.sendError(conn, msg.Action, publicError(err))
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{MatchID: payload.MatchID})
}
