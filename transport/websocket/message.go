package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	actionStart  = "match:start"
	actionDrop   = "match:drop"
	actionState  = "match:state"
	actionRemove = "match:remove"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	MatchID string          `json:"match_id,omitempty"`
	Column  *int            `json:"column,omitempty"`
	Palette *entity.Palette `json:"palette,omitempty"`
}

type ResponsePayload struct {
	MatchID string            `json:"match_id,omitempty"`
	Match   *entity.MatchView `json:"match,omitempty"`
	Result  *MoveResult       `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// MoveResult adds the end-of-game message the page shows.
type MoveResult struct {
	connect4.MoveResult
	Announcement string `json:"announcement,omitempty"`
}

func newMoveResult(result connect4.MoveResult) *MoveResult {
	return &MoveResult{
		MoveResult:   result,
		Announcement: result.Announcement(),
	}
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadBytes}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action, message string) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: message})
}
