package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const maxMessageSize = 4096

type uMatch interface {
	StartMatch(ctx context.Context, palette *entity.Palette) (*entity.Match, error)
	DropPiece(ctx context.Context, matchID string, column int) (*entity.Match, connect4.MoveResult, error)
	GetMatch(ctx context.Context, matchID string) (*entity.Match, error)
	RemoveMatch(ctx context.Context, matchID string) error
}

type handlerFunc func(ctx context.Context, message *Message, conn *websocket.Conn) error

type Server struct {
	logger   *slog.Logger
	uMatch   uMatch
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

// New - checkOrigin decides which pages may open a socket; nil accepts same-origin requests only.
func New(logger *slog.Logger, uMatch uMatch, checkOrigin func(r *http.Request) bool) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uMatch: uMatch,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionStart] = server.handleStart
	server.handlers[actionDrop] = server.handleDrop
	server.handlers[actionState] = server.handleState
	server.handlers[actionRemove] = server.handleRemove

	return server
}

// ServeHTTP - upgrades the connection and serves messages until the page goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("connection closed by client")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendError(conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err = that.sendError(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			return fmt.Errorf("failed to handle %s: %w", message.Action, err)
		}
	}
}
