package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

// memoryRepo keeps matches in a map, copying through JSON like the Redis repository does.
type memoryRepo struct {
	mu      sync.Mutex
	matches map[string][]byte
}

func (that *memoryRepo) CreateOrUpdate(_ context.Context, match *entity.Match) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, err := json.Marshal(match)
	if err != nil {
		return err
	}
	that.matches[match.ID] = data

	return nil
}

func (that *memoryRepo) GetByID(_ context.Context, id string) (*entity.Match, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, ok := that.matches[id]
	if !ok {
		return nil, apperror.ErrMatchNotFound
	}

	var match entity.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}

	return &match, nil
}

func (that *memoryRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.matches[id]; !ok {
		return apperror.ErrMatchNotFound
	}
	delete(that.matches, id)

	return nil
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &memoryRepo{matches: map[string][]byte{}}
	manager := usecase.NewMatchManager(logger, repo, config.Board{Height: 6, Width: 7}, entity.Palette{"red", "blue"})

	srv := httptest.NewServer(New(logger, manager, nil))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func call(t *testing.T, conn *websocket.Conn, action string, payload any) ResponsePayload {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))

	var response Message
	require.NoError(t, conn.ReadJSON(&response))
	require.Equal(t, action, response.Action)

	var result ResponsePayload
	require.NoError(t, json.Unmarshal(response.Payload, &result))

	return result
}

func drop(t *testing.T, conn *websocket.Conn, matchID string, column int) ResponsePayload {
	t.Helper()

	return call(t, conn, actionDrop, RequestPayload{MatchID: matchID, Column: &column})
}

func TestServer_Match(t *testing.T) {
	t.Run("Start, play to a win and remove", func(t *testing.T) {
		// Given: a connected page
		conn := dial(t)

		// When: a match is started
		started := call(t, conn, actionStart, RequestPayload{})

		// Then: an empty board comes back with the default palette
		require.Empty(t, started.Error)
		require.NotNil(t, started.Match)
		matchID := started.MatchID
		assert.Equal(t, entity.Palette{"red", "blue"}, started.Match.Palette)
		assert.Equal(t, connect4.StatusInProgress, started.Match.Status)

		// When: the first player stacks column 0 while the second plays column 1
		for _, column := range []int{0, 1, 0, 1, 0, 1} {
			resp := drop(t, conn, matchID, column)
			require.Empty(t, resp.Error)
			require.Equal(t, connect4.OutcomeContinued, resp.Result.Outcome)
		}
		won := drop(t, conn, matchID, 0)

		// Then: the page gets the win and the announcement
		require.Empty(t, won.Error)
		assert.Equal(t, connect4.OutcomeWon, won.Result.Outcome)
		assert.Equal(t, "Player 1 won!", won.Result.Announcement)
		require.NotNil(t, won.Match.Winner)
		assert.Equal(t, 0, won.Match.Winner.Order)
		assert.True(t, won.Match.Complete)

		// And: further clicks are ignored
		late := drop(t, conn, matchID, 3)
		assert.Equal(t, connect4.OutcomeRejected, late.Result.Outcome)
		assert.Equal(t, connect4.ReasonGameComplete, late.Result.Reason)
		assert.Equal(t, -1, late.Match.Grid[5][3])

		// When: the page restarts
		removed := call(t, conn, actionRemove, RequestPayload{MatchID: matchID})
		require.Empty(t, removed.Error)

		// Then: the old match is gone
		state := call(t, conn, actionState, RequestPayload{MatchID: matchID})
		assert.Equal(t, apperror.ErrMatchNotFound.Error(), state.Error)
	})

	t.Run("State returns the current board", func(t *testing.T) {
		conn := dial(t)
		palette := entity.Palette{"yellow", "green"}
		started := call(t, conn, actionStart, RequestPayload{Palette: &palette})
		drop(t, conn, started.MatchID, 4)

		state := call(t, conn, actionState, RequestPayload{MatchID: started.MatchID})

		require.Empty(t, state.Error)
		assert.Equal(t, palette, state.Match.Palette)
		assert.Equal(t, 0, state.Match.Grid[5][4])
		assert.Equal(t, 1, state.Match.CurrentPlayer.Order)
	})

	t.Run("Full column is rejected, not an error", func(t *testing.T) {
		conn := dial(t)
		started := call(t, conn, actionStart, nil)
		for i := 0; i < 6; i++ {
			drop(t, conn, started.MatchID, 2)
		}

		resp := drop(t, conn, started.MatchID, 2)

		require.Empty(t, resp.Error)
		assert.Equal(t, connect4.OutcomeRejected, resp.Result.Outcome)
		assert.Equal(t, connect4.ReasonColumnFull, resp.Result.Reason)
		assert.Equal(t, 0, resp.Match.CurrentPlayer.Order)
	})

	t.Run("Drop without a column", func(t *testing.T) {
		conn := dial(t)
		started := call(t, conn, actionStart, nil)

		resp := call(t, conn, actionDrop, RequestPayload{MatchID: started.MatchID})

		assert.Equal(t, apperror.ErrInvalidColumn.Error(), resp.Error)
	})

	t.Run("Invalid palette", func(t *testing.T) {
		conn := dial(t)
		palette := entity.Palette{"red", "red"}

		resp := call(t, conn, actionStart, RequestPayload{Palette: &palette})

		assert.Equal(t, apperror.ErrInvalidPalette.Error(), resp.Error)
		assert.Nil(t, resp.Match)
	})

	t.Run("Unknown action", func(t *testing.T) {
		conn := dial(t)

		resp := call(t, conn, "match:undo", nil)

		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Malformed message keeps the connection open", func(t *testing.T) {
		conn := dial(t)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

		var response Message
		require.NoError(t, conn.ReadJSON(&response))
		assert.Contains(t, string(response.Payload), "malformed message")

		started := call(t, conn, actionStart, nil)
		assert.Empty(t, started.Error)
	})
}
