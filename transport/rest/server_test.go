package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connect4"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type stubGetter map[string]*entity.Match

func (that stubGetter) GetMatch(_ context.Context, id string) (*entity.Match, error) {
	if id == "broken" {
		return nil, errors.New("redis down")
	}

	match, ok := that[id]
	if !ok {
		return nil, apperror.ErrMatchNotFound
	}
	return match, nil
}

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()

	game, err := connect4.NewGame(6, 7, [2]connect4.Player{{Order: 0}, {Order: 1}})
	require.NoError(t, err)
	game.DropPiece(3)

	matches := stubGetter{"m1": entity.NewMatch("m1", entity.Palette{"red", "blue"}, game)}
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(logger, matches, ws, NewCORS(origins))
}

func TestRouter(t *testing.T) {
	t.Run("Ping", func(t *testing.T) {
		router := newTestRouter(t, "*")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Get match", func(t *testing.T) {
		// Given: a stored match with one piece
		router := newTestRouter(t, "*")
		rec := httptest.NewRecorder()

		// When: the page asks for it
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/m1", nil))

		// Then: the rendered view is returned
		require.Equal(t, http.StatusOK, rec.Code)

		var view entity.MatchView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "m1", view.ID)
		assert.Equal(t, 0, view.Grid[5][3])
		assert.Equal(t, 1, view.CurrentPlayer.Order)
	})

	t.Run("Unknown match", func(t *testing.T) {
		router := newTestRouter(t, "*")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), apperror.ErrMatchNotFound.Error())
	})

	t.Run("Storage failure", func(t *testing.T) {
		router := newTestRouter(t, "*")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/broken", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("WebSocket endpoint is mounted", func(t *testing.T) {
		router := newTestRouter(t, "*")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("CORS headers follow the allowed origins", func(t *testing.T) {
		router := newTestRouter(t, "http://allowed.test")

		allowed := httptest.NewRequest(http.MethodGet, "/ping", nil)
		allowed.Header.Set("Origin", "http://allowed.test")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, allowed)
		assert.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))

		denied := httptest.NewRequest(http.MethodGet, "/ping", nil)
		denied.Header.Set("Origin", "http://evil.test")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, denied)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCheckOrigin(t *testing.T) {
	check := CheckOrigin(NewCORS([]string{"http://allowed.test"}))

	noOrigin := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(noOrigin))

	allowed := httptest.NewRequest(http.MethodGet, "/ws", nil)
	allowed.Header.Set("Origin", "http://allowed.test")
	assert.True(t, check(allowed))

	denied := httptest.NewRequest(http.MethodGet, "/ws", nil)
	denied.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(denied))
}
