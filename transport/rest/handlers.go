package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type matchGetter interface {
	GetMatch(ctx context.Context, matchID string) (*entity.Match, error)
}

type matchHandler struct {
	logger *slog.Logger
	uMatch matchGetter
}

// getMatch - renders a match for pages that reload without an open socket.
func (that *matchHandler) getMatch(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getMatch")

	match, err := that.uMatch.GetMatch(r.Context(), r.PathValue("id"))
	if errors.Is(err, apperror.ErrMatchNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": apperror.ErrMatchNotFound.Error()})
		return
	}
	if err != nil {
		log.Error("failed to get match", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	view, err := match.View()
	if err != nil {
		log.Error("failed to render match", "matchID", match.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
