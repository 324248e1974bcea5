package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - REST routes and the WebSocket endpoint on one mux, behind CORS.
func NewRouter(logger *slog.Logger, uMatch matchGetter, ws http.Handler, corsPolicy *cors.Cors) http.Handler {
	matches := &matchHandler{
		logger: logger.With("component", "rest"),
		uMatch: uMatch,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /matches/{id}", matches.getMatch)
	mux.Handle("/ws", ws)

	return corsPolicy.Handler(mux)
}

// NewCORS - allowed origins apply to REST calls and to WebSocket upgrades.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
}

// CheckOrigin - adapts the CORS policy for the WebSocket upgrader. Requests
// without an Origin header do not come from a browser and are let through.
func CheckOrigin(corsPolicy *cors.Cors) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if r.Header.Get("Origin") == "" {
			return true
		}
		return corsPolicy.OriginAllowed(r)
	}
}

// Start - serves handler on port until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}
