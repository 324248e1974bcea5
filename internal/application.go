package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfour-backend/transport/rest"
	"github.com/rocketscienceinc/connectfour-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	palette, err := conf.DefaultPalette()
	if err != nil {
		return fmt.Errorf("invalid palette: %w", err)
	}

	matchRepo := repository.NewMatchRepository(redisStorage, conf.Redis.MatchTTL)
	matchManager := usecase.NewMatchManager(logger, matchRepo, conf.Board, palette)

	corsPolicy := rest.NewCORS(conf.CORS.AllowedOrigins)
	wsServer := websocket.New(logger, matchManager, rest.CheckOrigin(corsPolicy))
	router := rest.NewRouter(logger, matchManager, wsServer, corsPolicy)

	log.Info("Starting HTTP server", "port", conf.HTTPPort,
		"board", fmt.Sprintf("%dx%d", conf.Board.Height, conf.Board.Width))

	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
