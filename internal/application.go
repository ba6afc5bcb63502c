package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"tictactoe-api/internal/config"
	"tictactoe-api/internal/repository"
	"tictactoe-api/internal/repository/storage"
	"tictactoe-api/internal/service"
	"tictactoe-api/internal/tictactoe"
	"tictactoe-api/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite schema: %w", err)
	}

	var gameCache *repository.GameCache
	if conf.Redis.IsConfigured() {
		redisStorage, redisErr := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if redisErr != nil {
			return fmt.Errorf("could not connect to redis storage: %w", redisErr)
		}

		defer func() {
			if redisErr = redisStorage.Close(); redisErr != nil {
				log.Error("could not close redis storage", "error", redisErr)
			}
		}()

		gameCache = repository.NewGameCache(logger, redisStorage.Connection)
	}

	gameRepo := repository.NewGameRepository(sqliteStorage.Connection, gameCache, uuid.NewString)
	gameService := service.NewGameService(logger, gameRepo, tictactoe.SystemRng())
	handlers := rest.NewHandlers(logger, gameService)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, log, conf.HTTPPort, handlers); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
