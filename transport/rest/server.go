package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the game API routes.
func NewRouter(handlers *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.PingHandler)
	mux.HandleFunc("POST /games", handlers.CreateGame)
	mux.HandleFunc("GET /games", handlers.ListGames)
	mux.HandleFunc("GET /games/{id}", handlers.GetGame)
	mux.HandleFunc("POST /games/{id}/moves", handlers.MakeMove)
	mux.HandleFunc("GET /games/{id}/moves", handlers.ListMoves)

	return mux
}

// Start serves the game API until ctx is canceled, then shuts down
// gracefully.
func Start(ctx context.Context, logger *slog.Logger, port string, handlers *Handlers) error {
	mux := NewRouter(handlers)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
