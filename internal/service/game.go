package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
	"tictactoe-api/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ListGames(ctx context.Context) ([]entity.GameSummary, error)
	ListMoves(ctx context.Context, id string) ([]entity.Move, error)
	MakeMove(ctx context.Context, id string, x, y int) (*entity.Game, error)
}

type gameRepo interface {
	Create(ctx context.Context) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	List(ctx context.Context) ([]entity.GameSummary, error)
	ListMoves(ctx context.Context, id string) ([]entity.Move, error)
	PerformMove(ctx context.Context, id string, mutate func(*entity.Game) error) (*entity.Game, error)
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo
	rng      tictactoe.Rng
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, rng tictactoe.Rng) GameService {
	return &gameService{
		logger:   logger.With("component", "game-service"),
		gameRepo: gameRepo,
		rng:      rng,
	}
}

func (that *gameService) CreateGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameRepo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameService) ListGames(ctx context.Context) ([]entity.GameSummary, error) {
	summaries, err := that.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return summaries, nil
}

func (that *gameService) ListMoves(ctx context.Context, id string) ([]entity.Move, error) {
	moves, err := that.gameRepo.ListMoves(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	return moves, nil
}

// MakeMove runs one full turn through the store's move transaction: the
// human mark plus the computer's reply, persisted atomically.
func (that *gameService) MakeMove(ctx context.Context, id string, x, y int) (*entity.Game, error) {
	game, err := that.gameRepo.PerformMove(ctx, id, func(game *entity.Game) error {
		return tictactoe.ApplyHumanMove(game, x, y, that.rng)
	})

	if errors.Is(err, apperror.ErrNoAvailableMoves) {
		// An in-progress game always has an empty cell for the computer;
		// reaching this is an engine fault, not a client mistake.
		that.logger.Error("opponent strategy invoked on a full board", "game_id", id, "error", err)
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err != nil {
		return game, fmt.Errorf("failed to make move: %w", err)
	}

	return game, nil
}
