package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
	"tictactoe-api/internal/repository"
	"tictactoe-api/internal/repository/storage"
)

// firstEmptyRng makes the computer deterministic: it always takes the first
// empty cell.
type firstEmptyRng struct{}

func (firstEmptyRng) IntN(_ int) int { return 0 }

func newTestService(t *testing.T) (context.Context, GameService) {
	t.Helper()

	ctx := context.Background()

	sqliteStorage, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, sqliteStorage.Close())
	})

	require.NoError(t, sqliteStorage.Init(ctx))

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	gameRepo := repository.NewGameRepository(sqliteStorage.Connection, nil, uuid.NewString)

	return ctx, NewGameService(logger, gameRepo, firstEmptyRng{})
}

func TestGameService_CreateGame(t *testing.T) {
	ctx, gameService := newTestService(t)

	// When: creating a game
	game, err := gameService.CreateGame(ctx)

	// Then: it is a fresh in-progress game with an id
	require.NoError(t, err)
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, entity.StatusInProgress, game.Status)
	assert.Empty(t, game.Moves)
}

func TestGameService_GetGame(t *testing.T) {
	t.Run("Returns a stored game", func(t *testing.T) {
		ctx, gameService := newTestService(t)

		game, err := gameService.CreateGame(ctx)
		require.NoError(t, err)

		retrieved, err := gameService.GetGame(ctx, game.ID)

		require.NoError(t, err)
		assert.Equal(t, game.ID, retrieved.ID)
	})

	t.Run("Fails with ErrGameNotFound for an unknown id", func(t *testing.T) {
		ctx, gameService := newTestService(t)

		_, err := gameService.GetGame(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameService_ListGames(t *testing.T) {
	ctx, gameService := newTestService(t)

	// Given: two stored games
	first, err := gameService.CreateGame(ctx)
	require.NoError(t, err)
	second, err := gameService.CreateGame(ctx)
	require.NoError(t, err)

	// When: listing
	summaries, err := gameService.ListGames(ctx)

	// Then: both games appear, oldest first
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, first.ID, summaries[0].ID)
	assert.Equal(t, second.ID, summaries[1].ID)
}

func TestGameService_MakeMove(t *testing.T) {
	t.Run("Runs the human move and the computer reply", func(t *testing.T) {
		ctx, gameService := newTestService(t)

		game, err := gameService.CreateGame(ctx)
		require.NoError(t, err)

		// When: the human plays (0, 0)
		updated, err := gameService.MakeMove(ctx, game.ID, 0, 0)

		// Then: both moves are recorded and persisted
		require.NoError(t, err)
		require.Len(t, updated.Moves, 2)
		assert.Equal(t, entity.StatusInProgress, updated.Status)

		reloaded, err := gameService.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Board, reloaded.Board)
	})

	t.Run("Rejects an occupied cell without changing state", func(t *testing.T) {
		ctx, gameService := newTestService(t)

		game, err := gameService.CreateGame(ctx)
		require.NoError(t, err)

		_, err = gameService.MakeMove(ctx, game.ID, 0, 0)
		require.NoError(t, err)

		// When: the human replays an occupied cell
		_, err = gameService.MakeMove(ctx, game.ID, 0, 0)

		// Then: the rejection is typed and nothing was appended
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		moves, err := gameService.ListMoves(ctx, game.ID)
		require.NoError(t, err)
		assert.Len(t, moves, 2)
	})

	t.Run("Rejects out-of-range coordinates", func(t *testing.T) {
		ctx, gameService := newTestService(t)

		game, err := gameService.CreateGame(ctx)
		require.NoError(t, err)

		_, err = gameService.MakeMove(ctx, game.ID, 3, -1)

		require.ErrorIs(t, err, apperror.ErrOutOfRange)
	})

	t.Run("Fails with ErrGameNotFound for an unknown id", func(t *testing.T) {
		ctx, gameService := newTestService(t)

		_, err := gameService.MakeMove(ctx, "9999999", 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameService_ListMoves(t *testing.T) {
	ctx, gameService := newTestService(t)

	game, err := gameService.CreateGame(ctx)
	require.NoError(t, err)

	_, err = gameService.MakeMove(ctx, game.ID, 1, 1)
	require.NoError(t, err)

	// When: listing the move log
	moves, err := gameService.ListMoves(ctx, game.ID)

	// Then: the human move comes first, the computer reply second
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, entity.PlayerHuman, moves[0].Player)
	assert.Equal(t, entity.PlayerComputer, moves[1].Player)
}
