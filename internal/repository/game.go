package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"tictactoe-api/internal/apperror"
	"tictactoe-api/internal/entity"
)

type GameRepository interface {
	Create(ctx context.Context) (*entity.Game, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	List(ctx context.Context) ([]entity.GameSummary, error)
	ListMoves(ctx context.Context, id string) ([]entity.Move, error)
	PerformMove(ctx context.Context, id string, mutate func(*entity.Game) error) (*entity.Game, error)
}

type gameRepository struct {
	conn  *sql.DB
	cache *GameCache
	newID func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameRepository builds the durable game store. cache may be nil; newID
// supplies fresh game identifiers.
func NewGameRepository(conn *sql.DB, cache *GameCache, newID func() string) GameRepository {
	return &gameRepository{
		conn:  conn,
		cache: cache,
		newID: newID,
		locks: make(map[string]*sync.Mutex),
	}
}

func (that *gameRepository) Create(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(that.newID())

	query := `INSERT INTO games (game_id, status, winner, created_at) VALUES (?, ?, ?, ?)`

	if _, err := that.conn.ExecContext(ctx, query, game.ID, game.Status, game.Winner, game.CreatedAt); err != nil {
		return nil, fmt.Errorf("can't create game: %w", err)
	}

	that.cacheSet(ctx, game)

	return game, nil
}

func (that *gameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	if game, ok := that.cacheGet(ctx, id); ok {
		return game, nil
	}

	game, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	that.cacheSet(ctx, game)

	return game, nil
}

func (that *gameRepository) List(ctx context.Context) ([]entity.GameSummary, error) {
	query := `SELECT game_id, created_at, status FROM games ORDER BY created_at ASC, rowid ASC`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list games: %w", err)
	}
	defer rows.Close()

	summaries := make([]entity.GameSummary, 0)
	for rows.Next() {
		var summary entity.GameSummary
		if err = rows.Scan(&summary.ID, &summary.CreatedAt, &summary.Status); err != nil {
			return nil, fmt.Errorf("can't scan game summary: %w", err)
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate games: %w", err)
	}

	return summaries, nil
}

func (that *gameRepository) ListMoves(ctx context.Context, id string) ([]entity.Move, error) {
	if err := that.gameExists(ctx, id); err != nil {
		return nil, err
	}

	return that.queryMoves(ctx, id)
}

// PerformMove loads the game, applies mutate, and persists the outcome and
// any appended moves in one transaction before returning. Mutations on the
// same game id are serialized by a per-game lock; a rejection from mutate is
// returned with nothing persisted.
func (that *gameRepository) PerformMove(ctx context.Context, id string, mutate func(*entity.Game) error) (*entity.Game, error) {
	lock := that.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	game, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, err
	}

	recorded := len(game.Moves)

	if err = mutate(game); err != nil {
		return game, err
	}

	if err = that.persistMove(ctx, game, recorded); err != nil {
		return nil, err
	}

	that.cacheSet(ctx, game)

	return game, nil
}

// persistMove writes the updated outcome and the moves appended after the
// first `recorded` ones atomically.
func (that *gameRepository) persistMove(ctx context.Context, game *entity.Game, recorded int) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE games SET status = ?, winner = ? WHERE game_id = ?`
	if _, err = tx.ExecContext(ctx, query, game.Status, game.Winner, game.ID); err != nil {
		return fmt.Errorf("can't update game: %w", err)
	}

	query = `INSERT INTO moves (game_id, move_number, player, x, y, played_at) VALUES (?, ?, ?, ?, ?, ?)`
	for _, move := range game.Moves[recorded:] {
		if _, err = tx.ExecContext(ctx, query, move.GameID, move.MoveNumber, move.Player, move.X, move.Y, move.Timestamp); err != nil {
			return fmt.Errorf("can't append move %d: %w", move.MoveNumber, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit move transaction: %w", err)
	}

	return nil
}

func (that *gameRepository) loadGame(ctx context.Context, id string) (*entity.Game, error) {
	query := `SELECT status, winner, created_at FROM games WHERE game_id = ?`

	game := &entity.Game{ID: id}

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&game.Status, &game.Winner, &game.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	moves, err := that.queryMoves(ctx, id)
	if err != nil {
		return nil, err
	}
	game.Moves = moves

	board, err := entity.ReplayMoves(moves)
	if err != nil {
		return nil, fmt.Errorf("corrupt move log for game %s: %w", id, err)
	}
	game.Board = board

	return game, nil
}

func (that *gameRepository) queryMoves(ctx context.Context, id string) ([]entity.Move, error) {
	query := `SELECT move_number, player, x, y, played_at FROM moves WHERE game_id = ? ORDER BY move_number ASC`

	rows, err := that.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("can't list moves: %w", err)
	}
	defer rows.Close()

	moves := make([]entity.Move, 0)
	for rows.Next() {
		move := entity.Move{GameID: id}
		if err = rows.Scan(&move.MoveNumber, &move.Player, &move.X, &move.Y, &move.Timestamp); err != nil {
			return nil, fmt.Errorf("can't scan move: %w", err)
		}

		moves = append(moves, move)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate moves: %w", err)
	}

	return moves, nil
}

func (that *gameRepository) gameExists(ctx context.Context, id string) error {
	query := `SELECT 1 FROM games WHERE game_id = ?`

	var one int

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.ErrGameNotFound
	}
	if err != nil {
		return fmt.Errorf("can't find game: %w", err)
	}

	return nil
}

func (that *gameRepository) gameLock(id string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[id] = lock
	}

	return lock
}

func (that *gameRepository) cacheSet(ctx context.Context, game *entity.Game) {
	if that.cache != nil {
		that.cache.Set(ctx, game)
	}
}

func (that *gameRepository) cacheGet(ctx context.Context, id string) (*entity.Game, bool) {
	if that.cache == nil {
		return nil, false
	}

	return that.cache.Get(ctx, id)
}
