package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tictactoe-api/internal/entity"
)

// finishedGameTTL bounds how long terminal games stay cached. The durable
// copy lives in SQLite; the cache only serves reads of recently touched
// games.
const finishedGameTTL = 24 * time.Hour

// GameCache is a read-through cache of full game state in Redis. Every
// failure is soft: it is logged and the caller falls back to the durable
// store.
type GameCache struct {
	logger *slog.Logger
	client *redis.Client
}

func NewGameCache(logger *slog.Logger, client *redis.Client) *GameCache {
	return &GameCache{
		logger: logger.With("component", "game-cache"),
		client: client,
	}
}

func (that *GameCache) Set(ctx context.Context, game *entity.Game) {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		that.logger.Warn("could not marshal game for cache", "game_id", game.ID, "error", err)
		return
	}

	var ttl time.Duration
	if game.IsFinished() {
		ttl = finishedGameTTL
	}

	gameKey := "game:" + game.ID
	if err = that.client.Set(ctx, gameKey, gameJSON, ttl).Err(); err != nil {
		that.logger.Warn("could not cache game", "game_id", game.ID, "error", err)
	}
}

func (that *GameCache) Get(ctx context.Context, id string) (*entity.Game, bool) {
	gameKey := "game:" + id

	response, err := that.client.Get(ctx, gameKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		that.logger.Warn("could not read cached game", "game_id", id, "error", err)
		return nil, false
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		that.logger.Warn("could not unmarshal cached game", "game_id", id, "error", err)
		return nil, false
	}

	return &game, true
}

func (that *GameCache) Delete(ctx context.Context, id string) {
	gameKey := "game:" + id

	if err := that.client.Del(ctx, gameKey).Err(); err != nil {
		that.logger.Warn("could not evict cached game", "game_id", id, "error", err)
	}
}
