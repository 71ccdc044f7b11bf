package gamestate

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/gamemaster/internal/entities"
	"github.com/KirkDiggler/gamemaster/internal/errors"
	redisclient "github.com/KirkDiggler/gamemaster/internal/redis"
)

const (
	// Key pattern: gamestate:{game_id}
	stateKeyPrefix = "gamestate:"
)

// RedisConfig contains configuration for the Redis world-state repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a Redis-backed world-state repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	key := buildStateKey(input.GameID)
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no saved state for game %s", input.GameID)
		}
		return nil, errors.Wrapf(err, "failed to get state from Redis")
	}

	var state entities.WorldState
	if err := json.Unmarshal([]byte(result), &state); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeCorruptState,
			"stored state for game %s is not valid JSON", input.GameID)
	}
	state.EnsureContainers()

	if err := state.Validate(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeCorruptState,
			"stored state for game %s failed validation", input.GameID)
	}

	return &GetOutput{State: &state}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if err := input.State.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "refusing to persist invalid state")
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal state")
	}

	key := buildStateKey(input.State.GameID)
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store state in Redis")
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	key := buildStateKey(input.GameID)
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete state from Redis")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("no saved state for game %s", input.GameID)
	}

	return &DeleteOutput{}, nil
}

// buildStateKey creates the Redis key for a game's world state
func buildStateKey(gameID string) string {
	return stateKeyPrefix + gameID
}
