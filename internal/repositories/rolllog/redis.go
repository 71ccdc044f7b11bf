package rolllog

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/gamemaster/internal/errors"
	"github.com/KirkDiggler/gamemaster/internal/pkg/clock"
	"github.com/KirkDiggler/gamemaster/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/gamemaster/internal/redis"
)

const (
	// Key pattern: rolllog:{game_id}
	logKeyPrefix = "rolllog:"
	defaultTTL   = 24 * time.Hour

	// MaxEntries caps how many rolls a log retains
	MaxEntries = 100

	// Error messages
	errResultNil   = "roll result cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
)

// Config holds the configuration for the Redis roll log repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	IDGen  idgen.Generator

	// TTL overrides how long a log lives after its last append.
	// Zero means defaultTTL.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.IDGen == nil {
		return errors.InvalidArgument("id generator is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for roll logs
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		idGen:  cfg.IDGen,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append records a roll, creating the log on first use. Each append
// refreshes the log's expiry.
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}
	if input.Result == nil {
		return nil, errors.InvalidArgument(errResultNil)
	}

	now := r.clock.Now()

	log, err := r.getLog(ctx, input.GameID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		log = &Log{
			GameID:    input.GameID,
			CreatedAt: now,
		}
	}

	entry := Entry{
		EntryID:  r.idGen.Generate(),
		Result:   input.Result,
		RolledAt: now,
	}

	log.Entries = append(log.Entries, entry)
	if len(log.Entries) > MaxEntries {
		log.Entries = log.Entries[len(log.Entries)-MaxEntries:]
	}
	log.ExpiresAt = now.Add(r.ttl)

	logJSON, err := json.Marshal(log)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll log")
	}

	key := buildLogKey(input.GameID)
	if err := r.client.Set(ctx, key, logJSON, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store roll log in Redis")
	}

	return &AppendOutput{Entry: &entry}, nil
}

// Get retrieves the roll log for a game
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	log, err := r.getLog(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Log: log}, nil
}

// Delete removes the roll log for a game
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	key := buildLogKey(input.GameID)

	// Get the log first to count entries
	log, err := r.getLog(ctx, input.GameID)

	var entriesDeleted int32
	if err == nil && log != nil {
		// nolint:gosec // entry count is capped at MaxEntries
		entriesDeleted = int32(len(log.Entries))
	}

	result := r.client.Del(ctx, key)
	if result.Err() != nil {
		return nil, errors.Wrapf(result.Err(), "failed to delete roll log from Redis")
	}

	return &DeleteOutput{
		EntriesDeleted: entriesDeleted,
	}, nil
}

// getLog fetches and unmarshals the log, cleaning it up if it expired
func (r *redisRepository) getLog(ctx context.Context, gameID string) (*Log, error) {
	key := buildLogKey(gameID)

	logJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("roll log not found")
		}
		return nil, errors.Wrapf(err, "failed to get roll log from Redis")
	}

	var log Log
	if err := json.Unmarshal([]byte(logJSON), &log); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal roll log")
	}

	if r.clock.Now().After(log.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("roll log has expired")
	}

	return &log, nil
}

// buildLogKey creates the Redis key for a game's roll log
func buildLogKey(gameID string) string {
	return logKeyPrefix + gameID
}
