package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ruleta-game/ruleta/internal/models"
)

const (
	// Key prefixes for Redis
	roundKeyPrefix  = "round:"
	roundsByTimeKey = "rounds_by_time"

	defaultRecentLimit = 10
)

// Config holds configuration for the Redis round repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed round repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AddRound appends a completed round record to Redis
func (r *redisRepository) AddRound(ctx context.Context, input *AddRoundInput) error {
	if input == nil || input.Round == nil {
		return errors.New("input and round cannot be nil")
	}

	record := input.Round

	if record.ID == "" {
		return errors.New("round ID cannot be empty")
	}

	// Marshal the record to JSON
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Store the round record
	roundKey := fmt.Sprintf("%s%s", roundKeyPrefix, record.ID)
	pipe.Set(ctx, roundKey, recordJSON, 0)

	// Add to the time-ordered index
	pipe.ZAdd(ctx, roundsByTimeKey, redis.Z{
		Score:  float64(record.CompletedAt.UnixNano()),
		Member: record.ID,
	})

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

// GetRecentRounds retrieves the most recent rounds from Redis, newest first
func (r *redisRepository) GetRecentRounds(ctx context.Context, input *GetRecentRoundsInput) (*GetRecentRoundsOutput, error) {
	limit := defaultRecentLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	roundIDs, err := r.client.ZRevRange(ctx, roundsByTimeKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent round IDs: %w", err)
	}

	rounds := make([]*models.Round, 0, len(roundIDs))
	for _, roundID := range roundIDs {
		roundKey := fmt.Sprintf("%s%s", roundKeyPrefix, roundID)
		recordJSON, err := r.client.Get(ctx, roundKey).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get round %s: %w", roundID, err)
		}

		var record models.Round
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %s: %w", roundID, err)
		}

		rounds = append(rounds, &record)
	}

	return &GetRecentRoundsOutput{
		Rounds: rounds,
	}, nil
}
