package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ruleta-game/ruleta/internal/models"
)

const (
	// Key for the waiting queue list
	queueKey = "waiting_queue"

	defaultPeekLimit = 10
)

// ErrQueueEmpty is returned when the queue has no waiting entries
var ErrQueueEmpty = errors.New("queue is empty")

// Config holds configuration for the Redis queue repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using a Redis list.
// RPUSH on enqueue and LPOP on dequeue give strict FIFO order.
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed queue repository
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

// Enqueue appends an entry to the tail of the queue
func (r *redisRepository) Enqueue(ctx context.Context, input *EnqueueInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	if input.Entry.UserID == "" {
		return errors.New("entry user ID cannot be empty")
	}

	// Marshal the entry to JSON
	entryJSON, err := json.Marshal(input.Entry)
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry: %w", err)
	}

	if err := r.client.RPush(ctx, queueKey, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to enqueue entry: %w", err)
	}

	return nil
}

// DequeueHead removes and returns the head of the queue
func (r *redisRepository) DequeueHead(ctx context.Context) (*models.QueueEntry, error) {
	entryJSON, err := r.client.LPop(ctx, queueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrQueueEmpty
		}
		return nil, fmt.Errorf("failed to dequeue entry: %w", err)
	}

	// Unmarshal the entry from JSON
	var entry models.QueueEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal queue entry: %w", err)
	}

	return &entry, nil
}

// Peek returns the first entries without removing them
func (r *redisRepository) Peek(ctx context.Context, input *PeekInput) (*PeekOutput, error) {
	limit := defaultPeekLimit
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	entryJSONs, err := r.client.LRange(ctx, queueKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to peek queue: %w", err)
	}

	entries := make([]*models.QueueEntry, 0, len(entryJSONs))
	for _, entryJSON := range entryJSONs {
		var entry models.QueueEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal queue entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return &PeekOutput{
		Entries: entries,
	}, nil
}

// Length returns the number of waiting entries
func (r *redisRepository) Length(ctx context.Context) (int64, error) {
	length, err := r.client.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}

	return length, nil
}
