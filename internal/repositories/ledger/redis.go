package ledger

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
	transactionKeyPrefix = "txn:"
	userTxnsKeyPrefix    = "user_txns:"

	defaultHistoryLimit = 20
)

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger repository
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

// AddTransaction appends a transaction record to Redis
func (r *redisRepository) AddTransaction(ctx context.Context, input *AddTransactionInput) error {
	if input == nil || input.Transaction == nil {
		return errors.New("input and transaction cannot be nil")
	}

	record := input.Transaction

	if record.ID == "" {
		return errors.New("transaction ID cannot be empty")
	}

	if record.UserID == "" {
		return errors.New("transaction user ID cannot be empty")
	}

	// Marshal the record to JSON
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Store the transaction record
	txnKey := fmt.Sprintf("%s%s", transactionKeyPrefix, record.ID)
	pipe.Set(ctx, txnKey, recordJSON, 0)

	// Add to the user's time-ordered index
	userKey := fmt.Sprintf("%s%s", userTxnsKeyPrefix, record.UserID)
	pipe.ZAdd(ctx, userKey, redis.Z{
		Score:  float64(record.Timestamp.UnixNano()),
		Member: record.ID,
	})

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// GetUserTransactions retrieves a user's transactions from Redis, newest first
func (r *redisRepository) GetUserTransactions(ctx context.Context, input *GetUserTransactionsInput) (*GetUserTransactionsOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	limit := defaultHistoryLimit
	if input.Limit > 0 {
		limit = input.Limit
	}

	userKey := fmt.Sprintf("%s%s", userTxnsKeyPrefix, input.UserID)
	txnIDs, err := r.client.ZRevRange(ctx, userKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs: %w", err)
	}

	transactions := make([]*models.Transaction, 0, len(txnIDs))
	for _, txnID := range txnIDs {
		txnKey := fmt.Sprintf("%s%s", transactionKeyPrefix, txnID)
		recordJSON, err := r.client.Get(ctx, txnKey).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get transaction %s: %w", txnID, err)
		}

		var record models.Transaction
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction %s: %w", txnID, err)
		}

		transactions = append(transactions, &record)
	}

	return &GetUserTransactionsOutput{
		Transactions: transactions,
	}, nil
}
