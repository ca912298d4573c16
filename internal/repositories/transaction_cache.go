package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrCacheMiss is returned when a transaction is not cached.
var ErrCacheMiss = errors.New("transaction not found in cache")

// TransactionCacheRepository caches transactions by id in Redis
type TransactionCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached transactions
}

// NewTransactionCacheRepository creates a new repository instance with the given TTL
func NewTransactionCacheRepository(client *redis.Client, expiration time.Duration) *TransactionCacheRepository {
	return &TransactionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func transactionKey(id primitive.ObjectID) string {
	return fmt.Sprintf("transaction:%s", id.Hex())
}

// Get fetches a cached transaction
func (r *TransactionCacheRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	key := transactionKey(id)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Debugw("redis get", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var txn models.Transaction
	if err := json.Unmarshal([]byte(val), &txn); err != nil {
		logger.Log.Errorw("redis get: bad cached value", "key", key, "value", val, "error", err)
		return nil, err
	}

	logger.Log.Debugw("redis get", "key", key, "result", txn)

	return &txn, nil
}

// Set caches a transaction with expiration
func (r *TransactionCacheRepository) Set(ctx context.Context, txn models.Transaction) error {
	key := transactionKey(txn.ID)

	data, err := json.Marshal(txn)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Debugw("redis set",
		"key", key,
		"ttl", r.exp,
		"error", err,
	)

	return err
}
