package services

//go:generate mockgen -source=transaction.go -destination=transaction_mock.go -package=services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrTransactionNotFound is returned when no transaction has the requested id.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrStatusUnchanged is returned when a transaction already has the requested status.
	ErrStatusUnchanged = errors.New("transaction status unchanged")
)

// TransactionWriter defines methods for persisting transactions.
type TransactionWriter interface {
	// Insert stores a new transaction and returns its storage-assigned id.
	Insert(ctx context.Context, txn models.Transaction) (primitive.ObjectID, error)
	// UpdateStatus sets the status of a transaction and reports how many records matched the id.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (matched int64, err error)
}

// TransactionReader defines methods for reading transactions.
type TransactionReader interface {
	// GetByID returns nil, nil when no transaction has the id.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.Transaction, error)
}

// TransactionCache caches transactions by id.
type TransactionCache interface {
	// Get returns an error on a cache miss.
	Get(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	Set(ctx context.Context, txn models.Transaction) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransactionService handles transaction operations, caching and Kafka publishing.
// cache and kafkaWriter are optional and may be nil.
type TransactionService struct {
	writer      TransactionWriter
	reader      TransactionReader
	cache       TransactionCache
	kafkaWriter KafkaWriter
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	writer TransactionWriter,
	reader TransactionReader,
	cache TransactionCache,
	kafkaWriter KafkaWriter,
) *TransactionService {
	return &TransactionService{
		writer:      writer,
		reader:      reader,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// Create stores a new PENDING transaction stamped with the current time.
func (s *TransactionService) Create(ctx context.Context, amount float64, transactionType string, userID int64) (*models.Transaction, error) {
	txn := models.Transaction{
		Amount:          amount,
		TransactionType: transactionType,
		User:            userID,
		Timestamp:       time.Now().UTC(),
		Status:          models.StatusPending,
	}

	id, err := s.writer.Insert(ctx, txn)
	if err != nil {
		logger.Log.Errorw("failed to insert transaction", "user", userID, "amount", amount, "type", transactionType, "error", err)
		return nil, err
	}
	txn.ID = id

	s.publishEvent(ctx, models.EventTransactionCreated, txn)

	return &txn, nil
}

// ListByUserID returns the transactions owned by a user in storage order.
func (s *TransactionService) ListByUserID(ctx context.Context, userID int64) ([]models.Transaction, error) {
	txns, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "user", userID, "error", err)
		return nil, err
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

// GetByID returns a transaction, serving from cache when possible.
func (s *TransactionService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	if s.cache != nil {
		if txn, err := s.cache.Get(ctx, id); err == nil && txn != nil {
			return txn, nil
		}
	}

	txn, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get transaction", "id", id.Hex(), "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}

	s.cacheTransaction(ctx, *txn)

	return txn, nil
}

// UpdateStatus sets a new status on an existing transaction and returns the stored record.
// The current record is read first so a missing id and an unchanged status are reported apart.
func (s *TransactionService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Transaction, error) {
	current, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get transaction before update", "id", id.Hex(), "error", err)
		return nil, err
	}
	if current == nil {
		return nil, ErrTransactionNotFound
	}
	if current.Status == status {
		return nil, ErrStatusUnchanged
	}

	matched, err := s.writer.UpdateStatus(ctx, id, status)
	if err != nil {
		logger.Log.Errorw("failed to update transaction status", "id", id.Hex(), "status", status, "error", err)
		return nil, err
	}
	// deleted between the read and the write
	if matched == 0 {
		return nil, ErrTransactionNotFound
	}

	updated, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get transaction after update", "id", id.Hex(), "error", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrTransactionNotFound
	}

	s.cacheTransaction(ctx, *updated)
	s.publishEvent(ctx, models.EventTransactionStatusUpdated, *updated)

	return updated, nil
}

// cacheTransaction stores a transaction in the cache, logging failures.
func (s *TransactionService) cacheTransaction(ctx context.Context, txn models.Transaction) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, txn); err != nil {
		logger.Log.Errorw("failed to cache transaction", "id", txn.ID.Hex(), "error", err)
	}
}

// publishEvent publishes a transaction event to Kafka.
func (s *TransactionService) publishEvent(ctx context.Context, eventType string, txn models.Transaction) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", txn.ID.Hex())
		return
	}

	event := models.TransactionEvent{
		EventID:         uuid.NewString(),
		Type:            eventType,
		OccurredAt:      time.Now().Unix(),
		TransactionID:   txn.ID.Hex(),
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		User:            txn.User,
		Status:          txn.Status,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event", "transaction_id", event.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event", "transaction_id", event.TransactionID, "type", eventType, "error", err)
	} else {
		logger.Log.Infow("Transaction event published", "transaction_id", event.TransactionID, "type", eventType)
	}
}
