package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureTransactionIndexes creates the index backing the list-by-user query.
func EnsureTransactionIndexes(ctx context.Context, coll *mongo.Collection) error {
	name, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("user_1"),
	})

	logger.Log.Infow("mongo create index",
		"collection", coll.Name(),
		"index", name,
		"error", err,
	)

	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}
	return nil
}

// TransactionMongoWriteRepository handles transaction write operations on a Mongo collection
type TransactionMongoWriteRepository struct {
	coll *mongo.Collection
}

func NewTransactionMongoWriteRepository(coll *mongo.Collection) *TransactionMongoWriteRepository {
	return &TransactionMongoWriteRepository{coll: coll}
}

// Insert stores a transaction; the driver assigns the ObjectID.
func (r *TransactionMongoWriteRepository) Insert(ctx context.Context, txn models.Transaction) (primitive.ObjectID, error) {
	txn.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, txn)

	var id primitive.ObjectID
	if res != nil {
		id, _ = res.InsertedID.(primitive.ObjectID)
	}

	logger.Log.Infow("mongo insert",
		"collection", r.coll.Name(),
		"document", txn,
		"result", id.Hex(),
		"error", err,
	)

	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// UpdateStatus sets the status field and returns the number of matched documents.
func (r *TransactionMongoWriteRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (int64, error) {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"status": status}}

	res, err := r.coll.UpdateOne(ctx, filter, update)

	var matched int64
	if res != nil {
		matched = res.MatchedCount
	}

	logger.Log.Infow("mongo update",
		"filter", filter,
		"update", update,
		"result", matched,
		"error", err,
	)

	if err != nil {
		return 0, fmt.Errorf("update transaction status: %w", err)
	}
	return matched, nil
}

// TransactionMongoReadRepository handles transaction read operations on a Mongo collection
type TransactionMongoReadRepository struct {
	coll *mongo.Collection
}

func NewTransactionMongoReadRepository(coll *mongo.Collection) *TransactionMongoReadRepository {
	return &TransactionMongoReadRepository{coll: coll}
}

// GetByID returns nil, nil when no document has the id.
func (r *TransactionMongoReadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	filter := bson.M{"_id": id}

	var txn models.Transaction
	err := r.coll.FindOne(ctx, filter).Decode(&txn)

	logger.Log.Infow("mongo find one",
		"filter", filter,
		"result", txn,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return &txn, nil
}

// ListByUserID returns all transactions of a user in natural collection order.
func (r *TransactionMongoReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Transaction, error) {
	filter := bson.M{"user": userID}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		logger.Log.Infow("mongo find", "filter", filter, "error", err)
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	txns := []models.Transaction{}
	err = cursor.All(ctx, &txns)

	logger.Log.Infow("mongo find",
		"filter", filter,
		"result", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return txns, nil
}
