package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the processing state of a transaction.
type Status string

// Supported transaction statuses
const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Transaction represents a monetary transaction record, including amount, owning user, timestamp and status.
// swagger:model Transaction
type Transaction struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`                  // ID is assigned by the storage layer on insert.
	Amount          float64            `json:"amount" bson:"amount"`                     // Amount is the caller-supplied monetary value.
	TransactionType string             `json:"transaction_type" bson:"transaction_type"` // TransactionType is a free-form type, e.g. "deposit".
	User            int64              `json:"user" bson:"user"`                         // User is the identifier of the owning user.
	Timestamp       time.Time          `json:"timestamp" bson:"timestamp"`               // Timestamp is set once, at creation.
	Status          Status             `json:"status" bson:"status"`                     // Status is the only field mutable after creation.
}

// TransactionDB represents a transaction row in the relational database
type TransactionDB struct {
	ID              string    `db:"id"`               // 24-char hex object id
	Amount          float64   `db:"amount"`           // Transaction amount
	TransactionType string    `db:"transaction_type"` // Free-form transaction type
	UserID          int64     `db:"user_id"`          // Owning user
	CreatedAt       time.Time `db:"created_at"`       // Creation timestamp
	Status          string    `db:"status"`           // PENDING, COMPLETED or FAILED
}

// ToTransaction converts a database row into a Transaction.
func (t TransactionDB) ToTransaction() (Transaction, error) {
	id, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:              id,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		User:            t.UserID,
		Timestamp:       t.CreatedAt,
		Status:          Status(t.Status),
	}, nil
}
