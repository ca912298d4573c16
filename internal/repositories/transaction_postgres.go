package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionsSchema creates the transactions table used by the Postgres storage driver.
const TransactionsSchema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id CHAR(24) PRIMARY KEY,
		amount DOUBLE PRECISION NOT NULL,
		transaction_type TEXT NOT NULL,
		user_id BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		status VARCHAR(16) NOT NULL CHECK (status IN ('PENDING', 'COMPLETED', 'FAILED'))
	);
	CREATE INDEX IF NOT EXISTS transactions_user_id_idx ON transactions (user_id);
`

// executor picks the request-scoped transaction when one is present.
func executor(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// TransactionPostgresWriteRepository handles transaction write operations
type TransactionPostgresWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionPostgresWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionPostgresWriteRepository {
	return &TransactionPostgresWriteRepository{db: db, txGetter: txGetter}
}

// Insert stores a transaction under a freshly generated ObjectID.
func (r *TransactionPostgresWriteRepository) Insert(ctx context.Context, txn models.Transaction) (primitive.ObjectID, error) {
	const query = `
		INSERT INTO transactions (id, amount, transaction_type, user_id, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	id := primitive.NewObjectID()
	args := []any{id.Hex(), txn.Amount, txn.TransactionType, txn.User, txn.Timestamp, string(txn.Status)}

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)

	logger.Log.Infow("postgres exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// UpdateStatus sets the status column and returns the number of affected rows.
func (r *TransactionPostgresWriteRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (int64, error) {
	const query = `
		UPDATE transactions
		SET status = $2
		WHERE id = $1
	`
	args := []any{id.Hex(), string(status)}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("postgres exec",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return 0, fmt.Errorf("update transaction status: %w", err)
	}
	return rowsAffected, nil
}

// TransactionPostgresReadRepository handles transaction read operations
type TransactionPostgresReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionPostgresReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionPostgresReadRepository {
	return &TransactionPostgresReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns nil, nil when no row has the id.
func (r *TransactionPostgresReadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	const query = `
		SELECT id, amount, transaction_type, user_id, created_at, status
		FROM transactions
		WHERE id = $1
	`

	var row models.TransactionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, id.Hex())

	logger.Log.Infow("postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id.Hex()},
		"result", row,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select transaction: %w", err)
	}

	txn, err := row.ToTransaction()
	if err != nil {
		return nil, fmt.Errorf("decode transaction id %q: %w", row.ID, err)
	}
	return &txn, nil
}

// ListByUserID returns all transactions of a user. Rows are not ordered.
func (r *TransactionPostgresReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Transaction, error) {
	const query = `
		SELECT id, amount, transaction_type, user_id, created_at, status
		FROM transactions
		WHERE user_id = $1
	`

	var rows []models.TransactionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, userID)

	logger.Log.Infow("postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}

	txns := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		txn, err := row.ToTransaction()
		if err != nil {
			return nil, fmt.Errorf("decode transaction id %q: %w", row.ID, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
