package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Setup Mongo ---
func setupMongo(t *testing.T) (*mongo.Collection, func()) {
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	coll := client.Database("transaction_db").Collection("transactions")
	require.NoError(t, EnsureTransactionIndexes(ctx, coll))

	return coll, func() {
		client.Disconnect(ctx)
		container.Terminate(ctx)
	}
}

func newTransaction(user int64, amount float64, txType string) models.Transaction {
	return models.Transaction{
		Amount:          amount,
		TransactionType: txType,
		User:            user,
		Timestamp:       time.Now().UTC().Truncate(time.Millisecond),
		Status:          models.StatusPending,
	}
}

func TestTransactionMongoRepositories(t *testing.T) {
	coll, cleanup := setupMongo(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewTransactionMongoWriteRepository(coll)
	reader := NewTransactionMongoReadRepository(coll)

	t.Run("insert then get", func(t *testing.T) {
		txn := newTransaction(7, 50, "deposit")

		id, err := writer.Insert(ctx, txn)
		assert.NoError(t, err)
		assert.False(t, id.IsZero())

		got, err := reader.GetByID(ctx, id)
		assert.NoError(t, err)
		if assert.NotNil(t, got) {
			assert.Equal(t, id, got.ID)
			assert.Equal(t, txn.Amount, got.Amount)
			assert.Equal(t, txn.TransactionType, got.TransactionType)
			assert.Equal(t, txn.User, got.User)
			assert.Equal(t, models.StatusPending, got.Status)
			assert.True(t, txn.Timestamp.Equal(got.Timestamp))
		}
	})

	t.Run("get missing id", func(t *testing.T) {
		got, err := reader.GetByID(ctx, primitive.NewObjectID())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list by user", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := writer.Insert(ctx, newTransaction(42, float64(i+1), "deposit"))
			assert.NoError(t, err)
		}
		_, err := writer.Insert(ctx, newTransaction(43, 1, "deposit"))
		assert.NoError(t, err)

		txns, err := reader.ListByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Len(t, txns, 3)
		for _, txn := range txns {
			assert.Equal(t, int64(42), txn.User)
		}
	})

	t.Run("list by user with no records", func(t *testing.T) {
		txns, err := reader.ListByUserID(ctx, 404)
		assert.NoError(t, err)
		assert.NotNil(t, txns)
		assert.Empty(t, txns)
	})

	t.Run("update status", func(t *testing.T) {
		id, err := writer.Insert(ctx, newTransaction(9, 10, "withdraw"))
		assert.NoError(t, err)

		matched, err := writer.UpdateStatus(ctx, id, models.StatusCompleted)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), matched)

		got, err := reader.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, got.Status)
	})

	t.Run("update missing id", func(t *testing.T) {
		matched, err := writer.UpdateStatus(ctx, primitive.NewObjectID(), models.StatusFailed)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), matched)
	})
}
