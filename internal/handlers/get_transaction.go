package handlers

//go:generate mockgen -source=get_transaction.go -destination=get_transaction_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"github.com/sbilibin2017/gw-transactions/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionGetter defines the interface that the service must implement.
type TransactionGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
}

// NewGetTransactionHandler returns an HTTP handler fetching a transaction by id.
// @Summary Get a transaction
// @Description Returns a single transaction by its 24-character hex id.
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction "Transaction"
// @Failure 400 {object} models.ErrorResponse "Invalid transaction ID"
// @Failure 404 {object} models.ErrorResponse "Transaction not found"
// @Failure 500 {object} models.ErrorResponse "Error fetching transaction"
// @Router /transactions/{id} [get]
func NewGetTransactionHandler(svc TransactionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "id")
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			logger.Log.Warnw("invalid transaction id", "id", rawID, "error", err)
			writeError(w, http.StatusBadRequest, "Invalid transaction ID")
			return
		}

		txn, err := svc.GetByID(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				writeError(w, http.StatusNotFound, "Transaction not found")
			default:
				logger.Log.Errorw("failed to get transaction", "id", rawID, "error", err)
				writeError(w, http.StatusInternalServerError, "Error fetching transaction")
			}
			return
		}

		writeJSON(w, http.StatusOK, txn)
	}
}
