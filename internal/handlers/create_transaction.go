package handlers

//go:generate mockgen -source=create_transaction.go -destination=create_transaction_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
)

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, amount float64, transactionType string, userID int64) (*models.Transaction, error)
}

// NewCreateTransactionHandler returns an HTTP handler for creating a transaction.
// @Summary Create a transaction
// @Description Creates a PENDING transaction stamped with the current time. The user may be sent as an integer or an integer string.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body models.CreateTransactionRequest true "Create transaction request"
// @Success 201 {object} models.Transaction "Created transaction"
// @Failure 400 {object} models.ErrorResponse "Missing required fields / invalid user"
// @Failure 500 {object} models.ErrorResponse "Error creating transaction"
// @Router /transactions [post]
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode create transaction request", "error", err)
			switch {
			case errors.Is(err, io.EOF):
				writeError(w, http.StatusBadRequest, "Missing required fields")
			case errors.Is(err, models.ErrInvalidUser):
				writeError(w, http.StatusBadRequest, "User must be an integer")
			case errors.Is(err, models.ErrInvalidAmount):
				writeError(w, http.StatusBadRequest, "Amount must be numeric")
			default:
				writeError(w, http.StatusBadRequest, "Invalid request body")
			}
			return
		}

		if err := models.Validate(req); err != nil {
			logger.Log.Warnw("invalid create transaction request", "error", err)
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}

		txn, err := svc.Create(r.Context(), float64(req.Amount), req.TransactionType, int64(req.User))
		if err != nil {
			logger.Log.Errorw("failed to create transaction", "user", req.User, "error", err)
			writeError(w, http.StatusInternalServerError, "Error creating transaction")
			return
		}

		writeJSON(w, http.StatusCreated, txn)
	}
}
