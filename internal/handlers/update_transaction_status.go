package handlers

//go:generate mockgen -source=update_transaction_status.go -destination=update_transaction_status_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"github.com/sbilibin2017/gw-transactions/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionStatusUpdater defines the interface that the service must implement.
type TransactionStatusUpdater interface {
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (*models.Transaction, error)
}

// NewUpdateTransactionStatusHandler returns an HTTP handler updating the status of a transaction.
// @Summary Update transaction status
// @Description Sets the status of a transaction to COMPLETED or FAILED and returns the stored record.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body models.UpdateTransactionStatusRequest true "New status"
// @Success 200 {object} models.Transaction "Updated transaction"
// @Failure 400 {object} models.ErrorResponse "Invalid status / invalid transaction ID"
// @Failure 404 {object} models.ErrorResponse "Transaction not found / status unchanged"
// @Failure 500 {object} models.ErrorResponse "Error updating transaction status"
// @Router /transactions/{id} [put]
func NewUpdateTransactionStatusHandler(svc TransactionStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateTransactionStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode update status request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		if err := models.Validate(req); err != nil {
			logger.Log.Warnw("invalid status", "status", req.Status)
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}

		rawID := chi.URLParam(r, "id")
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			logger.Log.Warnw("invalid transaction id", "id", rawID, "error", err)
			writeError(w, http.StatusBadRequest, "Invalid transaction ID")
			return
		}

		txn, err := svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				writeError(w, http.StatusNotFound, "Transaction not found")
			case errors.Is(err, services.ErrStatusUnchanged):
				writeError(w, http.StatusNotFound, "Transaction status unchanged")
			default:
				logger.Log.Errorw("failed to update transaction status", "id", rawID, "status", req.Status, "error", err)
				writeError(w, http.StatusInternalServerError, "Error updating transaction status")
			}
			return
		}

		writeJSON(w, http.StatusOK, txn)
	}
}
