package handlers

//go:generate mockgen -source=list_transactions.go -destination=list_transactions_mock.go -package=handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.Transaction, error)
}

// NewListTransactionsHandler returns an HTTP handler listing the transactions of a user.
// @Summary List user transactions
// @Description Returns all transactions owned by user_id. Order is not guaranteed.
// @Tags transactions
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} models.TransactionListResponse "User transactions"
// @Failure 400 {object} models.ErrorResponse "User ID is required and must be an integer"
// @Failure 500 {object} models.ErrorResponse "Error fetching transactions"
// @Router /transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("user_id")
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID == 0 {
			logger.Log.Warnw("invalid user_id", "user_id", raw)
			writeError(w, http.StatusBadRequest, "User ID is required and must be an integer")
			return
		}

		txns, err := svc.ListByUserID(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
			writeError(w, http.StatusInternalServerError, "Error fetching transactions")
			return
		}
		if txns == nil {
			txns = []models.Transaction{}
		}

		writeJSON(w, http.StatusOK, models.TransactionListResponse{Transactions: txns})
	}
}
