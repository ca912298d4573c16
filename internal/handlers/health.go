package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-transactions/internal/logger"
	"github.com/sbilibin2017/gw-transactions/internal/models"
)

// NewHealthHandler returns an HTTP handler reporting whether storage is reachable.
func NewHealthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			logger.Log.Errorw("storage ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	}
}
