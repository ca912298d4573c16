package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-transactions/internal/models"
	"github.com/sbilibin2017/gw-transactions/internal/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdateTransactionStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := primitive.NewObjectID()

	tests := []struct {
		name           string
		id             string
		body           string
		mockSetup      func(m *MockTransactionStatusUpdater)
		expectedCode   int
		expectedErr    string
		expectedStatus models.Status
	}{
		{
			name: "completed",
			id:   id.Hex(),
			body: `{"status":"COMPLETED"}`,
			mockSetup: func(m *MockTransactionStatusUpdater) {
				m.EXPECT().UpdateStatus(gomock.Any(), id, models.StatusCompleted).
					Return(&models.Transaction{ID: id, User: 7, Status: models.StatusCompleted}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: models.StatusCompleted,
		},
		{
			name: "failed",
			id:   id.Hex(),
			body: `{"status":"FAILED"}`,
			mockSetup: func(m *MockTransactionStatusUpdater) {
				m.EXPECT().UpdateStatus(gomock.Any(), id, models.StatusFailed).
					Return(&models.Transaction{ID: id, User: 7, Status: models.StatusFailed}, nil)
			},
			expectedCode:   http.StatusOK,
			expectedStatus: models.StatusFailed,
		},
		{
			name:         "pending is rejected",
			id:           id.Hex(),
			body:         `{"status":"PENDING"}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid status",
		},
		{
			name:         "unknown status",
			id:           id.Hex(),
			body:         `{"status":"DONE"}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid status",
		},
		{
			name:         "missing status",
			id:           id.Hex(),
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid status",
		},
		{
			name:         "invalid status checked before id",
			id:           "bogus",
			body:         `{"status":"PENDING"}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid status",
		},
		{
			name:         "malformed id",
			id:           "bogus",
			body:         `{"status":"FAILED"}`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid transaction ID",
		},
		{
			name: "not found",
			id:   id.Hex(),
			body: `{"status":"FAILED"}`,
			mockSetup: func(m *MockTransactionStatusUpdater) {
				m.EXPECT().UpdateStatus(gomock.Any(), id, models.StatusFailed).Return(nil, services.ErrTransactionNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedErr:  "Transaction not found",
		},
		{
			name: "unchanged",
			id:   id.Hex(),
			body: `{"status":"COMPLETED"}`,
			mockSetup: func(m *MockTransactionStatusUpdater) {
				m.EXPECT().UpdateStatus(gomock.Any(), id, models.StatusCompleted).Return(nil, services.ErrStatusUnchanged)
			},
			expectedCode: http.StatusNotFound,
			expectedErr:  "Transaction status unchanged",
		},
		{
			name: "storage error",
			id:   id.Hex(),
			body: `{"status":"COMPLETED"}`,
			mockSetup: func(m *MockTransactionStatusUpdater) {
				m.EXPECT().UpdateStatus(gomock.Any(), id, models.StatusCompleted).Return(nil, errors.New("not primary"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "Error updating transaction status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockTransactionStatusUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewUpdateTransactionStatusHandler(mockSvc)

			req := httptest.NewRequest(http.MethodPut, "/api/transactions/"+tt.id, bytes.NewBufferString(tt.body))
			req = withURLParam(req, "id", tt.id)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedErr != "" {
				var resp models.ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedErr, resp.Error)
				return
			}

			var txn models.Transaction
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &txn))
			assert.Equal(t, id, txn.ID)
			assert.Equal(t, tt.expectedStatus, txn.Status)
		})
	}
}
