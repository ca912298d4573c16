package models

// TransactionListResponse represents a successful response with a user's transactions
// swagger:model TransactionListResponse
type TransactionListResponse struct {
	// Transactions owned by the user, never null
	Transactions []Transaction `json:"transactions"`
}

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Transaction not found
	Error string `json:"error"`
}

// HealthResponse represents the health check response
// swagger:model HealthResponse
type HealthResponse struct {
	// example: ok
	Status string `json:"status"`
}
