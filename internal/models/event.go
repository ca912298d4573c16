package models

// Event types published for transaction changes
const (
	EventTransactionCreated       = "transaction.created"
	EventTransactionStatusUpdated = "transaction.status_updated"
)

// TransactionEvent is the message published to Kafka after a transaction is created or its status changes.
type TransactionEvent struct {
	EventID         string  `json:"event_id"`         // EventID is unique per published message.
	Type            string  `json:"type"`             // Type is one of the Event* constants.
	OccurredAt      int64   `json:"occurred_at"`      // OccurredAt is the Unix timestamp (in seconds) of publishing.
	TransactionID   string  `json:"transaction_id"`   // TransactionID is the hex id of the transaction.
	Amount          float64 `json:"amount"`           // Amount of the transaction.
	TransactionType string  `json:"transaction_type"` // TransactionType of the transaction.
	User            int64   `json:"user"`             // User owning the transaction.
	Status          Status  `json:"status"`           // Status after the change.
}
