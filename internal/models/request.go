package models

import (
	"bytes"
	"errors"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidUser is returned when the user field is neither an integer nor an integer string.
	ErrInvalidUser = errors.New("user must be an integer")
	// ErrInvalidAmount is returned when the amount field is neither a number nor a numeric string.
	ErrInvalidAmount = errors.New("amount must be numeric")
)

var validate = validator.New()

// Validate checks a request against its `validate` struct tags.
func Validate(req any) error {
	return validate.Struct(req)
}

// UserID is a user identifier that accepts both 7 and "7" on the wire.
type UserID int64

// UnmarshalJSON parses a JSON integer or an integer string. Null and "" decode to zero.
func (u *UserID) UnmarshalJSON(data []byte) error {
	raw, err := unquote(data)
	if err != nil {
		return ErrInvalidUser
	}
	if raw == "" {
		*u = 0
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ErrInvalidUser
	}
	*u = UserID(n)
	return nil
}

// Amount is a monetary value that accepts both 50 and "50" on the wire.
type Amount float64

// UnmarshalJSON parses a JSON number or a numeric string. Null and "" decode to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw, err := unquote(data)
	if err != nil {
		return ErrInvalidAmount
	}
	if raw == "" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrInvalidAmount
	}
	*a = Amount(f)
	return nil
}

func unquote(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		return strconv.Unquote(string(data))
	}
	return string(data), nil
}

// CreateTransactionRequest represents the JSON body for creating a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Transaction amount
	// required: true
	// example: 50
	Amount Amount `json:"amount" validate:"required"`

	// Transaction type
	// required: true
	// example: deposit
	TransactionType string `json:"transaction_type" validate:"required"`

	// Owning user, integer or integer string
	// required: true
	// example: 7
	User UserID `json:"user" validate:"required"`
}

// UpdateTransactionStatusRequest represents the JSON body for updating a transaction status
// swagger:model UpdateTransactionStatusRequest
type UpdateTransactionStatusRequest struct {
	// New status
	// required: true
	// example: COMPLETED
	Status Status `json:"status" validate:"required,oneof=COMPLETED FAILED"`
}
