package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an immutable financial transaction record. Rows are created
// once; the only permitted mutation is the pending→completed transition
// keyed by the unique transaction reference.
type Payment struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	TransactionRef string          `json:"transaction_ref" db:"transaction_ref"`
	ClientID       uuid.UUID       `json:"client_id" db:"client_id"`
	PolicyID       *uuid.UUID      `json:"policy_id,omitempty" db:"policy_id"`
	ClaimID        *uuid.UUID      `json:"claim_id,omitempty" db:"claim_id"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Currency       string          `json:"currency" db:"currency"`
	Method         PaymentMethod   `json:"method" db:"method"`
	Status         PaymentStatus   `json:"status" db:"status"`
	PaidAt         *int64          `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedBy      *string         `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy      *string         `json:"updated_by,omitempty" db:"updated_by"`
}

func (p *Payment) Validate() error {
	if p.TransactionRef == "" {
		return NewValidationError("transaction_ref", "is required")
	}
	if p.ClientID == uuid.Nil {
		return NewValidationError("client_id", "is required")
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "must be greater than zero")
	}
	switch p.Method {
	case PaymentMethodMpesa, PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCheque, PaymentMethodCard:
	default:
		return NewValidationError("method", "unknown payment method")
	}
	return nil
}

// MarkCompleted transitions pending→completed. Calling it on an already
// completed payment is a no-op, which makes the operation idempotent per
// transaction reference. It reports whether the payment changed.
func (p *Payment) MarkCompleted(now time.Time) (bool, error) {
	if p.Status == PaymentCompleted {
		return false, nil
	}
	if p.Status != PaymentPending {
		return false, &InvalidStateError{Entity: "payment", Action: "complete", Current: string(p.Status)}
	}
	ts := now.Unix()
	p.Status = PaymentCompleted
	p.PaidAt = &ts
	return true, nil
}
