package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCommissionDueDays is the default payment term for a commission.
const DefaultCommissionDueDays = 30

var minCommissionAmount = decimal.NewFromFloat(0.01)

type Commission struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	IntermediaryID   string           `json:"intermediary_id" db:"intermediary_id"`
	PolicyID         uuid.UUID        `json:"policy_id" db:"policy_id"`
	Rate             decimal.Decimal  `json:"rate" db:"rate"`
	Amount           decimal.Decimal  `json:"amount" db:"amount"`
	Status           CommissionStatus `json:"status" db:"status"`
	DueDate          int64            `json:"due_date" db:"due_date"`
	PaidDate         *int64           `json:"paid_date,omitempty" db:"paid_date"`
	PaymentReference *string          `json:"payment_reference,omitempty" db:"payment_reference"`
	ProcessedBy      *string          `json:"processed_by,omitempty" db:"processed_by"`
	Notes            *string          `json:"notes,omitempty" db:"notes"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
	DeletedAt        *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedBy        *string          `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy        *string          `json:"updated_by,omitempty" db:"updated_by"`
}

// ApplyDefaults rounds the amount to 2 decimal places and fills the due
// date with now+30 days when unset. Explicit pre-persistence transform,
// invoked by the creating operation.
func (c *Commission) ApplyDefaults(now time.Time) {
	c.Amount = c.Amount.Round(2)
	if c.DueDate == 0 {
		c.DueDate = now.Add(DefaultCommissionDueDays * 24 * time.Hour).Unix()
	}
	if c.Status == "" {
		c.Status = CommissionPending
	}
}

func (c *Commission) Validate() error {
	if c.IntermediaryID == "" {
		return NewValidationError("intermediary_id", "is required")
	}
	if c.PolicyID == uuid.Nil {
		return NewValidationError("policy_id", "is required")
	}
	if c.Rate.IsNegative() || c.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("rate", "must be between 0 and 100")
	}
	if c.Amount.LessThan(minCommissionAmount) {
		return NewValidationError("amount", "must be at least 0.01")
	}
	return nil
}

func (c *Commission) Approve(userID string) error {
	if c.Status != CommissionPending {
		return &InvalidStateError{Entity: "commission", Action: "approve", Current: string(c.Status)}
	}
	c.Status = CommissionApproved
	c.ProcessedBy = &userID
	return nil
}

// MarkAsPaid settles the commission. When paymentDate is nil the paid date
// defaults to now.
func (c *Commission) MarkAsPaid(paymentReference, userID string, paymentDate *time.Time, now time.Time) error {
	if paymentReference == "" {
		return NewValidationError("payment_reference", "is required")
	}
	if c.Status != CommissionApproved && c.Status != CommissionProcessing {
		return &InvalidStateError{Entity: "commission", Action: "mark paid", Current: string(c.Status)}
	}
	paid := now.Unix()
	if paymentDate != nil {
		paid = paymentDate.Unix()
	}
	c.Status = CommissionPaid
	c.PaidDate = &paid
	c.PaymentReference = &paymentReference
	c.ProcessedBy = &userID
	return nil
}
