package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Adjustment is a single premium adjustment record. Amount-based entries
// carry Amount; rate-based tax entries carry Rate (percent) and are computed
// against the running total at the time the tax is applied.
type Adjustment struct {
	Kind        AdjustmentKind   `json:"kind"`
	Description string           `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Rate        *decimal.Decimal `json:"rate,omitempty"`
}

// AdjustmentList is persisted as a JSONB column.
type AdjustmentList []Adjustment

func (a AdjustmentList) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *AdjustmentList) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("AdjustmentList: Scan failed, expected []byte but got %T", value)
	}
	return json.Unmarshal(b, a)
}

type Quote struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	QuoteNumber   string          `json:"quote_number" db:"quote_number"`
	ClientID      uuid.UUID       `json:"client_id" db:"client_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	SumInsured    decimal.Decimal `json:"sum_insured" db:"sum_insured"`
	BasePremium   decimal.Decimal `json:"base_premium" db:"base_premium"`
	TotalPremium  decimal.Decimal `json:"total_premium" db:"total_premium"`
	Discounts     AdjustmentList  `json:"discounts" db:"discounts"`
	Loadings      AdjustmentList  `json:"loadings" db:"loadings"`
	Taxes         AdjustmentList  `json:"taxes" db:"taxes"`
	Fees          AdjustmentList  `json:"fees" db:"fees"`
	ValidFrom     int64           `json:"valid_from" db:"valid_from"`
	ValidTo       int64           `json:"valid_to" db:"valid_to"`
	Status        QuoteStatus     `json:"status" db:"status"`
	DeclineReason *string         `json:"decline_reason,omitempty" db:"decline_reason"`
	PolicyID      *uuid.UUID      `json:"policy_id,omitempty" db:"policy_id"`
	ConvertedAt   *int64          `json:"converted_at,omitempty" db:"converted_at"`
	ConvertedBy   *string         `json:"converted_by,omitempty" db:"converted_by"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedBy     *string         `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy     *string         `json:"updated_by,omitempty" db:"updated_by"`
}

func (q *Quote) Validate() error {
	if q.ClientID == uuid.Nil {
		return NewValidationError("client_id", "is required")
	}
	if q.SumInsured.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("sum_insured", "must be greater than zero")
	}
	if q.BasePremium.IsNegative() {
		return NewValidationError("base_premium", "must not be negative")
	}
	if q.ValidFrom >= q.ValidTo {
		return NewValidationError("valid_to", "must be after valid_from")
	}
	return nil
}

// IsValid reports whether the quote can still be acted on: it must be
// pending and now must fall inside [valid_from, valid_to].
func (q *Quote) IsValid(now time.Time) bool {
	ts := now.Unix()
	return q.Status == QuotePending && ts >= q.ValidFrom && ts <= q.ValidTo
}

func (q *Quote) Submit() error {
	if q.Status != QuoteDraft {
		return &InvalidStateError{Entity: "quote", Action: "submit", Current: string(q.Status)}
	}
	q.Status = QuotePending
	return nil
}

func (q *Quote) Approve() error {
	if q.Status != QuotePending {
		return &InvalidStateError{Entity: "quote", Action: "approve", Current: string(q.Status)}
	}
	q.Status = QuoteApproved
	return nil
}

func (q *Quote) Decline(reason string) error {
	if reason == "" {
		return NewValidationError("decline_reason", "is required")
	}
	if q.Status != QuotePending {
		return &InvalidStateError{Entity: "quote", Action: "decline", Current: string(q.Status)}
	}
	q.Status = QuoteDeclined
	q.DeclineReason = &reason
	return nil
}

// MarkExpired flips a pending quote whose window has passed. Reports whether
// the quote changed.
func (q *Quote) MarkExpired(now time.Time) bool {
	if q.Status == QuotePending && now.Unix() > q.ValidTo {
		q.Status = QuoteExpired
		return true
	}
	return false
}

// MarkConverted records a successful conversion. Conversion is terminal:
// a quote converts at most once, to exactly one policy. The status and
// window preconditions mirror ConvertToPolicy and are rechecked here so the
// transition can never be applied out of order.
func (q *Quote) MarkConverted(policyID uuid.UUID, convertedBy string, now time.Time) error {
	if q.Status != QuotePending {
		return &InvalidStateError{Entity: "quote", Action: "convert", Current: string(q.Status)}
	}
	if !q.IsValid(now) {
		return &ExpiredError{Entity: "quote", ID: q.ID.String(), ValidTo: q.ValidTo}
	}
	ts := now.Unix()
	q.Status = QuoteConverted
	q.PolicyID = &policyID
	q.ConvertedAt = &ts
	q.ConvertedBy = &convertedBy
	return nil
}
