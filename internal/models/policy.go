package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Policy struct {
	ID                  uuid.UUID        `json:"id" db:"id"`
	PolicyNumber        string           `json:"policy_number" db:"policy_number"`
	QuoteID             *uuid.UUID       `json:"quote_id,omitempty" db:"quote_id"`
	ClientID            uuid.UUID        `json:"client_id" db:"client_id"`
	ProductName         string           `json:"product_name" db:"product_name"`
	SumInsured          decimal.Decimal  `json:"sum_insured" db:"sum_insured"`
	AnnualPremium       decimal.Decimal  `json:"annual_premium" db:"annual_premium"`
	AdjustedPremium     *decimal.Decimal `json:"adjusted_premium,omitempty" db:"adjusted_premium"`
	DownPayment         decimal.Decimal  `json:"down_payment" db:"down_payment"`
	TotalInstallments   int              `json:"total_installments" db:"total_installments"`
	PaidInstallments    int              `json:"paid_installments" db:"paid_installments"`
	PendingInstallments int              `json:"pending_installments" db:"pending_installments"`
	OverdueInstallments int              `json:"overdue_installments" db:"overdue_installments"`
	PolicyStartDate     int64            `json:"policy_start_date" db:"policy_start_date"`
	PolicyEndDate       int64            `json:"policy_end_date" db:"policy_end_date"`
	Status              PolicyStatus     `json:"status" db:"status"`
	CancellationDate    *int64           `json:"cancellation_date,omitempty" db:"cancellation_date"`
	CancellationReason  *string          `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`
	DeletedAt           *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedBy           *string          `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy           *string          `json:"updated_by,omitempty" db:"updated_by"`
}

func (p *Policy) Validate() error {
	if p.ClientID == uuid.Nil {
		return NewValidationError("client_id", "is required")
	}
	if p.SumInsured.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("sum_insured", "must be greater than zero")
	}
	if p.AnnualPremium.IsNegative() {
		return NewValidationError("annual_premium", "must not be negative")
	}
	if p.PolicyStartDate >= p.PolicyEndDate {
		return NewValidationError("policy_end_date", "must be after policy_start_date")
	}
	if p.TotalInstallments < 0 || p.PaidInstallments < 0 || p.PendingInstallments < 0 {
		return NewValidationError("installments", "must not be negative")
	}
	if p.CancellationDate != nil && *p.CancellationDate < p.PolicyStartDate {
		return NewValidationError("cancellation_date", "must not precede policy_start_date")
	}
	return nil
}

// EffectivePremium is the premium the ledger settles against: the adjusted
// override when present, otherwise the annual premium.
func (p *Policy) EffectivePremium() decimal.Decimal {
	if p.AdjustedPremium != nil {
		return *p.AdjustedPremium
	}
	return p.AnnualPremium
}

// OutstandingBalance is the effective premium less the completed payment
// total, clamped at zero.
func (p *Policy) OutstandingBalance(totalPaid decimal.Decimal) decimal.Decimal {
	balance := p.EffectivePremium().Sub(totalPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

func (p *Policy) IsActive(now time.Time) bool {
	ts := now.Unix()
	return p.Status == PolicyActive && ts >= p.PolicyStartDate && ts <= p.PolicyEndDate
}

// SyncInstallments recomputes pending_installments from the total and paid
// counters. Called whenever either counter changes.
func (p *Policy) SyncInstallments() {
	p.PendingInstallments = p.TotalInstallments - p.PaidInstallments
}

// Cancel transitions the policy to cancelled. The cancellation date is set
// to now only when not already present; a date earlier than the policy
// start is rejected. The policy is left unmodified on failure, so the
// candidate date is validated before anything is assigned.
func (p *Policy) Cancel(reason string, now time.Time) error {
	if p.Status == PolicyCancelled {
		return &InvalidStateError{Entity: "policy", Action: "cancel", Current: string(p.Status)}
	}
	cancelDate := now.Unix()
	if p.CancellationDate != nil {
		cancelDate = *p.CancellationDate
	}
	if cancelDate < p.PolicyStartDate {
		return NewValidationError("cancellation_date", "must not precede policy_start_date")
	}
	p.Status = PolicyCancelled
	p.CancellationDate = &cancelDate
	if reason != "" {
		p.CancellationReason = &reason
	}
	return nil
}
