package models

import (
	"time"

	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClaimNumberPrefix is the prefix for generated claim numbers.
const ClaimNumberPrefix = "CLM"

type Claim struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	ClaimNumber     string           `json:"claim_number" db:"claim_number"`
	PolicyID        uuid.UUID        `json:"policy_id" db:"policy_id"`
	ClientID        uuid.UUID        `json:"client_id" db:"client_id"`
	DateOfLoss      int64            `json:"date_of_loss" db:"date_of_loss"`
	DateReported    int64            `json:"date_reported" db:"date_reported"`
	Description     *string          `json:"description,omitempty" db:"description"`
	EstimatedAmount decimal.Decimal  `json:"estimated_amount" db:"estimated_amount"`
	ApprovedAmount  *decimal.Decimal `json:"approved_amount,omitempty" db:"approved_amount"`
	PaidAmount      decimal.Decimal  `json:"paid_amount" db:"paid_amount"`
	Status          ClaimStatus      `json:"status" db:"status"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	AssignedTo      *string          `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time       `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedBy       *string          `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy       *string          `json:"updated_by,omitempty" db:"updated_by"`
}

// GenerateClaimNumber assigns a claim number when none was provided.
// The number is a timestamp plus random digits; it is not checked against
// existing rows, the unique constraint on the column is the backstop.
func (c *Claim) GenerateClaimNumber() {
	if c.ClaimNumber == "" {
		c.ClaimNumber = utils.GenerateReferenceNumber(ClaimNumberPrefix)
	}
}

func (c *Claim) Validate() error {
	if c.PolicyID == uuid.Nil {
		return NewValidationError("policy_id", "is required")
	}
	if c.DateOfLoss > c.DateReported {
		return NewValidationError("date_of_loss", "must not be after date_reported")
	}
	if c.EstimatedAmount.IsNegative() {
		return NewValidationError("estimated_amount", "must not be negative")
	}
	if c.PaidAmount.IsNegative() {
		return NewValidationError("paid_amount", "must not be negative")
	}
	return nil
}

func (c *Claim) Submit() error {
	if c.Status != ClaimDraft {
		return &InvalidStateError{Entity: "claim", Action: "submit", Current: string(c.Status)}
	}
	c.Status = ClaimSubmitted
	return nil
}

// StartReview moves a submitted claim to under review and assigns the
// reviewer who picked it up.
func (c *Claim) StartReview(reviewer string) error {
	if c.Status != ClaimSubmitted {
		return &InvalidStateError{Entity: "claim", Action: "review", Current: string(c.Status)}
	}
	c.Status = ClaimUnderReview
	c.AssignedTo = &reviewer
	return nil
}

// Approve moves a submitted or under-review claim to approved. When amount
// is nil the estimated amount is approved. The approver is auto-assigned.
func (c *Claim) Approve(amount *decimal.Decimal, approver string) error {
	if c.Status != ClaimSubmitted && c.Status != ClaimUnderReview {
		return &InvalidStateError{Entity: "claim", Action: "approve", Current: string(c.Status)}
	}
	approved := c.EstimatedAmount
	if amount != nil {
		approved = *amount
	}
	if approved.IsNegative() {
		return NewValidationError("approved_amount", "must not be negative")
	}
	c.Status = ClaimApproved
	c.ApprovedAmount = &approved
	c.AssignedTo = &approver
	return nil
}

func (c *Claim) Reject(reason string) error {
	if reason == "" {
		return NewValidationError("rejection_reason", "is required")
	}
	if c.Status != ClaimSubmitted && c.Status != ClaimUnderReview {
		return &InvalidStateError{Entity: "claim", Action: "reject", Current: string(c.Status)}
	}
	c.Status = ClaimRejected
	c.RejectionReason = &reason
	return nil
}

// ApplyPayment increases the paid amount by the given payment. Allowed for
// approved or already paid claims; the claim becomes paid exactly when the
// paid amount first reaches the approved amount.
func (c *Claim) ApplyPayment(amount decimal.Decimal) error {
	if c.Status != ClaimApproved && c.Status != ClaimPaid {
		return &InvalidStateError{Entity: "claim", Action: "record payment against", Current: string(c.Status)}
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "must be greater than zero")
	}
	c.PaidAmount = c.PaidAmount.Add(amount)
	if c.ApprovedAmount != nil && c.PaidAmount.GreaterThanOrEqual(*c.ApprovedAmount) {
		c.Status = ClaimPaid
	}
	return nil
}

func (c *Claim) Close() error {
	if c.Status != ClaimPaid && c.Status != ClaimRejected {
		return &InvalidStateError{Entity: "claim", Action: "close", Current: string(c.Status)}
	}
	c.Status = ClaimClosed
	return nil
}
