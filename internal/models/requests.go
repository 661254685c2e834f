package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ============================================================================
// CLIENT REQUESTS
// ============================================================================

type CreateClientRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	NationalID *string `json:"national_id,omitempty"`
	Address    *string `json:"address,omitempty"`
}

type UpdateClientRequest struct {
	FirstName *string       `json:"first_name,omitempty"`
	LastName  *string       `json:"last_name,omitempty"`
	Email     *string       `json:"email,omitempty"`
	Phone     *string       `json:"phone,omitempty"`
	Address   *string       `json:"address,omitempty"`
	Status    *ClientStatus `json:"status,omitempty"`
}

// ============================================================================
// QUOTE REQUESTS
// ============================================================================

type CreateQuoteRequest struct {
	ClientID    uuid.UUID       `json:"client_id"`
	ProductName string          `json:"product_name"`
	SumInsured  decimal.Decimal `json:"sum_insured"`
	BasePremium decimal.Decimal `json:"base_premium"`
	Discounts   AdjustmentList  `json:"discounts,omitempty"`
	Loadings    AdjustmentList  `json:"loadings,omitempty"`
	Taxes       AdjustmentList  `json:"taxes,omitempty"`
	Fees        AdjustmentList  `json:"fees,omitempty"`
	ValidFrom   int64           `json:"valid_from"`
	ValidTo     int64           `json:"valid_to"`
}

type DeclineQuoteRequest struct {
	Reason string `json:"reason"`
}

type ConvertQuoteResponse struct {
	QuoteID  uuid.UUID `json:"quote_id"`
	PolicyID uuid.UUID `json:"policy_id"`
	Policy   *Policy   `json:"policy"`
}

// ============================================================================
// POLICY REQUESTS
// ============================================================================

type CancelPolicyRequest struct {
	Reason           string `json:"reason,omitempty"`
	CancellationDate *int64 `json:"cancellation_date,omitempty"`
}

type UpdateInstallmentsRequest struct {
	TotalInstallments *int `json:"total_installments,omitempty"`
	PaidInstallments  *int `json:"paid_installments,omitempty"`
}

// AdjustPremiumRequest overrides the annual premium for billing. A nil
// adjusted_premium clears the override.
type AdjustPremiumRequest struct {
	AdjustedPremium *decimal.Decimal `json:"adjusted_premium"`
}

type PolicyBalanceResponse struct {
	PolicyID           uuid.UUID       `json:"policy_id"`
	EffectivePremium   decimal.Decimal `json:"effective_premium"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// ============================================================================
// CLAIM REQUESTS
// ============================================================================

type CreateClaimRequest struct {
	PolicyID        uuid.UUID       `json:"policy_id"`
	DateOfLoss      int64           `json:"date_of_loss"`
	DateReported    int64           `json:"date_reported"`
	Description     *string         `json:"description,omitempty"`
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
}

type ApproveClaimRequest struct {
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
}

type RejectClaimRequest struct {
	Reason string `json:"reason"`
}

type RecordClaimPaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
}

type RecordClaimPaymentResponse struct {
	Claim   *Claim   `json:"claim"`
	Payment *Payment `json:"payment"`
}

// ============================================================================
// PAYMENT REQUESTS
// ============================================================================

type CreatePaymentRequest struct {
	ClientID       uuid.UUID       `json:"client_id"`
	PolicyID       *uuid.UUID      `json:"policy_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency,omitempty"`
	Method         PaymentMethod   `json:"method"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
}

type CompletePaymentRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

// ============================================================================
// COMMISSION REQUESTS
// ============================================================================

type CreateCommissionRequest struct {
	IntermediaryID string          `json:"intermediary_id"`
	PolicyID       uuid.UUID       `json:"policy_id"`
	Rate           decimal.Decimal `json:"rate"`
	Premium        decimal.Decimal `json:"premium"`
	DueDate        *int64          `json:"due_date,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
}

type MarkCommissionPaidRequest struct {
	PaymentReference string `json:"payment_reference"`
	PaymentDate      *int64 `json:"payment_date,omitempty"`
}
