package models

type ClientStatus string

const (
	ClientActive              ClientStatus = "active"
	ClientInactive            ClientStatus = "inactive"
	ClientSuspended           ClientStatus = "suspended"
	ClientPendingVerification ClientStatus = "pending_verification"
)

type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuotePending   QuoteStatus = "pending"
	QuoteApproved  QuoteStatus = "approved"
	QuoteConverted QuoteStatus = "converted"
	QuoteDeclined  QuoteStatus = "declined"
	QuoteExpired   QuoteStatus = "expired"
)

type PolicyStatus string

const (
	PolicyActive    PolicyStatus = "active"
	PolicyLapsed    PolicyStatus = "lapsed"
	PolicyCancelled PolicyStatus = "cancelled"
	PolicyExpired   PolicyStatus = "expired"
	PolicySuspended PolicyStatus = "suspended"
)

type ClaimStatus string

const (
	ClaimDraft       ClaimStatus = "draft"
	ClaimSubmitted   ClaimStatus = "submitted"
	ClaimUnderReview ClaimStatus = "under_review"
	ClaimApproved    ClaimStatus = "approved"
	ClaimRejected    ClaimStatus = "rejected"
	ClaimPaid        ClaimStatus = "paid"
	ClaimClosed      ClaimStatus = "closed"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "mpesa"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCard         PaymentMethod = "card"
)

type CommissionStatus string

const (
	CommissionPending    CommissionStatus = "pending"
	CommissionApproved   CommissionStatus = "approved"
	CommissionProcessing CommissionStatus = "processing"
	CommissionPaid       CommissionStatus = "paid"
	CommissionCancelled  CommissionStatus = "cancelled"
	CommissionDisputed   CommissionStatus = "disputed"
)

type AdjustmentKind string

const (
	AdjustmentDiscount AdjustmentKind = "discount"
	AdjustmentLoading  AdjustmentKind = "loading"
	AdjustmentTax      AdjustmentKind = "tax"
	AdjustmentFee      AdjustmentKind = "fee"
)
