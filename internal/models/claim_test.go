package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestClaim(status ClaimStatus) *Claim {
	now := time.Now().Unix()
	return &Claim{
		ID:              uuid.New(),
		ClaimNumber:     "CLM-TEST-001",
		PolicyID:        uuid.New(),
		ClientID:        uuid.New(),
		DateOfLoss:      now - 86400,
		DateReported:    now,
		EstimatedAmount: decimal.NewFromInt(10000),
		PaidAmount:      decimal.Zero,
		Status:          status,
	}
}

// ============================================================================
// TEST SUITE 1: LIFECYCLE TRANSITIONS
// ============================================================================

func TestClaim_Submit_FromDraft(t *testing.T) {
	claim := newTestClaim(ClaimDraft)

	err := claim.Submit()

	require.NoError(t, err)
	assert.Equal(t, ClaimSubmitted, claim.Status)
}

func TestClaim_Submit_RejectsNonDraft(t *testing.T) {
	for _, status := range []ClaimStatus{ClaimSubmitted, ClaimApproved, ClaimRejected, ClaimPaid, ClaimClosed} {
		claim := newTestClaim(status)

		err := claim.Submit()

		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr, "submit from %s should fail", status)
		assert.True(t, errors.Is(err, ErrInvalidState))
		assert.Equal(t, status, claim.Status, "claim must be unchanged after rejected transition")
	}
}

func TestClaim_StartReview_AssignsReviewer(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)

	err := claim.StartReview("user-42")

	require.NoError(t, err)
	assert.Equal(t, ClaimUnderReview, claim.Status)
	require.NotNil(t, claim.AssignedTo)
	assert.Equal(t, "user-42", *claim.AssignedTo)
}

func TestClaim_StartReview_RejectsDraft(t *testing.T) {
	claim := newTestClaim(ClaimDraft)

	err := claim.StartReview("user-42")

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, ClaimDraft, claim.Status)
}

func TestClaim_StartReview_ThenApprove(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)
	require.NoError(t, claim.StartReview("user-42"))

	err := claim.Approve(nil, "user-42")

	require.NoError(t, err)
	assert.Equal(t, ClaimApproved, claim.Status)
}

func TestClaim_Approve_DefaultsToEstimatedAmount(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)

	err := claim.Approve(nil, "user-42")

	require.NoError(t, err)
	assert.Equal(t, ClaimApproved, claim.Status)
	require.NotNil(t, claim.ApprovedAmount)
	assert.True(t, claim.ApprovedAmount.Equal(claim.EstimatedAmount))
	require.NotNil(t, claim.AssignedTo)
	assert.Equal(t, "user-42", *claim.AssignedTo)
}

func TestClaim_Approve_ExplicitAmount(t *testing.T) {
	claim := newTestClaim(ClaimUnderReview)
	amount := decimal.NewFromInt(7500)

	err := claim.Approve(&amount, "user-42")

	require.NoError(t, err)
	assert.True(t, claim.ApprovedAmount.Equal(amount))
}

func TestClaim_Approve_RejectsDraft(t *testing.T) {
	claim := newTestClaim(ClaimDraft)

	err := claim.Approve(nil, "user-42")

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, ClaimDraft, claim.Status)
	assert.Nil(t, claim.ApprovedAmount)
	assert.Nil(t, claim.AssignedTo)
}

func TestClaim_Approve_RejectsNegativeAmount(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)
	amount := decimal.NewFromInt(-100)

	err := claim.Approve(&amount, "user-42")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, ClaimSubmitted, claim.Status)
}

func TestClaim_Reject_RequiresReason(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)

	err := claim.Reject("")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, ClaimSubmitted, claim.Status)
}

func TestClaim_Reject_FromUnderReview(t *testing.T) {
	claim := newTestClaim(ClaimUnderReview)

	err := claim.Reject("insufficient documentation")

	require.NoError(t, err)
	assert.Equal(t, ClaimRejected, claim.Status)
	require.NotNil(t, claim.RejectionReason)
	assert.Equal(t, "insufficient documentation", *claim.RejectionReason)
}

func TestClaim_Close_OnlyFromPaidOrRejected(t *testing.T) {
	paid := newTestClaim(ClaimPaid)
	require.NoError(t, paid.Close())
	assert.Equal(t, ClaimClosed, paid.Status)

	rejected := newTestClaim(ClaimRejected)
	require.NoError(t, rejected.Close())
	assert.Equal(t, ClaimClosed, rejected.Status)

	approved := newTestClaim(ClaimApproved)
	err := approved.Close()
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

// ============================================================================
// TEST SUITE 2: PAYMENT APPLICATION
// ============================================================================

func TestClaim_ApplyPayment_PartialThenFull(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)
	require.NoError(t, claim.Approve(nil, "user-42"))

	require.NoError(t, claim.ApplyPayment(decimal.NewFromInt(4000)))
	assert.Equal(t, ClaimApproved, claim.Status, "partial payment must not mark the claim paid")
	assert.Equal(t, "4000", claim.PaidAmount.String())

	require.NoError(t, claim.ApplyPayment(decimal.NewFromInt(6000)))
	assert.Equal(t, ClaimPaid, claim.Status, "claim becomes paid exactly when paid >= approved")
	assert.Equal(t, "10000", claim.PaidAmount.String())
}

func TestClaim_ApplyPayment_ExactlyAtThreshold(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)
	amount := decimal.NewFromInt(5000)
	require.NoError(t, claim.Approve(&amount, "user-42"))

	require.NoError(t, claim.ApplyPayment(decimal.NewFromInt(5000)))

	assert.Equal(t, ClaimPaid, claim.Status)
}

func TestClaim_ApplyPayment_OverpaymentStaysPaid(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)
	require.NoError(t, claim.Approve(nil, "user-42"))
	require.NoError(t, claim.ApplyPayment(decimal.NewFromInt(10000)))

	// further payments against an already paid claim keep accumulating
	require.NoError(t, claim.ApplyPayment(decimal.NewFromInt(500)))

	assert.Equal(t, ClaimPaid, claim.Status)
	assert.Equal(t, "10500", claim.PaidAmount.String())
}

func TestClaim_ApplyPayment_RejectsUnapprovedClaim(t *testing.T) {
	for _, status := range []ClaimStatus{ClaimDraft, ClaimSubmitted, ClaimUnderReview, ClaimRejected, ClaimClosed} {
		claim := newTestClaim(status)

		err := claim.ApplyPayment(decimal.NewFromInt(100))

		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr, "payment against %s should fail", status)
		assert.True(t, claim.PaidAmount.IsZero())
	}
}

func TestClaim_ApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	claim := newTestClaim(ClaimSubmitted)
	require.NoError(t, claim.Approve(nil, "user-42"))

	assert.True(t, errors.Is(claim.ApplyPayment(decimal.Zero), ErrValidation))
	assert.True(t, errors.Is(claim.ApplyPayment(decimal.NewFromInt(-50)), ErrValidation))
	assert.True(t, claim.PaidAmount.IsZero())
}

// ============================================================================
// TEST SUITE 3: VALIDATION AND NUMBERING
// ============================================================================

func TestClaim_Validate_AllowsNilDescription(t *testing.T) {
	claim := newTestClaim(ClaimDraft)
	claim.Description = nil

	assert.NoError(t, claim.Validate())
}

func TestClaim_Validate_LossAfterReport(t *testing.T) {
	claim := newTestClaim(ClaimDraft)
	claim.DateOfLoss = claim.DateReported + 3600

	err := claim.Validate()

	assert.True(t, errors.Is(err, ErrValidation))
}

func TestClaim_GenerateClaimNumber(t *testing.T) {
	claim := newTestClaim(ClaimDraft)
	claim.ClaimNumber = ""

	claim.GenerateClaimNumber()

	assert.True(t, strings.HasPrefix(claim.ClaimNumber, ClaimNumberPrefix+"-"))
}

func TestClaim_GenerateClaimNumber_KeepsExisting(t *testing.T) {
	claim := newTestClaim(ClaimDraft)
	claim.ClaimNumber = "CLM-CUSTOM-9"

	claim.GenerateClaimNumber()

	assert.Equal(t, "CLM-CUSTOM-9", claim.ClaimNumber)
}
