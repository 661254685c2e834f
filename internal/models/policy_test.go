package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy() *Policy {
	now := time.Now().Unix()
	return &Policy{
		ID:                uuid.New(),
		PolicyNumber:      "POL-TEST-001",
		ClientID:          uuid.New(),
		ProductName:       "Motor Comprehensive",
		SumInsured:        decimal.NewFromInt(500000),
		AnnualPremium:     decimal.NewFromInt(12000),
		TotalInstallments: 12,
		PolicyStartDate:   now - 30*86400,
		PolicyEndDate:     now + 335*86400,
		Status:            PolicyActive,
	}
}

// ============================================================================
// TEST SUITE 1: PREMIUM AND BALANCE
// ============================================================================

func TestPolicy_EffectivePremium_PrefersAdjusted(t *testing.T) {
	policy := newTestPolicy()
	assert.Equal(t, "12000", policy.EffectivePremium().String())

	adjusted := decimal.NewFromInt(10500)
	policy.AdjustedPremium = &adjusted
	assert.Equal(t, "10500", policy.EffectivePremium().String())
}

func TestPolicy_OutstandingBalance(t *testing.T) {
	policy := newTestPolicy()

	balance := policy.OutstandingBalance(decimal.NewFromInt(4000))

	assert.Equal(t, "8000", balance.String())
}

func TestPolicy_OutstandingBalance_ClampsAtZero(t *testing.T) {
	policy := newTestPolicy()

	balance := policy.OutstandingBalance(decimal.NewFromInt(15000))

	assert.True(t, balance.IsZero(), "overpayment must not yield a negative balance")
}

// ============================================================================
// TEST SUITE 2: CANCELLATION
// ============================================================================

func TestPolicy_Cancel_StampsDateWhenAbsent(t *testing.T) {
	policy := newTestPolicy()
	now := time.Now()

	err := policy.Cancel("client request", now)

	require.NoError(t, err)
	assert.Equal(t, PolicyCancelled, policy.Status)
	require.NotNil(t, policy.CancellationDate)
	assert.Equal(t, now.Unix(), *policy.CancellationDate)
	require.NotNil(t, policy.CancellationReason)
	assert.Equal(t, "client request", *policy.CancellationReason)
}

func TestPolicy_Cancel_KeepsExplicitDate(t *testing.T) {
	policy := newTestPolicy()
	explicit := policy.PolicyStartDate + 10*86400
	policy.CancellationDate = &explicit

	err := policy.Cancel("", time.Now())

	require.NoError(t, err)
	assert.Equal(t, explicit, *policy.CancellationDate)
	assert.Nil(t, policy.CancellationReason)
}

func TestPolicy_Cancel_RejectsBackdatedBeforeStart(t *testing.T) {
	policy := newTestPolicy()
	backdated := policy.PolicyStartDate - 86400
	policy.CancellationDate = &backdated

	err := policy.Cancel("fraud", time.Now())

	assert.True(t, errors.Is(err, ErrValidation))
	assert.NotEqual(t, PolicyCancelled, policy.Status)
}

func TestPolicy_Cancel_BeforeStartLeavesPolicyUntouched(t *testing.T) {
	policy := newTestPolicy()
	policy.PolicyStartDate = time.Now().Add(48 * time.Hour).Unix()
	originalStatus := policy.Status

	err := policy.Cancel("early exit", time.Now())

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, originalStatus, policy.Status)
	assert.Nil(t, policy.CancellationDate)
	assert.Nil(t, policy.CancellationReason)
}

func TestPolicy_Cancel_RejectsDoubleCancellation(t *testing.T) {
	policy := newTestPolicy()
	require.NoError(t, policy.Cancel("first", time.Now()))

	err := policy.Cancel("second", time.Now())

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

// ============================================================================
/// TEST SUITE 3: INSTALLMENTS AND ACTIVITY
// ============================================================================

func TestPolicy_SyncInstallments(t *testing.T) {
	policy := newTestPolicy()
	policy.TotalInstallments = 12
	policy.PaidInstallments = 5

	policy.SyncInstallments()

	assert.Equal(t, 7, policy.PendingInstallments)
}

func TestPolicy_Validate_RejectsNegativeInstallments(t *testing.T) {
	policy := newTestPolicy()
	policy.PaidInstallments = -1

	err := policy.Validate()

	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPolicy_Validate_RejectsInvertedCoverageWindow(t *testing.T) {
	policy := newTestPolicy()
	policy.PolicyEndDate = policy.PolicyStartDate

	err := policy.Validate()

	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPolicy_IsActive(t *testing.T) {
	policy := newTestPolicy()
	now := time.Now()

	assert.True(t, policy.IsActive(now))

	policy.Status = PolicyLapsed
	assert.False(t, policy.IsActive(now))

	policy.Status = PolicyActive
	assert.False(t, policy.IsActive(now.Add(400*24*time.Hour)), "past end date is not active")
}
