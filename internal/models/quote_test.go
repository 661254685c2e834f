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

func newTestQuote(status QuoteStatus) *Quote {
	now := time.Now().Unix()
	return &Quote{
		ID:           uuid.New(),
		QuoteNumber:  "QTE-TEST-001",
		ClientID:     uuid.New(),
		ProductName:  "Motor Comprehensive",
		SumInsured:   decimal.NewFromInt(500000),
		BasePremium:  decimal.NewFromInt(10000),
		TotalPremium: decimal.NewFromInt(11200),
		ValidFrom:    now - 86400,
		ValidTo:      now + 14*86400,
		Status:       status,
	}
}

// ============================================================================
// TEST SUITE 1: VALIDITY WINDOW
// ============================================================================

func TestQuote_IsValid_PendingInsideWindow(t *testing.T) {
	quote := newTestQuote(QuotePending)

	assert.True(t, quote.IsValid(time.Now()))
}

func TestQuote_IsValid_FalseOutsideWindow(t *testing.T) {
	quote := newTestQuote(QuotePending)

	assert.False(t, quote.IsValid(time.Now().Add(30*24*time.Hour)))
	assert.False(t, quote.IsValid(time.Now().Add(-10*24*time.Hour)))
}

func TestQuote_IsValid_FalseForNonPending(t *testing.T) {
	for _, status := range []QuoteStatus{QuoteDraft, QuoteApproved, QuoteConverted, QuoteDeclined, QuoteExpired} {
		quote := newTestQuote(status)
		assert.False(t, quote.IsValid(time.Now()), "status %s must not be valid", status)
	}
}

func TestQuote_MarkExpired(t *testing.T) {
	quote := newTestQuote(QuotePending)

	changed := quote.MarkExpired(time.Now().Add(30 * 24 * time.Hour))

	assert.True(t, changed)
	assert.Equal(t, QuoteExpired, quote.Status)
}

func TestQuote_MarkExpired_NoopInsideWindow(t *testing.T) {
	quote := newTestQuote(QuotePending)

	changed := quote.MarkExpired(time.Now())

	assert.False(t, changed)
	assert.Equal(t, QuotePending, quote.Status)
}

// ============================================================================
// TEST SUITE 2: TRANSITIONS
// ============================================================================

func TestQuote_Submit_ThenApprove(t *testing.T) {
	quote := newTestQuote(QuoteDraft)

	require.NoError(t, quote.Submit())
	assert.Equal(t, QuotePending, quote.Status)

	require.NoError(t, quote.Approve())
	assert.Equal(t, QuoteApproved, quote.Status)
}

func TestQuote_Decline_RequiresReason(t *testing.T) {
	quote := newTestQuote(QuotePending)

	err := quote.Decline("")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, QuotePending, quote.Status)
}

func TestQuote_Decline(t *testing.T) {
	quote := newTestQuote(QuotePending)

	err := quote.Decline("sum insured out of appetite")

	require.NoError(t, err)
	assert.Equal(t, QuoteDeclined, quote.Status)
	require.NotNil(t, quote.DeclineReason)
}

// ============================================================================
// TEST SUITE 3: CONVERSION
// ============================================================================

func TestQuote_MarkConverted(t *testing.T) {
	quote := newTestQuote(QuotePending)
	policyID := uuid.New()
	now := time.Now()

	err := quote.MarkConverted(policyID, "user-42", now)

	require.NoError(t, err)
	assert.Equal(t, QuoteConverted, quote.Status)
	require.NotNil(t, quote.PolicyID)
	assert.Equal(t, policyID, *quote.PolicyID)
	require.NotNil(t, quote.ConvertedAt)
	assert.Equal(t, now.Unix(), *quote.ConvertedAt)
	require.NotNil(t, quote.ConvertedBy)
	assert.Equal(t, "user-42", *quote.ConvertedBy)
}

func TestQuote_MarkConverted_IsTerminal(t *testing.T) {
	quote := newTestQuote(QuotePending)
	require.NoError(t, quote.MarkConverted(uuid.New(), "user-42", time.Now()))
	firstPolicy := *quote.PolicyID

	err := quote.MarkConverted(uuid.New(), "user-43", time.Now())

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, firstPolicy, *quote.PolicyID, "a quote converts to exactly one policy")
}

func TestQuote_MarkConverted_RejectsExpiredWindow(t *testing.T) {
	quote := newTestQuote(QuotePending)

	err := quote.MarkConverted(uuid.New(), "user-42", time.Now().Add(30*24*time.Hour))

	assert.True(t, errors.Is(err, ErrExpired))
	assert.Equal(t, QuotePending, quote.Status)
	assert.Nil(t, quote.PolicyID)
}

func TestQuote_MarkConverted_RejectsDraft(t *testing.T) {
	quote := newTestQuote(QuoteDraft)

	err := quote.MarkConverted(uuid.New(), "user-42", time.Now())

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}
