package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"insurance-service/internal/models"
	"insurance-service/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FAKES
// ============================================================================

// fakeQuoteStore keeps quotes in a map and hands out transactions from a
// mock driver so rollback and commit run through real database/sql plumbing.
type fakeQuoteStore struct {
	db     *sqlx.DB
	quotes map[uuid.UUID]models.Quote
	begins int
}

func (f *fakeQuoteStore) BeginTransaction() (*sqlx.Tx, error) {
	f.begins++
	return f.db.Beginx()
}

func (f *fakeQuoteStore) Create(ctx context.Context, quote *models.Quote) error {
	f.quotes[quote.ID] = *quote
	return nil
}

func (f *fakeQuoteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, ok := f.quotes[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "quote", ID: id.String()}
	}
	return &quote, nil
}

func (f *fakeQuoteStore) GetAll(ctx context.Context, scopes ...repository.Scope) ([]models.Quote, error) {
	out := make([]models.Quote, 0, len(f.quotes))
	for _, quote := range f.quotes {
		out = append(out, quote)
	}
	return out, nil
}

func (f *fakeQuoteStore) Update(ctx context.Context, quote *models.Quote) error {
	f.quotes[quote.ID] = *quote
	return nil
}

func (f *fakeQuoteStore) UpdateTx(tx *sqlx.Tx, quote *models.Quote) error {
	f.quotes[quote.ID] = *quote
	return nil
}

type fakePolicyCreator struct {
	failWith error
	created  []models.Policy
}

func (f *fakePolicyCreator) CreateTx(tx *sqlx.Tx, policy *models.Policy) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.created = append(f.created, *policy)
	return nil
}

type fakeClientReader struct{}

func (fakeClientReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return &models.Client{ID: id}, nil
}

// ============================================================================
// FIXTURES
// ============================================================================

func newPendingQuote() *models.Quote {
	now := time.Now().Unix()
	return &models.Quote{
		ID:           uuid.New(),
		QuoteNumber:  "QTE-TEST-001",
		ClientID:     uuid.New(),
		ProductName:  "motor-comprehensive",
		SumInsured:   decimal.NewFromInt(500000),
		BasePremium:  decimal.NewFromInt(1000),
		TotalPremium: decimal.RequireFromString("1065.00"),
		ValidFrom:    now - 3600,
		ValidTo:      now + 30*86400,
		Status:       models.QuotePending,
	}
}

func newConversionFixture(t *testing.T) (*QuoteService, *fakeQuoteStore, *fakePolicyCreator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	quoteStore := &fakeQuoteStore{
		db:     sqlx.NewDb(db, "sqlmock"),
		quotes: make(map[uuid.UUID]models.Quote),
	}
	policyCreator := &fakePolicyCreator{}
	svc := NewQuoteService(quoteStore, policyCreator, fakeClientReader{}, NoopNotifier(), nil)
	return svc, quoteStore, policyCreator, mock
}

// ============================================================================
// TEST SUITE: QUOTE CONVERSION
// ============================================================================

func TestQuoteService_ConvertToPolicy_CreatesActivePolicy(t *testing.T) {
	svc, quoteStore, policyCreator, mock := newConversionFixture(t)
	quote := newPendingQuote()
	quoteStore.quotes[quote.ID] = *quote
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.ConvertToPolicy(context.Background(), quote.ID, "user-42")

	require.NoError(t, err)
	require.Len(t, policyCreator.created, 1)
	created := policyCreator.created[0]
	assert.Equal(t, resp.PolicyID, created.ID)
	assert.Equal(t, models.PolicyActive, created.Status)
	assert.True(t, created.AnnualPremium.Equal(quote.TotalPremium))

	stored := quoteStore.quotes[quote.ID]
	assert.Equal(t, models.QuoteConverted, stored.Status)
	require.NotNil(t, stored.PolicyID)
	assert.Equal(t, created.ID, *stored.PolicyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteService_ConvertToPolicy_InsertFailureLeavesQuotePending(t *testing.T) {
	svc, quoteStore, policyCreator, mock := newConversionFixture(t)
	quote := newPendingQuote()
	quoteStore.quotes[quote.ID] = *quote
	policyCreator.failWith = errors.New("insert failed")
	mock.ExpectBegin()
	mock.ExpectRollback()

	resp, err := svc.ConvertToPolicy(context.Background(), quote.ID, "user-42")

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, policyCreator.created)

	stored := quoteStore.quotes[quote.ID]
	assert.Equal(t, models.QuotePending, stored.Status)
	assert.Nil(t, stored.PolicyID)
	assert.Nil(t, stored.ConvertedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteService_ConvertToPolicy_RejectsNonPendingQuote(t *testing.T) {
	svc, quoteStore, policyCreator, _ := newConversionFixture(t)
	quote := newPendingQuote()
	quote.Status = models.QuoteDraft
	quoteStore.quotes[quote.ID] = *quote

	_, err := svc.ConvertToPolicy(context.Background(), quote.ID, "user-42")

	var stateErr *models.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Zero(t, quoteStore.begins)
	assert.Empty(t, policyCreator.created)
}

func TestQuoteService_ConvertToPolicy_RejectsExpiredWindow(t *testing.T) {
	svc, quoteStore, policyCreator, _ := newConversionFixture(t)
	quote := newPendingQuote()
	quote.ValidFrom = time.Now().Add(-48 * time.Hour).Unix()
	quote.ValidTo = time.Now().Add(-24 * time.Hour).Unix()
	quoteStore.quotes[quote.ID] = *quote

	_, err := svc.ConvertToPolicy(context.Background(), quote.ID, "user-42")

	assert.True(t, errors.Is(err, models.ErrExpired))
	assert.Zero(t, quoteStore.begins)
	assert.Empty(t, policyCreator.created)

	stored := quoteStore.quotes[quote.ID]
	assert.Equal(t, models.QuotePending, stored.Status)
}
