package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"insurance-service/internal/database/redis"
	"insurance-service/internal/event"
	"insurance-service/internal/models"
	"insurance-service/internal/repository"
	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// QuoteNumberPrefix and PolicyNumberPrefix head generated reference numbers.
const (
	QuoteNumberPrefix  = "QTE"
	PolicyNumberPrefix = "POL"
)

// defaultPolicyTermDays is the coverage term of a policy created from a
// quote conversion.
const defaultPolicyTermDays = 365

const quoteCacheTTL = 5 * time.Minute

// QuoteStore is the persistence surface the quote service depends on.
// The sqlx-backed QuoteRepository satisfies it; tests substitute fakes.
type QuoteStore interface {
	BeginTransaction() (*sqlx.Tx, error)
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	GetAll(ctx context.Context, scopes ...repository.Scope) ([]models.Quote, error)
	Update(ctx context.Context, quote *models.Quote) error
	UpdateTx(tx *sqlx.Tx, quote *models.Quote) error
}

// PolicyCreator writes a policy row inside an open transaction.
type PolicyCreator interface {
	CreateTx(tx *sqlx.Tx, policy *models.Policy) error
}

// ClientReader resolves clients referenced by incoming quote requests.
type ClientReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

type QuoteService struct {
	quoteRepo  QuoteStore
	policyRepo PolicyCreator
	clientRepo ClientReader
	notifier   Notifier
	cache      *redis.Client
}

func NewQuoteService(
	quoteRepo QuoteStore,
	policyRepo PolicyCreator,
	clientRepo ClientReader,
	notifier Notifier,
	cache *redis.Client,
) *QuoteService {
	return &QuoteService{
		quoteRepo:  quoteRepo,
		policyRepo: policyRepo,
		clientRepo: clientRepo,
		notifier:   notifier,
		cache:      cache,
	}
}

func quoteCacheKey(id uuid.UUID) string {
	return "quote:" + id.String()
}

func (s *QuoteService) invalidate(ctx context.Context, quoteID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, quoteCacheKey(quoteID)); err != nil {
		slog.Warn("failed to invalidate quote cache", "quote_id", quoteID, "error", err)
	}
}

// CreateQuote prices and persists a new draft quote. The total premium is
// computed by the fixed adjustment pipeline at creation time.
func (s *QuoteService) CreateQuote(ctx context.Context, req models.CreateQuoteRequest, userID string) (*models.Quote, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	quote := &models.Quote{
		ID:           uuid.New(),
		QuoteNumber:  utils.GenerateReferenceNumber(QuoteNumberPrefix),
		ClientID:     req.ClientID,
		ProductName:  req.ProductName,
		SumInsured:   req.SumInsured,
		BasePremium:  req.BasePremium,
		TotalPremium: ComputeTotalPremium(req.BasePremium, req.Discounts, req.Loadings, req.Taxes, req.Fees),
		Discounts:    req.Discounts,
		Loadings:     req.Loadings,
		Taxes:        req.Taxes,
		Fees:         req.Fees,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
		Status:       models.QuoteDraft,
		CreatedBy:    &userID,
		UpdatedBy:    &userID,
	}

	if err := quote.Validate(); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, err
	}

	return quote, nil
}

// GetQuoteByID reads through the cache when one is wired.
func (s *QuoteService) GetQuoteByID(ctx context.Context, quoteID uuid.UUID) (*models.Quote, error) {
	if s.cache != nil {
		var cached models.Quote
		if err := s.cache.GetJSON(ctx, quoteCacheKey(quoteID), &cached); err == nil {
			return &cached, nil
		}
	}

	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, quoteCacheKey(quoteID), quote, quoteCacheTTL); err != nil {
			slog.Warn("failed to cache quote", "quote_id", quoteID, "error", err)
		}
	}

	return quote, nil
}

func (s *QuoteService) GetQuotesByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Quote, error) {
	return s.quoteRepo.GetAll(ctx, repository.ForClient(clientID))
}

// SubmitQuote moves a draft quote into the pending state.
func (s *QuoteService) SubmitQuote(ctx context.Context, quoteID uuid.UUID, userID string) (*models.Quote, error) {
	return s.transition(ctx, quoteID, userID, func(q *models.Quote) error {
		return q.Submit()
	})
}

func (s *QuoteService) ApproveQuote(ctx context.Context, quoteID uuid.UUID, userID string) (*models.Quote, error) {
	return s.transition(ctx, quoteID, userID, func(q *models.Quote) error {
		return q.Approve()
	})
}

func (s *QuoteService) DeclineQuote(ctx context.Context, quoteID uuid.UUID, reason, userID string) (*models.Quote, error) {
	quote, err := s.transition(ctx, quoteID, userID, func(q *models.Quote) error {
		return q.Decline(reason)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventQuoteDeclined,
		EntityType: "quote",
		EntityID:   quote.ID.String(),
		Title:      "Quote declined",
		Body:       fmt.Sprintf("Quote %s was declined: %s", quote.QuoteNumber, reason),
	})
	return quote, nil
}

func (s *QuoteService) transition(ctx context.Context, quoteID uuid.UUID, userID string, apply func(*models.Quote) error) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if err := apply(quote); err != nil {
		return nil, err
	}

	quote.UpdatedBy = &userID
	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}
	s.invalidate(ctx, quote.ID)

	return quote, nil
}

// ConvertToPolicy converts a pending, in-window quote into an active
// policy. Creating the policy row and flipping the quote commit in one
// transaction: on any failure inside the transaction no partial state is
// visible. Conversion is terminal for the quote.
func (s *QuoteService) ConvertToPolicy(ctx context.Context, quoteID uuid.UUID, convertedBy string) (*models.ConvertQuoteResponse, error) {
	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	policy := &models.Policy{
		ID:                  uuid.New(),
		PolicyNumber:        utils.GenerateReferenceNumber(PolicyNumberPrefix),
		QuoteID:             &quote.ID,
		ClientID:            quote.ClientID,
		ProductName:         quote.ProductName,
		SumInsured:          quote.SumInsured,
		AnnualPremium:       quote.TotalPremium,
		DownPayment:         decimal.Zero,
		TotalInstallments:   1,
		PaidInstallments:    0,
		PendingInstallments: 1,
		PolicyStartDate:     now.Unix(),
		PolicyEndDate:       now.Add(defaultPolicyTermDays * 24 * time.Hour).Unix(),
		Status:              models.PolicyActive,
		CreatedBy:           &convertedBy,
		UpdatedBy:           &convertedBy,
	}

	// Checks the pending + validity-window preconditions and mutates the
	// in-memory quote; nothing is persisted until the transaction commits.
	if err := quote.MarkConverted(policy.ID, convertedBy, now); err != nil {
		return nil, err
	}
	quote.UpdatedBy = &convertedBy

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.quoteRepo.BeginTransaction()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	if err := s.policyRepo.CreateTx(tx, policy); err != nil {
		tx.Rollback()
		slog.Error("error creating policy from quote", "quote_id", quote.ID, "error", err)
		return nil, err
	}

	if err := s.quoteRepo.UpdateTx(tx, quote); err != nil {
		tx.Rollback()
		slog.Error("error updating converted quote", "quote_id", quote.ID, "error", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		slog.Error("error committing quote conversion", "quote_id", quote.ID, "error", err)
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}
	s.invalidate(ctx, quote.ID)

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventQuoteConverted,
		EntityType: "quote",
		EntityID:   quote.ID.String(),
		Title:      "Quote converted",
		Body:       fmt.Sprintf("Quote %s was converted to policy %s", quote.QuoteNumber, policy.PolicyNumber),
		Data:       map[string]any{"policy_id": policy.ID.String()},
	})

	return &models.ConvertQuoteResponse{
		QuoteID:  quote.ID,
		PolicyID: policy.ID,
		Policy:   policy,
	}, nil
}

// ExpireQuotes sweeps pending quotes whose validity window has closed.
// Returns the number of quotes expired.
func (s *QuoteService) ExpireQuotes(ctx context.Context, now time.Time) (int, error) {
	quotes, err := s.quoteRepo.GetAll(ctx, repository.PendingPastValidity(now))
	if err != nil {
		return 0, fmt.Errorf("failed to list expirable quotes: %w", err)
	}

	expired := 0
	for i := range quotes {
		quote := &quotes[i]
		if !quote.MarkExpired(now) {
			continue
		}
		if err := s.quoteRepo.Update(ctx, quote); err != nil {
			slog.Error("failed to expire quote", "quote_id", quote.ID, "error", err)
			continue
		}
		s.invalidate(ctx, quote.ID)
		expired++
		s.notifier.Notify(ctx, event.NotificationEvent{
			EventType:  event.EventQuoteExpired,
			EntityType: "quote",
			EntityID:   quote.ID.String(),
			Title:      "Quote expired",
			Body:       fmt.Sprintf("Quote %s passed its validity window", quote.QuoteNumber),
		})
	}

	return expired, nil
}
