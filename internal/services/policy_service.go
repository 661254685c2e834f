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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	policyCacheTTL = 5 * time.Minute

	// lapseOverdueThreshold is how many overdue installments an active
	// policy carries before the sweep lapses it.
	lapseOverdueThreshold = 3
)

type PolicyService struct {
	policyRepo  *repository.PolicyRepository
	paymentRepo *repository.PaymentRepository
	notifier    Notifier
	cache       *redis.Client
}

func NewPolicyService(
	policyRepo *repository.PolicyRepository,
	paymentRepo *repository.PaymentRepository,
	notifier Notifier,
	cache *redis.Client,
) *PolicyService {
	return &PolicyService{
		policyRepo:  policyRepo,
		paymentRepo: paymentRepo,
		notifier:    notifier,
		cache:       cache,
	}
}

func policyCacheKey(id uuid.UUID) string {
	return "policy:" + id.String()
}

// GetPolicyByID reads through the cache when one is wired.
func (s *PolicyService) GetPolicyByID(ctx context.Context, policyID uuid.UUID) (*models.Policy, error) {
	if s.cache != nil {
		var cached models.Policy
		if err := s.cache.GetJSON(ctx, policyCacheKey(policyID), &cached); err == nil {
			return &cached, nil
		}
	}

	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, policyCacheKey(policyID), policy, policyCacheTTL); err != nil {
			slog.Warn("failed to cache policy", "policy_id", policyID, "error", err)
		}
	}

	return policy, nil
}

func (s *PolicyService) GetPoliciesByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Policy, error) {
	return s.policyRepo.GetAll(ctx, repository.ForClient(clientID))
}

// CalculateTotalPaid sums the policy's completed payments.
func (s *PolicyService) CalculateTotalPaid(ctx context.Context, policyID uuid.UUID) (decimal.Decimal, error) {
	return s.paymentRepo.SumCompletedByPolicyID(ctx, policyID)
}

// GetBalance returns the policy's ledger view: effective premium, completed
// payment total, and the outstanding balance clamped at zero.
func (s *PolicyService) GetBalance(ctx context.Context, policyID uuid.UUID) (*models.PolicyBalanceResponse, error) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := s.paymentRepo.SumCompletedByPolicyID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	return &models.PolicyBalanceResponse{
		PolicyID:           policy.ID,
		EffectivePremium:   policy.EffectivePremium(),
		TotalPaid:          totalPaid,
		OutstandingBalance: policy.OutstandingBalance(totalPaid),
	}, nil
}

// CancelPolicy cancels a policy. When the request carries no cancellation
// date, now is stamped; a backdated date earlier than the policy start is
// rejected.
func (s *PolicyService) CancelPolicy(ctx context.Context, policyID uuid.UUID, req models.CancelPolicyRequest, userID string) (*models.Policy, error) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if req.CancellationDate != nil {
		policy.CancellationDate = req.CancellationDate
	}
	if err := policy.Cancel(req.Reason, time.Now()); err != nil {
		return nil, err
	}

	policy.UpdatedBy = &userID
	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policy.ID)

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventPolicyCancelled,
		EntityType: "policy",
		EntityID:   policy.ID.String(),
		Title:      "Policy cancelled",
		Body:       fmt.Sprintf("Policy %s was cancelled", policy.PolicyNumber),
	})

	return policy, nil
}

// AdjustPremium sets or clears the adjusted-premium override the ledger
// settles against.
func (s *PolicyService) AdjustPremium(ctx context.Context, policyID uuid.UUID, adjusted *decimal.Decimal, userID string) (*models.Policy, error) {
	if adjusted != nil && adjusted.IsNegative() {
		return nil, models.NewValidationError("adjusted_premium", "must not be negative")
	}

	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	policy.AdjustedPremium = adjusted
	policy.UpdatedBy = &userID
	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policy.ID)

	return policy, nil
}

// UpdateInstallments applies installment counter changes and recomputes the
// pending counter. Negative results are rejected at validation.
func (s *PolicyService) UpdateInstallments(ctx context.Context, policyID uuid.UUID, req models.UpdateInstallmentsRequest, userID string) (*models.Policy, error) {
	policy, err := s.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if req.TotalInstallments != nil {
		policy.TotalInstallments = *req.TotalInstallments
	}
	if req.PaidInstallments != nil {
		policy.PaidInstallments = *req.PaidInstallments
	}
	policy.SyncInstallments()

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	policy.UpdatedBy = &userID
	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}
	s.invalidate(ctx, policy.ID)

	return policy, nil
}

// ExpirePolicies sweeps active policies whose coverage window has ended.
func (s *PolicyService) ExpirePolicies(ctx context.Context, now time.Time) (int, error) {
	policies, err := s.policyRepo.GetAll(ctx, repository.ActivePastEndDate(now))
	if err != nil {
		return 0, fmt.Errorf("failed to list expirable policies: %w", err)
	}

	expired := 0
	for i := range policies {
		policy := &policies[i]
		policy.Status = models.PolicyExpired
		if err := s.policyRepo.Update(ctx, policy); err != nil {
			slog.Error("failed to expire policy", "policy_id", policy.ID, "error", err)
			continue
		}
		s.invalidate(ctx, policy.ID)
		expired++
		s.notifier.Notify(ctx, event.NotificationEvent{
			EventType:  event.EventPolicyExpired,
			EntityType: "policy",
			EntityID:   policy.ID.String(),
			Title:      "Policy expired",
			Body:       fmt.Sprintf("Policy %s reached its end date", policy.PolicyNumber),
		})
	}

	return expired, nil
}

// LapseOverduePolicies lapses active policies that have accumulated too
// many overdue installments.
func (s *PolicyService) LapseOverduePolicies(ctx context.Context) (int, error) {
	policies, err := s.policyRepo.GetAll(ctx, repository.WithOverdueInstallments())
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue policies: %w", err)
	}

	lapsed := 0
	for i := range policies {
		policy := &policies[i]
		if policy.OverdueInstallments < lapseOverdueThreshold {
			continue
		}
		policy.Status = models.PolicyLapsed
		if err := s.policyRepo.Update(ctx, policy); err != nil {
			slog.Error("failed to lapse policy", "policy_id", policy.ID, "error", err)
			continue
		}
		s.invalidate(ctx, policy.ID)
		lapsed++
		s.notifier.Notify(ctx, event.NotificationEvent{
			EventType:  event.EventPolicyLapsed,
			EntityType: "policy",
			EntityID:   policy.ID.String(),
			Title:      "Policy lapsed",
			Body:       fmt.Sprintf("Policy %s lapsed after %d overdue installments", policy.PolicyNumber, policy.OverdueInstallments),
		})
	}

	return lapsed, nil
}

func (s *PolicyService) invalidate(ctx context.Context, policyID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, policyCacheKey(policyID)); err != nil {
		slog.Warn("failed to invalidate policy cache", "policy_id", policyID, "error", err)
	}
}
