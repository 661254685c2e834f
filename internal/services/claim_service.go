package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"insurance-service/internal/event"
	"insurance-service/internal/models"
	"insurance-service/internal/repository"
	"insurance-service/utils"

	"github.com/google/uuid"
)

// PaymentRefPrefix heads generated payment transaction references.
const PaymentRefPrefix = "PAY"

type ClaimService struct {
	claimRepo   *repository.ClaimRepository
	policyRepo  *repository.PolicyRepository
	paymentRepo *repository.PaymentRepository
	notifier    Notifier
}

func NewClaimService(
	claimRepo *repository.ClaimRepository,
	policyRepo *repository.PolicyRepository,
	paymentRepo *repository.PaymentRepository,
	notifier Notifier,
) *ClaimService {
	return &ClaimService{
		claimRepo:   claimRepo,
		policyRepo:  policyRepo,
		paymentRepo: paymentRepo,
		notifier:    notifier,
	}
}

// RegisterClaim records a loss notification against a policy as a draft
// claim. A claim number is generated when none is supplied.
func (s *ClaimService) RegisterClaim(ctx context.Context, req models.CreateClaimRequest, userID string) (*models.Claim, error) {
	policy, err := s.policyRepo.GetByID(ctx, req.PolicyID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve policy: %w", err)
	}

	claim := &models.Claim{
		ID:              uuid.New(),
		PolicyID:        policy.ID,
		ClientID:        policy.ClientID,
		DateOfLoss:      req.DateOfLoss,
		DateReported:    req.DateReported,
		Description:     req.Description,
		EstimatedAmount: req.EstimatedAmount,
		Status:          models.ClaimDraft,
		CreatedBy:       &userID,
		UpdatedBy:       &userID,
	}
	claim.GenerateClaimNumber()

	if err := claim.Validate(); err != nil {
		return nil, err
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	return claim, nil
}

func (s *ClaimService) GetClaimByID(ctx context.Context, claimID uuid.UUID) (*models.Claim, error) {
	return s.claimRepo.GetByID(ctx, claimID)
}

func (s *ClaimService) GetClaimsByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.Claim, error) {
	return s.claimRepo.GetByPolicyID(ctx, policyID)
}

func (s *ClaimService) GetAllClaims(ctx context.Context, scopes ...repository.Scope) ([]models.Claim, error) {
	return s.claimRepo.GetAll(ctx, scopes...)
}

func (s *ClaimService) SubmitClaim(ctx context.Context, claimID uuid.UUID, userID string) (*models.Claim, error) {
	claim, err := s.transition(ctx, claimID, userID, func(c *models.Claim) error {
		return c.Submit()
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventClaimSubmitted,
		EntityType: "claim",
		EntityID:   claim.ID.String(),
		Title:      "Claim submitted",
		Body:       fmt.Sprintf("Claim %s was submitted for review", claim.ClaimNumber),
	})
	return claim, nil
}

// StartClaimReview picks up a submitted claim for assessment and assigns
// the reviewing user.
func (s *ClaimService) StartClaimReview(ctx context.Context, claimID uuid.UUID, reviewerID string) (*models.Claim, error) {
	return s.transition(ctx, claimID, reviewerID, func(c *models.Claim) error {
		return c.StartReview(reviewerID)
	})
}

// ApproveClaim approves a submitted or under-review claim. When the request
// carries no amount the estimated amount is approved; the approver is
// auto-assigned to the claim.
func (s *ClaimService) ApproveClaim(ctx context.Context, claimID uuid.UUID, req models.ApproveClaimRequest, approverID string) (*models.Claim, error) {
	claim, err := s.transition(ctx, claimID, approverID, func(c *models.Claim) error {
		return c.Approve(req.ApprovedAmount, approverID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventClaimApproved,
		EntityType: "claim",
		EntityID:   claim.ID.String(),
		Title:      "Claim approved",
		Body:       fmt.Sprintf("Claim %s was approved for %s", claim.ClaimNumber, claim.ApprovedAmount),
	})
	return claim, nil
}

func (s *ClaimService) RejectClaim(ctx context.Context, claimID uuid.UUID, reason, userID string) (*models.Claim, error) {
	claim, err := s.transition(ctx, claimID, userID, func(c *models.Claim) error {
		return c.Reject(reason)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventClaimRejected,
		EntityType: "claim",
		EntityID:   claim.ID.String(),
		Title:      "Claim rejected",
		Body:       fmt.Sprintf("Claim %s was rejected: %s", claim.ClaimNumber, reason),
	})
	return claim, nil
}

func (s *ClaimService) CloseClaim(ctx context.Context, claimID uuid.UUID, userID string) (*models.Claim, error) {
	return s.transition(ctx, claimID, userID, func(c *models.Claim) error {
		return c.Close()
	})
}

func (s *ClaimService) transition(ctx context.Context, claimID uuid.UUID, userID string, apply func(*models.Claim) error) (*models.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if err := apply(claim); err != nil {
		return nil, err
	}

	claim.UpdatedBy = &userID
	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, err
	}

	return claim, nil
}

// RecordClaimPayment records a payout against an approved claim: it creates
// a completed payment row, then applies the amount to the claim, which
// becomes paid once the paid amount reaches the approved amount.
//
// The two writes are sequential, not transactional: a failure after the
// payment insert leaves an orphan payment with no matching claim update.
// Known gap, kept deliberate rather than silently papered over; callers see
// the claim update error and can reconcile via the payment's claim_id.
func (s *ClaimService) RecordClaimPayment(ctx context.Context, claimID uuid.UUID, req models.RecordClaimPaymentRequest, userID string) (*models.RecordClaimPaymentResponse, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if claim.Status != models.ClaimApproved && claim.Status != models.ClaimPaid {
		return nil, &models.InvalidStateError{Entity: "claim", Action: "record payment against", Current: string(claim.Status)}
	}

	ref := req.TransactionRef
	if ref == "" {
		ref = utils.GenerateReferenceNumber(PaymentRefPrefix)
	}

	now := time.Now().Unix()
	payment := &models.Payment{
		ID:             uuid.New(),
		TransactionRef: ref,
		ClientID:       claim.ClientID,
		ClaimID:        &claim.ID,
		Amount:         req.Amount,
		Currency:       DefaultCurrency,
		Method:         req.Method,
		Status:         models.PaymentCompleted,
		PaidAt:         &now,
		CreatedBy:      &userID,
		UpdatedBy:      &userID,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := claim.ApplyPayment(req.Amount); err != nil {
		return nil, err
	}
	claim.UpdatedBy = &userID
	if err := s.claimRepo.Update(ctx, claim); err != nil {
		slog.Error("claim update failed after payment insert, payment row is orphaned",
			"claim_id", claim.ID, "payment_id", payment.ID, "error", err)
		return nil, err
	}

	if claim.Status == models.ClaimPaid {
		s.notifier.Notify(ctx, event.NotificationEvent{
			EventType:  event.EventClaimPaid,
			EntityType: "claim",
			EntityID:   claim.ID.String(),
			Title:      "Claim paid",
			Body:       fmt.Sprintf("Claim %s is fully paid", claim.ClaimNumber),
		})
	}

	return &models.RecordClaimPaymentResponse{Claim: claim, Payment: payment}, nil
}
