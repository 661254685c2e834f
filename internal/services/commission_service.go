package services

import (
	"context"
	"fmt"
	"time"

	"insurance-service/internal/event"
	"insurance-service/internal/models"
	"insurance-service/internal/repository"

	"github.com/google/uuid"
)

type CommissionService struct {
	commissionRepo *repository.CommissionRepository
	policyRepo     *repository.PolicyRepository
	notifier       Notifier
}

func NewCommissionService(
	commissionRepo *repository.CommissionRepository,
	policyRepo *repository.PolicyRepository,
	notifier Notifier,
) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		policyRepo:     policyRepo,
		notifier:       notifier,
	}
}

// CreateCommission computes and persists the amount owed to an intermediary
// for placing a policy. Validation failures reject the commission before
// any row is created.
func (s *CommissionService) CreateCommission(ctx context.Context, req models.CreateCommissionRequest, userID string) (*models.Commission, error) {
	if _, err := s.policyRepo.GetByID(ctx, req.PolicyID); err != nil {
		return nil, fmt.Errorf("failed to resolve policy: %w", err)
	}

	commission := &models.Commission{
		ID:             uuid.New(),
		IntermediaryID: req.IntermediaryID,
		PolicyID:       req.PolicyID,
		Rate:           req.Rate,
		Amount:         CalculateCommission(req.Premium, req.Rate),
		Notes:          req.Notes,
		CreatedBy:      &userID,
		UpdatedBy:      &userID,
	}
	if req.DueDate != nil {
		commission.DueDate = *req.DueDate
	}
	commission.ApplyDefaults(time.Now())

	if err := commission.Validate(); err != nil {
		return nil, err
	}

	if err := s.commissionRepo.Create(ctx, commission); err != nil {
		return nil, err
	}

	return commission, nil
}

func (s *CommissionService) GetCommissionByID(ctx context.Context, commissionID uuid.UUID) (*models.Commission, error) {
	return s.commissionRepo.GetByID(ctx, commissionID)
}

func (s *CommissionService) GetCommissionsByIntermediaryID(ctx context.Context, intermediaryID string) ([]models.Commission, error) {
	return s.commissionRepo.GetByIntermediaryID(ctx, intermediaryID)
}

// GetDueCommissions lists unpaid commissions past their due date.
func (s *CommissionService) GetDueCommissions(ctx context.Context, now time.Time) ([]models.Commission, error) {
	return s.commissionRepo.GetAll(ctx, repository.DueBefore(now))
}

func (s *CommissionService) ApproveCommission(ctx context.Context, commissionID uuid.UUID, userID string) (*models.Commission, error) {
	commission, err := s.commissionRepo.GetByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	if err := commission.Approve(userID); err != nil {
		return nil, err
	}

	commission.UpdatedBy = &userID
	if err := s.commissionRepo.Update(ctx, commission); err != nil {
		return nil, err
	}

	return commission, nil
}

// MarkCommissionPaid settles a commission against a payment reference.
func (s *CommissionService) MarkCommissionPaid(ctx context.Context, commissionID uuid.UUID, req models.MarkCommissionPaidRequest, userID string) (*models.Commission, error) {
	commission, err := s.commissionRepo.GetByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil {
		t := time.Unix(*req.PaymentDate, 0)
		paymentDate = &t
	}
	if err := commission.MarkAsPaid(req.PaymentReference, userID, paymentDate, time.Now()); err != nil {
		return nil, err
	}

	commission.UpdatedBy = &userID
	if err := s.commissionRepo.Update(ctx, commission); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventCommissionPaid,
		EntityType: "commission",
		EntityID:   commission.ID.String(),
		UserIDs:    []string{commission.IntermediaryID},
		Title:      "Commission paid",
		Body:       fmt.Sprintf("Commission %s was paid with reference %s", commission.ID, req.PaymentReference),
	})

	return commission, nil
}
