package services

import (
	"context"
	"fmt"
	"time"

	"insurance-service/internal/event"
	"insurance-service/internal/models"
	"insurance-service/internal/repository"
	"insurance-service/utils"

	"github.com/google/uuid"
)

// DefaultCurrency is used when a payment request carries no currency.
const DefaultCurrency = "KES"

type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	clientRepo  *repository.ClientRepository
	notifier    Notifier
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	clientRepo *repository.ClientRepository,
	notifier Notifier,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		notifier:    notifier,
	}
}

// CreatePayment records a new pending payment. Payments are immutable once
// created; only the pending→completed transition mutates them.
func (s *PaymentService) CreatePayment(ctx context.Context, req models.CreatePaymentRequest, userID string) (*models.Payment, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	ref := req.TransactionRef
	if ref == "" {
		ref = utils.GenerateReferenceNumber(PaymentRefPrefix)
	}
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	payment := &models.Payment{
		ID:             uuid.New(),
		TransactionRef: ref,
		ClientID:       req.ClientID,
		PolicyID:       req.PolicyID,
		Amount:         req.Amount,
		Currency:       currency,
		Method:         req.Method,
		Status:         models.PaymentPending,
		CreatedBy:      &userID,
		UpdatedBy:      &userID,
	}

	if err := payment.Validate(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *PaymentService) GetPaymentByID(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, paymentID)
}

func (s *PaymentService) GetPaymentsByClientID(ctx context.Context, clientID uuid.UUID) ([]models.Payment, error) {
	return s.paymentRepo.GetAll(ctx, repository.ForClient(clientID))
}

func (s *PaymentService) GetPaymentsByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.Payment, error) {
	return s.paymentRepo.GetAll(ctx, repository.ForPolicy(policyID))
}

// MarkCompleted completes the payment identified by its unique transaction
// reference. The operation is idempotent: completing an already completed
// payment returns the row unchanged.
func (s *PaymentService) MarkCompleted(ctx context.Context, transactionRef, userID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByTransactionRef(ctx, transactionRef)
	if err != nil {
		return nil, err
	}

	changed, err := payment.MarkCompleted(time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return payment, nil
	}

	payment.UpdatedBy = &userID
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, event.NotificationEvent{
		EventType:  event.EventPaymentReceived,
		EntityType: "payment",
		EntityID:   payment.ID.String(),
		Title:      "Payment received",
		Body:       fmt.Sprintf("Payment %s for %s %s completed", payment.TransactionRef, payment.Amount, payment.Currency),
	})

	return payment, nil
}
