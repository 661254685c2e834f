package services

import (
	"context"
	"fmt"

	"insurance-service/internal/event"
	"insurance-service/internal/repository"
)

// ReminderService publishes payment reminders for active policies carrying
// overdue installments. Delivery is the notification service's problem;
// this only emits events.
type ReminderService struct {
	policyRepo *repository.PolicyRepository
	notifier   Notifier
}

func NewReminderService(policyRepo *repository.PolicyRepository, notifier Notifier) *ReminderService {
	return &ReminderService{policyRepo: policyRepo, notifier: notifier}
}

// SendPaymentReminders emits one reminder event per overdue policy and
// returns how many were sent.
func (s *ReminderService) SendPaymentReminders(ctx context.Context) (int, error) {
	policies, err := s.policyRepo.GetAll(ctx, repository.WithOverdueInstallments())
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue policies: %w", err)
	}

	for i := range policies {
		policy := &policies[i]
		s.notifier.Notify(ctx, event.NotificationEvent{
			EventType:  event.EventPaymentReminder,
			EntityType: "policy",
			EntityID:   policy.ID.String(),
			UserIDs:    []string{policy.ClientID.String()},
			Title:      "Premium installment overdue",
			Body: fmt.Sprintf("Policy %s has %d overdue installment(s)",
				policy.PolicyNumber, policy.OverdueInstallments),
			Data: map[string]any{"overdue_installments": policy.OverdueInstallments},
		})
	}

	return len(policies), nil
}
