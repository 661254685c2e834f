package services

import (
	"context"

	"insurance-service/internal/event"
)

// Notifier is the fire-and-forget notification collaborator. Lifecycle
// operations must never block on or fail because of notification delivery.
type Notifier interface {
	Notify(ctx context.Context, evt event.NotificationEvent)
}

// noopNotifier stands in when no broker is wired (tests, degraded boot).
type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, event.NotificationEvent) {}

// NoopNotifier returns a Notifier that drops every event.
func NoopNotifier() Notifier { return noopNotifier{} }
