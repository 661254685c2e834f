package event

// NotificationQueue is the durable queue the notification service consumes.
const NotificationQueue string = "insurance_noti_events"

// Event types published on lifecycle transitions.
const (
	EventQuoteConverted  = "quote.converted"
	EventQuoteDeclined   = "quote.declined"
	EventQuoteExpired    = "quote.expired"
	EventPolicyCancelled = "policy.cancelled"
	EventPolicyExpired   = "policy.expired"
	EventPolicyLapsed    = "policy.lapsed"
	EventClaimSubmitted  = "claim.submitted"
	EventClaimApproved   = "claim.approved"
	EventClaimRejected   = "claim.rejected"
	EventClaimPaid       = "claim.paid"
	EventPaymentReceived = "payment.received"
	EventPaymentReminder = "payment.reminder"
	EventCommissionPaid  = "commission.paid"
)

// NotificationEvent is the payload consumed by the notification service.
type NotificationEvent struct {
	EventType  string         `json:"event_type"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	UserIDs    []string       `json:"user_ids,omitempty"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
}
