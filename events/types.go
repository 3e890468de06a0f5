package events

// EventType is the envelope discriminant. Unrecognised values decode and
// re-encode unchanged; IsKnown reports whether a schema is registered.
type EventType string

const (
	EventTypeDisputeAccepted         EventType = "dispute.accepted"
	EventTypeDisputeCancelled        EventType = "dispute.cancelled"
	EventTypeDisputeChallenged       EventType = "dispute.challenged"
	EventTypeDisputeExpired          EventType = "dispute.expired"
	EventTypeDisputeLost             EventType = "dispute.lost"
	EventTypeDisputeOpened           EventType = "dispute.opened"
	EventTypeDisputeWon              EventType = "dispute.won"
	EventTypePaymentCancelled        EventType = "payment.cancelled"
	EventTypePaymentFailed           EventType = "payment.failed"
	EventTypePaymentProcessing       EventType = "payment.processing"
	EventTypePaymentSucceeded        EventType = "payment.succeeded"
	EventTypeRefundFailed            EventType = "refund.failed"
	EventTypeRefundSucceeded         EventType = "refund.succeeded"
	EventTypeSubscriptionActive      EventType = "subscription.active"
	EventTypeSubscriptionCancelled   EventType = "subscription.cancelled"
	EventTypeSubscriptionExpired     EventType = "subscription.expired"
	EventTypeSubscriptionFailed      EventType = "subscription.failed"
	EventTypeSubscriptionOnHold      EventType = "subscription.on_hold"
	EventTypeSubscriptionPlanChanged EventType = "subscription.plan_changed"
	EventTypeSubscriptionRenewed     EventType = "subscription.renewed"
	EventTypeSubscriptionUpdated     EventType = "subscription.updated"
	EventTypeLicenseKeyCreated       EventType = "license_key.created"
)

func (t EventType) IsKnown() bool {
	_, ok := Lookup(t)
	return ok
}

func (t EventType) String() string {
	return string(t)
}
