package events

import "github.com/goliatone/go-paywebhooks/models"

// registeredVariants maps every known discriminant to its payload family and
// decoder. It is read once when the registry is built.
var registeredVariants = []Variant{
	{Type: EventTypeDisputeAccepted, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeAcceptedEvent{base}, nil
	}},
	{Type: EventTypeDisputeCancelled, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeCancelledEvent{base}, nil
	}},
	{Type: EventTypeDisputeChallenged, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeChallengedEvent{base}, nil
	}},
	{Type: EventTypeDisputeExpired, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeExpiredEvent{base}, nil
	}},
	{Type: EventTypeDisputeLost, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeLostEvent{base}, nil
	}},
	{Type: EventTypeDisputeOpened, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeOpenedEvent{base}, nil
	}},
	{Type: EventTypeDisputeWon, Family: models.PayloadTypeDispute, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeDisputeEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return DisputeWonEvent{base}, nil
	}},
	{Type: EventTypePaymentCancelled, Family: models.PayloadTypePayment, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodePaymentEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return PaymentCancelledEvent{base}, nil
	}},
	{Type: EventTypePaymentFailed, Family: models.PayloadTypePayment, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodePaymentEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return PaymentFailedEvent{base}, nil
	}},
	{Type: EventTypePaymentProcessing, Family: models.PayloadTypePayment, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodePaymentEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return PaymentProcessingEvent{base}, nil
	}},
	{Type: EventTypePaymentSucceeded, Family: models.PayloadTypePayment, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodePaymentEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return PaymentSucceededEvent{base}, nil
	}},
	{Type: EventTypeRefundFailed, Family: models.PayloadTypeRefund, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeRefundEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return RefundFailedEvent{base}, nil
	}},
	{Type: EventTypeRefundSucceeded, Family: models.PayloadTypeRefund, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeRefundEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return RefundSucceededEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionActive, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionActiveEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionCancelled, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionCancelledEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionExpired, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionExpiredEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionFailed, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionFailedEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionOnHold, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionOnHoldEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionPlanChanged, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionPlanChangedEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionRenewed, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionRenewedEvent{base}, nil
	}},
	{Type: EventTypeSubscriptionUpdated, Family: models.PayloadTypeSubscription, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeSubscriptionEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return SubscriptionUpdatedEvent{base}, nil
	}},
	{Type: EventTypeLicenseKeyCreated, Family: models.PayloadTypeLicenseKey, decode: func(env Envelope, payload []byte) (Event, error) {
		base, err := decodeLicenseKeyEvent(env, payload)
		if err != nil {
			return nil, err
		}
		return LicenseKeyCreatedEvent{base}, nil
	}},
}

type DisputeAcceptedEvent struct{ DisputeEvent }

func (DisputeAcceptedEvent) EventType() EventType { return EventTypeDisputeAccepted }

func (e DisputeAcceptedEvent) Validate() error { return e.validate(EventTypeDisputeAccepted) }

func (e DisputeAcceptedEvent) Clone() Event { return DisputeAcceptedEvent{e.DisputeEvent.clone()} }

func (e DisputeAcceptedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeAccepted) }

func (e *DisputeAcceptedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeAcceptedEvent) isEvent() {}

type DisputeCancelledEvent struct{ DisputeEvent }

func (DisputeCancelledEvent) EventType() EventType { return EventTypeDisputeCancelled }

func (e DisputeCancelledEvent) Validate() error { return e.validate(EventTypeDisputeCancelled) }

func (e DisputeCancelledEvent) Clone() Event { return DisputeCancelledEvent{e.DisputeEvent.clone()} }

func (e DisputeCancelledEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeCancelled) }

func (e *DisputeCancelledEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeCancelledEvent) isEvent() {}

type DisputeChallengedEvent struct{ DisputeEvent }

func (DisputeChallengedEvent) EventType() EventType { return EventTypeDisputeChallenged }

func (e DisputeChallengedEvent) Validate() error { return e.validate(EventTypeDisputeChallenged) }

func (e DisputeChallengedEvent) Clone() Event { return DisputeChallengedEvent{e.DisputeEvent.clone()} }

func (e DisputeChallengedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeChallenged) }

func (e *DisputeChallengedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeChallengedEvent) isEvent() {}

type DisputeExpiredEvent struct{ DisputeEvent }

func (DisputeExpiredEvent) EventType() EventType { return EventTypeDisputeExpired }

func (e DisputeExpiredEvent) Validate() error { return e.validate(EventTypeDisputeExpired) }

func (e DisputeExpiredEvent) Clone() Event { return DisputeExpiredEvent{e.DisputeEvent.clone()} }

func (e DisputeExpiredEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeExpired) }

func (e *DisputeExpiredEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeExpiredEvent) isEvent() {}

type DisputeLostEvent struct{ DisputeEvent }

func (DisputeLostEvent) EventType() EventType { return EventTypeDisputeLost }

func (e DisputeLostEvent) Validate() error { return e.validate(EventTypeDisputeLost) }

func (e DisputeLostEvent) Clone() Event { return DisputeLostEvent{e.DisputeEvent.clone()} }

func (e DisputeLostEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeLost) }

func (e *DisputeLostEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeLostEvent) isEvent() {}

type DisputeOpenedEvent struct{ DisputeEvent }

func (DisputeOpenedEvent) EventType() EventType { return EventTypeDisputeOpened }

func (e DisputeOpenedEvent) Validate() error { return e.validate(EventTypeDisputeOpened) }

func (e DisputeOpenedEvent) Clone() Event { return DisputeOpenedEvent{e.DisputeEvent.clone()} }

func (e DisputeOpenedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeOpened) }

func (e *DisputeOpenedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeOpenedEvent) isEvent() {}

type DisputeWonEvent struct{ DisputeEvent }

func (DisputeWonEvent) EventType() EventType { return EventTypeDisputeWon }

func (e DisputeWonEvent) Validate() error { return e.validate(EventTypeDisputeWon) }

func (e DisputeWonEvent) Clone() Event { return DisputeWonEvent{e.DisputeEvent.clone()} }

func (e DisputeWonEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeDisputeWon) }

func (e *DisputeWonEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (DisputeWonEvent) isEvent() {}

type PaymentCancelledEvent struct{ PaymentEvent }

func (PaymentCancelledEvent) EventType() EventType { return EventTypePaymentCancelled }

func (e PaymentCancelledEvent) Validate() error { return e.validate(EventTypePaymentCancelled) }

func (e PaymentCancelledEvent) Clone() Event { return PaymentCancelledEvent{e.PaymentEvent.clone()} }

func (e PaymentCancelledEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypePaymentCancelled) }

func (e *PaymentCancelledEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (PaymentCancelledEvent) isEvent() {}

type PaymentFailedEvent struct{ PaymentEvent }

func (PaymentFailedEvent) EventType() EventType { return EventTypePaymentFailed }

func (e PaymentFailedEvent) Validate() error { return e.validate(EventTypePaymentFailed) }

func (e PaymentFailedEvent) Clone() Event { return PaymentFailedEvent{e.PaymentEvent.clone()} }

func (e PaymentFailedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypePaymentFailed) }

func (e *PaymentFailedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (PaymentFailedEvent) isEvent() {}

type PaymentProcessingEvent struct{ PaymentEvent }

func (PaymentProcessingEvent) EventType() EventType { return EventTypePaymentProcessing }

func (e PaymentProcessingEvent) Validate() error { return e.validate(EventTypePaymentProcessing) }

func (e PaymentProcessingEvent) Clone() Event { return PaymentProcessingEvent{e.PaymentEvent.clone()} }

func (e PaymentProcessingEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypePaymentProcessing) }

func (e *PaymentProcessingEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (PaymentProcessingEvent) isEvent() {}

type PaymentSucceededEvent struct{ PaymentEvent }

func (PaymentSucceededEvent) EventType() EventType { return EventTypePaymentSucceeded }

func (e PaymentSucceededEvent) Validate() error { return e.validate(EventTypePaymentSucceeded) }

func (e PaymentSucceededEvent) Clone() Event { return PaymentSucceededEvent{e.PaymentEvent.clone()} }

func (e PaymentSucceededEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypePaymentSucceeded) }

func (e *PaymentSucceededEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (PaymentSucceededEvent) isEvent() {}

type RefundFailedEvent struct{ RefundEvent }

func (RefundFailedEvent) EventType() EventType { return EventTypeRefundFailed }

func (e RefundFailedEvent) Validate() error { return e.validate(EventTypeRefundFailed) }

func (e RefundFailedEvent) Clone() Event { return RefundFailedEvent{e.RefundEvent.clone()} }

func (e RefundFailedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeRefundFailed) }

func (e *RefundFailedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (RefundFailedEvent) isEvent() {}

type RefundSucceededEvent struct{ RefundEvent }

func (RefundSucceededEvent) EventType() EventType { return EventTypeRefundSucceeded }

func (e RefundSucceededEvent) Validate() error { return e.validate(EventTypeRefundSucceeded) }

func (e RefundSucceededEvent) Clone() Event { return RefundSucceededEvent{e.RefundEvent.clone()} }

func (e RefundSucceededEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeRefundSucceeded) }

func (e *RefundSucceededEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (RefundSucceededEvent) isEvent() {}

type SubscriptionActiveEvent struct{ SubscriptionEvent }

func (SubscriptionActiveEvent) EventType() EventType { return EventTypeSubscriptionActive }

func (e SubscriptionActiveEvent) Validate() error { return e.validate(EventTypeSubscriptionActive) }

func (e SubscriptionActiveEvent) Clone() Event { return SubscriptionActiveEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionActiveEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionActive) }

func (e *SubscriptionActiveEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionActiveEvent) isEvent() {}

type SubscriptionCancelledEvent struct{ SubscriptionEvent }

func (SubscriptionCancelledEvent) EventType() EventType { return EventTypeSubscriptionCancelled }

func (e SubscriptionCancelledEvent) Validate() error { return e.validate(EventTypeSubscriptionCancelled) }

func (e SubscriptionCancelledEvent) Clone() Event { return SubscriptionCancelledEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionCancelledEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionCancelled) }

func (e *SubscriptionCancelledEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionCancelledEvent) isEvent() {}

type SubscriptionExpiredEvent struct{ SubscriptionEvent }

func (SubscriptionExpiredEvent) EventType() EventType { return EventTypeSubscriptionExpired }

func (e SubscriptionExpiredEvent) Validate() error { return e.validate(EventTypeSubscriptionExpired) }

func (e SubscriptionExpiredEvent) Clone() Event { return SubscriptionExpiredEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionExpiredEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionExpired) }

func (e *SubscriptionExpiredEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionExpiredEvent) isEvent() {}

type SubscriptionFailedEvent struct{ SubscriptionEvent }

func (SubscriptionFailedEvent) EventType() EventType { return EventTypeSubscriptionFailed }

func (e SubscriptionFailedEvent) Validate() error { return e.validate(EventTypeSubscriptionFailed) }

func (e SubscriptionFailedEvent) Clone() Event { return SubscriptionFailedEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionFailedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionFailed) }

func (e *SubscriptionFailedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionFailedEvent) isEvent() {}

type SubscriptionOnHoldEvent struct{ SubscriptionEvent }

func (SubscriptionOnHoldEvent) EventType() EventType { return EventTypeSubscriptionOnHold }

func (e SubscriptionOnHoldEvent) Validate() error { return e.validate(EventTypeSubscriptionOnHold) }

func (e SubscriptionOnHoldEvent) Clone() Event { return SubscriptionOnHoldEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionOnHoldEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionOnHold) }

func (e *SubscriptionOnHoldEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionOnHoldEvent) isEvent() {}

type SubscriptionPlanChangedEvent struct{ SubscriptionEvent }

func (SubscriptionPlanChangedEvent) EventType() EventType { return EventTypeSubscriptionPlanChanged }

func (e SubscriptionPlanChangedEvent) Validate() error { return e.validate(EventTypeSubscriptionPlanChanged) }

func (e SubscriptionPlanChangedEvent) Clone() Event { return SubscriptionPlanChangedEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionPlanChangedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionPlanChanged) }

func (e *SubscriptionPlanChangedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionPlanChangedEvent) isEvent() {}

type SubscriptionRenewedEvent struct{ SubscriptionEvent }

func (SubscriptionRenewedEvent) EventType() EventType { return EventTypeSubscriptionRenewed }

func (e SubscriptionRenewedEvent) Validate() error { return e.validate(EventTypeSubscriptionRenewed) }

func (e SubscriptionRenewedEvent) Clone() Event { return SubscriptionRenewedEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionRenewedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionRenewed) }

func (e *SubscriptionRenewedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionRenewedEvent) isEvent() {}

type SubscriptionUpdatedEvent struct{ SubscriptionEvent }

func (SubscriptionUpdatedEvent) EventType() EventType { return EventTypeSubscriptionUpdated }

func (e SubscriptionUpdatedEvent) Validate() error { return e.validate(EventTypeSubscriptionUpdated) }

func (e SubscriptionUpdatedEvent) Clone() Event { return SubscriptionUpdatedEvent{e.SubscriptionEvent.clone()} }

func (e SubscriptionUpdatedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeSubscriptionUpdated) }

func (e *SubscriptionUpdatedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (SubscriptionUpdatedEvent) isEvent() {}

type LicenseKeyCreatedEvent struct{ LicenseKeyEvent }

func (LicenseKeyCreatedEvent) EventType() EventType { return EventTypeLicenseKeyCreated }

func (e LicenseKeyCreatedEvent) Validate() error { return e.validate(EventTypeLicenseKeyCreated) }

func (e LicenseKeyCreatedEvent) Clone() Event { return LicenseKeyCreatedEvent{e.LicenseKeyEvent.clone()} }

func (e LicenseKeyCreatedEvent) MarshalJSON() ([]byte, error) { return e.encode(EventTypeLicenseKeyCreated) }

func (e *LicenseKeyCreatedEvent) UnmarshalJSON(data []byte) error { return decodeInto(data, e) }

func (LicenseKeyCreatedEvent) isEvent() {}

var (
	_ Event = DisputeAcceptedEvent{}
	_ Event = DisputeCancelledEvent{}
	_ Event = DisputeChallengedEvent{}
	_ Event = DisputeExpiredEvent{}
	_ Event = DisputeLostEvent{}
	_ Event = DisputeOpenedEvent{}
	_ Event = DisputeWonEvent{}
	_ Event = PaymentCancelledEvent{}
	_ Event = PaymentFailedEvent{}
	_ Event = PaymentProcessingEvent{}
	_ Event = PaymentSucceededEvent{}
	_ Event = RefundFailedEvent{}
	_ Event = RefundSucceededEvent{}
	_ Event = SubscriptionActiveEvent{}
	_ Event = SubscriptionCancelledEvent{}
	_ Event = SubscriptionExpiredEvent{}
	_ Event = SubscriptionFailedEvent{}
	_ Event = SubscriptionOnHoldEvent{}
	_ Event = SubscriptionPlanChangedEvent{}
	_ Event = SubscriptionRenewedEvent{}
	_ Event = SubscriptionUpdatedEvent{}
	_ Event = LicenseKeyCreatedEvent{}
)
