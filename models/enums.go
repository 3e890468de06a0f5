package models

type PayloadType string

const (
	PayloadTypePayment      PayloadType = "Payment"
	PayloadTypeRefund       PayloadType = "Refund"
	PayloadTypeDispute      PayloadType = "Dispute"
	PayloadTypeSubscription PayloadType = "Subscription"
	PayloadTypeLicenseKey   PayloadType = "LicenseKey"
)

func (p PayloadType) IsKnown() bool {
	switch p {
	case PayloadTypePayment, PayloadTypeRefund, PayloadTypeDispute, PayloadTypeSubscription, PayloadTypeLicenseKey:
		return true
	}
	return false
}

type DisputeStage string

const (
	DisputeStagePreDispute     DisputeStage = "pre_dispute"
	DisputeStageDispute        DisputeStage = "dispute"
	DisputeStagePreArbitration DisputeStage = "pre_arbitration"
)

func (s DisputeStage) IsKnown() bool {
	switch s {
	case DisputeStagePreDispute, DisputeStageDispute, DisputeStagePreArbitration:
		return true
	}
	return false
}

type DisputeStatus string

const (
	DisputeStatusOpened     DisputeStatus = "dispute_opened"
	DisputeStatusExpired    DisputeStatus = "dispute_expired"
	DisputeStatusAccepted   DisputeStatus = "dispute_accepted"
	DisputeStatusCancelled  DisputeStatus = "dispute_cancelled"
	DisputeStatusChallenged DisputeStatus = "dispute_challenged"
	DisputeStatusWon        DisputeStatus = "dispute_won"
	DisputeStatusLost       DisputeStatus = "dispute_lost"
)

func (s DisputeStatus) IsKnown() bool {
	switch s {
	case DisputeStatusOpened, DisputeStatusExpired, DisputeStatusAccepted, DisputeStatusCancelled,
		DisputeStatusChallenged, DisputeStatusWon, DisputeStatusLost:
		return true
	}
	return false
}

type IntentStatus string

const (
	IntentStatusSucceeded                      IntentStatus = "succeeded"
	IntentStatusFailed                         IntentStatus = "failed"
	IntentStatusCancelled                      IntentStatus = "cancelled"
	IntentStatusProcessing                     IntentStatus = "processing"
	IntentStatusRequiresCustomerAction         IntentStatus = "requires_customer_action"
	IntentStatusRequiresMerchantAction         IntentStatus = "requires_merchant_action"
	IntentStatusRequiresPaymentMethod          IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation           IntentStatus = "requires_confirmation"
	IntentStatusRequiresCapture                IntentStatus = "requires_capture"
	IntentStatusPartiallyCaptured              IntentStatus = "partially_captured"
	IntentStatusPartiallyCapturedAndCapturable IntentStatus = "partially_captured_and_capturable"
)

func (s IntentStatus) IsKnown() bool {
	switch s {
	case IntentStatusSucceeded, IntentStatusFailed, IntentStatusCancelled, IntentStatusProcessing,
		IntentStatusRequiresCustomerAction, IntentStatusRequiresMerchantAction,
		IntentStatusRequiresPaymentMethod, IntentStatusRequiresConfirmation,
		IntentStatusRequiresCapture, IntentStatusPartiallyCaptured,
		IntentStatusPartiallyCapturedAndCapturable:
		return true
	}
	return false
}

type RefundStatus string

const (
	RefundStatusSucceeded RefundStatus = "succeeded"
	RefundStatusFailed    RefundStatus = "failed"
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusReview    RefundStatus = "review"
)

func (s RefundStatus) IsKnown() bool {
	switch s {
	case RefundStatusSucceeded, RefundStatusFailed, RefundStatusPending, RefundStatusReview:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusOnHold    SubscriptionStatus = "on_hold"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusFailed    SubscriptionStatus = "failed"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) IsKnown() bool {
	switch s {
	case SubscriptionStatusPending, SubscriptionStatusActive, SubscriptionStatusOnHold,
		SubscriptionStatusCancelled, SubscriptionStatusFailed, SubscriptionStatusExpired:
		return true
	}
	return false
}

type TimeInterval string

const (
	TimeIntervalDay   TimeInterval = "day"
	TimeIntervalWeek  TimeInterval = "week"
	TimeIntervalMonth TimeInterval = "month"
	TimeIntervalYear  TimeInterval = "year"
)

func (i TimeInterval) IsKnown() bool {
	switch i {
	case TimeIntervalDay, TimeIntervalWeek, TimeIntervalMonth, TimeIntervalYear:
		return true
	}
	return false
}

type LicenseKeyStatus string

const (
	LicenseKeyStatusActive   LicenseKeyStatus = "active"
	LicenseKeyStatusExpired  LicenseKeyStatus = "expired"
	LicenseKeyStatusDisabled LicenseKeyStatus = "disabled"
)

func (s LicenseKeyStatus) IsKnown() bool {
	switch s {
	case LicenseKeyStatusActive, LicenseKeyStatusExpired, LicenseKeyStatusDisabled:
		return true
	}
	return false
}
