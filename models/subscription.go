package models

import (
	"time"

	"github.com/goliatone/go-paywebhooks/wire"
)

type Subscription struct {
	Addons                     []AddonCartItem
	Billing                    BillingAddress
	CancelAtNextBillingDate    bool
	CreatedAt                  time.Time
	Currency                   Currency
	Customer                   CustomerLimitedDetails
	Metadata                   map[string]string
	Meters                     []Meter
	NextBillingDate            time.Time
	OnDemand                   bool
	PaymentFrequencyCount      int
	PaymentFrequencyInterval   TimeInterval
	PreviousBillingDate        time.Time
	ProductID                  string
	Quantity                   int
	RecurringPreTaxAmount      int
	Status                     SubscriptionStatus
	SubscriptionID             string
	SubscriptionPeriodCount    int
	SubscriptionPeriodInterval TimeInterval
	TaxInclusive               bool
	TrialPeriodDays            int

	CancelledAt             wire.Opt[time.Time]
	DiscountCyclesRemaining wire.Opt[int]
	DiscountID              wire.Opt[string]
	ExpiresAt               wire.Opt[time.Time]
	PaymentMethodID         wire.Opt[string]
	TaxID                   wire.Opt[string]

	Extra wire.Extras
}

func (s *Subscription) ReadFields(r *wire.Reader) {
	s.Addons = wire.ReadList[AddonCartItem](r, "addons")
	s.Billing = wire.Read[BillingAddress](r, "billing")
	s.CancelAtNextBillingDate = wire.Read[bool](r, "cancel_at_next_billing_date")
	s.CreatedAt = wire.Read[time.Time](r, "created_at")
	s.Currency = wire.Read[Currency](r, "currency")
	s.Customer = wire.Read[CustomerLimitedDetails](r, "customer")
	s.Metadata = wire.Read[map[string]string](r, "metadata")
	s.Meters = wire.ReadList[Meter](r, "meters")
	s.NextBillingDate = wire.Read[time.Time](r, "next_billing_date")
	s.OnDemand = wire.Read[bool](r, "on_demand")
	s.PaymentFrequencyCount = wire.Read[int](r, "payment_frequency_count")
	s.PaymentFrequencyInterval = wire.Read[TimeInterval](r, "payment_frequency_interval")
	s.PreviousBillingDate = wire.Read[time.Time](r, "previous_billing_date")
	s.ProductID = wire.Read[string](r, "product_id")
	s.Quantity = wire.Read[int](r, "quantity")
	s.RecurringPreTaxAmount = wire.Read[int](r, "recurring_pre_tax_amount")
	s.Status = wire.Read[SubscriptionStatus](r, "status")
	s.SubscriptionID = wire.Read[string](r, "subscription_id")
	s.SubscriptionPeriodCount = wire.Read[int](r, "subscription_period_count")
	s.SubscriptionPeriodInterval = wire.Read[TimeInterval](r, "subscription_period_interval")
	s.TaxInclusive = wire.Read[bool](r, "tax_inclusive")
	s.TrialPeriodDays = wire.Read[int](r, "trial_period_days")

	s.CancelledAt = wire.ReadNullable[time.Time](r, "cancelled_at")
	s.DiscountCyclesRemaining = wire.ReadNullable[int](r, "discount_cycles_remaining")
	s.DiscountID = wire.ReadNullable[string](r, "discount_id")
	s.ExpiresAt = wire.ReadNullable[time.Time](r, "expires_at")
	s.PaymentMethodID = wire.ReadNullable[string](r, "payment_method_id")
	s.TaxID = wire.ReadNullable[string](r, "tax_id")
}

func (s Subscription) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "addons", s.Addons)
	wire.Field(enc, "billing", s.Billing)
	wire.Field(enc, "cancel_at_next_billing_date", s.CancelAtNextBillingDate)
	wire.Field(enc, "created_at", s.CreatedAt)
	wire.Field(enc, "currency", s.Currency)
	wire.Field(enc, "customer", s.Customer)
	wire.Field(enc, "metadata", s.Metadata)
	wire.Field(enc, "meters", s.Meters)
	wire.Field(enc, "next_billing_date", s.NextBillingDate)
	wire.Field(enc, "on_demand", s.OnDemand)
	wire.Field(enc, "payment_frequency_count", s.PaymentFrequencyCount)
	wire.Field(enc, "payment_frequency_interval", s.PaymentFrequencyInterval)
	wire.Field(enc, "previous_billing_date", s.PreviousBillingDate)
	wire.Field(enc, "product_id", s.ProductID)
	wire.Field(enc, "quantity", s.Quantity)
	wire.Field(enc, "recurring_pre_tax_amount", s.RecurringPreTaxAmount)
	wire.Field(enc, "status", s.Status)
	wire.Field(enc, "subscription_id", s.SubscriptionID)
	wire.Field(enc, "subscription_period_count", s.SubscriptionPeriodCount)
	wire.Field(enc, "subscription_period_interval", s.SubscriptionPeriodInterval)
	wire.Field(enc, "tax_inclusive", s.TaxInclusive)
	wire.Field(enc, "trial_period_days", s.TrialPeriodDays)

	wire.OptField(enc, "cancelled_at", s.CancelledAt)
	wire.OptField(enc, "discount_cycles_remaining", s.DiscountCyclesRemaining)
	wire.OptField(enc, "discount_id", s.DiscountID)
	wire.OptField(enc, "expires_at", s.ExpiresAt)
	wire.OptField(enc, "payment_method_id", s.PaymentMethodID)
	wire.OptField(enc, "tax_id", s.TaxID)
}

func (s *Subscription) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, s.ReadFields, &s.Extra)
}

func (s *Subscription) UnmarshalJSON(data []byte) error {
	return s.DecodeWire("", data)
}

func (s Subscription) MarshalJSON() ([]byte, error) {
	return encodeResource(s.WriteFields, s.Extra)
}

func (s Subscription) Validate() error {
	return wire.FirstError(
		wire.CheckNested("billing", s.Billing.Validate()),
		wire.CheckEnum("currency", s.Currency),
		wire.CheckNested("customer", s.Customer.Validate()),
		wire.CheckEnum("payment_frequency_interval", s.PaymentFrequencyInterval),
		wire.CheckEnum("status", s.Status),
		wire.CheckEnum("subscription_period_interval", s.SubscriptionPeriodInterval),
	)
}

func (s Subscription) Clone() Subscription {
	out := s
	out.Addons = cloneEach(s.Addons, AddonCartItem.Clone)
	out.Billing = s.Billing.Clone()
	out.Customer = s.Customer.Clone()
	out.Metadata = cloneStrings(s.Metadata)
	out.Meters = cloneEach(s.Meters, Meter.Clone)
	out.Extra = s.Extra.Clone()
	return out
}
