package models

import (
	"time"

	"github.com/goliatone/go-paywebhooks/wire"
)

type LicenseKey struct {
	ID               string
	BusinessID       string
	CreatedAt        time.Time
	CustomerID       string
	InstancesCount   int
	Key              string
	PaymentID        string
	ProductID        string
	Status           LicenseKeyStatus
	ActivationsLimit wire.Opt[int]
	ExpiresAt        wire.Opt[time.Time]
	SubscriptionID   wire.Opt[string]
	Extra            wire.Extras
}

func (l *LicenseKey) ReadFields(r *wire.Reader) {
	l.ID = wire.Read[string](r, "id")
	l.BusinessID = wire.Read[string](r, "business_id")
	l.CreatedAt = wire.Read[time.Time](r, "created_at")
	l.CustomerID = wire.Read[string](r, "customer_id")
	l.InstancesCount = wire.Read[int](r, "instances_count")
	l.Key = wire.Read[string](r, "key")
	l.PaymentID = wire.Read[string](r, "payment_id")
	l.ProductID = wire.Read[string](r, "product_id")
	l.Status = wire.Read[LicenseKeyStatus](r, "status")
	l.ActivationsLimit = wire.ReadNullable[int](r, "activations_limit")
	l.ExpiresAt = wire.ReadNullable[time.Time](r, "expires_at")
	l.SubscriptionID = wire.ReadNullable[string](r, "subscription_id")
}

func (l LicenseKey) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "id", l.ID)
	wire.Field(enc, "business_id", l.BusinessID)
	wire.Field(enc, "created_at", l.CreatedAt)
	wire.Field(enc, "customer_id", l.CustomerID)
	wire.Field(enc, "instances_count", l.InstancesCount)
	wire.Field(enc, "key", l.Key)
	wire.Field(enc, "payment_id", l.PaymentID)
	wire.Field(enc, "product_id", l.ProductID)
	wire.Field(enc, "status", l.Status)
	wire.OptField(enc, "activations_limit", l.ActivationsLimit)
	wire.OptField(enc, "expires_at", l.ExpiresAt)
	wire.OptField(enc, "subscription_id", l.SubscriptionID)
}

func (l *LicenseKey) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, l.ReadFields, &l.Extra)
}

func (l *LicenseKey) UnmarshalJSON(data []byte) error {
	return l.DecodeWire("", data)
}

func (l LicenseKey) MarshalJSON() ([]byte, error) {
	return encodeResource(l.WriteFields, l.Extra)
}

func (l LicenseKey) Validate() error {
	return wire.CheckEnum("status", l.Status)
}

func (l LicenseKey) Clone() LicenseKey {
	out := l
	out.Extra = l.Extra.Clone()
	return out
}
