package models

import (
	"time"

	"github.com/goliatone/go-paywebhooks/wire"
)

type Refund struct {
	BusinessID string
	CreatedAt  time.Time
	Customer   CustomerLimitedDetails
	IsPartial  bool
	Metadata   map[string]string
	PaymentID  string
	RefundID   string
	Status     RefundStatus
	Amount     wire.Opt[int]
	Currency   wire.Opt[Currency]
	Reason     wire.Opt[string]
	Extra      wire.Extras
}

func (f *Refund) ReadFields(r *wire.Reader) {
	f.BusinessID = wire.Read[string](r, "business_id")
	f.CreatedAt = wire.Read[time.Time](r, "created_at")
	f.Customer = wire.Read[CustomerLimitedDetails](r, "customer")
	f.IsPartial = wire.Read[bool](r, "is_partial")
	f.Metadata = wire.Read[map[string]string](r, "metadata")
	f.PaymentID = wire.Read[string](r, "payment_id")
	f.RefundID = wire.Read[string](r, "refund_id")
	f.Status = wire.Read[RefundStatus](r, "status")
	f.Amount = wire.ReadNullable[int](r, "amount")
	f.Currency = wire.ReadNullable[Currency](r, "currency")
	f.Reason = wire.ReadNullable[string](r, "reason")
}

func (f Refund) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "business_id", f.BusinessID)
	wire.Field(enc, "created_at", f.CreatedAt)
	wire.Field(enc, "customer", f.Customer)
	wire.Field(enc, "is_partial", f.IsPartial)
	wire.Field(enc, "metadata", f.Metadata)
	wire.Field(enc, "payment_id", f.PaymentID)
	wire.Field(enc, "refund_id", f.RefundID)
	wire.Field(enc, "status", f.Status)
	wire.OptField(enc, "amount", f.Amount)
	wire.OptField(enc, "currency", f.Currency)
	wire.OptField(enc, "reason", f.Reason)
}

func (f *Refund) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, f.ReadFields, &f.Extra)
}

func (f *Refund) UnmarshalJSON(data []byte) error {
	return f.DecodeWire("", data)
}

func (f Refund) MarshalJSON() ([]byte, error) {
	return encodeResource(f.WriteFields, f.Extra)
}

func (f Refund) Validate() error {
	return wire.FirstError(
		wire.CheckNested("customer", f.Customer.Validate()),
		wire.CheckEnum("status", f.Status),
		wire.CheckOptEnum("currency", f.Currency),
	)
}

func (f Refund) Clone() Refund {
	out := f
	out.Customer = f.Customer.Clone()
	out.Metadata = cloneStrings(f.Metadata)
	out.Extra = f.Extra.Clone()
	return out
}
