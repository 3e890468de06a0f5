package models

import (
	"time"

	"github.com/goliatone/go-paywebhooks/wire"
)

// Dispute is a chargeback raised against a payment. Amount is a decimal string.
type Dispute struct {
	Amount        string
	BusinessID    string
	CreatedAt     time.Time
	Currency      string
	DisputeID     string
	DisputeStage  DisputeStage
	DisputeStatus DisputeStatus
	PaymentID     string
	Remarks       wire.Opt[string]
	Extra         wire.Extras
}

func (d *Dispute) ReadFields(r *wire.Reader) {
	d.Amount = wire.Read[string](r, "amount")
	d.BusinessID = wire.Read[string](r, "business_id")
	d.CreatedAt = wire.Read[time.Time](r, "created_at")
	d.Currency = wire.Read[string](r, "currency")
	d.DisputeID = wire.Read[string](r, "dispute_id")
	d.DisputeStage = wire.Read[DisputeStage](r, "dispute_stage")
	d.DisputeStatus = wire.Read[DisputeStatus](r, "dispute_status")
	d.PaymentID = wire.Read[string](r, "payment_id")
	d.Remarks = wire.ReadNullable[string](r, "remarks")
}

func (d Dispute) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "amount", d.Amount)
	wire.Field(enc, "business_id", d.BusinessID)
	wire.Field(enc, "created_at", d.CreatedAt)
	wire.Field(enc, "currency", d.Currency)
	wire.Field(enc, "dispute_id", d.DisputeID)
	wire.Field(enc, "dispute_stage", d.DisputeStage)
	wire.Field(enc, "dispute_status", d.DisputeStatus)
	wire.Field(enc, "payment_id", d.PaymentID)
	wire.OptField(enc, "remarks", d.Remarks)
}

func (d *Dispute) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, d.ReadFields, &d.Extra)
}

func (d *Dispute) UnmarshalJSON(data []byte) error {
	return d.DecodeWire("", data)
}

func (d Dispute) MarshalJSON() ([]byte, error) {
	return encodeResource(d.WriteFields, d.Extra)
}

func (d Dispute) Validate() error {
	return wire.FirstError(
		wire.CheckEnum("dispute_stage", d.DisputeStage),
		wire.CheckEnum("dispute_status", d.DisputeStatus),
	)
}

func (d Dispute) Clone() Dispute {
	out := d
	out.Extra = d.Extra.Clone()
	return out
}
