package models

import "github.com/goliatone/go-paywebhooks/wire"

type ProductCartItem struct {
	ProductID string
	Quantity  int
	Extra     wire.Extras
}

func (p *ProductCartItem) ReadFields(r *wire.Reader) {
	p.ProductID = wire.Read[string](r, "product_id")
	p.Quantity = wire.Read[int](r, "quantity")
}

func (p ProductCartItem) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "product_id", p.ProductID)
	wire.Field(enc, "quantity", p.Quantity)
}

func (p *ProductCartItem) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, p.ReadFields, &p.Extra)
}

func (p *ProductCartItem) UnmarshalJSON(data []byte) error {
	return p.DecodeWire("", data)
}

func (p ProductCartItem) MarshalJSON() ([]byte, error) {
	return encodeResource(p.WriteFields, p.Extra)
}

func (p ProductCartItem) Clone() ProductCartItem {
	out := p
	out.Extra = p.Extra.Clone()
	return out
}

type AddonCartItem struct {
	AddonID  string
	Quantity int
	Extra    wire.Extras
}

func (a *AddonCartItem) ReadFields(r *wire.Reader) {
	a.AddonID = wire.Read[string](r, "addon_id")
	a.Quantity = wire.Read[int](r, "quantity")
}

func (a AddonCartItem) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "addon_id", a.AddonID)
	wire.Field(enc, "quantity", a.Quantity)
}

func (a *AddonCartItem) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, a.ReadFields, &a.Extra)
}

func (a *AddonCartItem) UnmarshalJSON(data []byte) error {
	return a.DecodeWire("", data)
}

func (a AddonCartItem) MarshalJSON() ([]byte, error) {
	return encodeResource(a.WriteFields, a.Extra)
}

func (a AddonCartItem) Clone() AddonCartItem {
	out := a
	out.Extra = a.Extra.Clone()
	return out
}

// Meter is a usage meter attached to a subscription. Prices are decimal strings.
type Meter struct {
	MeasurementUnit string
	MeterID         string
	Name            string
	PricePerUnit    string
	FreeThreshold   int
	Description     wire.Opt[string]
	Extra           wire.Extras
}

func (m *Meter) ReadFields(r *wire.Reader) {
	m.MeasurementUnit = wire.Read[string](r, "measurement_unit")
	m.MeterID = wire.Read[string](r, "meter_id")
	m.Name = wire.Read[string](r, "name")
	m.PricePerUnit = wire.Read[string](r, "price_per_unit")
	m.FreeThreshold = wire.Read[int](r, "free_threshold")
	m.Description = wire.ReadNullable[string](r, "description")
}

func (m Meter) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "measurement_unit", m.MeasurementUnit)
	wire.Field(enc, "meter_id", m.MeterID)
	wire.Field(enc, "name", m.Name)
	wire.Field(enc, "price_per_unit", m.PricePerUnit)
	wire.Field(enc, "free_threshold", m.FreeThreshold)
	wire.OptField(enc, "description", m.Description)
}

func (m *Meter) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, m.ReadFields, &m.Extra)
}

func (m *Meter) UnmarshalJSON(data []byte) error {
	return m.DecodeWire("", data)
}

func (m Meter) MarshalJSON() ([]byte, error) {
	return encodeResource(m.WriteFields, m.Extra)
}

func (m Meter) Clone() Meter {
	out := m
	out.Extra = m.Extra.Clone()
	return out
}
