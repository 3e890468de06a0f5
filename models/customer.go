package models

import (
	"github.com/goliatone/go-paywebhooks/wire"
)

type CustomerLimitedDetails struct {
	CustomerID  string
	Email       string
	Name        string
	PhoneNumber wire.Opt[string]
	Metadata    wire.Opt[map[string]string]
	Extra       wire.Extras
}

func (c *CustomerLimitedDetails) ReadFields(r *wire.Reader) {
	c.CustomerID = wire.Read[string](r, "customer_id")
	c.Email = wire.Read[string](r, "email")
	c.Name = wire.Read[string](r, "name")
	c.PhoneNumber = wire.ReadNullable[string](r, "phone_number")
	c.Metadata = wire.ReadOptional[map[string]string](r, "metadata")
}

func (c CustomerLimitedDetails) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "customer_id", c.CustomerID)
	wire.Field(enc, "email", c.Email)
	wire.Field(enc, "name", c.Name)
	wire.OptField(enc, "phone_number", c.PhoneNumber)
	wire.OptField(enc, "metadata", c.Metadata)
}

func (c *CustomerLimitedDetails) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, c.ReadFields, &c.Extra)
}

func (c *CustomerLimitedDetails) UnmarshalJSON(data []byte) error {
	return c.DecodeWire("", data)
}

func (c CustomerLimitedDetails) MarshalJSON() ([]byte, error) {
	return encodeResource(c.WriteFields, c.Extra)
}

// Validate has no enum fields to check.
func (c CustomerLimitedDetails) Validate() error {
	return nil
}

func (c CustomerLimitedDetails) Clone() CustomerLimitedDetails {
	out := c
	out.Metadata = cloneOptStrings(c.Metadata)
	out.Extra = c.Extra.Clone()
	return out
}

type BillingAddress struct {
	City    string
	Country CountryCode
	State   string
	Street  string
	Zipcode wire.Opt[string]
	Extra   wire.Extras
}

func (b *BillingAddress) ReadFields(r *wire.Reader) {
	b.City = wire.Read[string](r, "city")
	b.Country = wire.Read[CountryCode](r, "country")
	b.State = wire.Read[string](r, "state")
	b.Street = wire.Read[string](r, "street")
	b.Zipcode = wire.ReadNullable[string](r, "zipcode")
}

func (b BillingAddress) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "city", b.City)
	wire.Field(enc, "country", b.Country)
	wire.Field(enc, "state", b.State)
	wire.Field(enc, "street", b.Street)
	wire.OptField(enc, "zipcode", b.Zipcode)
}

func (b *BillingAddress) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, b.ReadFields, &b.Extra)
}

func (b *BillingAddress) UnmarshalJSON(data []byte) error {
	return b.DecodeWire("", data)
}

func (b BillingAddress) MarshalJSON() ([]byte, error) {
	return encodeResource(b.WriteFields, b.Extra)
}

func (b BillingAddress) Validate() error {
	return wire.CheckEnum("country", b.Country)
}

func (b BillingAddress) Clone() BillingAddress {
	out := b
	out.Extra = b.Extra.Clone()
	return out
}
