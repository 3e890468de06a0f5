package models

import (
	"time"

	"github.com/goliatone/go-paywebhooks/wire"
)

// Payment is a checkout payment. Amounts are in the smallest currency unit.
type Payment struct {
	Billing                  BillingAddress
	BrandID                  string
	BusinessID               string
	CreatedAt                time.Time
	Currency                 Currency
	Customer                 CustomerLimitedDetails
	DigitalProductsDelivered bool
	Disputes                 []Dispute
	Metadata                 map[string]string
	PaymentID                string
	Refunds                  []Refund
	SettlementAmount         int
	SettlementCurrency       Currency
	TotalAmount              int

	CardIssuingCountry wire.Opt[CountryCode]
	CardLastFour       wire.Opt[string]
	CardNetwork        wire.Opt[string]
	CardType           wire.Opt[string]
	CheckoutSessionID  wire.Opt[string]
	DiscountID         wire.Opt[string]
	ErrorCode          wire.Opt[string]
	ErrorMessage       wire.Opt[string]
	InvoiceID          wire.Opt[string]
	PaymentLink        wire.Opt[string]
	PaymentMethod      wire.Opt[string]
	PaymentMethodType  wire.Opt[string]
	ProductCart        wire.Opt[[]ProductCartItem]
	SettlementTax      wire.Opt[int]
	Status             wire.Opt[IntentStatus]
	SubscriptionID     wire.Opt[string]
	Tax                wire.Opt[int]
	UpdatedAt          wire.Opt[time.Time]

	Extra wire.Extras
}

func (p *Payment) ReadFields(r *wire.Reader) {
	p.Billing = wire.Read[BillingAddress](r, "billing")
	p.BrandID = wire.Read[string](r, "brand_id")
	p.BusinessID = wire.Read[string](r, "business_id")
	p.CreatedAt = wire.Read[time.Time](r, "created_at")
	p.Currency = wire.Read[Currency](r, "currency")
	p.Customer = wire.Read[CustomerLimitedDetails](r, "customer")
	p.DigitalProductsDelivered = wire.Read[bool](r, "digital_products_delivered")
	p.Disputes = wire.ReadList[Dispute](r, "disputes")
	p.Metadata = wire.Read[map[string]string](r, "metadata")
	p.PaymentID = wire.Read[string](r, "payment_id")
	p.Refunds = wire.ReadList[Refund](r, "refunds")
	p.SettlementAmount = wire.Read[int](r, "settlement_amount")
	p.SettlementCurrency = wire.Read[Currency](r, "settlement_currency")
	p.TotalAmount = wire.Read[int](r, "total_amount")

	p.CardIssuingCountry = wire.ReadNullable[CountryCode](r, "card_issuing_country")
	p.CardLastFour = wire.ReadNullable[string](r, "card_last_four")
	p.CardNetwork = wire.ReadNullable[string](r, "card_network")
	p.CardType = wire.ReadNullable[string](r, "card_type")
	p.CheckoutSessionID = wire.ReadNullable[string](r, "checkout_session_id")
	p.DiscountID = wire.ReadNullable[string](r, "discount_id")
	p.ErrorCode = wire.ReadNullable[string](r, "error_code")
	p.ErrorMessage = wire.ReadNullable[string](r, "error_message")
	p.InvoiceID = wire.ReadNullable[string](r, "invoice_id")
	p.PaymentLink = wire.ReadNullable[string](r, "payment_link")
	p.PaymentMethod = wire.ReadNullable[string](r, "payment_method")
	p.PaymentMethodType = wire.ReadNullable[string](r, "payment_method_type")
	p.ProductCart = wire.ReadNullableList[ProductCartItem](r, "product_cart")
	p.SettlementTax = wire.ReadNullable[int](r, "settlement_tax")
	p.Status = wire.ReadNullable[IntentStatus](r, "status")
	p.SubscriptionID = wire.ReadNullable[string](r, "subscription_id")
	p.Tax = wire.ReadNullable[int](r, "tax")
	p.UpdatedAt = wire.ReadNullable[time.Time](r, "updated_at")
}

func (p Payment) WriteFields(enc *wire.ObjectEncoder) {
	wire.Field(enc, "billing", p.Billing)
	wire.Field(enc, "brand_id", p.BrandID)
	wire.Field(enc, "business_id", p.BusinessID)
	wire.Field(enc, "created_at", p.CreatedAt)
	wire.Field(enc, "currency", p.Currency)
	wire.Field(enc, "customer", p.Customer)
	wire.Field(enc, "digital_products_delivered", p.DigitalProductsDelivered)
	wire.Field(enc, "disputes", p.Disputes)
	wire.Field(enc, "metadata", p.Metadata)
	wire.Field(enc, "payment_id", p.PaymentID)
	wire.Field(enc, "refunds", p.Refunds)
	wire.Field(enc, "settlement_amount", p.SettlementAmount)
	wire.Field(enc, "settlement_currency", p.SettlementCurrency)
	wire.Field(enc, "total_amount", p.TotalAmount)

	wire.OptField(enc, "card_issuing_country", p.CardIssuingCountry)
	wire.OptField(enc, "card_last_four", p.CardLastFour)
	wire.OptField(enc, "card_network", p.CardNetwork)
	wire.OptField(enc, "card_type", p.CardType)
	wire.OptField(enc, "checkout_session_id", p.CheckoutSessionID)
	wire.OptField(enc, "discount_id", p.DiscountID)
	wire.OptField(enc, "error_code", p.ErrorCode)
	wire.OptField(enc, "error_message", p.ErrorMessage)
	wire.OptField(enc, "invoice_id", p.InvoiceID)
	wire.OptField(enc, "payment_link", p.PaymentLink)
	wire.OptField(enc, "payment_method", p.PaymentMethod)
	wire.OptField(enc, "payment_method_type", p.PaymentMethodType)
	wire.OptField(enc, "product_cart", p.ProductCart)
	wire.OptField(enc, "settlement_tax", p.SettlementTax)
	wire.OptField(enc, "status", p.Status)
	wire.OptField(enc, "subscription_id", p.SubscriptionID)
	wire.OptField(enc, "tax", p.Tax)
	wire.OptField(enc, "updated_at", p.UpdatedAt)
}

func (p *Payment) DecodeWire(path string, data []byte) error {
	return decodeResource(path, data, p.ReadFields, &p.Extra)
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	return p.DecodeWire("", data)
}

func (p Payment) MarshalJSON() ([]byte, error) {
	return encodeResource(p.WriteFields, p.Extra)
}

// Validate checks every enum in the payment, its customer, billing address,
// disputes and refunds, and returns the first unknown value.
func (p Payment) Validate() error {
	return wire.FirstError(
		wire.CheckNested("billing", p.Billing.Validate()),
		wire.CheckEnum("currency", p.Currency),
		wire.CheckNested("customer", p.Customer.Validate()),
		wire.CheckEach("disputes", p.Disputes, Dispute.Validate),
		wire.CheckEach("refunds", p.Refunds, Refund.Validate),
		wire.CheckEnum("settlement_currency", p.SettlementCurrency),
		wire.CheckOptEnum("card_issuing_country", p.CardIssuingCountry),
		wire.CheckOptEnum("status", p.Status),
	)
}

func (p Payment) Clone() Payment {
	out := p
	out.Billing = p.Billing.Clone()
	out.Customer = p.Customer.Clone()
	out.Disputes = cloneEach(p.Disputes, Dispute.Clone)
	out.Metadata = cloneStrings(p.Metadata)
	out.Refunds = cloneEach(p.Refunds, Refund.Clone)
	out.ProductCart = cloneOptEach(p.ProductCart, ProductCartItem.Clone)
	out.Extra = p.Extra.Clone()
	return out
}
