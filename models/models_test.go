package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/wire"
)

type resource interface {
	Validate() error
}

func decodeInto(t *testing.T, raw string, target any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestResources_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		target func() any
	}{
		{"dispute", fixtures.Dispute, func() any { return &Dispute{} }},
		{"refund", fixtures.Refund, func() any { return &Refund{} }},
		{"payment", fixtures.Payment, func() any { return &Payment{} }},
		{"subscription", fixtures.Subscription, func() any { return &Subscription{} }},
		{"license key", fixtures.LicenseKey, func() any { return &LicenseKey{} }},
		{"billing", fixtures.Billing, func() any { return &BillingAddress{} }},
		{"customer", fixtures.Customer, func() any { return &CustomerLimitedDetails{} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first := tc.target()
			decodeInto(t, tc.raw, first)
			encoded, err := json.Marshal(first)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			second := tc.target()
			decodeInto(t, string(encoded), second)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("round trip mismatch\nfirst:  %+v\nsecond: %+v", first, second)
			}
			if v, ok := first.(resource); ok {
				if err := v.Validate(); err != nil {
					t.Fatalf("expected sample to validate: %v", err)
				}
			}
		})
	}
}

func TestPayment_DecodesNestedValues(t *testing.T) {
	var payment Payment
	decodeInto(t, fixtures.Payment, &payment)

	if payment.Billing.Country != CountryCodeGB {
		t.Fatalf("expected billing country GB, got %q", payment.Billing.Country)
	}
	if len(payment.Disputes) != 1 || payment.Disputes[0].DisputeStage != DisputeStagePreDispute {
		t.Fatalf("unexpected disputes %+v", payment.Disputes)
	}
	if len(payment.Refunds) != 1 || payment.Refunds[0].Status != RefundStatusSucceeded {
		t.Fatalf("unexpected refunds %+v", payment.Refunds)
	}
	if !payment.Refunds[0].Reason.IsNull() {
		t.Fatalf("expected explicit null refund reason")
	}
	if !payment.CheckoutSessionID.IsNull() {
		t.Fatalf("expected explicit null checkout_session_id")
	}
	if payment.InvoiceID.IsSet() {
		t.Fatalf("expected invoice_id unset")
	}
	cart, ok := payment.ProductCart.Get()
	if !ok || len(cart) != 1 || cart[0].ProductID != "prod_1" {
		t.Fatalf("unexpected product cart %v", payment.ProductCart)
	}
	if status := payment.Status.Or(""); status != IntentStatusSucceeded {
		t.Fatalf("expected succeeded status, got %q", status)
	}
	want := time.Date(2024, 5, 1, 9, 59, 0, 500000000, time.UTC)
	if !payment.CreatedAt.Equal(want) {
		t.Fatalf("expected created_at %s, got %s", want, payment.CreatedAt)
	}
	if !payment.Customer.PhoneNumber.IsNull() || payment.Customer.Metadata.IsSet() {
		t.Fatalf("unexpected customer optionals %+v", payment.Customer)
	}
}

func TestPayment_ValidateReportsNestedPath(t *testing.T) {
	var payment Payment
	raw := strings.Replace(fixtures.Payment, `"status":"succeeded","amount"`, `"status":"reversed","amount"`, 1)
	decodeInto(t, raw, &payment)

	err := payment.Validate()
	var invalid *wire.InvalidDataError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected invalid data error, got %v", err)
	}
	if invalid.Path != "refunds[0].status" || invalid.Value != "reversed" {
		t.Fatalf("unexpected invalid field %s=%s", invalid.Path, invalid.Value)
	}
}

func TestValidate_UnknownEnumsPerField(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		from   string
		to     string
		target resource
		path   string
	}{
		{"billing country", fixtures.Payment, `"country":"GB"`, `"country":"XX"`, &Payment{}, "billing.country"},
		{"payment currency", fixtures.Payment, `"currency":"USD","customer"`, `"currency":"ZZZ","customer"`, &Payment{}, "currency"},
		{"card country", fixtures.Payment, `"card_issuing_country":"US"`, `"card_issuing_country":"QQ"`, &Payment{}, "card_issuing_country"},
		{"settlement currency", fixtures.Payment, `"settlement_currency":"USD"`, `"settlement_currency":"ABC"`, &Payment{}, "settlement_currency"},
		{"dispute stage", fixtures.Dispute, `"pre_dispute"`, `"arbitration"`, &Dispute{}, "dispute_stage"},
		{"dispute status", fixtures.Dispute, `"dispute_opened"`, `"dispute_reopened"`, &Dispute{}, "dispute_status"},
		{"subscription interval", fixtures.Subscription, `"payment_frequency_interval":"month"`, `"payment_frequency_interval":"fortnight"`, &Subscription{}, "payment_frequency_interval"},
		{"subscription status", fixtures.Subscription, `"status":"active"`, `"status":"paused"`, &Subscription{}, "status"},
		{"license status", fixtures.LicenseKey, `"status":"active"`, `"status":"revoked"`, &LicenseKey{}, "status"},
		{"refund currency", fixtures.Refund, `"currency":"USD"`, `"currency":"usd"`, &Refund{}, "currency"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := strings.Replace(tc.raw, tc.from, tc.to, 1)
			if raw == tc.raw {
				t.Fatalf("fixture replacement %q did not apply", tc.from)
			}
			decodeInto(t, raw, tc.target)
			var invalid *wire.InvalidDataError
			if err := tc.target.Validate(); !errors.As(err, &invalid) || invalid.Path != tc.path {
				t.Fatalf("expected invalid data at %s, got %v", tc.path, err)
			}
		})
	}
}

func TestLicenseKey_OmittedNullablesAreUnset(t *testing.T) {
	var key LicenseKey
	decodeInto(t, fixtures.LicenseKey, &key)
	for name, opt := range map[string]interface{ IsSet() bool }{
		"activations_limit": key.ActivationsLimit,
		"expires_at":        key.ExpiresAt,
		"subscription_id":   key.SubscriptionID,
	} {
		if opt.IsSet() {
			t.Fatalf("expected %s unset", name)
		}
		if key.Extra.Has(name) {
			t.Fatalf("expected %s absent from extras", name)
		}
	}
	encoded, err := json.Marshal(key)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(string(encoded), "expires_at") {
		t.Fatalf("expected unset fields to stay omitted, got %s", encoded)
	}
}

func TestResources_StrictDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		path string
	}{
		{"missing required", strings.Replace(fixtures.LicenseKey, `"key":"KEY-123",`, "", 1), "key"},
		{"wrong type", strings.Replace(fixtures.LicenseKey, `"instances_count":0`, `"instances_count":"0"`, 1), "instances_count"},
		{"required null", strings.Replace(fixtures.LicenseKey, `"status":"active"`, `"status":null`, 1), "status"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var key LicenseKey
			err := key.DecodeWire("", []byte(tc.raw))
			var malformed *wire.MalformedInputError
			if !errors.As(err, &malformed) || malformed.Path != tc.path {
				t.Fatalf("expected malformed input at %s, got %v", tc.path, err)
			}
		})
	}

	var subscription Subscription
	raw := strings.Replace(fixtures.Subscription, `"quantity":2`, `"quantity":2.5`, 1)
	err := subscription.DecodeWire("data", []byte(raw))
	var malformed *wire.MalformedInputError
	if !errors.As(err, &malformed) || malformed.Path != "data.addons[0].quantity" {
		t.Fatalf("expected nested element path, got %v", err)
	}
}

func TestResources_KeepExtraFields(t *testing.T) {
	raw := strings.Replace(fixtures.Dispute, `"remarks":"remarks"`, `"remarks":"remarks","evidence":{"files":2}`, 1)
	var dispute Dispute
	decodeInto(t, raw, &dispute)
	if string(dispute.Extra["evidence"]) != `{"files":2}` {
		t.Fatalf("expected evidence extra, got %v", dispute.Extra)
	}
	encoded, err := json.Marshal(dispute)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(encoded), `"evidence":{"files":2}`) {
		t.Fatalf("expected extra to be re-emitted, got %s", encoded)
	}
}

func TestClone_IsDeep(t *testing.T) {
	var payment Payment
	decodeInto(t, fixtures.Payment, &payment)
	clone := payment.Clone()
	if !reflect.DeepEqual(payment, clone) {
		t.Fatalf("expected clone to equal original")
	}
	clone.Metadata["order"] = "43"
	clone.Refunds[0].Customer.Name = "Grace"
	cart, _ := clone.ProductCart.Get()
	cart[0].Quantity = 9
	if payment.Metadata["order"] != "42" || payment.Refunds[0].Customer.Name != "Ada" {
		t.Fatalf("clone shares state with original")
	}
	original, _ := payment.ProductCart.Get()
	if original[0].Quantity != 1 {
		t.Fatalf("clone shares product cart with original")
	}
}

func TestEnums_IsKnown(t *testing.T) {
	if !CurrencyUSD.IsKnown() || Currency("usd").IsKnown() {
		t.Fatalf("unexpected currency membership")
	}
	if !CountryCode("AF").IsKnown() || CountryCode("ZZ").IsKnown() {
		t.Fatalf("unexpected country membership")
	}
	if !IntentStatusPartiallyCapturedAndCapturable.IsKnown() || IntentStatus("captured").IsKnown() {
		t.Fatalf("unexpected intent status membership")
	}
	if !PayloadTypeLicenseKey.IsKnown() || PayloadType("license_key").IsKnown() {
		t.Fatalf("unexpected payload type membership")
	}
	if !TimeIntervalYear.IsKnown() || TimeInterval("Year").IsKnown() {
		t.Fatalf("unexpected interval membership")
	}
}
