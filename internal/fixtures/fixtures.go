// Package fixtures holds sample webhook payloads shared by tests.
package fixtures

import (
	"encoding/json"
	"fmt"
)

const Customer = `{"customer_id":"cus_1","email":"ada@example.com","name":"Ada","phone_number":null}`

const Billing = `{"city":"London","country":"GB","state":"London","street":"1 Main St","zipcode":"N1 9GU"}`

const Dispute = `{"amount":"amount","business_id":"business_id","created_at":"2019-12-27T18:11:19.117Z","currency":"currency","dispute_id":"dispute_id","dispute_stage":"pre_dispute","dispute_status":"dispute_opened","payment_id":"payment_id","remarks":"remarks"}`

const Refund = `{"business_id":"bus_1","created_at":"2024-05-01T10:00:00Z","customer":` + Customer + `,"is_partial":false,"metadata":{},"payment_id":"pay_1","refund_id":"ref_1","status":"succeeded","amount":1500,"currency":"USD","reason":null}`

const Payment = `{"billing":` + Billing + `,"brand_id":"brand_1","business_id":"bus_1","created_at":"2024-05-01T09:59:00.5Z","currency":"USD","customer":` + Customer + `,"digital_products_delivered":true,"disputes":[` + Dispute + `],"metadata":{"order":"42"},"payment_id":"pay_1","refunds":[` + Refund + `],"settlement_amount":1500,"settlement_currency":"USD","total_amount":1500,"card_issuing_country":"US","card_last_four":"4242","card_network":"visa","card_type":"credit","checkout_session_id":null,"discount_id":null,"error_code":null,"error_message":null,"product_cart":[{"product_id":"prod_1","quantity":1}],"status":"succeeded","tax":0,"updated_at":null}`

const Subscription = `{"addons":[{"addon_id":"add_1","quantity":2}],"billing":` + Billing + `,"cancel_at_next_billing_date":false,"created_at":"2024-01-01T00:00:00Z","currency":"EUR","customer":` + Customer + `,"metadata":{},"meters":[{"measurement_unit":"call","meter_id":"mtr_1","name":"API calls","price_per_unit":"0.01","free_threshold":1000}],"next_billing_date":"2024-02-01T00:00:00Z","on_demand":false,"payment_frequency_count":1,"payment_frequency_interval":"month","previous_billing_date":"2024-01-01T00:00:00Z","product_id":"prod_1","quantity":1,"recurring_pre_tax_amount":999,"status":"active","subscription_id":"sub_1","subscription_period_count":12,"subscription_period_interval":"month","tax_inclusive":true,"trial_period_days":0,"cancelled_at":null,"discount_cycles_remaining":null,"discount_id":null,"expires_at":"2025-01-01T00:00:00Z","payment_method_id":"pm_1","tax_id":null}`

// LicenseKey omits every nullable field.
const LicenseKey = `{"id":"lic_1","business_id":"bus_1","created_at":"2024-05-01T10:00:00Z","customer_id":"cus_1","instances_count":0,"key":"KEY-123","payment_id":"pay_1","product_id":"prod_1","status":"active"}`

// DisputeAccepted is a complete dispute.accepted delivery body.
const DisputeAccepted = `{"business_id":"business_id","type":"dispute.accepted","timestamp":"2019-12-27T18:11:19.117Z","data":{"amount":"amount","business_id":"business_id","created_at":"2019-12-27T18:11:19.117Z","currency":"currency","dispute_id":"dispute_id","dispute_stage":"pre_dispute","dispute_status":"dispute_opened","payment_id":"payment_id","remarks":"remarks","payload_type":"Dispute"}}`

// PayloadFor returns the sample resource for a payload family name.
func PayloadFor(family string) string {
	switch family {
	case "Dispute":
		return Dispute
	case "Payment":
		return Payment
	case "Refund":
		return Refund
	case "Subscription":
		return Subscription
	case "LicenseKey":
		return LicenseKey
	default:
		return "{}"
	}
}

// Envelope builds a delivery body around data, adding payload_type when set.
func Envelope(eventType string, data string, payloadType string) []byte {
	if payloadType != "" {
		var members map[string]json.RawMessage
		if err := json.Unmarshal([]byte(data), &members); err != nil {
			panic(err)
		}
		members["payload_type"] = json.RawMessage(fmt.Sprintf("%q", payloadType))
		raw, err := json.Marshal(members)
		if err != nil {
			panic(err)
		}
		data = string(raw)
	}
	return []byte(fmt.Sprintf(`{"business_id":"bus_1","type":%q,"timestamp":"2024-05-01T10:00:00.123Z","data":%s}`, eventType, data))
}
