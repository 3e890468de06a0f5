package events

import (
	"sort"

	"github.com/goliatone/go-paywebhooks/models"
	"github.com/tidwall/gjson"
)

// Variant pairs a discriminant with its payload family and schema.
type Variant struct {
	Type   EventType
	Family models.PayloadType
	decode func(env Envelope, payload []byte) (Event, error)
}

// Decode decodes payload with the variant schema and wraps it in env.
func (v Variant) Decode(env Envelope, payload []byte) (Event, error) {
	env.Type = v.Type
	return v.decode(env, payload)
}

var registry = buildRegistry(registeredVariants)

func buildRegistry(variants []Variant) map[EventType]Variant {
	out := make(map[EventType]Variant, len(variants))
	for _, variant := range variants {
		out[variant.Type] = variant
	}
	return out
}

// Lookup matches the discriminant exactly; there is no prefix or case folding.
func Lookup(eventType EventType) (Variant, bool) {
	variant, ok := registry[eventType]
	return variant, ok
}

// Registered lists every known discriminant in sorted order.
func Registered() []EventType {
	out := make([]EventType, 0, len(registry))
	for eventType := range registry {
		out = append(out, eventType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FamilyOf returns the payload family for a known discriminant, or "".
func FamilyOf(eventType EventType) models.PayloadType {
	variant, ok := Lookup(eventType)
	if !ok {
		return ""
	}
	return variant.Family
}

// RegisteredFor lists the discriminants of one payload family, sorted.
func RegisteredFor(family models.PayloadType) []EventType {
	out := []EventType{}
	for _, eventType := range Registered() {
		if registry[eventType].Family == family {
			out = append(out, eventType)
		}
	}
	return out
}

// PeekType reads the discriminant of a delivery body without decoding it.
func PeekType(body []byte) (EventType, bool) {
	result := gjson.GetBytes(body, "type")
	if result.Type != gjson.String {
		return "", false
	}
	return EventType(result.String()), true
}

// PeekResourceID reads the payload resource id of a delivery body without
// decoding it. Unknown types report false.
func PeekResourceID(body []byte) (string, bool) {
	eventType, ok := PeekType(body)
	if !ok {
		return "", false
	}
	field := resourceIDField(FamilyOf(eventType))
	if field == "" {
		return "", false
	}
	result := gjson.GetBytes(body, "data."+field)
	if result.Type != gjson.String || result.String() == "" {
		return "", false
	}
	return result.String(), true
}

func resourceIDField(family models.PayloadType) string {
	switch family {
	case models.PayloadTypeDispute:
		return "dispute_id"
	case models.PayloadTypePayment:
		return "payment_id"
	case models.PayloadTypeRefund:
		return "refund_id"
	case models.PayloadTypeSubscription:
		return "subscription_id"
	case models.PayloadTypeLicenseKey:
		return "id"
	default:
		return ""
	}
}
