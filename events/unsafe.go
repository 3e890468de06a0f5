package events

import (
	"encoding/json"

	"github.com/goliatone/go-paywebhooks/models"
)

// UnsafeEvent is a delivery decoded without committing to a schema. Data
// holds the payload exactly as received.
type UnsafeEvent struct {
	Envelope
	Data json.RawMessage

	variant    Event
	variantErr error
}

func (u UnsafeEvent) EventType() EventType {
	return u.Type
}

// Variant returns the typed event when the discriminant is known and the
// payload matched its schema.
func (u UnsafeEvent) Variant() (Event, bool) {
	if u.variant == nil || u.variantErr != nil {
		return nil, false
	}
	return u.variant, true
}

// VariantError is the payload decode failure for a known discriminant.
func (u UnsafeEvent) VariantError() error {
	return u.variantErr
}

func (u UnsafeEvent) PayloadType() models.PayloadType {
	return FamilyOf(u.Type)
}

// Validate reports an unknown discriminant or the first unknown enum value
// in the typed payload as *InvalidDataError. A known discriminant whose
// payload failed its schema reports the stored *MalformedInputError, the
// same error Strict returns.
func (u UnsafeEvent) Validate() error {
	if variant, ok := u.Variant(); ok {
		return variant.Validate()
	}
	if u.variantErr != nil {
		return u.variantErr
	}
	return UnknownEvent{Envelope: u.Envelope, Data: u.Data}.Validate()
}

// Strict converts to the strict representation: the typed variant, an
// UnknownEvent, or the payload decode error.
func (u UnsafeEvent) Strict() (Event, error) {
	if u.variantErr != nil {
		return nil, u.variantErr
	}
	if u.variant != nil {
		return u.variant, nil
	}
	return UnknownEvent{Envelope: u.Envelope.clone(), Data: append(json.RawMessage(nil), u.Data...)}, nil
}

func (u UnsafeEvent) MarshalJSON() ([]byte, error) {
	return encodeEvent(u.Envelope, u.Type, u.Data)
}

func (u UnsafeEvent) Clone() UnsafeEvent {
	out := UnsafeEvent{
		Envelope:   u.Envelope.clone(),
		Data:       append(json.RawMessage(nil), u.Data...),
		variantErr: u.variantErr,
	}
	if u.variant != nil {
		out.variant = u.variant.Clone()
	}
	return out
}
