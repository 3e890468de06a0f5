package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/wire"
)

// Decoder turns delivery bodies into events. The zero value is ready to use
// and safe for concurrent use.
type Decoder struct {
	validate         bool
	checkPayloadType bool
	observer         *core.Observer
}

type DecoderOption func(*Decoder)

// WithValidation makes DecodeStrict fail with *InvalidDataError when the
// decoded event holds an unknown enum value. An unknown discriminant fails
// at path "type" instead of yielding UnknownEvent.
func WithValidation() DecoderOption {
	return func(d *Decoder) {
		d.validate = true
	}
}

// WithPayloadTypeCheck makes DecodeStrict reject payloads whose
// payload_type tag disagrees with the family of the discriminant.
func WithPayloadTypeCheck() DecoderOption {
	return func(d *Decoder) {
		d.checkPayloadType = true
	}
}

// WithObserver records a metric and a log line for each decode call.
func WithObserver(observer *core.Observer) DecoderOption {
	return func(d *Decoder) {
		d.observer = observer
	}
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// NewDecoderFromConfig builds a decoder honouring the decode.* settings.
func NewDecoderFromConfig(cfg core.DecodeConfig, opts ...DecoderOption) *Decoder {
	base := []DecoderOption{}
	if cfg.Validate {
		base = append(base, WithValidation())
	}
	if cfg.CheckPayloadType {
		base = append(base, WithPayloadTypeCheck())
	}
	return NewDecoder(append(base, opts...)...)
}

var defaultDecoder = NewDecoder()

// DecodeStrict decodes a delivery body. Known types decode with their
// registered schema; any other type yields UnknownEvent unless the decoder
// validates. Invalid JSON,
// missing required keys and JSON type mismatches fail with
// *MalformedInputError and no partial result.
func (d *Decoder) DecodeStrict(data []byte) (event Event, err error) {
	if d == nil {
		d = defaultDecoder
	}
	if d.observer != nil {
		startedAt := time.Now()
		defer func() {
			d.observer.ObserveOperation(context.Background(), startedAt, "decode_strict", err, decodeFields(data, event))
		}()
	}

	env, payload, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	variant, ok := Lookup(env.Type)
	if !ok {
		unknown := UnknownEvent{Envelope: env, Data: payload}
		if d.validate {
			return nil, unknown.Validate()
		}
		return unknown, nil
	}
	decoded, err := variant.Decode(env, payload)
	if err != nil {
		return nil, err
	}
	if d.checkPayloadType {
		if err := CheckPayloadType(decoded); err != nil {
			return nil, err
		}
	}
	if d.validate {
		if err := decoded.Validate(); err != nil {
			return nil, err
		}
	}
	return decoded, nil
}

// DecodeStrictDocument decodes an already parsed JSON document.
func (d *Decoder) DecodeStrictDocument(doc map[string]any) (Event, error) {
	data, err := marshalDocument(doc)
	if err != nil {
		return nil, err
	}
	return d.DecodeStrict(data)
}

// DecodeUnsafe decodes only the envelope. The payload is kept raw and the
// typed variant is attempted but never required.
func (d *Decoder) DecodeUnsafe(data []byte) (out UnsafeEvent, err error) {
	if d == nil {
		d = defaultDecoder
	}
	if d.observer != nil {
		startedAt := time.Now()
		defer func() {
			var event Event
			if variant, ok := out.Variant(); ok {
				event = variant
			}
			d.observer.ObserveOperation(context.Background(), startedAt, "decode_unsafe", err, decodeFields(data, event))
		}()
	}

	env, payload, err := decodeEnvelope(data)
	if err != nil {
		return UnsafeEvent{}, err
	}
	out = UnsafeEvent{Envelope: env, Data: payload}
	if variant, ok := Lookup(env.Type); ok {
		out.variant, out.variantErr = variant.Decode(env.clone(), payload)
	}
	return out, nil
}

func (d *Decoder) DecodeUnsafeDocument(doc map[string]any) (UnsafeEvent, error) {
	data, err := marshalDocument(doc)
	if err != nil {
		return UnsafeEvent{}, err
	}
	return d.DecodeUnsafe(data)
}

// Validate reports the first enum field of event holding an unknown value,
// including an unknown discriminant. It does not modify event.
func Validate(event Event) error {
	if event == nil {
		return wire.Malformed("", fmt.Errorf("event is nil"))
	}
	return event.Validate()
}

// CheckPayloadType reports a payload_type tag that disagrees with the family
// of the discriminant. An absent tag passes.
func CheckPayloadType(event Event) error {
	tagged, ok := event.(interface {
		TaggedPayloadType() wire.Opt[models.PayloadType]
	})
	if !ok {
		return nil
	}
	tag, ok := tagged.TaggedPayloadType().Get()
	if !ok || tag == event.PayloadType() {
		return nil
	}
	return wire.Invalid("data."+payloadTypeKey, string(tag))
}

// UnwrapWebhookEvent decodes data strictly with the default decoder.
func UnwrapWebhookEvent(data []byte) (Event, error) {
	return defaultDecoder.DecodeStrict(data)
}

// UnsafeUnwrapWebhookEvent decodes data with the default decoder, keeping
// the payload raw.
func UnsafeUnwrapWebhookEvent(data []byte) (UnsafeEvent, error) {
	return defaultDecoder.DecodeUnsafe(data)
}

func marshalDocument(doc map[string]any) ([]byte, error) {
	if doc == nil {
		return nil, wire.Malformed("", fmt.Errorf("document is nil"))
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, wire.Malformed("", err)
	}
	return data, nil
}

func decodeInto[E Event](data []byte, target *E) error {
	event, err := defaultDecoder.DecodeStrict(data)
	if err != nil {
		return err
	}
	typed, ok := event.(E)
	if !ok {
		var want E
		return wire.Malformed("type", fmt.Errorf("expected %q, got %q", want.EventType(), event.EventType()))
	}
	*target = typed
	return nil
}

func decodeFields(data []byte, event Event) map[string]any {
	fields := map[string]any{"body_bytes": len(data)}
	if event != nil {
		fields["event_type"] = string(event.EventType())
		fields["payload_type"] = string(event.PayloadType())
		return fields
	}
	if eventType, ok := PeekType(data); ok {
		fields["event_type"] = string(eventType)
	}
	if resourceID, ok := PeekResourceID(data); ok {
		fields["resource_id"] = resourceID
	}
	return fields
}
