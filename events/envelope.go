package events

import (
	"encoding/json"
	"time"

	"github.com/goliatone/go-paywebhooks/wire"
)

// Envelope is the part of every delivery shared by all event types.
type Envelope struct {
	BusinessID string
	Type       EventType
	Timestamp  time.Time
	Extra      wire.Extras
}

// Header returns the envelope; it is promoted to every event.
func (e Envelope) Header() Envelope {
	return e
}

func (e Envelope) clone() Envelope {
	out := e
	out.Extra = e.Extra.Clone()
	return out
}

// decodeEnvelope splits a delivery body into its envelope and raw payload.
func decodeEnvelope(data []byte) (Envelope, json.RawMessage, error) {
	obj, err := wire.DecodeObject("", data)
	if err != nil {
		return Envelope{}, nil, err
	}
	r := wire.NewReader(obj)
	env := Envelope{
		BusinessID: wire.Read[string](r, "business_id"),
		Type:       wire.Read[EventType](r, "type"),
		Timestamp:  wire.Read[time.Time](r, "timestamp"),
	}
	payload := wire.Read[json.RawMessage](r, "data")
	if err := r.Err(); err != nil {
		return Envelope{}, nil, err
	}
	env.Extra = r.Extras()
	return env, payload, nil
}

// encodeEvent writes the envelope around an already encoded payload.
func encodeEvent(env Envelope, eventType EventType, payload json.RawMessage) ([]byte, error) {
	enc := wire.NewObjectEncoder()
	wire.Field(enc, "business_id", env.BusinessID)
	wire.Field(enc, "type", eventType)
	wire.Field(enc, "timestamp", env.Timestamp)
	wire.Field(enc, "data", payload)
	enc.Extras(env.Extra)
	return enc.Bytes()
}
