package events

import (
	"encoding/json"

	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/wire"
)

// UnknownEvent carries a delivery whose type has no registered schema. The
// payload is kept as received.
type UnknownEvent struct {
	Envelope
	Data json.RawMessage
}

func (e UnknownEvent) EventType() EventType { return e.Type }

func (UnknownEvent) PayloadType() models.PayloadType { return "" }

func (UnknownEvent) ResourceID() string { return "" }

// Validate always fails: the discriminant is outside the known set.
func (e UnknownEvent) Validate() error {
	return wire.CheckEnum("type", e.Type)
}

func (e UnknownEvent) Clone() Event {
	return UnknownEvent{
		Envelope: e.Envelope.clone(),
		Data:     append(json.RawMessage(nil), e.Data...),
	}
}

func (e UnknownEvent) MarshalJSON() ([]byte, error) {
	return encodeEvent(e.Envelope, e.Type, e.Data)
}

func (e *UnknownEvent) UnmarshalJSON(data []byte) error {
	env, payload, err := decodeEnvelope(data)
	if err != nil {
		return err
	}
	*e = UnknownEvent{Envelope: env, Data: payload}
	return nil
}

func (UnknownEvent) isEvent() {}

var _ Event = UnknownEvent{}
