package events

import (
	"encoding/json"

	"github.com/goliatone/go-paywebhooks/models"
)

// Event is a decoded delivery. The set of implementations is closed: one
// type per registered discriminant plus UnknownEvent.
type Event interface {
	json.Marshaler
	EventType() EventType
	Header() Envelope
	// PayloadType is the family implied by the discriminant, empty for
	// UnknownEvent.
	PayloadType() models.PayloadType
	// ResourceID is the id of the payload resource, empty for UnknownEvent.
	ResourceID() string
	Validate() error
	Clone() Event
	isEvent()
}
