package webhooks

import (
	"context"

	"github.com/goliatone/go-paywebhooks/events"
)

// Delivery is a decoded event together with its transport identity.
type Delivery struct {
	ProviderID string
	DeliveryID string
	Attempt    int
	Event      events.Event
	Body       []byte
	Metadata   map[string]any
}

type EventHandler interface {
	HandleEvent(ctx context.Context, delivery Delivery) error
}

type EventHandlerFunc func(ctx context.Context, delivery Delivery) error

func (f EventHandlerFunc) HandleEvent(ctx context.Context, delivery Delivery) error {
	if f == nil {
		return nil
	}
	return f(ctx, delivery)
}

var _ EventHandler = EventHandlerFunc(nil)
