package inbound

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"
	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/webhooks"

	goerrors "github.com/goliatone/go-errors"
)

// IdempotencyKeyExtractor derives the claim key of a delivery.
type IdempotencyKeyExtractor func(delivery webhooks.Delivery) (string, error)

type Router struct {
	Store      ClaimStore
	ExtractKey IdempotencyKeyExtractor
	KeyTTL     time.Duration
	Observer   *core.Observer

	mu       sync.RWMutex
	byType   map[events.EventType][]webhooks.EventHandler
	byFamily map[models.PayloadType][]webhooks.EventHandler
	fallback webhooks.EventHandler
}

func NewRouter(store ClaimStore) *Router {
	return &Router{
		Store:      store,
		ExtractKey: DefaultIdempotencyKeyExtractor,
		KeyTTL:     10 * time.Minute,
		byType:     map[events.EventType][]webhooks.EventHandler{},
		byFamily:   map[models.PayloadType][]webhooks.EventHandler{},
	}
}

// On registers handler for one known event type. Handlers of the same type
// run in registration order.
func (r *Router) On(eventType events.EventType, handler webhooks.EventHandler) error {
	if r == nil {
		return inboundInternal("inbound: router is nil", nil)
	}
	if handler == nil {
		return inboundBadInput("inbound: handler is nil", map[string]any{"event_type": string(eventType)})
	}
	if !eventType.IsKnown() {
		return inboundBadInput(
			fmt.Sprintf("inbound: unknown event type %q", eventType),
			map[string]any{"event_type": string(eventType)},
		)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byType == nil {
		r.byType = map[events.EventType][]webhooks.EventHandler{}
	}
	r.byType[eventType] = append(r.byType[eventType], handler)
	return nil
}

// OnFamily registers handler for every event type of a payload family.
func (r *Router) OnFamily(family models.PayloadType, handler webhooks.EventHandler) error {
	if r == nil {
		return inboundInternal("inbound: router is nil", nil)
	}
	if handler == nil {
		return inboundBadInput("inbound: handler is nil", map[string]any{"payload_type": string(family)})
	}
	if !family.IsKnown() {
		return inboundBadInput(
			fmt.Sprintf("inbound: unknown payload type %q", family),
			map[string]any{"payload_type": string(family)},
		)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byFamily == nil {
		r.byFamily = map[models.PayloadType][]webhooks.EventHandler{}
	}
	r.byFamily[family] = append(r.byFamily[family], handler)
	return nil
}

// OnUnhandled sets the handler for events no other handler matches. Only one
// fallback may be registered.
func (r *Router) OnUnhandled(handler webhooks.EventHandler) error {
	if r == nil {
		return inboundInternal("inbound: router is nil", nil)
	}
	if handler == nil {
		return inboundBadInput("inbound: handler is nil", nil)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallback != nil {
		return inboundError(
			"inbound: fallback handler already registered",
			goerrors.CategoryConflict,
			http.StatusConflict,
			core.ServiceErrorConflict,
			nil,
		)
	}
	r.fallback = handler
	return nil
}

// HandlersFor returns the handlers an event type routes to: exact handlers
// first, then family handlers, else the fallback.
func (r *Router) HandlersFor(eventType events.EventType) []webhooks.EventHandler {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]webhooks.EventHandler(nil), r.byType[eventType]...)
	if family := events.FamilyOf(eventType); family != "" {
		out = append(out, r.byFamily[family]...)
	}
	if len(out) == 0 && r.fallback != nil {
		out = append(out, r.fallback)
	}
	return out
}

// HandleEvent routes one delivery. Unrouted events without a fallback are
// acknowledged and dropped.
func (r *Router) HandleEvent(ctx context.Context, delivery webhooks.Delivery) (err error) {
	if r == nil {
		return inboundInternal("inbound: router is nil", nil)
	}
	if delivery.Event == nil {
		return inboundBadInput("inbound: delivery has no event", map[string]any{"delivery_id": delivery.DeliveryID})
	}
	eventType := delivery.Event.EventType()
	fields := map[string]any{
		"provider_id":  delivery.ProviderID,
		"delivery_id":  delivery.DeliveryID,
		"event_type":   string(eventType),
		"payload_type": string(delivery.Event.PayloadType()),
	}
	startedAt := time.Now()
	defer func() {
		r.Observer.ObserveOperation(ctx, startedAt, "route_event", err, fields)
	}()

	handlers := r.HandlersFor(eventType)
	fields["handlers"] = len(handlers)
	if len(handlers) == 0 {
		fields["unrouted"] = true
		return nil
	}

	claimID := ""
	if r.Store != nil {
		extractor := r.ExtractKey
		if extractor == nil {
			extractor = DefaultIdempotencyKeyExtractor
		}
		key, keyErr := extractor(delivery)
		if keyErr != nil {
			return inboundWrapError(
				keyErr,
				goerrors.CategoryBadInput,
				"inbound: resolve idempotency key",
				http.StatusBadRequest,
				core.ServiceErrorBadInput,
				fields,
			)
		}
		var accepted bool
		claimID, accepted, err = r.Store.Claim(ctx, key, r.keyTTL())
		if err != nil {
			return inboundWrapError(
				err,
				goerrors.CategoryOperation,
				"inbound: idempotency claim failed",
				http.StatusInternalServerError,
				core.ServiceErrorOperationFailed,
				map[string]any{"event_type": string(eventType), "idempotency": key},
			)
		}
		if !accepted {
			fields["deduped"] = true
			return nil
		}
	}

	for _, handler := range handlers {
		if handlerErr := handler.HandleEvent(ctx, delivery); handlerErr != nil {
			wrapped := inboundWrapError(
				handlerErr,
				goerrors.CategoryOperation,
				"inbound: handler execution failed",
				http.StatusBadGateway,
				core.ServiceErrorOperationFailed,
				map[string]any{"event_type": string(eventType), "delivery_id": delivery.DeliveryID},
			)
			if r.Store != nil && claimID != "" {
				if failErr := r.Store.Fail(ctx, claimID, handlerErr, time.Time{}); failErr != nil {
					return errors.Join(
						wrapped,
						inboundWrapError(
							failErr,
							goerrors.CategoryOperation,
							"inbound: mark idempotency claim failed",
							http.StatusInternalServerError,
							core.ServiceErrorInternal,
							map[string]any{"claim_id": claimID},
						),
					)
				}
			}
			return wrapped
		}
	}

	if r.Store != nil && claimID != "" {
		if err := r.Store.Complete(ctx, claimID); err != nil {
			return inboundWrapError(
				err,
				goerrors.CategoryOperation,
				"inbound: complete idempotency claim",
				http.StatusInternalServerError,
				core.ServiceErrorOperationFailed,
				map[string]any{"claim_id": claimID},
			)
		}
	}
	return nil
}

// DefaultIdempotencyKeyExtractor keys on provider and delivery id, falling
// back to event type, resource id and timestamp for deliveries without one.
func DefaultIdempotencyKeyExtractor(delivery webhooks.Delivery) (string, error) {
	providerID := strings.TrimSpace(delivery.ProviderID)
	if providerID == "" {
		providerID = webhooks.DefaultProviderID
	}
	if deliveryID := strings.TrimSpace(delivery.DeliveryID); deliveryID != "" {
		return providerID + ":" + deliveryID, nil
	}
	if delivery.Event != nil {
		header := delivery.Event.Header()
		if resourceID := delivery.Event.ResourceID(); resourceID != "" && !header.Timestamp.IsZero() {
			return fmt.Sprintf("%s:%s:%s:%d", providerID, delivery.Event.EventType(), resourceID, header.Timestamp.UnixNano()), nil
		}
	}
	return "", inboundBadInput("inbound: idempotency key is required", map[string]any{
		"provider_id": providerID,
	})
}

func (r *Router) keyTTL() time.Duration {
	if r != nil && r.KeyTTL > 0 {
		return r.KeyTTL
	}
	return 10 * time.Minute
}

var _ webhooks.EventHandler = (*Router)(nil)
