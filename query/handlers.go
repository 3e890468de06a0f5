package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-paywebhooks/events"
	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

type DeliveryReader interface {
	Get(ctx context.Context, providerID string, deliveryID string) (webhooks.DeliveryRecord, error)
}

type ArchiveReader interface {
	Get(ctx context.Context, id string) (webhooks.ArchivedEvent, error)
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]webhooks.ArchivedEvent, error)
}

// DecodedEvent holds Event for strict decodes and Unsafe for lenient ones.
type DecodedEvent struct {
	EventType   events.EventType
	PayloadType models.PayloadType
	Known       bool
	Event       events.Event
	Unsafe      *events.UnsafeEvent
}

type DecodeEventQuery struct {
	decoder *events.Decoder
}

// NewDecodeEventQuery uses decoder for strict decodes; nil selects the
// default permissive decoder.
func NewDecodeEventQuery(decoder *events.Decoder) *DecodeEventQuery {
	return &DecodeEventQuery{decoder: decoder}
}

func (q *DecodeEventQuery) Query(_ context.Context, msg DecodeEventMessage) (DecodedEvent, error) {
	if err := msg.Validate(); err != nil {
		return DecodedEvent{}, err
	}
	var decoder *events.Decoder
	if q != nil {
		decoder = q.decoder
	}

	if msg.Unsafe {
		out, err := decoder.DecodeUnsafe(msg.Body)
		if err != nil {
			return DecodedEvent{}, err
		}
		if msg.ValidatePayload {
			if err := out.Validate(); err != nil {
				return DecodedEvent{}, err
			}
		}
		_, known := out.Variant()
		return DecodedEvent{
			EventType:   out.EventType(),
			PayloadType: out.PayloadType(),
			Known:       known,
			Unsafe:      &out,
		}, nil
	}

	event, err := decoder.DecodeStrict(msg.Body)
	if err != nil {
		return DecodedEvent{}, err
	}
	if msg.ValidatePayload {
		if err := events.Validate(event); err != nil {
			return DecodedEvent{}, err
		}
	}
	return DecodedEvent{
		EventType:   event.EventType(),
		PayloadType: event.PayloadType(),
		Known:       event.EventType().IsKnown(),
		Event:       event,
	}, nil
}

type GetDeliveryQuery struct {
	reader DeliveryReader
}

func NewGetDeliveryQuery(reader DeliveryReader) *GetDeliveryQuery {
	return &GetDeliveryQuery{reader: reader}
}

func (q *GetDeliveryQuery) Query(ctx context.Context, msg GetDeliveryMessage) (webhooks.DeliveryRecord, error) {
	if q == nil || q.reader == nil {
		return webhooks.DeliveryRecord{}, queryDependencyError("query: delivery reader is required")
	}
	if err := msg.Validate(); err != nil {
		return webhooks.DeliveryRecord{}, err
	}
	providerID := strings.TrimSpace(msg.ProviderID)
	if providerID == "" {
		providerID = webhooks.DefaultProviderID
	}
	return q.reader.Get(ctx, providerID, strings.TrimSpace(msg.DeliveryID))
}

type GetArchivedEventQuery struct {
	reader ArchiveReader
}

func NewGetArchivedEventQuery(reader ArchiveReader) *GetArchivedEventQuery {
	return &GetArchivedEventQuery{reader: reader}
}

func (q *GetArchivedEventQuery) Query(ctx context.Context, msg GetArchivedEventMessage) (webhooks.ArchivedEvent, error) {
	if q == nil || q.reader == nil {
		return webhooks.ArchivedEvent{}, queryDependencyError("query: archive reader is required")
	}
	if err := msg.Validate(); err != nil {
		return webhooks.ArchivedEvent{}, err
	}
	return q.reader.Get(ctx, strings.TrimSpace(msg.ID))
}

type ListBusinessEventsQuery struct {
	reader ArchiveReader
}

func NewListBusinessEventsQuery(reader ArchiveReader) *ListBusinessEventsQuery {
	return &ListBusinessEventsQuery{reader: reader}
}

func (q *ListBusinessEventsQuery) Query(
	ctx context.Context,
	msg ListBusinessEventsMessage,
) ([]webhooks.ArchivedEvent, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: archive reader is required")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.ListByBusiness(ctx, strings.TrimSpace(msg.BusinessID), msg.Limit)
}
