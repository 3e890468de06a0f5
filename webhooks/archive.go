package webhooks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-paywebhooks/events"
)

var ErrArchivedEventNotFound = errors.New("archived event not found")

// ArchivedEvent is a handled delivery kept with its original body so it can
// be decoded again later.
type ArchivedEvent struct {
	ID          string
	ProviderID  string
	DeliveryID  string
	BusinessID  string
	EventType   string
	PayloadType string
	ResourceID  string
	OccurredAt  time.Time
	Body        []byte
	CreatedAt   time.Time
}

// Decode decodes the archived body with decoder, or the default decoder when nil.
func (a ArchivedEvent) Decode(decoder *events.Decoder) (events.Event, error) {
	return decoder.DecodeStrict(a.Body)
}

type EventArchive interface {
	Append(ctx context.Context, delivery Delivery) (ArchivedEvent, error)
	Get(ctx context.Context, id string) (ArchivedEvent, error)
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]ArchivedEvent, error)
}

// ArchiveHandler returns an EventHandler appending every delivery to archive.
func ArchiveHandler(archive EventArchive) EventHandler {
	return EventHandlerFunc(func(ctx context.Context, delivery Delivery) error {
		if archive == nil {
			return fmt.Errorf("webhooks: event archive is required")
		}
		_, err := archive.Append(ctx, delivery)
		return err
	})
}

// NewArchivedEvent projects a delivery onto its archive row. ID and CreatedAt
// are left to the archive.
func NewArchivedEvent(delivery Delivery) (ArchivedEvent, error) {
	if delivery.Event == nil {
		return ArchivedEvent{}, fmt.Errorf("webhooks: delivery event is required")
	}
	providerID := strings.TrimSpace(delivery.ProviderID)
	deliveryID := strings.TrimSpace(delivery.DeliveryID)
	if providerID == "" || deliveryID == "" {
		return ArchivedEvent{}, fmt.Errorf("webhooks: provider id and delivery id are required")
	}
	body := delivery.Body
	if len(body) == 0 {
		encoded, err := delivery.Event.MarshalJSON()
		if err != nil {
			return ArchivedEvent{}, fmt.Errorf("webhooks: encode delivery event: %w", err)
		}
		body = encoded
	}
	header := delivery.Event.Header()
	payloadType := string(delivery.Event.PayloadType())
	if payloadType == "" {
		payloadType = string(events.FamilyOf(header.Type))
	}
	return ArchivedEvent{
		ProviderID:  providerID,
		DeliveryID:  deliveryID,
		BusinessID:  header.BusinessID,
		EventType:   string(header.Type),
		PayloadType: payloadType,
		ResourceID:  delivery.Event.ResourceID(),
		OccurredAt:  header.Timestamp.UTC(),
		Body:        append([]byte(nil), body...),
	}, nil
}

// MemoryEventArchive keeps one entry per provider and delivery id.
type MemoryEventArchive struct {
	Now func() time.Time

	mu     sync.RWMutex
	byID   map[string]ArchivedEvent
	byKey  map[string]string
	nextID int
}

func NewMemoryEventArchive() *MemoryEventArchive {
	return &MemoryEventArchive{
		byID:  map[string]ArchivedEvent{},
		byKey: map[string]string{},
	}
}

func (a *MemoryEventArchive) Append(_ context.Context, delivery Delivery) (ArchivedEvent, error) {
	if a == nil {
		return ArchivedEvent{}, fmt.Errorf("webhooks: memory event archive is nil")
	}
	entry, err := NewArchivedEvent(delivery)
	if err != nil {
		return ArchivedEvent{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.byID == nil {
		a.byID = map[string]ArchivedEvent{}
		a.byKey = map[string]string{}
	}
	key := ledgerKey(entry.ProviderID, entry.DeliveryID)
	if id, ok := a.byKey[key]; ok {
		return cloneArchived(a.byID[id]), nil
	}
	a.nextID++
	entry.ID = fmt.Sprintf("evt_%06d", a.nextID)
	entry.CreatedAt = a.now()
	a.byID[entry.ID] = entry
	a.byKey[key] = entry.ID
	return cloneArchived(entry), nil
}

func (a *MemoryEventArchive) Get(_ context.Context, id string) (ArchivedEvent, error) {
	if a == nil {
		return ArchivedEvent{}, fmt.Errorf("webhooks: memory event archive is nil")
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	entry, ok := a.byID[strings.TrimSpace(id)]
	if !ok {
		return ArchivedEvent{}, fmt.Errorf("webhooks: %w: %q", ErrArchivedEventNotFound, id)
	}
	return cloneArchived(entry), nil
}

// ListByBusiness returns the newest events first.
func (a *MemoryEventArchive) ListByBusiness(_ context.Context, businessID string, limit int) ([]ArchivedEvent, error) {
	if a == nil {
		return nil, fmt.Errorf("webhooks: memory event archive is nil")
	}
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return nil, fmt.Errorf("webhooks: business id is required")
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := []ArchivedEvent{}
	for _, entry := range a.byID {
		if entry.BusinessID == businessID {
			out = append(out, cloneArchived(entry))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *MemoryEventArchive) now() time.Time {
	if a != nil && a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func cloneArchived(entry ArchivedEvent) ArchivedEvent {
	out := entry
	out.Body = append([]byte(nil), entry.Body...)
	return out
}

var _ EventArchive = (*MemoryEventArchive)(nil)
