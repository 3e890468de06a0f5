package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/webhooks"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventArchive stores one row per handled delivery with the original body.
// It is also an EventHandler so it can sit behind a router or processor.
// When Cipher is set, bodies are sealed before insert and opened on read.
type EventArchive struct {
	Now    func() time.Time
	Cipher core.BodyCipher

	db   *bun.DB
	repo repository.Repository[*webhookEventRecord]
}

func NewEventArchive(db *bun.DB) (*EventArchive, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*webhookEventRecord](db, webhookEventHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid webhook event repository wiring: %w", err)
		}
	}
	return &EventArchive{db: db, repo: repo}, nil
}

// Append archives delivery. Appending the same provider and delivery id again
// returns the existing row.
func (a *EventArchive) Append(ctx context.Context, delivery webhooks.Delivery) (webhooks.ArchivedEvent, error) {
	if a == nil || a.repo == nil {
		return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: event archive is not configured")
	}
	entry, err := webhooks.NewArchivedEvent(delivery)
	if err != nil {
		return webhooks.ArchivedEvent{}, err
	}
	record := eventRecordFromDomain(entry)
	record.ID = uuid.NewString()
	record.CreatedAt = a.now()
	if a.Cipher != nil {
		sealed, err := a.Cipher.Encrypt(ctx, record.Body)
		if err != nil {
			return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: seal event body: %w", err)
		}
		record.Body = sealed
	}

	if _, err := a.repo.Create(ctx, record); err != nil {
		if isUniqueViolation(err) {
			return a.getByDelivery(ctx, entry.ProviderID, entry.DeliveryID)
		}
		return webhooks.ArchivedEvent{}, err
	}
	entry = record.toDomain()
	entry.Body = append([]byte(nil), delivery.Body...)
	return entry, nil
}

func (a *EventArchive) Get(ctx context.Context, id string) (webhooks.ArchivedEvent, error) {
	if a == nil || a.db == nil {
		return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: event archive is not configured")
	}
	record := &webhookEventRecord{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: %w: %q", webhooks.ErrArchivedEventNotFound, id)
		}
		return webhooks.ArchivedEvent{}, err
	}
	return a.open(ctx, record)
}

// ListByBusiness returns the newest events first.
func (a *EventArchive) ListByBusiness(ctx context.Context, businessID string, limit int) ([]webhooks.ArchivedEvent, error) {
	if a == nil || a.repo == nil {
		return nil, fmt.Errorf("sqlstore: event archive is not configured")
	}
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return nil, fmt.Errorf("sqlstore: business id is required")
	}
	if limit <= 0 {
		limit = 100
	}
	records, _, err := a.repo.List(ctx,
		repository.SelectBy("business_id", "=", businessID),
		repository.OrderBy("occurred_at DESC"),
		repository.OrderBy("id DESC"),
		repository.SelectPaginate(limit, 0),
	)
	if err != nil {
		return nil, err
	}
	out := make([]webhooks.ArchivedEvent, 0, len(records))
	for _, record := range records {
		entry, err := a.open(ctx, record)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (a *EventArchive) HandleEvent(ctx context.Context, delivery webhooks.Delivery) error {
	_, err := a.Append(ctx, delivery)
	return err
}

func (a *EventArchive) getByDelivery(ctx context.Context, providerID string, deliveryID string) (webhooks.ArchivedEvent, error) {
	record := &webhookEventRecord{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.provider_id = ?", providerID).
		Where("?TableAlias.delivery_id = ?", deliveryID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return webhooks.ArchivedEvent{}, err
	}
	return a.open(ctx, record)
}

func (a *EventArchive) open(ctx context.Context, record *webhookEventRecord) (webhooks.ArchivedEvent, error) {
	entry := record.toDomain()
	if a.Cipher == nil || len(entry.Body) == 0 {
		return entry, nil
	}
	body, err := a.Cipher.Decrypt(ctx, entry.Body)
	if err != nil {
		return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: open event body %q: %w", record.ID, err)
	}
	entry.Body = body
	return entry, nil
}

func (a *EventArchive) now() time.Time {
	if a != nil && a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func eventRecordFromDomain(entry webhooks.ArchivedEvent) *webhookEventRecord {
	return &webhookEventRecord{
		ID:          entry.ID,
		ProviderID:  entry.ProviderID,
		DeliveryID:  entry.DeliveryID,
		BusinessID:  entry.BusinessID,
		EventType:   entry.EventType,
		PayloadType: entry.PayloadType,
		ResourceID:  entry.ResourceID,
		OccurredAt:  entry.OccurredAt.UTC(),
		Body:        append([]byte(nil), entry.Body...),
		CreatedAt:   entry.CreatedAt,
	}
}

func (r *webhookEventRecord) toDomain() webhooks.ArchivedEvent {
	if r == nil {
		return webhooks.ArchivedEvent{}
	}
	return webhooks.ArchivedEvent{
		ID:          r.ID,
		ProviderID:  r.ProviderID,
		DeliveryID:  r.DeliveryID,
		BusinessID:  r.BusinessID,
		EventType:   r.EventType,
		PayloadType: r.PayloadType,
		ResourceID:  r.ResourceID,
		OccurredAt:  r.OccurredAt.UTC(),
		Body:        append([]byte(nil), r.Body...),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}
