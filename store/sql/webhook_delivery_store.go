package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/webhooks"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const defaultClaimLease = 30 * time.Second

// WebhookDeliveryStore is the bun-backed delivery ledger. Claim ids have the
// form <record id>:<attempt> so a stale worker cannot settle a newer attempt.
type WebhookDeliveryStore struct {
	Now func() time.Time

	db   *bun.DB
	repo repository.Repository[*webhookDeliveryRecord]
}

func NewWebhookDeliveryStore(db *bun.DB) (*WebhookDeliveryStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*webhookDeliveryRecord](db, webhookDeliveryHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid webhook delivery repository wiring: %w", err)
		}
	}
	return &WebhookDeliveryStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *WebhookDeliveryStore) Claim(
	ctx context.Context,
	providerID string,
	deliveryID string,
	payload []byte,
	lease time.Duration,
) (webhooks.DeliveryRecord, bool, error) {
	if s == nil || s.db == nil {
		return webhooks.DeliveryRecord{}, false, fmt.Errorf("sqlstore: webhook delivery store is not configured")
	}
	providerID = strings.TrimSpace(providerID)
	deliveryID = strings.TrimSpace(deliveryID)
	if providerID == "" || deliveryID == "" {
		return webhooks.DeliveryRecord{}, false, fmt.Errorf("sqlstore: provider id and delivery id are required")
	}
	if lease <= 0 {
		lease = defaultClaimLease
	}

	var (
		result  webhooks.DeliveryRecord
		claimed bool
	)
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := s.now()
		leaseUntil := now.Add(lease)

		existing := &webhookDeliveryRecord{}
		err := tx.NewSelect().
			Model(existing).
			Where("?TableAlias.provider_id = ?", providerID).
			Where("?TableAlias.delivery_id = ?", deliveryID).
			Limit(1).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if errors.Is(err, sql.ErrNoRows) {
			id := uuid.NewString()
			record := &webhookDeliveryRecord{
				ID:            id,
				ProviderID:    providerID,
				DeliveryID:    deliveryID,
				ClaimID:       claimID(id, 1),
				Status:        webhooks.DeliveryStatusProcessing,
				Attempts:      1,
				Payload:       append([]byte(nil), payload...),
				NextAttemptAt: &leaseUntil,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if _, insertErr := s.repo.CreateTx(ctx, tx, record); insertErr != nil {
				return insertErr
			}
			result = webhookDeliveryToDomain(record)
			claimed = true
			return nil
		}

		if !claimable(existing, now) {
			result = webhookDeliveryToDomain(existing)
			return nil
		}

		nextAttempt := existing.Attempts + 1
		nextClaimID := claimID(existing.ID, nextAttempt)
		res, updateErr := tx.NewUpdate().
			Model((*webhookDeliveryRecord)(nil)).
			Set("status = ?", webhooks.DeliveryStatusProcessing).
			Set("attempts = ?", nextAttempt).
			Set("claim_id = ?", nextClaimID).
			Set("next_attempt_at = ?", leaseUntil).
			Set("updated_at = ?", now).
			Where("id = ?", existing.ID).
			Where("attempts = ?", existing.Attempts).
			Exec(ctx)
		if updateErr != nil {
			return updateErr
		}
		if affected, _ := res.RowsAffected(); affected != 1 {
			result = webhookDeliveryToDomain(existing)
			return nil
		}

		existing.Status = webhooks.DeliveryStatusProcessing
		existing.Attempts = nextAttempt
		existing.ClaimID = nextClaimID
		existing.NextAttemptAt = &leaseUntil
		existing.UpdatedAt = now
		result = webhookDeliveryToDomain(existing)
		claimed = true
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			existing, getErr := s.Get(ctx, providerID, deliveryID)
			if getErr != nil {
				return webhooks.DeliveryRecord{}, false, getErr
			}
			return existing, false, nil
		}
		return webhooks.DeliveryRecord{}, false, err
	}
	return result, claimed, nil
}

func (s *WebhookDeliveryStore) Get(
	ctx context.Context,
	providerID string,
	deliveryID string,
) (webhooks.DeliveryRecord, error) {
	if s == nil || s.db == nil {
		return webhooks.DeliveryRecord{}, fmt.Errorf("sqlstore: webhook delivery store is not configured")
	}
	record := &webhookDeliveryRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.provider_id = ?", strings.TrimSpace(providerID)).
		Where("?TableAlias.delivery_id = ?", strings.TrimSpace(deliveryID)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webhooks.DeliveryRecord{}, fmt.Errorf(
				"sqlstore: %w: provider %q delivery %q",
				webhooks.ErrDeliveryNotFound,
				providerID,
				deliveryID,
			)
		}
		return webhooks.DeliveryRecord{}, err
	}
	return webhookDeliveryToDomain(record), nil
}

func (s *WebhookDeliveryStore) Complete(ctx context.Context, claim string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: webhook delivery store is not configured")
	}
	id, attempt, err := parseClaimID(claim)
	if err != nil {
		return err
	}
	_, err = s.db.NewUpdate().
		Model((*webhookDeliveryRecord)(nil)).
		Set("status = ?", webhooks.DeliveryStatusProcessed).
		Set("next_attempt_at = NULL").
		Set("last_error = ?", "").
		Set("updated_at = ?", s.now()).
		Where("id = ?", id).
		Where("attempts = ?", attempt).
		Where("status = ?", webhooks.DeliveryStatusProcessing).
		Exec(ctx)
	return err
}

func (s *WebhookDeliveryStore) Fail(
	ctx context.Context,
	claim string,
	cause error,
	nextAttemptAt time.Time,
	maxAttempts int,
) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: webhook delivery store is not configured")
	}
	id, attempt, err := parseClaimID(claim)
	if err != nil {
		return err
	}
	if maxAttempts <= 0 {
		maxAttempts = 8
	}
	now := s.now()
	lastError := ""
	if cause != nil {
		lastError = cause.Error()
	}

	update := s.db.NewUpdate().
		Model((*webhookDeliveryRecord)(nil)).
		Set("last_error = ?", lastError).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("attempts = ?", attempt).
		Where("status = ?", webhooks.DeliveryStatusProcessing)
	if attempt >= maxAttempts {
		update = update.
			Set("status = ?", webhooks.DeliveryStatusDead).
			Set("next_attempt_at = NULL")
	} else {
		if nextAttemptAt.IsZero() {
			nextAttemptAt = now
		}
		update = update.
			Set("status = ?", webhooks.DeliveryStatusRetryReady).
			Set("next_attempt_at = ?", nextAttemptAt.UTC())
	}
	_, err = update.Exec(ctx)
	return err
}

// ListDue returns retry-ready deliveries and expired leases, oldest first.
func (s *WebhookDeliveryStore) ListDue(ctx context.Context, now time.Time, limit int) ([]webhooks.DeliveryRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlstore: webhook delivery store is not configured")
	}
	records := []webhookDeliveryRecord{}
	query := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.status IN (?)", bun.In([]string{
			webhooks.DeliveryStatusRetryReady,
			webhooks.DeliveryStatusProcessing,
		})).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.next_attempt_at IS NULL").
				WhereOr("?TableAlias.next_attempt_at <= ?", now.UTC())
		}).
		Order("next_attempt_at ASC", "created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]webhooks.DeliveryRecord, 0, len(records))
	for i := range records {
		out = append(out, webhookDeliveryToDomain(&records[i]))
	}
	return out, nil
}

func (s *WebhookDeliveryStore) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func claimable(record *webhookDeliveryRecord, now time.Time) bool {
	switch record.Status {
	case webhooks.DeliveryStatusProcessed, webhooks.DeliveryStatusDead:
		return false
	case webhooks.DeliveryStatusRetryReady, webhooks.DeliveryStatusProcessing:
		if record.NextAttemptAt != nil && now.Before(record.NextAttemptAt.UTC()) {
			return false
		}
	}
	return true
}

func claimID(recordID string, attempt int) string {
	return recordID + ":" + strconv.Itoa(attempt)
}

func parseClaimID(claim string) (string, int, error) {
	claim = strings.TrimSpace(claim)
	idx := strings.LastIndex(claim, ":")
	if idx <= 0 {
		return "", 0, fmt.Errorf("sqlstore: invalid claim id %q", claim)
	}
	attempt, err := strconv.Atoi(claim[idx+1:])
	if err != nil || attempt <= 0 {
		return "", 0, fmt.Errorf("sqlstore: invalid claim id %q", claim)
	}
	return claim[:idx], attempt, nil
}

func webhookDeliveryToDomain(record *webhookDeliveryRecord) webhooks.DeliveryRecord {
	if record == nil {
		return webhooks.DeliveryRecord{}
	}
	result := webhooks.DeliveryRecord{
		ID:         record.ID,
		ClaimID:    record.ClaimID,
		ProviderID: record.ProviderID,
		DeliveryID: record.DeliveryID,
		Status:     record.Status,
		Attempts:   record.Attempts,
		Payload:    append([]byte(nil), record.Payload...),
		LastError:  record.LastError,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
	if record.NextAttemptAt != nil {
		value := record.NextAttemptAt.UTC()
		result.NextAttemptAt = &value
	}
	return result
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}
