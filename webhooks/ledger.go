package webhooks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DeliveryStatusPending    = "pending"
	DeliveryStatusProcessing = "processing"
	DeliveryStatusProcessed  = "processed"
	DeliveryStatusRetryReady = "retry_ready"
	DeliveryStatusDead       = "dead"
)

var ErrDeliveryNotFound = errors.New("delivery not found")

type DeliveryRecord struct {
	ID            string
	ClaimID       string
	ProviderID    string
	DeliveryID    string
	Status        string
	Attempts      int
	Payload       []byte
	LastError     string
	NextAttemptAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeliveryLedger tracks the claim lifecycle of each delivery.
//
// Claim returns claimed=false when the delivery is already processed, dead,
// or leased to another worker. Fail moves the delivery to retry_ready, or to
// dead once Attempts reaches maxAttempts.
type DeliveryLedger interface {
	Claim(
		ctx context.Context,
		providerID string,
		deliveryID string,
		payload []byte,
		lease time.Duration,
	) (DeliveryRecord, bool, error)
	Get(ctx context.Context, providerID string, deliveryID string) (DeliveryRecord, error)
	Complete(ctx context.Context, claimID string) error
	Fail(ctx context.Context, claimID string, cause error, nextAttemptAt time.Time, maxAttempts int) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]DeliveryRecord, error)
}

type RetryPolicy interface {
	NextDelay(attempt int) time.Duration
}

type ExponentialRetryPolicy struct {
	Initial time.Duration
	Max     time.Duration
}

func (p ExponentialRetryPolicy) NextDelay(attempt int) time.Duration {
	initial := p.Initial
	if initial <= 0 {
		initial = time.Second
	}
	maximum := p.Max
	if maximum <= 0 {
		maximum = 30 * time.Second
	}
	delay := initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maximum {
			return maximum
		}
	}
	if delay > maximum {
		return maximum
	}
	return delay
}

// MemoryLedger is an in-process DeliveryLedger. Claim ids have the form
// <provider>:<delivery>:<attempt>.
type MemoryLedger struct {
	Now func() time.Time

	mu      sync.Mutex
	records map[string]DeliveryRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: map[string]DeliveryRecord{}}
}

func (l *MemoryLedger) Claim(
	_ context.Context,
	providerID string,
	deliveryID string,
	payload []byte,
	lease time.Duration,
) (DeliveryRecord, bool, error) {
	if l == nil {
		return DeliveryRecord{}, false, fmt.Errorf("webhooks: memory ledger is nil")
	}
	providerID = strings.TrimSpace(providerID)
	deliveryID = strings.TrimSpace(deliveryID)
	if providerID == "" || deliveryID == "" {
		return DeliveryRecord{}, false, fmt.Errorf("webhooks: provider id and delivery id are required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.records == nil {
		l.records = map[string]DeliveryRecord{}
	}

	key := ledgerKey(providerID, deliveryID)
	now := l.now()
	if lease <= 0 {
		lease = 30 * time.Second
	}

	record, ok := l.records[key]
	if !ok {
		record = DeliveryRecord{
			ID:         key,
			ProviderID: providerID,
			DeliveryID: deliveryID,
			Status:     DeliveryStatusPending,
			Payload:    append([]byte(nil), payload...),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	switch record.Status {
	case DeliveryStatusProcessed, DeliveryStatusDead:
		return cloneRecord(record), false, nil
	case DeliveryStatusRetryReady, DeliveryStatusProcessing:
		if record.NextAttemptAt != nil && now.Before(record.NextAttemptAt.UTC()) {
			return cloneRecord(record), false, nil
		}
	}

	record.Status = DeliveryStatusProcessing
	record.Attempts++
	record.ClaimID = key + ":" + strconv.Itoa(record.Attempts)
	next := now.Add(lease)
	record.NextAttemptAt = &next
	record.UpdatedAt = now
	l.records[key] = record
	return cloneRecord(record), true, nil
}

func (l *MemoryLedger) Get(_ context.Context, providerID string, deliveryID string) (DeliveryRecord, error) {
	if l == nil {
		return DeliveryRecord{}, fmt.Errorf("webhooks: memory ledger is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	record, ok := l.records[ledgerKey(providerID, deliveryID)]
	if !ok {
		return DeliveryRecord{}, fmt.Errorf("webhooks: %w: provider %q delivery %q", ErrDeliveryNotFound, providerID, deliveryID)
	}
	return cloneRecord(record), nil
}

func (l *MemoryLedger) Complete(_ context.Context, claimID string) error {
	if l == nil {
		return fmt.Errorf("webhooks: memory ledger is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key, record, ok, err := l.claimed(claimID)
	if err != nil || !ok {
		return err
	}
	record.Status = DeliveryStatusProcessed
	record.NextAttemptAt = nil
	record.LastError = ""
	record.UpdatedAt = l.now()
	l.records[key] = record
	return nil
}

func (l *MemoryLedger) Fail(_ context.Context, claimID string, cause error, nextAttemptAt time.Time, maxAttempts int) error {
	if l == nil {
		return fmt.Errorf("webhooks: memory ledger is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key, record, ok, err := l.claimed(claimID)
	if err != nil || !ok {
		return err
	}
	if maxAttempts <= 0 {
		maxAttempts = 8
	}
	if record.Attempts >= maxAttempts {
		record.Status = DeliveryStatusDead
		record.NextAttemptAt = nil
	} else {
		record.Status = DeliveryStatusRetryReady
		if nextAttemptAt.IsZero() {
			nextAttemptAt = l.now()
		}
		next := nextAttemptAt.UTC()
		record.NextAttemptAt = &next
	}
	if cause != nil {
		record.LastError = cause.Error()
	}
	record.UpdatedAt = l.now()
	l.records[key] = record
	return nil
}

// ListDue returns retry-ready deliveries and expired leases, oldest first.
func (l *MemoryLedger) ListDue(_ context.Context, now time.Time, limit int) ([]DeliveryRecord, error) {
	if l == nil {
		return nil, fmt.Errorf("webhooks: memory ledger is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []DeliveryRecord{}
	for _, record := range l.records {
		if record.Status != DeliveryStatusRetryReady && record.Status != DeliveryStatusProcessing {
			continue
		}
		if record.NextAttemptAt != nil && now.Before(record.NextAttemptAt.UTC()) {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	sort.Slice(out, func(i, j int) bool {
		return dueAt(out[i]).Before(dueAt(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *MemoryLedger) claimed(claimID string) (string, DeliveryRecord, bool, error) {
	key, attempt, err := parseClaimID(claimID)
	if err != nil {
		return "", DeliveryRecord{}, false, err
	}
	record, ok := l.records[key]
	if !ok {
		return "", DeliveryRecord{}, false, fmt.Errorf("webhooks: delivery for claim %q not found", claimID)
	}
	// A stale claim must not overwrite a newer attempt.
	if record.Status != DeliveryStatusProcessing || record.Attempts != attempt {
		return key, record, false, nil
	}
	return key, record, true, nil
}

func (l *MemoryLedger) now() time.Time {
	if l != nil && l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}

func dueAt(record DeliveryRecord) time.Time {
	if record.NextAttemptAt != nil {
		return record.NextAttemptAt.UTC()
	}
	return record.UpdatedAt
}

func cloneRecord(record DeliveryRecord) DeliveryRecord {
	out := record
	out.Payload = append([]byte(nil), record.Payload...)
	if record.NextAttemptAt != nil {
		next := *record.NextAttemptAt
		out.NextAttemptAt = &next
	}
	return out
}

func ledgerKey(providerID string, deliveryID string) string {
	return strings.TrimSpace(providerID) + ":" + strings.TrimSpace(deliveryID)
}

func parseClaimID(claimID string) (string, int, error) {
	parts := strings.Split(strings.TrimSpace(claimID), ":")
	if len(parts) < 3 {
		return "", 0, fmt.Errorf("webhooks: invalid claim id %q", claimID)
	}
	attempt, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || attempt <= 0 {
		return "", 0, fmt.Errorf("webhooks: invalid claim id %q", claimID)
	}
	return strings.Join(parts[:len(parts)-1], ":"), attempt, nil
}

var _ DeliveryLedger = (*MemoryLedger)(nil)
