package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type webhookDeliveryRecord struct {
	bun.BaseModel `bun:"table:webhook_deliveries,alias:wd"`

	ID            string     `bun:"id,pk"`
	ProviderID    string     `bun:"provider_id,notnull"`
	DeliveryID    string     `bun:"delivery_id,notnull"`
	ClaimID       string     `bun:"claim_id,notnull"`
	Status        string     `bun:"status,notnull"`
	Attempts      int        `bun:"attempts,notnull"`
	Payload       []byte     `bun:"payload"`
	LastError     string     `bun:"last_error,notnull"`
	NextAttemptAt *time.Time `bun:"next_attempt_at,nullzero"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type webhookEventRecord struct {
	bun.BaseModel `bun:"table:webhook_events,alias:we"`

	ID          string    `bun:"id,pk"`
	ProviderID  string    `bun:"provider_id,notnull"`
	DeliveryID  string    `bun:"delivery_id,notnull"`
	BusinessID  string    `bun:"business_id,notnull"`
	EventType   string    `bun:"event_type,notnull"`
	PayloadType string    `bun:"payload_type,notnull"`
	ResourceID  string    `bun:"resource_id,notnull"`
	OccurredAt  time.Time `bun:"occurred_at,notnull"`
	Body        []byte    `bun:"body,notnull"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
