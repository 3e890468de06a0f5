package sqlstore_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/security"
	sqlstore "github.com/goliatone/go-paywebhooks/store/sql"
)

func TestEventArchive_SealsBodiesAtRest(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()
	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("new repository factory: %v", err)
	}

	cipher, err := security.NewAppKeyCipherFromString("archive-key", security.WithKeyID("archive-v1"))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	plain := factory.EventArchive()
	if _, err := plain.Append(ctx, decodedDelivery(t, "msg_plain", fixtures.Envelope("refund.succeeded", fixtures.Refund, ""))); err != nil {
		t.Fatalf("append plaintext: %v", err)
	}

	sealed, err := sqlstore.NewEventArchive(factory.DB())
	if err != nil {
		t.Fatalf("new archive: %v", err)
	}
	sealed.Cipher = cipher

	body := []byte(fixtures.DisputeAccepted)
	stored, err := sealed.Append(ctx, decodedDelivery(t, "msg_sealed", body))
	if err != nil {
		t.Fatalf("append sealed: %v", err)
	}
	if !bytes.Equal(stored.Body, body) {
		t.Fatalf("expected append to return the plaintext body")
	}

	var raw []byte
	if err := factory.DB().NewSelect().
		Table("webhook_events").
		Column("body").
		Where("id = ?", stored.ID).
		Scan(ctx, &raw); err != nil {
		t.Fatalf("select raw body: %v", err)
	}
	if !security.IsSealed(raw) || bytes.Contains(raw, []byte("dispute_id")) {
		t.Fatalf("expected sealed body at rest, got %q", raw)
	}

	loaded, err := sealed.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("get sealed: %v", err)
	}
	if !bytes.Equal(loaded.Body, body) {
		t.Fatalf("expected decrypted body, got %q", loaded.Body)
	}

	listed, err := sealed.ListByBusiness(ctx, "bus_1", 10)
	if err != nil {
		t.Fatalf("list mixed bodies: %v", err)
	}
	if len(listed) != 1 || !bytes.Contains(listed[0].Body, []byte("ref_1")) {
		t.Fatalf("expected plaintext row to read through cipher, got %+v", listed)
	}

	if _, err := plain.Get(ctx, stored.ID); err != nil {
		t.Fatalf("get without cipher: %v", err)
	}
}
