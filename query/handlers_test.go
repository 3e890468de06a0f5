package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-paywebhooks/events"
	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

func TestDecodeEventQuery_Strict(t *testing.T) {
	result, err := NewDecodeEventQuery(nil).Query(context.Background(), DecodeEventMessage{
		Body: []byte(fixtures.DisputeAccepted),
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.EventType != events.EventTypeDisputeAccepted || result.PayloadType != models.PayloadType("Dispute") || !result.Known {
		t.Fatalf("unexpected decode result %+v", result)
	}
	if _, ok := result.Event.(events.DisputeAcceptedEvent); !ok {
		t.Fatalf("expected DisputeAcceptedEvent, got %T", result.Event)
	}
	if result.Unsafe != nil {
		t.Fatalf("expected no unsafe view for strict decode")
	}
}

func TestDecodeEventQuery_UnknownEnumNeedsValidation(t *testing.T) {
	body := []byte(strings.Replace(fixtures.DisputeAccepted, "pre_dispute", "arbitration", 1))
	qry := NewDecodeEventQuery(nil)

	if _, err := qry.Query(context.Background(), DecodeEventMessage{Body: body}); err != nil {
		t.Fatalf("expected permissive decode to accept unknown enum, got %v", err)
	}
	_, err := qry.Query(context.Background(), DecodeEventMessage{Body: body, ValidatePayload: true})
	if !errors.Is(err, events.ErrInvalidData) {
		t.Fatalf("expected invalid data error, got %v", err)
	}
}

func TestDecodeEventQuery_Unsafe(t *testing.T) {
	body := fixtures.Envelope("payout.created", `{"payout_id":"po_1"}`, "")
	result, err := NewDecodeEventQuery(nil).Query(context.Background(), DecodeEventMessage{Body: body, Unsafe: true})
	if err != nil {
		t.Fatalf("decode unsafe: %v", err)
	}
	if result.Known || result.EventType != "payout.created" || result.Unsafe == nil {
		t.Fatalf("unexpected unsafe result %+v", result)
	}
	if !strings.Contains(string(result.Unsafe.Data), "po_1") {
		t.Fatalf("expected raw data to be kept, got %s", result.Unsafe.Data)
	}
	if result.Event != nil {
		t.Fatalf("expected no strict event for unsafe decode")
	}
}

func TestDecodeEventQuery_MalformedBody(t *testing.T) {
	_, err := NewDecodeEventQuery(nil).Query(context.Background(), DecodeEventMessage{Body: []byte(`{"type":`)})
	if !errors.Is(err, events.ErrMalformedInput) {
		t.Fatalf("expected malformed input error, got %v", err)
	}
}

func TestGetDeliveryQuery_DefaultsProvider(t *testing.T) {
	ctx := context.Background()
	ledger := webhooks.NewMemoryLedger()
	if _, _, err := ledger.Claim(ctx, webhooks.DefaultProviderID, "msg_1", []byte("{}"), 0); err != nil {
		t.Fatalf("claim: %v", err)
	}

	record, err := NewGetDeliveryQuery(ledger).Query(ctx, GetDeliveryMessage{DeliveryID: " msg_1 "})
	if err != nil {
		t.Fatalf("get delivery: %v", err)
	}
	if record.ProviderID != webhooks.DefaultProviderID || record.Status != webhooks.DeliveryStatusProcessing {
		t.Fatalf("unexpected delivery record %+v", record)
	}

	_, err = NewGetDeliveryQuery(ledger).Query(ctx, GetDeliveryMessage{ProviderID: "other", DeliveryID: "msg_1"})
	if !errors.Is(err, webhooks.ErrDeliveryNotFound) {
		t.Fatalf("expected ErrDeliveryNotFound, got %v", err)
	}
}

func TestArchiveQueries_Delegate(t *testing.T) {
	ctx := context.Background()
	archive := webhooks.NewMemoryEventArchive()
	body := fixtures.Envelope("refund.succeeded", fixtures.Refund, "")
	event, err := events.UnwrapWebhookEvent(body)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	stored, err := archive.Append(ctx, webhooks.Delivery{ProviderID: "payments", DeliveryID: "msg_1", Event: event, Body: body})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	loaded, err := NewGetArchivedEventQuery(archive).Query(ctx, GetArchivedEventMessage{ID: stored.ID})
	if err != nil {
		t.Fatalf("get archived event: %v", err)
	}
	if loaded.EventType != "refund.succeeded" || loaded.ResourceID != "ref_1" {
		t.Fatalf("unexpected archived event %+v", loaded)
	}

	listed, err := NewListBusinessEventsQuery(archive).Query(ctx, ListBusinessEventsMessage{BusinessID: "bus_1"})
	if err != nil {
		t.Fatalf("list business events: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != stored.ID {
		t.Fatalf("unexpected listing %+v", listed)
	}
}
