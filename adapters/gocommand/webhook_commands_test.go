package gocommand

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-command"
	pwcommand "github.com/goliatone/go-paywebhooks/command"
	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	pwquery "github.com/goliatone/go-paywebhooks/query"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

func TestRegisterWebhookCommands_DispatchAndQuery(t *testing.T) {
	secret := "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
	ledger := webhooks.NewMemoryLedger()
	archive := webhooks.NewMemoryEventArchive()
	processor := webhooks.NewProcessor(
		webhooks.NewStandardVerifier(core.WebhookConfig{Secret: secret}),
		ledger,
		webhooks.ArchiveHandler(archive),
	)

	adapter := NewRegistryAdapter(command.NewRegistry())
	subs, err := RegisterWebhookCommands(adapter, WebhookCommandDeps{
		Processor:  processor,
		Deliveries: ledger,
		Archive:    archive,
	})
	if err != nil {
		t.Fatalf("register webhook commands: %v", err)
	}
	defer subs.Unsubscribe()
	if len(subs) != 7 {
		t.Fatalf("expected 7 subscriptions, got %d", len(subs))
	}

	body := fixtures.Envelope("refund.succeeded", fixtures.Refund, "Refund")
	headers, err := webhooks.SignedHeaders(secret, "msg_dispatch", time.Now(), body)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := Dispatch(context.Background(), pwcommand.ProcessWebhookMessage{
		Request: core.InboundRequest{Headers: headers, Body: body},
	}); err != nil {
		t.Fatalf("dispatch process webhook: %v", err)
	}

	record, err := Query[pwquery.GetDeliveryMessage, webhooks.DeliveryRecord](
		context.Background(),
		pwquery.GetDeliveryMessage{DeliveryID: "msg_dispatch"},
	)
	if err != nil {
		t.Fatalf("query delivery: %v", err)
	}
	if record.Status != webhooks.DeliveryStatusProcessed {
		t.Fatalf("expected processed delivery, got %q", record.Status)
	}

	decoded, err := Query[pwquery.DecodeEventMessage, pwquery.DecodedEvent](
		context.Background(),
		pwquery.DecodeEventMessage{Body: body},
	)
	if err != nil {
		t.Fatalf("query decode: %v", err)
	}
	if !decoded.Known || decoded.EventType != "refund.succeeded" {
		t.Fatalf("unexpected decoded event %#v", decoded)
	}

	listed, err := Query[pwquery.ListBusinessEventsMessage, []webhooks.ArchivedEvent](
		context.Background(),
		pwquery.ListBusinessEventsMessage{BusinessID: "bus_1"},
	)
	if err != nil {
		t.Fatalf("query business events: %v", err)
	}
	if len(listed) != 1 || listed[0].DeliveryID != "msg_dispatch" {
		t.Fatalf("unexpected archived events %#v", listed)
	}
}

func TestRegisterWebhookCommands_DecodeOnly(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	subs, err := RegisterWebhookCommands(adapter, WebhookCommandDeps{})
	if err != nil {
		t.Fatalf("register webhook commands: %v", err)
	}
	defer subs.Unsubscribe()
	if len(subs) != 1 {
		t.Fatalf("expected only the decode query, got %d subscriptions", len(subs))
	}
}

func TestRegisterWebhookCommands_RequiresRegistry(t *testing.T) {
	if _, err := RegisterWebhookCommands(nil, WebhookCommandDeps{}); err == nil {
		t.Fatalf("expected nil adapter to fail")
	}
}
