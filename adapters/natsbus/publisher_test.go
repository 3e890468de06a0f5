package natsbus

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"
	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/webhooks"
	"github.com/nats-io/nats.go"
)

type capturingConn struct {
	msgs []*nats.Msg
	err  error
}

func (c *capturingConn) PublishMsg(msg *nats.Msg) error {
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, msg)
	return nil
}

func webhooksRequest(deliveryID string, body []byte) core.InboundRequest {
	return core.InboundRequest{
		Headers: map[string]string{webhooks.HeaderWebhookID: deliveryID},
		Body:    body,
	}
}

func decode(t *testing.T, body []byte) events.Event {
	t.Helper()
	event, err := events.NewDecoder().DecodeStrict(body)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return event
}

func TestPublisher_PublishesOriginalBody(t *testing.T) {
	conn := &capturingConn{}
	publisher := NewPublisher(conn)
	body := []byte(fixtures.DisputeAccepted)

	err := publisher.HandleEvent(context.Background(), webhooks.Delivery{
		ProviderID: "payments",
		DeliveryID: "msg_1",
		Attempt:    2,
		Event:      decode(t, body),
		Body:       body,
	})
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if len(conn.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(conn.msgs))
	}
	msg := conn.msgs[0]
	if msg.Subject != "paywebhooks.events.dispute.accepted" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if string(msg.Data) != fixtures.DisputeAccepted {
		t.Fatalf("expected original body, got %s", msg.Data)
	}
	checks := map[string]string{
		HeaderMsgID:       "payments:msg_1",
		HeaderEventType:   "dispute.accepted",
		HeaderPayloadType: "Dispute",
		HeaderBusinessID:  "business_id",
		HeaderAttempt:     "2",
	}
	for key, want := range checks {
		if got := msg.Header.Get(key); got != want {
			t.Fatalf("header %s = %q, want %q", key, got, want)
		}
	}
}

func TestPublisher_ReencodesWhenBodyMissing(t *testing.T) {
	conn := &capturingConn{}
	publisher := NewPublisher(conn)
	publisher.Prefix = "billing."

	event := decode(t, fixtures.Envelope("payout.created", `{"payout_id":"po_1"}`, ""))
	if err := publisher.HandleEvent(context.Background(), webhooks.Delivery{
		ProviderID: "payments",
		DeliveryID: "msg_2",
		Event:      event,
	}); err != nil {
		t.Fatalf("handle event: %v", err)
	}
	msg := conn.msgs[0]
	if msg.Subject != "billing.payout.created" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if len(msg.Data) == 0 {
		t.Fatalf("expected re-encoded body")
	}
	redecoded := decode(t, msg.Data)
	if redecoded.EventType() != "payout.created" {
		t.Fatalf("expected re-encoded unknown event, got %q", redecoded.EventType())
	}
	if msg.Header.Get(HeaderPayloadType) != "" {
		t.Fatalf("expected no payload type header for unknown event")
	}
}

func TestPublisher_Errors(t *testing.T) {
	var unconfigured *Publisher
	if err := unconfigured.HandleEvent(context.Background(), webhooks.Delivery{}); err == nil {
		t.Fatalf("expected nil publisher to fail")
	}

	conn := &capturingConn{err: errors.New("connection closed")}
	publisher := NewPublisher(conn)
	body := []byte(fixtures.DisputeAccepted)
	err := publisher.HandleEvent(context.Background(), webhooks.Delivery{
		ProviderID: "payments",
		DeliveryID: "msg_3",
		Event:      decode(t, body),
		Body:       body,
	})
	if err == nil || !errors.Is(err, conn.err) {
		t.Fatalf("expected publish error to wrap, got %v", err)
	}

	if _, err := NewPublisher(&capturingConn{}).Message(webhooks.Delivery{}); err == nil {
		t.Fatalf("expected missing event to fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewPublisher(&capturingConn{}).HandleEvent(ctx, webhooks.Delivery{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled context, got %v", err)
	}
}

func TestPublisher_Subject(t *testing.T) {
	publisher := NewPublisher(&capturingConn{})
	cases := map[string]string{
		"payment.succeeded": "paywebhooks.events.payment.succeeded",
		"":                  "paywebhooks.events.unknown",
		"odd type>*":        "paywebhooks.events.odd_type__",
	}
	for input, want := range cases {
		if got := publisher.Subject(input); got != want {
			t.Fatalf("Subject(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPublisher_BehindProcessor(t *testing.T) {
	conn := &capturingConn{}
	archive := webhooks.NewMemoryEventArchive()
	processor := webhooks.NewProcessor(nil, webhooks.NewMemoryLedger(), webhooks.EventHandlerFunc(
		func(ctx context.Context, delivery webhooks.Delivery) error {
			if err := NewPublisher(conn).HandleEvent(ctx, delivery); err != nil {
				return err
			}
			return webhooks.ArchiveHandler(archive).HandleEvent(ctx, delivery)
		},
	))
	body := fixtures.Envelope("refund.succeeded", fixtures.Refund, "Refund")
	result, err := processor.Process(context.Background(), webhooksRequest("msg_router", body))
	if err != nil || !result.Accepted {
		t.Fatalf("process: %v %#v", err, result)
	}
	if len(conn.msgs) != 1 || conn.msgs[0].Subject != "paywebhooks.events.refund.succeeded" {
		t.Fatalf("expected refund to be published, got %#v", conn.msgs)
	}
	listed, err := archive.ListByBusiness(context.Background(), "bus_1", 10)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected refund to be archived, got %v %#v", err, listed)
	}
}
