package kafkabus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-paywebhooks/events"
	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/webhooks"
	"github.com/segmentio/kafka-go"
)

type capturingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func decode(t *testing.T, body []byte) events.Event {
	t.Helper()
	event, err := events.NewDecoder().DecodeStrict(body)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return event
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisher_KeysByBusinessAndMapsTopics(t *testing.T) {
	writer := &capturingWriter{}
	publisher := NewPublisher(writer)
	publisher.TopicByEvent = map[string]string{"dispute.accepted": "billing.disputes"}
	publisher.Now = func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) }

	dispute := []byte(fixtures.DisputeAccepted)
	refund := fixtures.Envelope("refund.succeeded", fixtures.Refund, "Refund")
	for i, body := range [][]byte{dispute, refund} {
		err := publisher.HandleEvent(context.Background(), webhooks.Delivery{
			ProviderID: "payments",
			DeliveryID: "msg_" + string(rune('a'+i)),
			Attempt:    1,
			Event:      decode(t, body),
			Body:       body,
		})
		if err != nil {
			t.Fatalf("handle event %d: %v", i, err)
		}
	}

	if len(writer.msgs) != 2 {
		t.Fatalf("expected two messages, got %d", len(writer.msgs))
	}
	first, second := writer.msgs[0], writer.msgs[1]
	if first.Topic != "billing.disputes" || string(first.Key) != "business_id" {
		t.Fatalf("unexpected dispute message topic=%q key=%q", first.Topic, first.Key)
	}
	if second.Topic != DefaultTopic || string(second.Key) != "bus_1" {
		t.Fatalf("unexpected refund message topic=%q key=%q", second.Topic, second.Key)
	}
	if string(first.Value) != string(dispute) {
		t.Fatalf("expected original body to be published")
	}
	if header(first, HeaderEventType) != "dispute.accepted" || header(first, HeaderPayloadType) != "Dispute" {
		t.Fatalf("unexpected headers %+v", first.Headers)
	}
	if header(second, HeaderDeliveryID) != "msg_b" || header(second, HeaderAttempt) != "1" {
		t.Fatalf("unexpected headers %+v", second.Headers)
	}
	if !first.Time.Equal(time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected message time %s", first.Time)
	}
}

func TestPublisher_ReencodesWhenBodyMissing(t *testing.T) {
	writer := &capturingWriter{}
	publisher := NewPublisher(writer)
	event := decode(t, []byte(fixtures.DisputeAccepted))

	if err := publisher.HandleEvent(context.Background(), webhooks.Delivery{ProviderID: "payments", DeliveryID: "msg_1", Event: event}); err != nil {
		t.Fatalf("handle event: %v", err)
	}
	roundTrip := decode(t, writer.msgs[0].Value)
	if roundTrip.EventType() != "dispute.accepted" {
		t.Fatalf("unexpected re-encoded event %q", roundTrip.EventType())
	}
}

func TestPublisher_Errors(t *testing.T) {
	if err := (&Publisher{}).HandleEvent(context.Background(), webhooks.Delivery{}); err == nil {
		t.Fatalf("expected unconfigured publisher to fail")
	}
	if err := NewPublisher(&capturingWriter{}).HandleEvent(context.Background(), webhooks.Delivery{}); err == nil {
		t.Fatalf("expected missing event to fail")
	}
	failing := NewPublisher(&capturingWriter{err: errors.New("broker down")})
	err := failing.HandleEvent(context.Background(), webhooks.Delivery{
		ProviderID: "payments",
		DeliveryID: "msg_1",
		Event:      decode(t, []byte(fixtures.DisputeAccepted)),
	})
	if err == nil {
		t.Fatalf("expected write failure to surface")
	}
}

func TestNewWriter(t *testing.T) {
	if _, err := NewWriter([]string{" ", ""}); err == nil {
		t.Fatalf("expected empty broker list to fail")
	}
	writer, err := NewWriter([]string{"localhost:9092", " kafka:9092 "})
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if writer.Addr == nil || writer.Addr.Network() != "tcp" {
		t.Fatalf("unexpected writer addr %v", writer.Addr)
	}
	if writer.RequiredAcks != kafka.RequireAll {
		t.Fatalf("expected RequireAll acks")
	}
}
