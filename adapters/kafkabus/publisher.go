// Package kafkabus publishes decoded webhook events to Kafka topics.
package kafkabus

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/webhooks"
	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "paywebhooks.events"

const (
	HeaderProviderID  = "paywebhooks-provider-id"
	HeaderDeliveryID  = "paywebhooks-delivery-id"
	HeaderEventType   = "paywebhooks-event-type"
	HeaderPayloadType = "paywebhooks-payload-type"
	HeaderAttempt     = "paywebhooks-attempt"
)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewWriter returns a writer that waits for all in-sync replicas and hashes
// message keys onto partitions.
func NewWriter(brokers []string) (*kafka.Writer, error) {
	addrs := make([]string, 0, len(brokers))
	for _, broker := range brokers {
		if trimmed := strings.TrimSpace(broker); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafkabus: at least one broker is required")
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.Hash{},
	}, nil
}

// Publisher is a webhooks.EventHandler that writes each delivery to Kafka.
// Messages are keyed by business id so one business's events stay on one
// partition in order.
type Publisher struct {
	Topic        string
	TopicByEvent map[string]string
	Now          func() time.Time

	writer MessageWriter
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{Topic: DefaultTopic, writer: writer}
}

func (p *Publisher) HandleEvent(ctx context.Context, delivery webhooks.Delivery) error {
	if p == nil || p.writer == nil {
		return fmt.Errorf("kafkabus: publisher is not configured")
	}
	msg, err := p.Message(delivery)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafkabus: write %s: %w", msg.Topic, err)
	}
	return nil
}

// Message builds the Kafka message for delivery without sending it.
func (p *Publisher) Message(delivery webhooks.Delivery) (kafka.Message, error) {
	if delivery.Event == nil {
		return kafka.Message{}, fmt.Errorf("kafkabus: delivery event is required")
	}
	body := delivery.Body
	if len(body) == 0 {
		encoded, err := delivery.Event.MarshalJSON()
		if err != nil {
			return kafka.Message{}, fmt.Errorf("kafkabus: encode event: %w", err)
		}
		body = encoded
	}
	eventType := string(delivery.Event.EventType())
	headers := []kafka.Header{
		{Key: HeaderProviderID, Value: []byte(delivery.ProviderID)},
		{Key: HeaderDeliveryID, Value: []byte(delivery.DeliveryID)},
		{Key: HeaderEventType, Value: []byte(eventType)},
		{Key: HeaderAttempt, Value: []byte(strconv.Itoa(delivery.Attempt))},
	}
	if payloadType := string(delivery.Event.PayloadType()); payloadType != "" {
		headers = append(headers, kafka.Header{Key: HeaderPayloadType, Value: []byte(payloadType)})
	}
	return kafka.Message{
		Topic:   p.TopicFor(eventType),
		Key:     []byte(delivery.Event.Header().BusinessID),
		Value:   append([]byte(nil), body...),
		Headers: headers,
		Time:    p.now(),
	}, nil
}

// TopicFor returns the mapped topic for eventType, or the default topic.
func (p *Publisher) TopicFor(eventType string) string {
	if p == nil {
		return DefaultTopic
	}
	if mapped := strings.TrimSpace(p.TopicByEvent[eventType]); mapped != "" {
		return mapped
	}
	if topic := strings.TrimSpace(p.Topic); topic != "" {
		return topic
	}
	return DefaultTopic
}

func (p *Publisher) now() time.Time {
	if p != nil && p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

var (
	_ webhooks.EventHandler = (*Publisher)(nil)
	_ MessageWriter         = (*kafka.Writer)(nil)
)
