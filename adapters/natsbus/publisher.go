// Package natsbus fans decoded webhook events out to NATS subjects.
package natsbus

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/webhooks"
	"github.com/nats-io/nats.go"
)

const DefaultSubjectPrefix = "paywebhooks.events"

// Header names set on every published message. Nats-Msg-Id lets JetStream
// streams drop duplicate deliveries.
const (
	HeaderMsgID       = nats.MsgIdHdr
	HeaderProviderID  = "Paywebhooks-Provider-Id"
	HeaderDeliveryID  = "Paywebhooks-Delivery-Id"
	HeaderEventType   = "Paywebhooks-Event-Type"
	HeaderPayloadType = "Paywebhooks-Payload-Type"
	HeaderBusinessID  = "Paywebhooks-Business-Id"
	HeaderAttempt     = "Paywebhooks-Attempt"
)

// MsgPublisher is the part of *nats.Conn the publisher uses.
type MsgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

type Config struct {
	URL           string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
	Timeout       time.Duration
	Token         string
}

func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Name:          "go-paywebhooks",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		Timeout:       5 * time.Second,
	}
}

// Connect opens a NATS connection from cfg, filling zero values from DefaultConfig.
func Connect(cfg Config) (*nats.Conn, error) {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = defaults.URL
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = defaults.Name
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = defaults.ReconnectWait
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("natsbus: connect: %w", err)
	}
	return conn, nil
}

// Publisher is a webhooks.EventHandler that publishes each delivery to
// <prefix>.<event type>. The body is the delivery's original JSON, or the
// re-encoded event when the original is not available.
type Publisher struct {
	Prefix string

	conn MsgPublisher
}

func NewPublisher(conn MsgPublisher) *Publisher {
	return &Publisher{Prefix: DefaultSubjectPrefix, conn: conn}
}

func (p *Publisher) HandleEvent(ctx context.Context, delivery webhooks.Delivery) error {
	if p == nil || p.conn == nil {
		return fmt.Errorf("natsbus: publisher is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := p.Message(delivery)
	if err != nil {
		return err
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("natsbus: publish %s: %w", msg.Subject, err)
	}
	return nil
}

// Message builds the NATS message for delivery without sending it.
func (p *Publisher) Message(delivery webhooks.Delivery) (*nats.Msg, error) {
	if delivery.Event == nil {
		return nil, fmt.Errorf("natsbus: delivery event is required")
	}
	body := delivery.Body
	if len(body) == 0 {
		encoded, err := delivery.Event.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("natsbus: encode event: %w", err)
		}
		body = encoded
	}
	header := delivery.Event.Header()
	eventType := string(delivery.Event.EventType())

	msg := nats.NewMsg(p.Subject(eventType))
	msg.Data = append([]byte(nil), body...)
	msg.Header.Set(HeaderProviderID, delivery.ProviderID)
	msg.Header.Set(HeaderDeliveryID, delivery.DeliveryID)
	msg.Header.Set(HeaderEventType, eventType)
	msg.Header.Set(HeaderBusinessID, header.BusinessID)
	msg.Header.Set(HeaderAttempt, strconv.Itoa(delivery.Attempt))
	if payloadType := string(delivery.Event.PayloadType()); payloadType != "" {
		msg.Header.Set(HeaderPayloadType, payloadType)
	}
	if delivery.DeliveryID != "" {
		msg.Header.Set(HeaderMsgID, delivery.ProviderID+":"+delivery.DeliveryID)
	}
	return msg, nil
}

// Subject returns the subject for eventType. Characters NATS reserves for
// wildcards and whitespace become underscores; an empty type maps to "unknown".
func (p *Publisher) Subject(eventType string) string {
	prefix := DefaultSubjectPrefix
	if p != nil && strings.TrimSpace(p.Prefix) != "" {
		prefix = strings.Trim(strings.TrimSpace(p.Prefix), ".")
	}
	token := strings.Trim(strings.TrimSpace(eventType), ".")
	if token == "" {
		return prefix + ".unknown"
	}
	token = strings.Map(func(r rune) rune {
		switch r {
		case '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, token)
	return prefix + "." + token
}

var (
	_ webhooks.EventHandler = (*Publisher)(nil)
	_ MsgPublisher          = (*nats.Conn)(nil)
)
