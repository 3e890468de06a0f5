package paywebhooks

import (
	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

type Config = core.Config

type Option = core.Option

type Runtime = core.Runtime

type InboundRequest = core.InboundRequest
type InboundResult = core.InboundResult

type Event = events.Event
type UnsafeEvent = events.UnsafeEvent
type UnknownEvent = events.UnknownEvent
type EventType = events.EventType
type Envelope = events.Envelope
type Decoder = events.Decoder
type DecoderOption = events.DecoderOption

type Processor = webhooks.Processor
type Delivery = webhooks.Delivery
type EventHandler = webhooks.EventHandler
type EventHandlerFunc = webhooks.EventHandlerFunc
type DeliveryLedger = webhooks.DeliveryLedger
type DeliveryRecord = webhooks.DeliveryRecord
type EventArchive = webhooks.EventArchive
type ArchivedEvent = webhooks.ArchivedEvent

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorFactory    = core.WithErrorFactory
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver

	WithValidation       = events.WithValidation
	WithPayloadTypeCheck = events.WithPayloadTypeCheck
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewRuntime(cfg Config, opts ...Option) (*Runtime, error) {
	return core.NewRuntime(cfg, opts...)
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	return events.NewDecoder(opts...)
}

// UnwrapWebhookEvent decodes a delivery body into its typed variant.
func UnwrapWebhookEvent(body []byte) (Event, error) {
	return events.UnwrapWebhookEvent(body)
}

// UnsafeUnwrapWebhookEvent decodes the envelope and keeps the payload raw.
func UnsafeUnwrapWebhookEvent(body []byte) (UnsafeEvent, error) {
	return events.UnsafeUnwrapWebhookEvent(body)
}
