package paywebhooks

import (
	"context"
	"fmt"

	pwcommand "github.com/goliatone/go-paywebhooks/command"
	"github.com/goliatone/go-paywebhooks/core"
	pwquery "github.com/goliatone/go-paywebhooks/query"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

type Commands struct {
	Process        *pwcommand.ProcessWebhookCommand
	ReplayDelivery *pwcommand.ReplayDeliveryCommand
	ReplayDue      *pwcommand.ReplayDueCommand
}

// Queries holds the query handlers. GetDelivery and the archive queries are
// nil when no reader could be resolved.
type Queries struct {
	Decode             *pwquery.DecodeEventQuery
	GetDelivery        *pwquery.GetDeliveryQuery
	GetArchivedEvent   *pwquery.GetArchivedEventQuery
	ListBusinessEvents *pwquery.ListBusinessEventsQuery
}

type Facade struct {
	processor pwcommand.WebhookProcessor
	commands  Commands
	queries   Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	deliveries pwquery.DeliveryReader
	archive    pwquery.ArchiveReader
	decoder    *Decoder
}

func WithDeliveryReader(reader pwquery.DeliveryReader) FacadeOption {
	return func(options *facadeOptions) {
		options.deliveries = reader
	}
}

func WithArchiveReader(reader pwquery.ArchiveReader) FacadeOption {
	return func(options *facadeOptions) {
		options.archive = reader
	}
}

func WithDecoder(decoder *Decoder) FacadeOption {
	return func(options *facadeOptions) {
		options.decoder = decoder
	}
}

// NewFacade wires the command and query handlers around processor. When
// processor is a *webhooks.Processor its ledger and decoder are used unless
// options override them.
func NewFacade(processor pwcommand.WebhookProcessor, opts ...FacadeOption) (*Facade, error) {
	if processor == nil {
		return nil, fmt.Errorf("paywebhooks: webhook processor is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if concrete, ok := processor.(*webhooks.Processor); ok && concrete != nil {
		if cfg.deliveries == nil && concrete.Ledger != nil {
			cfg.deliveries = concrete.Ledger
		}
		if cfg.decoder == nil {
			cfg.decoder = concrete.Decoder
		}
	}

	facade := &Facade{processor: processor}
	facade.commands = Commands{
		Process:        pwcommand.NewProcessWebhookCommand(processor),
		ReplayDelivery: pwcommand.NewReplayDeliveryCommand(processor),
		ReplayDue:      pwcommand.NewReplayDueCommand(processor),
	}
	facade.queries = Queries{Decode: pwquery.NewDecodeEventQuery(cfg.decoder)}
	if cfg.deliveries != nil {
		facade.queries.GetDelivery = pwquery.NewGetDeliveryQuery(cfg.deliveries)
	}
	if cfg.archive != nil {
		facade.queries.GetArchivedEvent = pwquery.NewGetArchivedEventQuery(cfg.archive)
		facade.queries.ListBusinessEvents = pwquery.NewListBusinessEventsQuery(cfg.archive)
	}
	return facade, nil
}

// Setup builds a runtime from cfg, a processor that verifies with
// webhook.secret, and the facade around it. A nil ledger means an in-memory
// one. When archive is set every handled delivery is archived before handler
// runs.
func Setup(
	cfg Config,
	ledger DeliveryLedger,
	handler EventHandler,
	archive EventArchive,
	opts ...Option,
) (*Facade, error) {
	if ledger == nil {
		ledger = webhooks.NewMemoryLedger()
	}
	if handler == nil {
		return nil, fmt.Errorf("paywebhooks: event handler is required")
	}
	runtime, err := core.NewRuntime(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if archive != nil {
		next := handler
		handler = webhooks.EventHandlerFunc(func(ctx context.Context, delivery Delivery) error {
			if _, err := archive.Append(ctx, delivery); err != nil {
				return err
			}
			return next.HandleEvent(ctx, delivery)
		})
	}
	processor := webhooks.NewProcessorFromRuntime(runtime, ledger, handler)
	facadeOpts := []FacadeOption{}
	if archive != nil {
		facadeOpts = append(facadeOpts, WithArchiveReader(archive))
	}
	return NewFacade(processor, facadeOpts...)
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Processor() pwcommand.WebhookProcessor {
	if f == nil {
		return nil
	}
	return f.processor
}
