package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-paywebhooks/core"
)

// WebhookProcessor is satisfied by *webhooks.Processor.
type WebhookProcessor interface {
	Process(ctx context.Context, req core.InboundRequest) (core.InboundResult, error)
	Replay(ctx context.Context, providerID string, deliveryID string) (core.InboundResult, error)
	ReplayDue(ctx context.Context, limit int) (int, error)
}

type ProcessWebhookCommand struct {
	processor WebhookProcessor
}

func NewProcessWebhookCommand(processor WebhookProcessor) *ProcessWebhookCommand {
	return &ProcessWebhookCommand{processor: processor}
}

// Execute stores the InboundResult even when processing fails so callers can
// answer with its status code.
func (c *ProcessWebhookCommand) Execute(ctx context.Context, msg ProcessWebhookMessage) error {
	if c == nil || c.processor == nil {
		return commandDependencyError("command: webhook processor is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.processor.Process(ctx, msg.Request)
	storeResult(ctx, out)
	return err
}

type ReplayDeliveryCommand struct {
	processor WebhookProcessor
}

func NewReplayDeliveryCommand(processor WebhookProcessor) *ReplayDeliveryCommand {
	return &ReplayDeliveryCommand{processor: processor}
}

func (c *ReplayDeliveryCommand) Execute(ctx context.Context, msg ReplayDeliveryMessage) error {
	if c == nil || c.processor == nil {
		return commandDependencyError("command: webhook processor is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.processor.Replay(ctx, msg.ProviderID, msg.DeliveryID)
	storeResult(ctx, out)
	return err
}

type ReplayDueCommand struct {
	processor WebhookProcessor
}

func NewReplayDueCommand(processor WebhookProcessor) *ReplayDueCommand {
	return &ReplayDueCommand{processor: processor}
}

// Execute stores the number of deliveries handled successfully.
func (c *ReplayDueCommand) Execute(ctx context.Context, msg ReplayDueMessage) error {
	if c == nil || c.processor == nil {
		return commandDependencyError("command: webhook processor is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	handled, err := c.processor.ReplayDue(ctx, msg.Limit)
	storeResult(ctx, handled)
	return err
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
