package command

import (
	"strings"

	"github.com/goliatone/go-paywebhooks/core"
)

const (
	TypeProcessWebhook = "paywebhooks.command.webhook.process"
	TypeReplayDelivery = "paywebhooks.command.delivery.replay"
	TypeReplayDue      = "paywebhooks.command.delivery.replay_due"
)

type ProcessWebhookMessage struct {
	Request core.InboundRequest
}

func (ProcessWebhookMessage) Type() string { return TypeProcessWebhook }

func (m ProcessWebhookMessage) Validate() error {
	if len(m.Request.Body) == 0 {
		return commandValidationError("body", "is required")
	}
	return nil
}

// ReplayDeliveryMessage re-runs one stored delivery. An empty ProviderID
// means the processor's own provider.
type ReplayDeliveryMessage struct {
	ProviderID string
	DeliveryID string
}

func (ReplayDeliveryMessage) Type() string { return TypeReplayDelivery }

func (m ReplayDeliveryMessage) Validate() error {
	if strings.TrimSpace(m.DeliveryID) == "" {
		return commandValidationError("delivery_id", "is required")
	}
	return nil
}

type ReplayDueMessage struct {
	Limit int
}

func (ReplayDueMessage) Type() string { return TypeReplayDue }

func (m ReplayDueMessage) Validate() error {
	if m.Limit < 0 {
		return commandValidationError("limit", "must be >= 0")
	}
	return nil
}
