package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

var (
	_ gocmd.Commander[ProcessWebhookMessage] = (*ProcessWebhookCommand)(nil)
	_ gocmd.Commander[ReplayDeliveryMessage] = (*ReplayDeliveryCommand)(nil)
	_ gocmd.Commander[ReplayDueMessage]      = (*ReplayDueCommand)(nil)
	_ WebhookProcessor                       = (*webhooks.Processor)(nil)
)
