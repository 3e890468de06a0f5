package sqlstore

import "github.com/goliatone/go-paywebhooks/webhooks"

var (
	_ webhooks.DeliveryLedger = (*WebhookDeliveryStore)(nil)
	_ webhooks.EventArchive   = (*EventArchive)(nil)
	_ webhooks.EventArchive   = (*CachedEventArchive)(nil)
	_ webhooks.EventHandler   = (*EventArchive)(nil)
	_ webhooks.EventHandler   = (*CachedEventArchive)(nil)
)
