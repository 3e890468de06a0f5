package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

var (
	_ gocmd.Querier[DecodeEventMessage, DecodedEvent]                    = (*DecodeEventQuery)(nil)
	_ gocmd.Querier[GetDeliveryMessage, webhooks.DeliveryRecord]         = (*GetDeliveryQuery)(nil)
	_ gocmd.Querier[GetArchivedEventMessage, webhooks.ArchivedEvent]     = (*GetArchivedEventQuery)(nil)
	_ gocmd.Querier[ListBusinessEventsMessage, []webhooks.ArchivedEvent] = (*ListBusinessEventsQuery)(nil)
	_ DeliveryReader                                                     = (*webhooks.MemoryLedger)(nil)
	_ ArchiveReader                                                      = (*webhooks.MemoryEventArchive)(nil)
)
