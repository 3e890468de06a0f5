package gocommand

import (
	"fmt"

	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	pwcommand "github.com/goliatone/go-paywebhooks/command"
	"github.com/goliatone/go-paywebhooks/events"
	pwquery "github.com/goliatone/go-paywebhooks/query"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

// WebhookCommandDeps selects which handlers RegisterWebhookCommands wires.
// The decode query is always registered; the rest need their dependency.
type WebhookCommandDeps struct {
	Processor  pwcommand.WebhookProcessor
	Deliveries pwquery.DeliveryReader
	Archive    pwquery.ArchiveReader
	Decoder    *events.Decoder
}

type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, subscription := range s {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
}

// RegisterWebhookCommands registers and subscribes the webhook commands and
// queries. On error every subscription made so far is released.
func RegisterWebhookCommands(
	adapter *RegistryAdapter,
	deps WebhookCommandDeps,
	runnerOpts ...runner.Option,
) (Subscriptions, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}

	subs := Subscriptions{}
	add := func(subscription commanddispatcher.Subscription, err error) error {
		if err != nil {
			subs.Unsubscribe()
			return err
		}
		subs = append(subs, subscription)
		return nil
	}

	if deps.Processor != nil {
		if err := add(RegisterAndSubscribe[pwcommand.ProcessWebhookMessage](adapter, pwcommand.NewProcessWebhookCommand(deps.Processor), runnerOpts...)); err != nil {
			return nil, err
		}
		if err := add(RegisterAndSubscribe[pwcommand.ReplayDeliveryMessage](adapter, pwcommand.NewReplayDeliveryCommand(deps.Processor), runnerOpts...)); err != nil {
			return nil, err
		}
		if err := add(RegisterAndSubscribe[pwcommand.ReplayDueMessage](adapter, pwcommand.NewReplayDueCommand(deps.Processor), runnerOpts...)); err != nil {
			return nil, err
		}
	}

	if err := add(RegisterAndSubscribeQuery[pwquery.DecodeEventMessage, pwquery.DecodedEvent](adapter, pwquery.NewDecodeEventQuery(deps.Decoder), runnerOpts...)); err != nil {
		return nil, err
	}

	if deps.Deliveries != nil {
		if err := add(RegisterAndSubscribeQuery[pwquery.GetDeliveryMessage, webhooks.DeliveryRecord](adapter, pwquery.NewGetDeliveryQuery(deps.Deliveries), runnerOpts...)); err != nil {
			return nil, err
		}
	}

	if deps.Archive != nil {
		if err := add(RegisterAndSubscribeQuery[pwquery.GetArchivedEventMessage, webhooks.ArchivedEvent](adapter, pwquery.NewGetArchivedEventQuery(deps.Archive), runnerOpts...)); err != nil {
			return nil, err
		}
		if err := add(RegisterAndSubscribeQuery[pwquery.ListBusinessEventsMessage, []webhooks.ArchivedEvent](adapter, pwquery.NewListBusinessEventsQuery(deps.Archive), runnerOpts...)); err != nil {
			return nil, err
		}
	}

	return subs, nil
}
