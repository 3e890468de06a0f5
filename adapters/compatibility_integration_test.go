package adapters_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-command"
	job "github.com/goliatone/go-job"
	jobqueuecommand "github.com/goliatone/go-job/queue/command"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-paywebhooks/adapters/gocommand"
	"github.com/goliatone/go-paywebhooks/adapters/gojob"
	"github.com/goliatone/go-paywebhooks/adapters/gologger"
	"github.com/goliatone/go-paywebhooks/adapters/natsbus"
	pwprometheus "github.com/goliatone/go-paywebhooks/adapters/prometheus"
	pwcommand "github.com/goliatone/go-paywebhooks/command"
	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/inbound"
	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/models"
	"github.com/goliatone/go-paywebhooks/webhooks"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
)

func TestRuntimeCompatibility_GoJobGoCommandGoLogger(t *testing.T) {
	ctx := context.Background()

	logger := &compatLogger{}
	provider := &compatProvider{logger: logger}

	_, _, jobProvider, jobLogger := gologger.ResolveForJob("paywebhooks", provider, nil)
	if jobProvider == nil || jobLogger == nil {
		t.Fatalf("expected go-job logger bridges")
	}

	enqueueProbe := &compatEnqueuer{}
	scheduler := gojob.NewReplayScheduler(gojob.NewEnqueuerAdapter(enqueueProbe))
	if err := scheduler.ScheduleReplay(ctx, "payments", "msg_1"); err != nil {
		t.Fatalf("schedule replay via gojob adapter: %v", err)
	}
	if enqueueProbe.last == nil || enqueueProbe.last.JobID != gojob.JobIDReplayDelivery {
		t.Fatalf("expected go-job message mapping through enqueuer adapter")
	}
	if enqueueProbe.last.IdempotencyKey != "replay:payments:msg_1" {
		t.Fatalf("unexpected idempotency key %q", enqueueProbe.last.IdempotencyKey)
	}

	queueRegistry := jobqueuecommand.NewRegistry()
	commandAdapter := gocommand.NewRegistryAdapter(command.NewRegistry())
	if err := commandAdapter.AddQueueResolver("queue", queueRegistry); err != nil {
		t.Fatalf("add queue resolver: %v", err)
	}
	if err := commandAdapter.RegisterCommand(command.CommandFunc[pwcommand.ReplayDueMessage](
		func(context.Context, pwcommand.ReplayDueMessage) error { return nil },
	)); err != nil {
		t.Fatalf("register command: %v", err)
	}
	if err := commandAdapter.Initialize(); err != nil {
		t.Fatalf("initialize command registry: %v", err)
	}
	if _, ok := queueRegistry.Get(pwcommand.TypeReplayDue); !ok {
		t.Fatalf("expected command resolver hook to mirror replay command into go-job queue registry")
	}
}

func TestRuntimeCompatibility_ProcessorRouterPublisherMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	observer := gologger.NewObserver("paywebhooks", &compatProvider{logger: &compatLogger{}}, nil, pwprometheus.NewRecorder(registry))

	conn := &compatConn{}
	disputes := 0
	router := inbound.NewRouter(inbound.NewInMemoryClaimStore())
	router.Observer = observer
	if err := router.OnFamily(models.PayloadTypeDispute, webhooks.EventHandlerFunc(func(context.Context, webhooks.Delivery) error {
		disputes++
		return nil
	})); err != nil {
		t.Fatalf("register dispute handler: %v", err)
	}
	if err := router.OnUnhandled(natsbus.NewPublisher(conn)); err != nil {
		t.Fatalf("register fallback publisher: %v", err)
	}

	processor := webhooks.NewProcessor(nil, webhooks.NewMemoryLedger(), router)
	processor.Observer = observer

	adapter := gocommand.NewRegistryAdapter(command.NewRegistry())
	subs, err := gocommand.RegisterWebhookCommands(adapter, gocommand.WebhookCommandDeps{Processor: processor})
	if err != nil {
		t.Fatalf("register webhook commands: %v", err)
	}
	defer subs.Unsubscribe()

	deliveries := []struct {
		id   string
		body []byte
	}{
		{id: "msg_dispute", body: []byte(fixtures.DisputeAccepted)},
		{id: "msg_dispute", body: []byte(fixtures.DisputeAccepted)},
		{id: "msg_payout", body: fixtures.Envelope("payout.created", `{"payout_id":"po_1"}`, "")},
	}
	for _, delivery := range deliveries {
		if err := gocommand.Dispatch(context.Background(), pwcommand.ProcessWebhookMessage{
			Request: core.InboundRequest{
				Headers: map[string]string{webhooks.HeaderWebhookID: delivery.id},
				Body:    delivery.body,
			},
		}); err != nil {
			t.Fatalf("dispatch %s: %v", delivery.id, err)
		}
	}

	if disputes != 1 {
		t.Fatalf("expected duplicate delivery to be handled once, got %d", disputes)
	}
	if len(conn.msgs) != 1 || conn.msgs[0].Subject != "paywebhooks.events.payout.created" {
		t.Fatalf("expected unknown event to reach the fallback publisher, got %#v", conn.msgs)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	processed := 0.0
	for _, family := range families {
		if family.GetName() != "paywebhooks_process_webhook_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			processed += metric.GetCounter().GetValue()
		}
	}
	if processed != 3 {
		t.Fatalf("expected three process_webhook observations, got %v", processed)
	}
}

type compatEnqueuer struct {
	last *job.ExecutionMessage
}

func (e *compatEnqueuer) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	e.last = msg
	return nil
}

type compatConn struct {
	msgs []*nats.Msg
}

func (c *compatConn) PublishMsg(msg *nats.Msg) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

type compatProvider struct {
	logger glog.Logger
}

func (p *compatProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type compatLogger struct{}

func (compatLogger) Trace(string, ...any)                    {}
func (compatLogger) Debug(string, ...any)                    {}
func (compatLogger) Info(string, ...any)                     {}
func (compatLogger) Warn(string, ...any)                     {}
func (compatLogger) Error(string, ...any)                    {}
func (compatLogger) Fatal(string, ...any)                    {}
func (compatLogger) WithContext(context.Context) glog.Logger { return compatLogger{} }
