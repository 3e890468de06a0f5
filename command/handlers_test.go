package command

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/internal/fixtures"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

type stubProcessor struct {
	processFn   func(context.Context, core.InboundRequest) (core.InboundResult, error)
	replayFn    func(context.Context, string, string) (core.InboundResult, error)
	replayDueFn func(context.Context, int) (int, error)
}

func (s stubProcessor) Process(ctx context.Context, req core.InboundRequest) (core.InboundResult, error) {
	return s.processFn(ctx, req)
}

func (s stubProcessor) Replay(ctx context.Context, providerID string, deliveryID string) (core.InboundResult, error) {
	return s.replayFn(ctx, providerID, deliveryID)
}

func (s stubProcessor) ReplayDue(ctx context.Context, limit int) (int, error) {
	return s.replayDueFn(ctx, limit)
}

func TestProcessWebhookCommand_StoresResultOnFailure(t *testing.T) {
	processor := stubProcessor{
		processFn: func(_ context.Context, req core.InboundRequest) (core.InboundResult, error) {
			if string(req.Body) != "{}" {
				t.Fatalf("unexpected body %q", req.Body)
			}
			return core.InboundResult{StatusCode: http.StatusUnauthorized}, errors.New("signature mismatch")
		},
	}

	collector := gocmd.NewResult[core.InboundResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	err := NewProcessWebhookCommand(processor).Execute(ctx, ProcessWebhookMessage{
		Request: core.InboundRequest{Body: []byte("{}")},
	})
	if err == nil {
		t.Fatalf("expected processor error")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestProcessWebhookCommand_RejectsInvalidMessage(t *testing.T) {
	called := false
	processor := stubProcessor{
		processFn: func(context.Context, core.InboundRequest) (core.InboundResult, error) {
			called = true
			return core.InboundResult{}, nil
		},
	}
	if err := NewProcessWebhookCommand(processor).Execute(context.Background(), ProcessWebhookMessage{}); err == nil {
		t.Fatalf("expected validation error")
	}
	if called {
		t.Fatalf("expected processor not to be called for an invalid message")
	}
}

func TestReplayCommands_Delegate(t *testing.T) {
	t.Run("replay delivery", func(t *testing.T) {
		processor := stubProcessor{
			replayFn: func(_ context.Context, providerID string, deliveryID string) (core.InboundResult, error) {
				if providerID != "" || deliveryID != "msg_1" {
					t.Fatalf("unexpected replay target %q %q", providerID, deliveryID)
				}
				return core.InboundResult{Accepted: true, StatusCode: http.StatusOK}, nil
			},
		}
		collector := gocmd.NewResult[core.InboundResult]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := NewReplayDeliveryCommand(processor).Execute(ctx, ReplayDeliveryMessage{DeliveryID: "msg_1"}); err != nil {
			t.Fatalf("execute replay: %v", err)
		}
		result, ok := collector.Load()
		if !ok || !result.Accepted {
			t.Fatalf("expected accepted replay result, got %#v", result)
		}
	})

	t.Run("replay due", func(t *testing.T) {
		processor := stubProcessor{
			replayDueFn: func(_ context.Context, limit int) (int, error) {
				if limit != 25 {
					t.Fatalf("unexpected limit %d", limit)
				}
				return 3, nil
			},
		}
		collector := gocmd.NewResult[int]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := NewReplayDueCommand(processor).Execute(ctx, ReplayDueMessage{Limit: 25}); err != nil {
			t.Fatalf("execute replay due: %v", err)
		}
		handled, ok := collector.Load()
		if !ok || handled != 3 {
			t.Fatalf("expected 3 handled deliveries, got %d", handled)
		}
	})
}

func TestProcessWebhookCommand_WithProcessor(t *testing.T) {
	secret := "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
	handled := 0
	processor := webhooks.NewProcessor(
		webhooks.NewStandardVerifier(core.WebhookConfig{Secret: secret}),
		webhooks.NewMemoryLedger(),
		webhooks.EventHandlerFunc(func(context.Context, webhooks.Delivery) error {
			handled++
			return nil
		}),
	)

	body := []byte(fixtures.DisputeAccepted)
	headers, err := webhooks.SignedHeaders(secret, "msg_cmd", time.Now(), body)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	collector := gocmd.NewResult[core.InboundResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)
	if err := NewProcessWebhookCommand(processor).Execute(ctx, ProcessWebhookMessage{
		Request: core.InboundRequest{Headers: headers, Body: body},
	}); err != nil {
		t.Fatalf("execute process: %v", err)
	}
	result, _ := collector.Load()
	if !result.Accepted || result.Metadata["event_type"] != "dispute.accepted" {
		t.Fatalf("unexpected result %#v", result)
	}
	if handled != 1 {
		t.Fatalf("expected handler to run once, ran %d", handled)
	}
}
