package webhooks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"
)

// DefaultProviderID names deliveries whose request carries no provider id.
const DefaultProviderID = "payments"

type Processor struct {
	Verifier    Verifier
	Ledger      DeliveryLedger
	Handler     EventHandler
	Decoder     *events.Decoder
	ExtractID   DeliveryIDExtractor
	Burst       BurstController
	RetryPolicy RetryPolicy
	Observer    *core.Observer
	ProviderID  string
	// MaxBodyBytes rejects larger bodies before verification; zero disables the limit.
	MaxBodyBytes int64
	ClaimLease   time.Duration
	MaxAttempts  int
	Now          func() time.Time
}

func NewProcessor(verifier Verifier, ledger DeliveryLedger, handler EventHandler) *Processor {
	return &Processor{
		Verifier:    verifier,
		Ledger:      ledger,
		Handler:     handler,
		Decoder:     events.NewDecoder(),
		ExtractID:   StandardDeliveryIDExtractor,
		RetryPolicy: ExponentialRetryPolicy{},
		ProviderID:  DefaultProviderID,
		ClaimLease:  30 * time.Second,
		MaxAttempts: 8,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewProcessorFromRuntime builds a processor from the runtime config. A
// StandardVerifier is installed when webhook.secret is set.
func NewProcessorFromRuntime(runtime *core.Runtime, ledger DeliveryLedger, handler EventHandler) *Processor {
	cfg := runtime.Config()
	var verifier Verifier
	if strings.TrimSpace(cfg.Webhook.Secret) != "" {
		verifier = NewStandardVerifier(cfg.Webhook)
	}
	p := NewProcessor(verifier, ledger, handler)
	p.Observer = runtime.Observer()
	p.Decoder = events.NewDecoderFromConfig(cfg.Decode, events.WithObserver(p.Observer))
	p.Burst = NewBurstControllerFromConfig(cfg.Burst)
	p.RetryPolicy = ExponentialRetryPolicy{Initial: cfg.Delivery.RetryInitial, Max: cfg.Delivery.RetryMax}
	p.MaxBodyBytes = cfg.Webhook.MaxBodyBytes
	p.ClaimLease = cfg.Delivery.ClaimLease
	p.MaxAttempts = cfg.Delivery.MaxAttempts
	return p
}

// Process verifies, claims, decodes and dispatches one delivery.
func (p *Processor) Process(ctx context.Context, req core.InboundRequest) (result core.InboundResult, err error) {
	if p == nil || p.Handler == nil || p.Ledger == nil {
		return core.InboundResult{}, fmt.Errorf("webhooks: processor requires handler and ledger")
	}
	startedAt := p.now()
	fields := map[string]any{}
	defer func() {
		fields["status_code"] = result.StatusCode
		p.Observer.ObserveOperation(ctx, startedAt, "process_webhook", err, fields)
	}()

	providerID := strings.TrimSpace(req.ProviderID)
	if providerID == "" {
		providerID = p.providerID()
	}
	req.ProviderID = providerID
	fields["provider_id"] = providerID

	if p.MaxBodyBytes > 0 && int64(len(req.Body)) > p.MaxBodyBytes {
		return core.InboundResult{
			StatusCode: http.StatusRequestEntityTooLarge,
			Metadata:   map[string]any{"provider_id": providerID, "rejected": true},
		}, fmt.Errorf("webhooks: body of %d bytes exceeds limit of %d", len(req.Body), p.MaxBodyBytes)
	}

	if p.Verifier != nil {
		if err := p.Verifier.Verify(ctx, req); err != nil {
			return core.InboundResult{
				Accepted:   false,
				StatusCode: http.StatusUnauthorized,
				Metadata: map[string]any{
					"provider_id": providerID,
					"rejected":    true,
				},
			}, err
		}
	}

	extractor := p.ExtractID
	if extractor == nil {
		extractor = StandardDeliveryIDExtractor
	}
	deliveryID, err := extractor(req)
	if err != nil {
		return core.InboundResult{StatusCode: http.StatusBadRequest}, err
	}
	fields["delivery_id"] = deliveryID

	record, claimed, err := p.Ledger.Claim(ctx, providerID, deliveryID, req.Body, p.claimLease())
	if err != nil {
		return core.InboundResult{}, err
	}
	if !claimed {
		return core.InboundResult{
			Accepted:   true,
			StatusCode: http.StatusOK,
			Metadata: map[string]any{
				"provider_id": providerID,
				"delivery_id": record.DeliveryID,
				"status":      record.Status,
				"deduped":     true,
			},
		}, nil
	}

	return p.dispatch(ctx, record, req, fields)
}

// Replay re-runs a stored delivery that is due for retry. The signature is
// not checked again; the payload comes from the ledger. An empty providerID
// means the processor's own provider.
func (p *Processor) Replay(ctx context.Context, providerID string, deliveryID string) (result core.InboundResult, err error) {
	if p == nil || p.Handler == nil || p.Ledger == nil {
		return core.InboundResult{}, fmt.Errorf("webhooks: processor requires handler and ledger")
	}
	if strings.TrimSpace(providerID) == "" {
		providerID = p.providerID()
	}
	startedAt := p.now()
	fields := map[string]any{"provider_id": providerID, "delivery_id": deliveryID}
	defer func() {
		fields["status_code"] = result.StatusCode
		p.Observer.ObserveOperation(ctx, startedAt, "replay_webhook", err, fields)
	}()

	if _, err := p.Ledger.Get(ctx, providerID, deliveryID); err != nil {
		return core.InboundResult{StatusCode: http.StatusNotFound}, err
	}
	record, claimed, err := p.Ledger.Claim(ctx, providerID, deliveryID, nil, p.claimLease())
	if err != nil {
		return core.InboundResult{}, err
	}
	if !claimed {
		return core.InboundResult{
			Accepted:   true,
			StatusCode: http.StatusOK,
			Metadata: map[string]any{
				"provider_id": record.ProviderID,
				"delivery_id": record.DeliveryID,
				"status":      record.Status,
				"deduped":     true,
			},
		}, nil
	}
	req := core.InboundRequest{ProviderID: record.ProviderID, Body: record.Payload}
	return p.dispatch(ctx, record, req, fields)
}

// ReplayDue replays up to limit deliveries whose retry time has passed and
// reports how many were handled successfully.
func (p *Processor) ReplayDue(ctx context.Context, limit int) (int, error) {
	if p == nil || p.Ledger == nil {
		return 0, fmt.Errorf("webhooks: processor requires ledger")
	}
	due, err := p.Ledger.ListDue(ctx, p.now(), limit)
	if err != nil {
		return 0, err
	}
	handled := 0
	for _, record := range due {
		if err := ctx.Err(); err != nil {
			return handled, err
		}
		result, err := p.Replay(ctx, record.ProviderID, record.DeliveryID)
		if err == nil && result.Accepted {
			handled++
		}
	}
	return handled, nil
}

func (p *Processor) dispatch(
	ctx context.Context,
	record DeliveryRecord,
	req core.InboundRequest,
	fields map[string]any,
) (core.InboundResult, error) {
	metadata := map[string]any{
		"provider_id": record.ProviderID,
		"delivery_id": record.DeliveryID,
		"attempt":     record.Attempts,
	}

	event, err := p.decoder().DecodeStrict(req.Body)
	if err != nil {
		// Decode failures are permanent; dead-letter on this attempt.
		_ = p.Ledger.Fail(ctx, record.ClaimID, err, time.Time{}, record.Attempts)
		metadata["dead_lettered"] = true
		return core.InboundResult{StatusCode: statusFor(err), Metadata: metadata}, err
	}
	fields["event_type"] = string(event.EventType())
	fields["payload_type"] = string(event.PayloadType())
	metadata["event_type"] = string(event.EventType())

	if p.Burst != nil {
		decision, burstErr := p.Burst.Allow(ctx, BurstSubject{
			ProviderID: record.ProviderID,
			Event:      event,
			Metadata:   req.Metadata,
		})
		if burstErr != nil {
			return core.InboundResult{}, burstErr
		}
		if !decision.Allow {
			if markErr := p.Ledger.Complete(ctx, record.ClaimID); markErr != nil {
				return core.InboundResult{}, markErr
			}
			for key, value := range decision.Metadata {
				metadata[key] = value
			}
			metadata["deduped"] = true
			return core.InboundResult{
				Accepted:   true,
				StatusCode: http.StatusOK,
				Metadata:   metadata,
			}, nil
		}
	}

	delivery := Delivery{
		ProviderID: record.ProviderID,
		DeliveryID: record.DeliveryID,
		Attempt:    record.Attempts,
		Event:      event,
		Body:       req.Body,
		Metadata:   req.Metadata,
	}
	if err := p.Handler.HandleEvent(ctx, delivery); err != nil {
		maxAttempts := p.maxAttempts()
		if isPermanent(err) {
			maxAttempts = record.Attempts
			metadata["dead_lettered"] = true
		}
		nextAttemptAt := p.now().Add(p.retryPolicy().NextDelay(record.Attempts))
		_ = p.Ledger.Fail(ctx, record.ClaimID, err, nextAttemptAt, maxAttempts)
		return core.InboundResult{StatusCode: statusFor(err), Metadata: metadata}, err
	}

	if err := p.Ledger.Complete(ctx, record.ClaimID); err != nil {
		return core.InboundResult{}, err
	}
	return core.InboundResult{
		Accepted:   true,
		StatusCode: http.StatusOK,
		Metadata:   metadata,
	}, nil
}

func (p *Processor) decoder() *events.Decoder {
	if p != nil && p.Decoder != nil {
		return p.Decoder
	}
	return events.NewDecoder()
}

func (p *Processor) providerID() string {
	if p != nil && strings.TrimSpace(p.ProviderID) != "" {
		return strings.TrimSpace(p.ProviderID)
	}
	return DefaultProviderID
}

func (p *Processor) now() time.Time {
	if p != nil && p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

func (p *Processor) retryPolicy() RetryPolicy {
	if p != nil && p.RetryPolicy != nil {
		return p.RetryPolicy
	}
	return ExponentialRetryPolicy{}
}

func (p *Processor) claimLease() time.Duration {
	if p != nil && p.ClaimLease > 0 {
		return p.ClaimLease
	}
	return 30 * time.Second
}

func (p *Processor) maxAttempts() int {
	if p != nil && p.MaxAttempts > 0 {
		return p.MaxAttempts
	}
	return 8
}
