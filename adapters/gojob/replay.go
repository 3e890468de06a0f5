package gojob

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/webhooks"
)

const (
	paramProviderID = "provider_id"
	paramDeliveryID = "delivery_id"
	paramLimit      = "limit"
	paramAttempt    = "attempt"
)

// ReplayProcessor is the subset of webhooks.Processor the replay jobs drive.
type ReplayProcessor interface {
	Replay(ctx context.Context, providerID string, deliveryID string) (core.InboundResult, error)
	ReplayDue(ctx context.Context, limit int) (int, error)
}

// NewReplayDeliveryJob builds the job message for replaying one stored
// delivery. Jobs for the same delivery share an idempotency key.
func NewReplayDeliveryJob(providerID string, deliveryID string) *core.JobExecutionMessage {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		providerID = webhooks.DefaultProviderID
	}
	deliveryID = strings.TrimSpace(deliveryID)
	return &core.JobExecutionMessage{
		JobID:      JobIDReplayDelivery,
		ScriptPath: JobIDReplayDelivery,
		Parameters: map[string]any{
			paramProviderID: providerID,
			paramDeliveryID: deliveryID,
		},
		IdempotencyKey: "replay:" + providerID + ":" + deliveryID,
		DedupPolicy:    "drop",
	}
}

func NewReplayDueJob(limit int) *core.JobExecutionMessage {
	if limit < 0 {
		limit = 0
	}
	return &core.JobExecutionMessage{
		JobID:      JobIDReplayDue,
		ScriptPath: JobIDReplayDue,
		Parameters: map[string]any{paramLimit: limit},
	}
}

// ReplayScheduler enqueues replay jobs.
type ReplayScheduler struct {
	enqueuer core.JobEnqueuer
}

func NewReplayScheduler(enqueuer core.JobEnqueuer) *ReplayScheduler {
	return &ReplayScheduler{enqueuer: enqueuer}
}

func (s *ReplayScheduler) ScheduleReplay(ctx context.Context, providerID string, deliveryID string) error {
	if s == nil || s.enqueuer == nil {
		return fmt.Errorf("gojob: replay scheduler is not configured")
	}
	if strings.TrimSpace(deliveryID) == "" {
		return fmt.Errorf("gojob: delivery id is required")
	}
	return s.enqueuer.Enqueue(ctx, NewReplayDeliveryJob(providerID, deliveryID))
}

func (s *ReplayScheduler) ScheduleReplayDue(ctx context.Context, limit int) error {
	if s == nil || s.enqueuer == nil {
		return fmt.Errorf("gojob: replay scheduler is not configured")
	}
	return s.enqueuer.Enqueue(ctx, NewReplayDueJob(limit))
}

// ReplayWorker executes replay jobs against a processor, acking on success
// and nacking through the retry policy on failure.
type ReplayWorker struct {
	Policy     RetryPolicy
	RetryDelay time.Duration
	Hook       core.JobWorkerHook
	Now        func() time.Time

	processor ReplayProcessor
}

func NewReplayWorker(processor ReplayProcessor, policy RetryPolicy) *ReplayWorker {
	return &ReplayWorker{processor: processor, Policy: policy, RetryDelay: 5 * time.Second}
}

// Execute runs a single job message.
func (w *ReplayWorker) Execute(ctx context.Context, msg *core.JobExecutionMessage) error {
	if w == nil || w.processor == nil {
		return fmt.Errorf("gojob: replay worker is not configured")
	}
	if msg == nil {
		return fmt.Errorf("gojob: execution message is required")
	}
	switch strings.TrimSpace(msg.JobID) {
	case JobIDReplayDelivery:
		deliveryID := stringParam(msg.Parameters, paramDeliveryID)
		if deliveryID == "" {
			return fmt.Errorf("gojob: %s requires %s", JobIDReplayDelivery, paramDeliveryID)
		}
		result, err := w.processor.Replay(ctx, stringParam(msg.Parameters, paramProviderID), deliveryID)
		if err != nil {
			return err
		}
		if !result.Accepted {
			return fmt.Errorf("gojob: replay of %q not accepted (status %d)", deliveryID, result.StatusCode)
		}
		return nil
	case JobIDReplayDue:
		_, err := w.processor.ReplayDue(ctx, intParam(msg.Parameters, paramLimit))
		return err
	default:
		return errUnknownJob{jobID: msg.JobID}
	}
}

// Handle executes the delivery's message and settles it. Unknown jobs and
// missing deliveries are dead-lettered without retry.
func (w *ReplayWorker) Handle(ctx context.Context, delivery core.JobDelivery, attempt int) error {
	if delivery == nil {
		return fmt.Errorf("gojob: delivery is required")
	}
	if attempt <= 0 {
		attempt = 1
	}
	msg := delivery.Message()
	event := core.JobWorkerEvent{Message: msg, Attempt: attempt, StartedAt: w.now()}
	w.notify(ctx, core.JobWorkerHook.OnStart, event)

	err := w.Execute(ctx, msg)
	event.Duration = w.now().Sub(event.StartedAt)
	if err == nil {
		w.notify(ctx, core.JobWorkerHook.OnSuccess, event)
		return delivery.Ack(ctx)
	}

	event.Err = err
	opts := core.JobNackOptions{
		Delay:   w.RetryDelay * time.Duration(attempt),
		Requeue: true,
		Reason:  err.Error(),
	}
	var unknown errUnknownJob
	if errors.As(err, &unknown) || errors.Is(err, webhooks.ErrDeliveryNotFound) {
		opts.Requeue = false
		opts.DeadLetter = true
	}
	opts = w.Policy.NormalizeAttempt(opts, attempt)
	event.Delay = opts.Delay
	if opts.Requeue {
		w.notify(ctx, core.JobWorkerHook.OnRetry, event)
	} else {
		w.notify(ctx, core.JobWorkerHook.OnFailure, event)
	}
	if nackErr := delivery.Nack(ctx, opts); nackErr != nil {
		return errors.Join(err, nackErr)
	}
	return err
}

// RunOnce dequeues one job and handles it. The attempt number is read from
// the message's "attempt" parameter and defaults to 1.
func (w *ReplayWorker) RunOnce(ctx context.Context, dequeuer core.JobDequeuer) error {
	if dequeuer == nil {
		return fmt.Errorf("gojob: dequeuer is required")
	}
	delivery, err := dequeuer.Dequeue(ctx)
	if err != nil {
		return err
	}
	attempt := 1
	if msg := delivery.Message(); msg != nil {
		if value := intParam(msg.Parameters, paramAttempt); value > 0 {
			attempt = value
		}
	}
	return w.Handle(ctx, delivery, attempt)
}

func (w *ReplayWorker) notify(
	ctx context.Context,
	call func(core.JobWorkerHook, context.Context, core.JobWorkerEvent),
	event core.JobWorkerEvent,
) {
	if w == nil || w.Hook == nil {
		return
	}
	call(w.Hook, ctx, event)
}

func (w *ReplayWorker) now() time.Time {
	if w != nil && w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

type errUnknownJob struct {
	jobID string
}

func (e errUnknownJob) Error() string {
	return fmt.Sprintf("gojob: unknown job id %q", e.jobID)
}

func stringParam(params map[string]any, key string) string {
	value, ok := params[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func intParam(params map[string]any, key string) int {
	switch value := params[key].(type) {
	case int:
		return value
	case int32:
		return int(value)
	case int64:
		return int(value)
	case float64:
		return int(value)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

var _ ReplayProcessor = (*webhooks.Processor)(nil)
