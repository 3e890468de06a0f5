package gojob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-paywebhooks/core"

	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	"github.com/goliatone/go-job/queue/worker"
)

func TestMessageMappingRoundTrip(t *testing.T) {
	original := NewReplayDeliveryJob("payments", "msg_1")

	converted := ToExecutionMessage(original)
	if converted == nil {
		t.Fatalf("expected converted message")
	}
	if converted.DedupPolicy != job.DeduplicationPolicy("drop") {
		t.Fatalf("expected dedup policy drop, got %q", converted.DedupPolicy)
	}
	roundTrip := FromExecutionMessage(converted)
	if roundTrip.JobID != JobIDReplayDelivery {
		t.Fatalf("expected job id %q, got %q", JobIDReplayDelivery, roundTrip.JobID)
	}
	if roundTrip.IdempotencyKey != "replay:payments:msg_1" {
		t.Fatalf("unexpected idempotency key %q", roundTrip.IdempotencyKey)
	}
	if roundTrip.Parameters["delivery_id"] != "msg_1" {
		t.Fatalf("expected parameters to survive mapping")
	}
	if FromExecutionMessage(nil) != nil || ToExecutionMessage(nil) != nil {
		t.Fatalf("expected nil messages to map to nil")
	}
}

func TestEnqueueAndDequeueAdapters(t *testing.T) {
	ctx := context.Background()
	enqueuer := &stubQueueEnqueuer{}
	scheduler := NewReplayScheduler(NewEnqueuerAdapter(enqueuer))

	if err := scheduler.ScheduleReplayDue(ctx, 50); err != nil {
		t.Fatalf("schedule replay due: %v", err)
	}
	if enqueuer.last == nil || enqueuer.last.JobID != JobIDReplayDue {
		t.Fatalf("expected mapped go-job message")
	}

	dequeuer := &stubQueueDequeuer{delivery: &stubQueueDelivery{msg: enqueuer.last}}
	delivery, err := NewDequeuerAdapter(dequeuer, RetryPolicy{}).Dequeue(ctx)
	if err != nil {
		t.Fatalf("dequeue: %v", err)
	}
	got := delivery.Message()
	if got == nil || got.JobID != JobIDReplayDue || got.Parameters["limit"] != 50 {
		t.Fatalf("expected mapped core message, got %#v", got)
	}
	if err := delivery.Ack(ctx); err != nil {
		t.Fatalf("ack: %v", err)
	}
	if !dequeuer.delivery.(*stubQueueDelivery).acked {
		t.Fatalf("expected ack on underlying delivery")
	}
}

func TestScheduleReplayRequiresDeliveryID(t *testing.T) {
	scheduler := NewReplayScheduler(NewEnqueuerAdapter(&stubQueueEnqueuer{}))
	if err := scheduler.ScheduleReplay(context.Background(), "payments", " "); err == nil {
		t.Fatalf("expected empty delivery id to fail")
	}
	var unconfigured *ReplayScheduler
	if err := unconfigured.ScheduleReplayDue(context.Background(), 1); err == nil {
		t.Fatalf("expected nil scheduler to fail")
	}
}

func TestNackRetryPolicyBoundaries(t *testing.T) {
	ctx := context.Background()
	rawDelivery := &stubQueueDelivery{msg: ToExecutionMessage(NewReplayDeliveryJob("", "msg_2"))}
	adapter := NewDeliveryAdapter(rawDelivery, RetryPolicy{
		MaxAttempts:     3,
		MaxDelay:        10 * time.Second,
		DeadLetterOnMax: true,
	})

	if err := adapter.NackForAttempt(ctx, core.JobNackOptions{
		Delay:   30 * time.Second,
		Requeue: true,
		Reason:  "transient",
	}, 1); err != nil {
		t.Fatalf("nack attempt 1: %v", err)
	}
	if rawDelivery.nackOpts.Delay != 10*time.Second {
		t.Fatalf("expected delay to be bounded, got %s", rawDelivery.nackOpts.Delay)
	}
	if !rawDelivery.nackOpts.Requeue {
		t.Fatalf("expected message to be requeued before max attempts")
	}

	if err := adapter.NackForAttempt(ctx, core.JobNackOptions{
		Delay:   time.Second,
		Requeue: true,
		Reason:  "still failing",
	}, 3); err != nil {
		t.Fatalf("nack max attempt: %v", err)
	}
	if rawDelivery.nackOpts.Requeue {
		t.Fatalf("expected no requeue once max attempts is reached")
	}
	if !rawDelivery.nackOpts.DeadLetter {
		t.Fatalf("expected dead letter on max attempts")
	}
}

func TestWorkerHookAdapterEventMapping(t *testing.T) {
	now := time.Now().UTC().Add(-time.Second)
	coreHook := &capturingHook{}
	adapter := NewWorkerHookAdapter(coreHook)

	evt := worker.Event{
		Message:   ToExecutionMessage(NewReplayDeliveryJob("payments", "msg_3")),
		Attempt:   2,
		Delay:     5 * time.Second,
		Err:       errors.New("retry"),
		StartedAt: now,
		Duration:  250 * time.Millisecond,
	}

	adapter.OnRetry(context.Background(), evt)
	if len(coreHook.retries) != 1 {
		t.Fatalf("expected one retry event, got %d", len(coreHook.retries))
	}
	last := coreHook.retries[0]
	if last.Message == nil || last.Message.JobID != JobIDReplayDelivery {
		t.Fatalf("expected job id mapping, got %#v", last.Message)
	}
	if last.Attempt != 2 || last.Delay != 5*time.Second {
		t.Fatalf("unexpected attempt/delay mapping %#v", last)
	}
	if last.Duration != 250*time.Millisecond || last.StartedAt.IsZero() {
		t.Fatalf("expected timing mapping")
	}
	if last.Err == nil || last.Err.Error() != "retry" {
		t.Fatalf("expected error mapping")
	}

	adapter.OnStart(context.Background(), evt)
	adapter.OnSuccess(context.Background(), evt)
	adapter.OnFailure(context.Background(), evt)
	if coreHook.starts != 1 || coreHook.successes != 1 || len(coreHook.failures) != 1 {
		t.Fatalf("expected every hook to be forwarded, got %#v", coreHook)
	}
}

type stubQueueEnqueuer struct {
	last *job.ExecutionMessage
}

func (s *stubQueueEnqueuer) Enqueue(_ context.Context, msg *job.ExecutionMessage) error {
	s.last = msg
	return nil
}

type stubQueueDequeuer struct {
	delivery queue.Delivery
}

func (s *stubQueueDequeuer) Dequeue(context.Context) (queue.Delivery, error) {
	return s.delivery, nil
}

type stubQueueDelivery struct {
	msg      *job.ExecutionMessage
	acked    bool
	nacked   bool
	nackOpts queue.NackOptions
}

func (s *stubQueueDelivery) Message() *job.ExecutionMessage {
	return s.msg
}

func (s *stubQueueDelivery) Ack(context.Context) error {
	s.acked = true
	return nil
}

func (s *stubQueueDelivery) Nack(_ context.Context, opts queue.NackOptions) error {
	s.nacked = true
	s.nackOpts = opts
	return nil
}

type capturingHook struct {
	starts    int
	successes int
	failures  []core.JobWorkerEvent
	retries   []core.JobWorkerEvent
}

func (h *capturingHook) OnStart(context.Context, core.JobWorkerEvent)   { h.starts++ }
func (h *capturingHook) OnSuccess(context.Context, core.JobWorkerEvent) { h.successes++ }
func (h *capturingHook) OnFailure(_ context.Context, event core.JobWorkerEvent) {
	h.failures = append(h.failures, event)
}
func (h *capturingHook) OnRetry(_ context.Context, event core.JobWorkerEvent) {
	h.retries = append(h.retries, event)
}

var _ core.JobWorkerHook = (*capturingHook)(nil)
