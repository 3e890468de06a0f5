package core

import (
	"context"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type capturedCounter struct {
	name  string
	value int64
	tags  map[string]string
}

type capturedHistogram struct {
	name  string
	value float64
	tags  map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms []capturedHistogram
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, value: value, tags: cloneTags(tags)})
}

func (m *captureMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms = append(m.histograms, capturedHistogram{name: name, value: value, tags: cloneTags(tags)})
}

type capturedLog struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu       *sync.Mutex
	records  *[]capturedLog
	defaults map[string]any
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records, defaults: map[string]any{}}
}

func (l *captureLogger) WithFields(fields map[string]any) Logger {
	merged := cloneFieldMap(l.defaults)
	for key, value := range fields {
		merged[key] = value
	}
	return &captureLogger{mu: l.mu, records: l.records, defaults: merged}
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args...) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args...) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args...) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args...) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args...) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args...) }

func (l *captureLogger) WithContext(context.Context) Logger {
	return &captureLogger{mu: l.mu, records: l.records, defaults: cloneFieldMap(l.defaults)}
}

func (l *captureLogger) record(level string, msg string, args ...any) {
	fields := cloneFieldMap(l.defaults)
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg, fields: fields})
}

func (l *captureLogger) snapshot() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := *l.records
	out := make([]capturedLog, len(items))
	copy(out, items)
	return out
}

func cloneFieldMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return map[string]any{}
	}
	output := make(map[string]any, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}

func TestObserver_RecordsSuccessMetricsAndLog(t *testing.T) {
	logger := newCaptureLogger()
	metrics := &captureMetricsRecorder{}
	observer := NewObserver(logger, metrics)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	observer.Now = func() time.Time { return now }

	observer.ObserveOperation(context.Background(), now.Add(-25*time.Millisecond), "Process Webhook", nil, map[string]any{
		"provider_id": "payments",
		"event_type":  "payment.succeeded",
	})

	if len(metrics.counters) != 1 || metrics.counters[0].name != "paywebhooks.process_webhook.total" {
		t.Fatalf("expected normalized counter, got %#v", metrics.counters)
	}
	if metrics.counters[0].tags["event_type"] != "payment.succeeded" {
		t.Fatalf("expected event_type tag, got %#v", metrics.counters[0].tags)
	}
	if len(metrics.histograms) != 1 || metrics.histograms[0].value != 25 {
		t.Fatalf("expected 25ms histogram, got %#v", metrics.histograms)
	}
	records := logger.snapshot()
	if len(records) != 1 {
		t.Fatalf("expected one log record, got %d", len(records))
	}
	if records[0].level != "info" || records[0].msg != "process_webhook succeeded" {
		t.Fatalf("unexpected log record %#v", records[0])
	}
	if records[0].fields["status"] != "success" {
		t.Fatalf("expected status field, got %#v", records[0].fields)
	}
}

func TestObserver_RecordsFailureWithTextCode(t *testing.T) {
	logger := newCaptureLogger()
	metrics := &captureMetricsRecorder{}
	observer := NewObserver(logger, metrics)

	failure := goerrors.New("body is malformed", goerrors.CategoryBadInput).
		WithTextCode(ServiceErrorMalformedInput)
	observer.ObserveOperation(context.Background(), time.Now(), "decode", failure, nil)

	records := logger.snapshot()
	if len(records) != 1 || records[0].level != "error" {
		t.Fatalf("expected one error record, got %#v", records)
	}
	if records[0].fields["error_text_code"] != ServiceErrorMalformedInput {
		t.Fatalf("expected error text code field, got %#v", records[0].fields)
	}
	if metrics.counters[0].tags["status"] != "failure" {
		t.Fatalf("expected failure tag, got %#v", metrics.counters[0].tags)
	}
}

func TestObserver_NilIsSafe(t *testing.T) {
	var observer *Observer
	observer.ObserveOperation(context.Background(), time.Now(), "noop", nil, nil)
}

func TestOperationMetricNames(t *testing.T) {
	if got := OperationCounterName(" decode_strict "); got != "paywebhooks.decode_strict.total" {
		t.Fatalf("unexpected counter name %q", got)
	}
	if got := OperationHistogramName("replay_due"); got != "paywebhooks.replay_due.duration_ms" {
		t.Fatalf("unexpected histogram name %q", got)
	}
}
