package gologger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-paywebhooks/core"

	glog "github.com/goliatone/go-logger/glog"
)

func TestResolveDeterministicFallback(t *testing.T) {
	loggerOnly := &capturingLogger{id: "logger"}
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}

	var resolvedProvider glog.LoggerProvider
	_, resolved := Resolve("paywebhooks", provider, loggerOnly)
	got := resolved.(*capturingLogger)
	if got.id != "provider" {
		t.Fatalf("expected provider logger precedence, got %q", got.id)
	}

	resolvedProvider, resolved = Resolve("paywebhooks", nil, loggerOnly)
	got = resolved.(*capturingLogger)
	if got.id != "logger" {
		t.Fatalf("expected direct logger when provider is nil, got %q", got.id)
	}
	if resolvedProvider == nil {
		t.Fatalf("expected provider wrapper from logger")
	}

	_, resolved = Resolve("paywebhooks", nil, nil)
	if resolved == nil {
		t.Fatalf("expected nop logger fallback")
	}
}

func TestGoJobBridgeCompatibility(t *testing.T) {
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}

	_, _, jobProvider, jobLogger := ResolveForJob("paywebhooks", provider, nil)
	if jobProvider == nil {
		t.Fatalf("expected go-job provider bridge")
	}
	if jobLogger == nil {
		t.Fatalf("expected go-job logger bridge")
	}

	bridged := jobProvider.GetLogger("paywebhooks")
	bridged.Info("hello", "k", "v")

	captured := providerLogger.lastInfo
	if captured.msg != "hello" {
		t.Fatalf("expected bridged message, got %q", captured.msg)
	}
	if captured.args[0] != "k" || captured.args[1] != "v" {
		t.Fatalf("expected bridged args, got %#v", captured.args)
	}
}

func TestNewObserverLogsThroughResolvedProvider(t *testing.T) {
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}
	metrics := &countingMetrics{}

	observer := NewObserver("", provider, nil, metrics)
	observer.ObserveOperation(context.Background(), time.Now(), "decode_event", nil, map[string]any{
		"event_type": "payment.succeeded",
	})
	if providerLogger.lastInfo.msg != "decode_event succeeded" {
		t.Fatalf("expected success log line, got %q", providerLogger.lastInfo.msg)
	}
	if metrics.counters != 1 || metrics.histograms != 1 {
		t.Fatalf("expected one counter and one histogram, got %d/%d", metrics.counters, metrics.histograms)
	}

	observer.ObserveOperation(context.Background(), time.Now(), "decode_event", errors.New("malformed body"), nil)
	if providerLogger.errors != 1 {
		t.Fatalf("expected failure to log at error level, got %d", providerLogger.errors)
	}
}

func TestNamedLoggerFallsBackToNop(t *testing.T) {
	if NamedLogger("", nil, nil) == nil {
		t.Fatalf("expected nop logger")
	}
	direct := &capturingLogger{id: "direct"}
	if got := NamedLogger("x", nil, direct); got.(*capturingLogger).id != "direct" {
		t.Fatalf("expected direct logger, got %#v", got)
	}
}

func TestRuntimeOptionsInstallLogger(t *testing.T) {
	if len(RuntimeOptions(nil, nil)) != 0 {
		t.Fatalf("expected no options for nil inputs")
	}
	providerLogger := &capturingLogger{id: "provider"}
	runtime, err := core.NewRuntime(core.DefaultConfig(), RuntimeOptions(&capturingProvider{logger: providerLogger}, nil)...)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	runtime.Logger().Info("ready")
	if providerLogger.lastInfo.msg != "ready" {
		t.Fatalf("expected runtime logger to come from provider, got %q", providerLogger.lastInfo.msg)
	}
}

type countingMetrics struct {
	counters   int
	histograms int
}

func (m *countingMetrics) IncCounter(context.Context, string, int64, map[string]string) { m.counters++ }
func (m *countingMetrics) ObserveHistogram(context.Context, string, float64, map[string]string) {
	m.histograms++
}

var (
	_ glog.Logger         = (*capturingLogger)(nil)
	_ glog.LoggerProvider = (*capturingProvider)(nil)
)

type capturingProvider struct {
	logger *capturingLogger
}

func (p *capturingProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type infoCall struct {
	msg  string
	args []any
}

type capturingLogger struct {
	id       string
	lastInfo infoCall
	errors   int
}

func (l *capturingLogger) Trace(string, ...any) {}
func (l *capturingLogger) Debug(string, ...any) {}
func (l *capturingLogger) Warn(string, ...any)  {}
func (l *capturingLogger) Error(string, ...any) { l.errors++ }
func (l *capturingLogger) Fatal(string, ...any) {}

func (l *capturingLogger) Info(msg string, args ...any) {
	l.lastInfo = infoCall{
		msg:  msg,
		args: append([]any(nil), args...),
	}
}

func (l *capturingLogger) WithContext(context.Context) glog.Logger {
	return l
}
