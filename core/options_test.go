package core

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type fixedConfigProvider struct {
	cfg Config
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, nil
}

type fixedOptionsResolver struct {
	cfg Config
}

func (r *fixedOptionsResolver) Resolve(Config, Config, Config) (Config, error) {
	return r.cfg, nil
}

func TestNewRuntime_DefaultDependencies(t *testing.T) {
	runtime, err := NewRuntime(Config{})
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	deps := runtime.Dependencies()
	if deps.Logger == nil {
		t.Fatalf("expected default logger")
	}
	if deps.LoggerProvider == nil {
		t.Fatalf("expected default logger provider")
	}
	if deps.ErrorFactory == nil {
		t.Fatalf("expected default error factory")
	}
	if deps.ErrorMapper == nil {
		t.Fatalf("expected default error mapper")
	}
	if deps.ConfigProvider == nil || deps.OptionsResolver == nil {
		t.Fatalf("expected default config provider and options resolver")
	}
	cfg := runtime.Config()
	if cfg.ServiceName != "paywebhooks" {
		t.Fatalf("expected default service_name, got %q", cfg.ServiceName)
	}
	if cfg.Delivery.MaxAttempts != 8 {
		t.Fatalf("expected default max attempts, got %d", cfg.Delivery.MaxAttempts)
	}
	if cfg.Webhook.Tolerance != 5*time.Minute {
		t.Fatalf("expected default tolerance, got %s", cfg.Webhook.Tolerance)
	}
	if runtime.Observer() == nil {
		t.Fatalf("expected observer")
	}
}

func TestNewRuntime_WithXOverrides(t *testing.T) {
	customLogger := stubLogger{}
	customProvider := stubLoggerProvider{logger: customLogger}
	sentinel := errors.New("sentinel")
	customMapper := func(error) *goerrors.Error {
		return goerrors.Wrap(sentinel, goerrors.CategoryOperation, "mapped")
	}
	configProvider := &fixedConfigProvider{cfg: Config{ServiceName: "from-provider"}}
	optionsResolver := &fixedOptionsResolver{cfg: Config{ServiceName: "resolved"}}
	metrics := &captureMetricsRecorder{}

	runtime, err := NewRuntime(Config{ServiceName: "runtime"},
		WithLogger(customLogger),
		WithLoggerProvider(customProvider),
		WithErrorMapper(customMapper),
		WithConfigProvider(configProvider),
		WithOptionsResolver(optionsResolver),
		WithMetricsRecorder(metrics),
	)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	if runtime.Config().ServiceName != "resolved" {
		t.Fatalf("expected resolver output, got %q", runtime.Config().ServiceName)
	}
	if runtime.Dependencies().ConfigProvider != configProvider {
		t.Fatalf("expected custom config provider")
	}
	if runtime.Metrics() != metrics {
		t.Fatalf("expected custom metrics recorder")
	}
	mapped := runtime.MapError(errors.New("boom"))
	var rich *goerrors.Error
	if !goerrors.As(mapped, &rich) || rich.Message != "mapped" {
		t.Fatalf("expected custom mapper output, got %v", mapped)
	}
}

func TestNewRuntime_LayersRawConfigUnderRuntime(t *testing.T) {
	loader := StaticConfigLoader{Values: map[string]any{
		"service_name": "from-config",
		"decode": map[string]any{
			"validate": true,
		},
		"delivery": map[string]any{
			"max_attempts": 3,
		},
		"burst": map[string]any{
			"mode": "debounce",
		},
	}}
	runtime, err := NewRuntime(
		Config{ServiceName: "from-runtime"},
		WithConfigProvider(NewCfgxConfigProvider(loader)),
	)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	cfg := runtime.Config()
	if cfg.ServiceName != "from-runtime" {
		t.Fatalf("expected runtime layer to win, got %q", cfg.ServiceName)
	}
	if !cfg.Decode.Validate {
		t.Fatalf("expected decode.validate from config layer")
	}
	if cfg.Delivery.MaxAttempts != 3 {
		t.Fatalf("expected delivery.max_attempts=3, got %d", cfg.Delivery.MaxAttempts)
	}
	if cfg.Burst.Mode != BurstModeDebounce {
		t.Fatalf("expected burst mode debounce, got %q", cfg.Burst.Mode)
	}
	if cfg.Delivery.ClaimLease != 30*time.Second {
		t.Fatalf("expected default claim lease to survive, got %s", cfg.Delivery.ClaimLease)
	}
}

func TestNewRuntime_MapsConfigErrors(t *testing.T) {
	_, err := NewRuntime(Config{}, WithConfigProvider(NewCfgxConfigProvider(failingRawLoader{err: errors.New("config source unavailable")})))
	if err == nil {
		t.Fatalf("expected config load error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode == "" || rich.Code == 0 {
		t.Fatalf("expected populated envelope, got %#v", rich)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
	cfg.Burst.Mode = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid burst mode error")
	}
	cfg = DefaultConfig()
	cfg.Delivery.RetryMax = time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected retry bounds error")
	}
	cfg = DefaultConfig()
	cfg.ServiceName = " "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected service_name error")
	}
}

func TestNilRuntime_IsSafe(t *testing.T) {
	var runtime *Runtime
	if runtime.Config().ServiceName != "paywebhooks" {
		t.Fatalf("expected default config from nil runtime")
	}
	if runtime.Logger() == nil || runtime.NamedLogger("x") == nil {
		t.Fatalf("expected nop loggers from nil runtime")
	}
	if runtime.Metrics() == nil {
		t.Fatalf("expected nop metrics from nil runtime")
	}
}
