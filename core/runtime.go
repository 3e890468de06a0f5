package core

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

const defaultLoggerName = "paywebhooks"

// Runtime holds the resolved configuration and ambient collaborators shared by
// the processor, router and command handlers.
type Runtime struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	observer        *Observer
}

type RuntimeDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
}

func NewRuntime(cfg Config, opts ...Option) (*Runtime, error) {
	builder := defaultRuntimeBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve(defaultLoggerName, builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger(defaultLoggerName); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Runtime{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		observer:        NewObserver(logger, builder.metricsRecorder),
	}, nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (r *Runtime) Config() Config {
	if r == nil {
		return DefaultConfig()
	}
	return r.config
}

func (r *Runtime) Logger() Logger {
	if r == nil {
		return glog.Nop()
	}
	return r.logger
}

// NamedLogger returns a child logger from the provider, falling back to the
// runtime logger.
func (r *Runtime) NamedLogger(name string) Logger {
	if r == nil {
		return glog.Nop()
	}
	if r.loggerProvider != nil {
		if named := r.loggerProvider.GetLogger(name); named != nil {
			return named
		}
	}
	return r.logger
}

func (r *Runtime) Metrics() MetricsRecorder {
	if r == nil || r.metricsRecorder == nil {
		return NopMetricsRecorder{}
	}
	return r.metricsRecorder
}

func (r *Runtime) Observer() *Observer {
	if r == nil {
		return nil
	}
	return r.observer
}

// MapError converts err through the configured error mapper.
func (r *Runtime) MapError(err error) error {
	if r == nil {
		return mapBuildError(defaultErrorMapper, err)
	}
	return mapBuildError(r.errorMapper, err)
}

func (r *Runtime) Dependencies() RuntimeDependencies {
	if r == nil {
		return RuntimeDependencies{}
	}
	return RuntimeDependencies{
		Logger:          r.logger,
		LoggerProvider:  r.loggerProvider,
		MetricsRecorder: r.metricsRecorder,
		ErrorFactory:    r.errorFactory,
		ErrorMapper:     r.errorMapper,
		ConfigProvider:  r.configProvider,
		OptionsResolver: r.optionsResolver,
	}
}
