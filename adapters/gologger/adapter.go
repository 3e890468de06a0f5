package gologger

import (
	"github.com/goliatone/go-paywebhooks/core"

	job "github.com/goliatone/go-job"
	glog "github.com/goliatone/go-logger/glog"
)

// DefaultName is the logger name used when callers pass an empty one.
const DefaultName = "paywebhooks"

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	if name == "" {
		name = DefaultName
	}
	return glog.Resolve(name, provider, logger)
}

// NamedLogger returns the provider's named logger when a provider is given,
// otherwise the resolved logger.
func NamedLogger(name string, provider glog.LoggerProvider, logger glog.Logger) glog.Logger {
	if name == "" {
		name = DefaultName
	}
	if provider != nil {
		if named := provider.GetLogger(name); named != nil {
			return named
		}
	}
	_, resolved := Resolve(name, provider, logger)
	return glog.Ensure(resolved)
}

// NewObserver builds the operation observer used by the decoder, processor
// and router from a resolved logger and a metrics recorder.
func NewObserver(
	name string,
	provider glog.LoggerProvider,
	logger glog.Logger,
	metrics core.MetricsRecorder,
) *core.Observer {
	return core.NewObserver(NamedLogger(name, provider, logger), metrics)
}

// RuntimeOptions returns the core runtime options that install provider and
// logger. Nil values are skipped.
func RuntimeOptions(provider glog.LoggerProvider, logger glog.Logger) []core.Option {
	opts := []core.Option{}
	if provider != nil {
		opts = append(opts, core.WithLoggerProvider(provider))
	}
	if logger != nil {
		opts = append(opts, core.WithLogger(logger))
	}
	return opts
}

// ToJobProvider maps a glog provider to the go-job logger provider contract.
func ToJobProvider(provider glog.LoggerProvider) job.LoggerProvider {
	if provider == nil {
		return nil
	}
	return job.GoLoggerProvider(provider)
}

// ToJobLogger maps a glog logger to the go-job logger contract.
func ToJobLogger(logger glog.Logger) job.Logger {
	if logger == nil {
		return nil
	}
	return job.GoLogger(logger)
}

// ResolveForJob resolves glog logger/provider then returns the go-job
// equivalents used by replay workers.
func ResolveForJob(
	name string,
	provider glog.LoggerProvider,
	logger glog.Logger,
) (glog.LoggerProvider, glog.Logger, job.LoggerProvider, job.Logger) {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return resolvedProvider, resolvedLogger, ToJobProvider(resolvedProvider), ToJobLogger(resolvedLogger)
}
