// Package prometheus exposes core.MetricsRecorder on a Prometheus registerer.
package prometheus

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Labels is the fixed label set every metric carries. Tags outside it are
// dropped and missing tags are recorded as empty strings.
var Labels = []string{"operation", "status", "provider_id", "event_type", "payload_type"}

// DurationBuckets are in milliseconds, 1ms to about 16s.
var DurationBuckets = prometheus.ExponentialBuckets(1, 2, 15)

// Recorder creates counter and histogram vectors on first use.
type Recorder struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// NewRecorder registers metrics on registerer, or on the default registerer
// when it is nil.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Recorder{
		registerer: registerer,
		counters:   map[string]*prometheus.CounterVec{},
		histograms: map[string]*prometheus.HistogramVec{},
	}
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value < 0 {
		return
	}
	vec, err := r.counter(name)
	if err != nil {
		return
	}
	vec.WithLabelValues(labelValues(tags)...).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	vec, err := r.histogram(name)
	if err != nil {
		return
	}
	vec.WithLabelValues(labelValues(tags)...).Observe(value)
}

func (r *Recorder) counter(name string) (*prometheus.CounterVec, error) {
	metric := MetricName(name)
	if metric == "" {
		return nil, fmt.Errorf("prometheus: metric name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if vec, ok := r.counters[metric]; ok {
		return vec, nil
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metric,
		Help: "Count of " + strings.TrimSpace(name) + ".",
	}, Labels)
	if err := r.registerer.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !asAlreadyRegistered(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		vec = existing
	}
	r.counters[metric] = vec
	return vec, nil
}

func (r *Recorder) histogram(name string) (*prometheus.HistogramVec, error) {
	metric := MetricName(name)
	if metric == "" {
		return nil, fmt.Errorf("prometheus: metric name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if vec, ok := r.histograms[metric]; ok {
		return vec, nil
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metric,
		Help:    "Distribution of " + strings.TrimSpace(name) + ".",
		Buckets: DurationBuckets,
	}, Labels)
	if err := r.registerer.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !asAlreadyRegistered(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		vec = existing
	}
	r.histograms[metric] = vec
	return vec, nil
}

// MetricName maps an observer metric name such as
// "paywebhooks.process_webhook.total" to a valid Prometheus name.
func MetricName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func labelValues(tags map[string]string) []string {
	values := make([]string, len(Labels))
	for i, label := range Labels {
		values[i] = strings.TrimSpace(tags[label])
	}
	return values
}

func asAlreadyRegistered(err error, target *prometheus.AlreadyRegisteredError) bool {
	already, ok := err.(prometheus.AlreadyRegisteredError)
	if ok {
		*target = already
	}
	return ok
}

var _ core.MetricsRecorder = (*Recorder)(nil)
