package core

import (
	"context"
	"strings"
)

const metricsPrefix = "paywebhooks"

// OperationCounterName is the counter Observer increments once per operation.
func OperationCounterName(operation string) string {
	return metricsPrefix + "." + strings.TrimSpace(operation) + ".total"
}

// OperationHistogramName is the histogram Observer fills with elapsed
// milliseconds.
func OperationHistogramName(operation string) string {
	return metricsPrefix + "." + strings.TrimSpace(operation) + ".duration_ms"
}

// NopMetricsRecorder drops the paywebhooks.<op>.total counters and
// paywebhooks.<op>.duration_ms histograms emitted by Observer.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

// cloneTags copies operation tags so recorders can keep them.
func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}
