package provider

import (
	"context"
	"time"

	"github.com/kbukum/netc/observability"
)

// WithMetrics returns a Middleware that records request count, duration,
// in-flight gauge and transport errors on the given instruments.
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	method := labelsOf(input)["method"]
	m.metrics.RecordRequestStart(ctx)
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		m.metrics.RecordError(ctx, "transport_failure", m.inner.Name())
	} else if code := labelsOf(output)["status_code"]; code != "" {
		status = code
	}
	m.metrics.RecordRequestEnd(ctx, m.inner.Name(), method, status, duration)
	return output, err
}
