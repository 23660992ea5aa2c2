package provider

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/netc/observability"
)

// WithTracing returns a Middleware that wraps each Execute call in a span.
// Inputs labelled with "method" and "url" get an HTTP client span, others a
// span named "{serviceName}.{providerName}". A "status_code" label on the
// output is recorded on the span.
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, serviceName: serviceName}
	}
}

type tracingRR[I, O any] struct {
	inner       RequestResponse[I, O]
	serviceName string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	attrs := []attribute.KeyValue{
		attribute.String(observability.AttrServiceName, t.serviceName),
		attribute.String(observability.AttrTransport, t.inner.Name()),
	}

	var span trace.Span
	if in := labelsOf(input); in["method"] != "" {
		ctx, span = observability.StartClientSpan(ctx, in["method"], in["url"], attrs...)
	} else {
		ctx, span = observability.StartSpan(ctx, t.serviceName+"."+t.inner.Name())
		span.SetAttributes(attrs...)
	}

	output, err := t.inner.Execute(ctx, input)

	status := 0
	if err == nil {
		status, _ = strconv.Atoi(labelsOf(output)["status_code"])
	}
	observability.EndSpan(span, status, err)
	return output, err
}
