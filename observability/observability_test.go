package observability

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an SDK tracer provider backed by a span recorder
// for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("test-service")
	if tc.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", tc.ServiceName)
	}
	if tc.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", tc.Endpoint)
	}
	if tc.SampleRate != 1.0 || !tc.Insecure {
		t.Errorf("unexpected tracer defaults: %+v", tc)
	}

	mc := DefaultMeterConfig("test-service")
	if mc.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", mc.Interval)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
	}
	for _, tt := range tests {
		if got := samplerFor(tt.rate).Description(); got != tt.want {
			t.Errorf("samplerFor(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
	if got := samplerFor(0.5).Description(); got == "AlwaysOnSampler" {
		t.Errorf("expected ratio sampler for 0.5, got %s", got)
	}
}

func TestNewMetrics(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "default", "GET", "ok", 100*time.Millisecond)
	metrics.RecordError(ctx, "invalid_response", "default")
}

func TestStartClientSpan(t *testing.T) {
	sr := recordSpans(t)

	_, span := StartClientSpan(context.Background(), "GET", "https://api.example.com/users",
		attribute.String(AttrTransport, "default"))
	EndSpan(span, 200, nil)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != "HTTP GET" {
		t.Errorf("expected span name 'HTTP GET', got %s", s.Name())
	}
	if v, ok := attrValue(s.Attributes(), AttrURLFull); !ok || v.AsString() != "https://api.example.com/users" {
		t.Errorf("expected url.full attribute, got %v", v)
	}
	if v, ok := attrValue(s.Attributes(), AttrHTTPStatusCode); !ok || v.AsInt64() != 200 {
		t.Errorf("expected status code 200, got %v", v)
	}
	if v, ok := attrValue(s.Attributes(), AttrTransport); !ok || v.AsString() != "default" {
		t.Errorf("expected transport attribute, got %v", v)
	}
	if s.Status().Code != codes.Ok {
		t.Errorf("expected Ok status, got %v", s.Status().Code)
	}
}

func TestEndSpanStatuses(t *testing.T) {
	sr := recordSpans(t)

	_, s1 := StartClientSpan(context.Background(), "POST", "http://x")
	EndSpan(s1, 503, nil)
	_, s2 := StartClientSpan(context.Background(), "POST", "http://x")
	EndSpan(s2, 0, fmt.Errorf("dial failed"))
	_, s3 := StartClientSpan(context.Background(), "POST", "http://x")
	EndSpan(s3, 404, nil)

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Error("expected 503 to mark span as error")
	}
	if spans[1].Status().Description != "dial failed" {
		t.Errorf("expected error description, got %q", spans[1].Status().Description)
	}
	if _, ok := attrValue(spans[1].Attributes(), AttrHTTPStatusCode); ok {
		t.Error("expected no status attribute when no response arrived")
	}
	if spans[2].Status().Code != codes.Ok {
		t.Error("expected 404 to leave span ok")
	}
}

func TestInjectHTTPHeaders(t *testing.T) {
	recordSpans(t)
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(prev)

	ctx, span := StartSpan(context.Background(), "outer")
	defer span.End()

	h := http.Header{}
	InjectHTTPHeaders(ctx, h)
	if h.Get("Traceparent") == "" {
		t.Error("expected traceparent header to be injected")
	}

	empty := http.Header{}
	InjectHTTPHeaders(context.Background(), empty)
	if empty.Get("Traceparent") != "" {
		t.Error("expected no traceparent without a span")
	}
}

func TestSpanHelpers(t *testing.T) {
	sr := recordSpans(t)

	ctx, span := StartSpan(context.Background(), "attrs")
	SetSpanAttribute(ctx, "string-key", "value")
	SetSpanAttribute(ctx, "int-key", 42)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	SetSpanError(ctx, fmt.Errorf("boom"))
	span.End()

	s := sr.Ended()[0]
	if len(s.Attributes()) != 6 {
		t.Errorf("expected 6 attributes, got %d", len(s.Attributes()))
	}
	if len(s.Events()) != 1 {
		t.Errorf("expected 1 error event, got %d", len(s.Events()))
	}

	// no recording span: must not panic
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), fmt.Errorf("no span"))
}

func TestInitTracerAndMeter(t *testing.T) {
	prevTP := otel.GetTracerProvider()
	prevMP := otel.GetMeterProvider()
	prevProp := otel.GetTextMapPropagator()
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
		otel.SetTextMapPropagator(prevProp)
	}()

	ctx := context.Background()
	tp, err := InitTracer(ctx, DefaultTracerConfig("test"))
	if err != nil {
		t.Skipf("InitTracer failed: %v", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	mp, err := InitMeter(ctx, DefaultMeterConfig("test"))
	if err != nil {
		t.Skipf("InitMeter failed: %v", err)
	}
	defer func() { _ = mp.Shutdown(ctx) }()

	if Tracer("x") == nil || Meter("x") == nil {
		t.Fatal("expected tracer and meter from global providers")
	}
}
