// Package observability wires OpenTelemetry tracing and metrics for netc.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("billing-client"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartClientSpan(ctx, "GET", "https://api.example.com/users")
//	defer observability.EndSpan(span, statusCode, err)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("billing-client"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("netc"))
//	metrics.RecordRequestEnd(ctx, "default", "GET", "ok", duration)
package observability
