// Package provider defines the request/response provider contract that
// netc transports implement, and the middleware that wraps them.
//
// A RequestResponse[I, O] takes one input and returns one output. The HTTP
// transport is a RequestResponse[httpclient.TransportRequest,
// *httpclient.TransportResponse]; typed clients are themselves
// RequestResponse[*httpclient.Request, *httpclient.Response[S]].
//
// # Middleware
//
// Middleware[I, O] wraps a RequestResponse. Use Chain to compose them:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("billing-client"),
//	)(transport)
//
// Inputs and outputs implementing Labeler feed their labels (method, url,
// status_code) into log fields, span attributes and metric attributes.
package provider
