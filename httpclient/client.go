package httpclient

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/logger"
	"github.com/kbukum/netc/provider"
)

var errNilRequest = errors.New("httpclient: nil request")

// Client dispatches Requests through a Transport and classifies each
// outcome into a Response[S] or an *Error[F].
type Client[S, F any] struct {
	transport Transport
	policy    *casing.Policy
	log       *logger.Logger
}

// Result is the single value delivered by DoAsync.
type Result[S any] struct {
	Response *Response[S]
	Err      error
}

type clientOptions struct {
	transport  Transport
	policy     *casing.Policy
	log        *logger.Logger
	middleware []provider.Middleware[TransportRequest, *TransportResponse]
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

// WithTransport sets the transport. The default is Default() at
// construction time.
func WithTransport(t Transport) ClientOption {
	return func(o *clientOptions) { o.transport = t }
}

// WithPolicy captures a casing policy for every request of the client.
// Without it the process-wide policy is resolved once per call.
func WithPolicy(p casing.Policy) ClientOption {
	return func(o *clientOptions) { o.policy = &p }
}

// WithLogger sets the logger for per-call debug lines.
func WithLogger(l *logger.Logger) ClientOption {
	return func(o *clientOptions) { o.log = l }
}

// WithMiddleware wraps the transport, outermost first.
//
//	httpclient.WithMiddleware(
//	    provider.WithLogging[httpclient.TransportRequest, *httpclient.TransportResponse](log),
//	    provider.WithTracing[httpclient.TransportRequest, *httpclient.TransportResponse]("billing"),
//	)
func WithMiddleware(mw ...provider.Middleware[TransportRequest, *TransportResponse]) ClientOption {
	return func(o *clientOptions) { o.middleware = append(o.middleware, mw...) }
}

// NewClient creates a client bound to success shape S and error shape F.
func NewClient[S, F any](opts ...ClientOption) *Client[S, F] {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = Default()
	}
	if o.log == nil {
		o.log = logger.Get(defaultName)
	}
	t := o.transport
	if len(o.middleware) > 0 {
		t = provider.Chain(o.middleware...)(t)
	}
	return &Client[S, F]{transport: t, policy: o.policy, log: o.log}
}

// compile-time assertion
var _ provider.RequestResponse[*Request, *Response[Empty]] = (*Client[Empty, Empty])(nil)

// Name returns the underlying transport name (implements provider.Provider).
func (c *Client[S, F]) Name() string { return c.transport.Name() }

// IsAvailable delegates to the transport (implements provider.Provider).
func (c *Client[S, F]) IsAvailable(ctx context.Context) bool { return c.transport.IsAvailable(ctx) }

// Execute is Do under the provider.RequestResponse contract.
func (c *Client[S, F]) Execute(ctx context.Context, req *Request) (*Response[S], error) {
	return c.Do(ctx, req)
}

// Transport returns the possibly wrapped transport the client dispatches to.
func (c *Client[S, F]) Transport() Transport { return c.transport }

type exchange struct {
	resp *TransportResponse
	err  error
}

// Do sends req and classifies the outcome. If ctx is done before the
// transport yields, Do returns an *Error[F] of KindUnknown wrapping
// ctx.Err() and the transport outcome is discarded.
func (c *Client[S, F]) Do(ctx context.Context, req *Request) (*Response[S], error) {
	if req == nil {
		return nil, &Error[F]{Kind: KindUnknown, Err: errNilRequest}
	}
	if err := ctx.Err(); err != nil {
		return nil, &Error[F]{Kind: KindUnknown, Err: err}
	}

	policy := casing.Resolve(c.policy)
	treq := req.TransportRequest(&policy)

	start := time.Now()
	done := make(chan exchange, 1)
	go func() {
		resp, err := c.transport.Execute(ctx, treq)
		done <- exchange{resp: resp, err: err}
	}()

	var ex exchange
	select {
	case <-ctx.Done():
		c.logCall(ctx, treq, nil, KindUnknown.String(), start)
		return nil, &Error[F]{Kind: KindUnknown, Err: ctx.Err()}
	case ex = <-done:
	}
	if err := ctx.Err(); err != nil {
		c.logCall(ctx, treq, nil, KindUnknown.String(), start)
		return nil, &Error[F]{Kind: KindUnknown, Err: err}
	}

	out, err := Classify[S, F](ex.resp, ex.err, &policy)
	if err != nil {
		c.logCall(ctx, treq, ex.resp, KindOf(err).String(), start)
		return nil, err
	}
	c.logCall(ctx, treq, ex.resp, "success", start)
	return out, nil
}

// DoAsync runs Do in a goroutine. The returned channel delivers exactly one
// Result and is then closed.
func (c *Client[S, F]) DoAsync(ctx context.Context, req *Request) <-chan Result[S] {
	out := make(chan Result[S], 1)
	go func() {
		defer close(out)
		resp, err := c.Do(ctx, req)
		out <- Result[S]{Response: resp, Err: err}
	}()
	return out
}

func (c *Client[S, F]) logCall(ctx context.Context, req TransportRequest, resp *TransportResponse, outcome string, start time.Time) {
	fields := logger.Fields(
		logger.FieldMethod, req.Method.String(),
		logger.FieldURL, req.URL,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if resp != nil {
		fields[logger.FieldStatusCode] = resp.StatusCode
	}
	fields[logger.FieldStatus] = outcome
	c.log.WithContext(ctx).Debug("http call", fields)
}
