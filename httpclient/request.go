package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/codec"
	"github.com/kbukum/netc/logger"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// Request describes an outbound call: URL, method, headers and an optional
// body. It is immutable once constructed.
type Request struct {
	url     string
	method  Method
	headers map[string]string
	body    any
	hasBody bool
}

// RequestOption configures a Request at construction.
type RequestOption func(*Request)

// WithMethod sets the request method. The default is GET.
func WithMethod(m Method) RequestOption {
	return func(r *Request) { r.method = m }
}

// WithHeader sets a single header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) { r.headers[key] = value }
}

// WithHeaders merges headers into the request. The map is copied.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) { maps.Copy(r.headers, headers) }
}

// NewRequest creates a body-less request for url.
func NewRequest(url string, opts ...RequestOption) *Request {
	r := &Request{
		url:     url,
		method:  MethodGet,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewBodyRequest creates a request carrying body. The body is serialized to
// JSON when the request is converted for a transport.
//
//	req := httpclient.NewBodyRequest(url, comment, httpclient.WithMethod(httpclient.MethodPost))
func NewBodyRequest[B any](url string, body B, opts ...RequestOption) *Request {
	r := NewRequest(url, opts...)
	r.body = body
	r.hasBody = true
	return r
}

// URL returns the target URL.
func (r *Request) URL() string { return r.url }

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// Headers returns a copy of the request headers.
func (r *Request) Headers() map[string]string { return maps.Clone(r.headers) }

// HasBody reports whether the request was created with a body.
func (r *Request) HasBody() bool { return r.hasBody }

// Body returns the unserialized body, or nil.
func (r *Request) Body() any { return r.body }

// Encode serializes the body with the encoding strategy of policy. A nil
// policy resolves the process-wide policy. Requests without a body encode
// to nil.
func (r *Request) Encode(policy *casing.Policy) ([]byte, error) {
	if !r.hasBody {
		return nil, nil
	}
	p := casing.Resolve(policy)
	return codec.Marshal(r.body, &p)
}

// TransportRequest converts the descriptor into the representation a
// Transport consumes. The casing policy is read at call time. A body that
// cannot be serialized is dropped and logged; Content-Type is still set.
func (r *Request) TransportRequest(policy *casing.Policy) TransportRequest {
	tr := TransportRequest{
		Method:  r.method,
		URL:     r.url,
		Headers: maps.Clone(r.headers),
	}
	if !r.hasBody {
		return tr
	}
	body, err := r.Encode(policy)
	if err != nil {
		logger.Get("httpclient").Warn("request body not serializable, sending without body", logger.Fields(
			logger.FieldMethod, r.method.String(),
			logger.FieldURL, r.url,
			logger.FieldError, err.Error(),
		))
	} else {
		tr.Body = body
	}
	tr.Headers[headerContentType] = contentTypeJSON
	return tr
}

// HTTPRequest builds a net/http request with the same URL, method, headers
// and body as TransportRequest.
func (r *Request) HTTPRequest(ctx context.Context, policy *casing.Policy) (*http.Request, error) {
	return newHTTPRequest(ctx, r.TransportRequest(policy))
}

func newHTTPRequest(ctx context.Context, tr TransportRequest) (*http.Request, error) {
	var body io.Reader
	if tr.Body != nil {
		body = bytes.NewReader(tr.Body)
	}
	req, err := http.NewRequestWithContext(ctx, tr.Method.String(), tr.URL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request: %w", err)
	}
	for k, v := range tr.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
