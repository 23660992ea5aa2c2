package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http2"

	"github.com/kbukum/netc/logger"
	"github.com/kbukum/netc/observability"
	"github.com/kbukum/netc/provider"
)

// compile-time assertions
var _ Transport = (*Adapter)(nil)
var _ provider.Closeable = (*Adapter)(nil)

// Adapter is the default Transport over net/http. It applies default
// headers, the User-Agent, an optional request-id header and W3C trace
// context, then reads the full response body.
type Adapter struct {
	httpClient *http.Client
	config     AdapterConfig
	log        *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithRoundTripper replaces the configured http.Transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.httpClient.Transport = rt }
}

// WithAdapterLogger sets the logger used for per-request debug lines.
func WithAdapterLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// NewAdapter creates a new HTTP adapter with the given configuration.
func NewAdapter(cfg AdapterConfig, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := newHTTPTransport(cfg.Transport)

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, fmt.Errorf("httpclient: %w", err)
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	if cfg.HTTP2 {
		if _, err := http2.ConfigureTransports(transport); err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.Get(loggerName(cfg)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// loggerName is the registry name an adapter built from cfg logs under.
func loggerName(cfg AdapterConfig) string {
	if cfg.Name == "" {
		return defaultName
	}
	return cfg.Name
}

func newHTTPTransport(cfg TransportConfig) *http.Transport {
	base, _ := http.DefaultTransport.(*http.Transport)
	if base == nil {
		base = &http.Transport{}
	}
	t := base.Clone()

	dialTimeout, keepAlive := 5*time.Second, 30*time.Second
	if cfg.DialTimeout > 0 {
		dialTimeout = cfg.DialTimeout
	}
	if cfg.KeepAlive > 0 {
		keepAlive = cfg.KeepAlive
	}
	t.DialContext = (&net.Dialer{Timeout: dialTimeout, KeepAlive: keepAlive}).DialContext

	t.TLSHandshakeTimeout = 5 * time.Second
	if cfg.TLSHandshakeTimeout > 0 {
		t.TLSHandshakeTimeout = cfg.TLSHandshakeTimeout
	}
	t.ResponseHeaderTimeout = 15 * time.Second
	if cfg.ResponseHeaderTimeout > 0 {
		t.ResponseHeaderTimeout = cfg.ResponseHeaderTimeout
	}
	t.IdleConnTimeout = 90 * time.Second
	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}
	t.MaxIdleConns = 200
	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}
	t.MaxIdleConnsPerHost = 50
	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.MaxConnsPerHost > 0 {
		t.MaxConnsPerHost = cfg.MaxConnsPerHost
	}
	return t
}

// Name returns the adapter name (implements provider.Provider).
func (a *Adapter) Name() string {
	return a.config.Name
}

// IsAvailable reports whether the adapter can take requests (implements provider.Provider).
func (a *Adapter) IsAvailable(_ context.Context) bool {
	return a.httpClient != nil
}

// Execute sends req and returns the complete response. Failures without an
// HTTP response are returned as *TransportError.
func (a *Adapter) Execute(ctx context.Context, req TransportRequest) (*TransportResponse, error) {
	req.URL = a.resolveURL(req.URL)
	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, &TransportError{Code: ErrCodeInvalidRequest, Method: req.Method, URL: req.URL, Err: err}
	}
	a.applyHeaders(ctx, httpReq)

	start := time.Now()
	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, newTransportError(ctx, req, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(ctx, req, fmt.Errorf("read response body: %w", err))
	}

	a.log.WithContext(ctx).Debug("http exchange", logger.Fields(
		logger.FieldMethod, req.Method.String(),
		logger.FieldURL, req.URL,
		logger.FieldStatusCode, resp.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))

	return &TransportResponse{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

func (a *Adapter) resolveURL(url string) string {
	if a.config.BaseURL == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(url, "/")
}

// applyHeaders layers config defaults under the request's own headers, then
// fills User-Agent, request id and trace context when absent.
func (a *Adapter) applyHeaders(ctx context.Context, httpReq *http.Request) {
	for k, v := range a.config.Headers {
		if httpReq.Header.Get(k) == "" {
			httpReq.Header.Set(k, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", a.config.UserAgent)
	}
	if name := a.config.RequestIDHeader; name != "" && httpReq.Header.Get(name) == "" {
		httpReq.Header.Set(name, uuid.NewString())
	}
	observability.InjectHTTPHeaders(ctx, httpReq.Header)
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

// Close releases idle connections (implements provider.Closeable).
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// Config returns the adapter's effective configuration.
func (a *Adapter) Config() AdapterConfig {
	return a.config
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}
