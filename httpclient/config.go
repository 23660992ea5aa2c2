package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/netc/security"
	"github.com/kbukum/netc/validation"
	"github.com/kbukum/netc/version"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "httpclient"
)

// AdapterConfig configures the default net/http Transport.
type AdapterConfig struct {
	// Name identifies the adapter in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to request URLs that carry no scheme.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds the whole request including the body read. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests. Request headers win.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent defaults to netc/<version>.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestIDHeader, when set, names a header that receives a fresh UUID
	// on every request that does not already carry one.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`

	// HTTP2 configures the transport for HTTP/2 via golang.org/x/net/http2.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Transport tunes the underlying http.Transport. Zero values keep defaults.
	Transport TransportConfig `yaml:"transport" mapstructure:"transport"`
}

// TransportConfig captures the http.Transport knobs that matter in production.
type TransportConfig struct {
	DialTimeout           time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	KeepAlive             time.Duration `yaml:"keep_alive" mapstructure:"keep_alive"`
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout" mapstructure:"tls_handshake_timeout"`
	ResponseHeaderTimeout time.Duration `yaml:"response_header_timeout" mapstructure:"response_header_timeout"`
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout" mapstructure:"idle_conn_timeout"`
	MaxIdleConns          int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost       int           `yaml:"max_conns_per_host" mapstructure:"max_conns_per_host"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *AdapterConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *AdapterConfig) Validate() error {
	v := validation.New().
		Custom(c.Timeout > 0, "timeout", "must be positive").
		AbsoluteURL("base_url", c.BaseURL).
		HeaderName("request_id_header", c.RequestIDHeader).
		Min("transport.max_idle_conns", int64(c.Transport.MaxIdleConns), 0).
		Min("transport.max_idle_conns_per_host", int64(c.Transport.MaxIdleConnsPerHost), 0).
		Min("transport.max_conns_per_host", int64(c.Transport.MaxConnsPerHost), 0)
	for name := range c.Headers {
		v.Custom(name != "", "headers", "header name must not be empty").
			HeaderName("headers."+name, name)
	}
	if c.TLS != nil {
		v.Check("tls", c.TLS.Validate())
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("httpclient: invalid adapter config: %w", err)
	}
	return nil
}
