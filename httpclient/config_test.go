package httpclient

import (
	"strings"
	"testing"
	"time"

	"github.com/kbukum/netc/security"
)

func TestAdapterConfig_Defaults(t *testing.T) {
	var cfg AdapterConfig
	cfg.ApplyDefaults()
	if cfg.Name != "httpclient" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.Timeout)
	}
	if !strings.HasPrefix(cfg.UserAgent, "netc/") {
		t.Errorf("expected netc user agent, got %q", cfg.UserAgent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAdapterConfig_Validate(t *testing.T) {
	cases := map[string]AdapterConfig{
		"zero timeout":      {},
		"relative base url": {Timeout: time.Second, BaseURL: "/api"},
		"bad request id":    {Timeout: time.Second, RequestIDHeader: "X Request"},
		"bad header":        {Timeout: time.Second, Headers: map[string]string{"Bad:Name": "v"}},
		"negative conns":    {Timeout: time.Second, Transport: TransportConfig{MaxConnsPerHost: -1}},
		"bad tls version":   {Timeout: time.Second, TLS: &security.TLSConfig{MinVersion: "1.0"}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "httpclient: invalid adapter config") {
				t.Errorf("unexpected error message %q", err.Error())
			}
		})
	}
}

func TestNewHTTPTransport(t *testing.T) {
	tr := newHTTPTransport(TransportConfig{})
	if tr.MaxIdleConns != 200 || tr.MaxIdleConnsPerHost != 50 {
		t.Errorf("unexpected pool defaults %d/%d", tr.MaxIdleConns, tr.MaxIdleConnsPerHost)
	}
	if tr.TLSHandshakeTimeout != 5*time.Second || tr.IdleConnTimeout != 90*time.Second {
		t.Errorf("unexpected timeout defaults %v/%v", tr.TLSHandshakeTimeout, tr.IdleConnTimeout)
	}

	tr = newHTTPTransport(TransportConfig{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		MaxConnsPerHost:       4,
		ResponseHeaderTimeout: time.Second,
	})
	if tr.MaxIdleConns != 10 || tr.MaxIdleConnsPerHost != 2 || tr.MaxConnsPerHost != 4 {
		t.Errorf("overrides not applied: %d/%d/%d", tr.MaxIdleConns, tr.MaxIdleConnsPerHost, tr.MaxConnsPerHost)
	}
	if tr.ResponseHeaderTimeout != time.Second {
		t.Errorf("expected 1s, got %v", tr.ResponseHeaderTimeout)
	}
}

func TestAdapter_ResolveURL(t *testing.T) {
	a, err := NewAdapter(AdapterConfig{BaseURL: "https://api.example.com/v1/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.resolveURL("/users"); got != "https://api.example.com/v1/users" {
		t.Errorf("unexpected url %q", got)
	}
	if got := a.resolveURL("http://other/x"); got != "http://other/x" {
		t.Errorf("expected absolute url untouched, got %q", got)
	}
}

func TestTransportErrorCodeString(t *testing.T) {
	for code, want := range map[TransportErrorCode]string{
		ErrCodeTimeout:        "timeout",
		ErrCodeConnection:     "connection",
		ErrCodeCanceled:       "canceled",
		ErrCodeInvalidRequest: "invalid_request",
		TransportErrorCode(99): "unknown",
	} {
		if code.String() != want {
			t.Errorf("expected %q, got %q", want, code.String())
		}
	}
}
