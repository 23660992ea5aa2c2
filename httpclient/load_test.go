package httpclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbukum/netc/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
name: billing
environment: production
http:
  base_url: https://api.example.com
  timeout: 10s
  request_id_header: X-Request-ID
  headers:
    x-tenant: acme
  transport:
    max_idle_conns: 20
casing:
  encoding: snake_case
  decoding: identity
`)
	t.Setenv("NETCLOADTEST_HTTP_TIMEOUT", "5s")

	cfg, err := LoadFileConfig("billing",
		config.WithConfigFile(path),
		config.WithEnvFile(filepath.Join(t.TempDir(), "none.env")),
		config.WithEnvPrefix("NETCLOADTEST"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base url %q", cfg.HTTP.BaseURL)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected env override 5s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.Name != "billing" {
		t.Errorf("expected adapter name from service, got %q", cfg.HTTP.Name)
	}
	if cfg.HTTP.Headers["x-tenant"] != "acme" {
		t.Errorf("expected tenant header, got %v", cfg.HTTP.Headers)
	}
	if cfg.HTTP.Transport.MaxIdleConns != 20 {
		t.Errorf("expected 20, got %d", cfg.HTTP.Transport.MaxIdleConns)
	}

	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.EncodeKey("lastName") != "last_name" || p.DecodeKey("last_name") != "last_name" {
		t.Errorf("unexpected policy %s", p)
	}

	if _, err := NewAdapter(cfg.HTTP); err != nil {
		t.Errorf("expected loaded config to build an adapter, got %v", err)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad casing":   "name: x\ncasing:\n  encoding: kebab\n",
		"bad base url": "name: x\nhttp:\n  base_url: ftp://x\n",
		"bad env":      "name: x\nenvironment: qa\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFileConfig("svc",
				config.WithConfigFile(writeConfig(t, content)),
				config.WithEnvFile(filepath.Join(t.TempDir(), "none.env")),
			)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}
