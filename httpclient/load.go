package httpclient

import (
	"fmt"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/config"
)

// FileConfig is the on-disk shape of a service that talks to one HTTP API.
//
//	name: billing
//	http:
//	  base_url: https://api.example.com
//	  timeout: 10s
//	casing:
//	  encoding: snake_case
//	  decoding: identity
type FileConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	HTTP                 AdapterConfig `yaml:"http" mapstructure:"http"`
	Casing               casing.Config `yaml:"casing" mapstructure:"casing"`
}

// ApplyDefaults applies defaults to every section.
func (c *FileConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.HTTP.Name == "" {
		c.HTTP.Name = c.Name
	}
	c.HTTP.ApplyDefaults()
	c.Casing.ApplyDefaults()
}

// Validate validates every section.
func (c *FileConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return fmt.Errorf("httpclient: invalid service config: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Casing.Validate(); err != nil {
		return fmt.Errorf("httpclient: invalid casing config: %w", err)
	}
	return nil
}

// Policy builds the casing policy named by the config.
func (c *FileConfig) Policy() (casing.Policy, error) {
	return c.Casing.Build()
}

// LoadFileConfig loads, defaults and validates a FileConfig for serviceName.
func LoadFileConfig(serviceName string, opts ...config.LoaderOption) (*FileConfig, error) {
	var cfg FileConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
