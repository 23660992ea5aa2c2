package casing

// Config selects the process-wide or per-client casing policy by name.
type Config struct {
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	Decoding string `yaml:"decoding" mapstructure:"decoding"`
}

// ApplyDefaults fills empty directions with snake_case.
func (c *Config) ApplyDefaults() {
	if c.Encoding == "" {
		c.Encoding = StrategySnakeCase
	}
	if c.Decoding == "" {
		c.Decoding = StrategySnakeCase
	}
}

// Validate checks that both strategy names are known. Empty names are allowed.
func (c *Config) Validate() error {
	_, err := c.Build()
	return err
}

// Build resolves the configured names into a Policy. Empty names mean snake_case.
func (c Config) Build() (Policy, error) {
	c.ApplyDefaults()
	enc, err := ParseStrategy(c.Encoding)
	if err != nil {
		return Policy{}, err
	}
	dec, err := ParseStrategy(c.Decoding)
	if err != nil {
		return Policy{}, err
	}
	return Policy{Encoding: enc, Decoding: dec}, nil
}
