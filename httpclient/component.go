package httpclient

import (
	"context"
	"errors"
	"sync"

	"github.com/kbukum/netc/component"
	"github.com/kbukum/netc/logger"
)

var errNotStarted = errors.New("httpclient: component not started")

// Component wraps an Adapter with lifecycle management.
// The adapter is created in Start and its idle connections are closed in Stop.
type Component struct {
	mu      sync.RWMutex
	adapter *Adapter
	config  AdapterConfig
	opts    []Option
	ownsLog bool
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP adapter component.
func NewComponent(cfg AdapterConfig, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	return loggerName(c.config)
}

// Start initializes the HTTP adapter. Unless a logger is already registered
// under the component name, Start registers one tagged with the component
// and base URL, and the adapter logs through it.
func (c *Component) Start(_ context.Context) error {
	name := c.Name()
	_, exists := logger.Lookup(name)
	if !exists {
		logger.Register(name, logger.GetGlobalLogger().WithComponent(name).
			WithFields(logger.Fields(logger.FieldBaseURL, c.config.BaseURL)))
	}
	a, err := NewAdapter(c.config, c.opts...)
	if err != nil {
		if !exists {
			logger.Unregister(name)
		}
		return err
	}
	c.mu.Lock()
	c.adapter = a
	c.ownsLog = !exists
	c.mu.Unlock()
	return nil
}

// Stop closes the HTTP adapter and releases resources.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	a := c.adapter
	c.adapter = nil
	if c.ownsLog {
		logger.Unregister(c.Name())
		c.ownsLog = false
	}
	c.mu.Unlock()
	if a != nil {
		return a.Close(ctx)
	}
	return nil
}

// Health returns the adapter health status.
func (c *Component) Health(ctx context.Context) component.Health {
	a := c.Adapter()
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if a == nil || !a.IsAvailable(ctx) {
		h.Status = component.StatusUnhealthy
		h.Message = errNotStarted.Error()
	}
	return h
}

// Describe returns component description for the bootstrap summary.
func (c *Component) Describe() component.Description {
	details := c.config.BaseURL
	if details == "" {
		details = "absolute urls"
	}
	return component.Description{
		Name:    c.Name(),
		Type:    "http-transport",
		Details: details,
	}
}

// Adapter returns the underlying HTTP adapter, or nil before Start.
func (c *Component) Adapter() *Adapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapter
}

// Transport returns the started adapter as a Transport.
func (c *Component) Transport() (Transport, error) {
	a := c.Adapter()
	if a == nil {
		return nil, errNotStarted
	}
	return a, nil
}
