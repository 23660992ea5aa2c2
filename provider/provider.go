package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Labeler is implemented by inputs and outputs that can describe themselves
// to the logging, tracing and metrics middleware.
type Labeler interface {
	Labels() map[string]string
}

func labelsOf(v any) map[string]string {
	if l, ok := v.(Labeler); ok {
		return l.Labels()
	}
	return nil
}
