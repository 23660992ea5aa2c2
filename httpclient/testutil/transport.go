package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/netc/component"
	"github.com/kbukum/netc/httpclient"
	"github.com/kbukum/netc/testutil"
)

// compile-time assertions
var _ httpclient.Transport = (*Transport)(nil)
var _ testutil.TestComponent = (*Transport)(nil)

// HandlerFunc computes the outcome of one recorded request.
type HandlerFunc func(ctx context.Context, req httpclient.TransportRequest) (*httpclient.TransportResponse, error)

// Transport records every request it receives and answers with a
// programmed outcome. The zero outcome is 200 with body {}.
type Transport struct {
	mu       sync.Mutex
	name     string
	started  bool
	requests []httpclient.TransportRequest
	handler  HandlerFunc
}

type transportSnapshot struct {
	requests []httpclient.TransportRequest
	handler  HandlerFunc
}

// NewTransport creates a recording transport answering 200 {}.
func NewTransport() *Transport {
	t := &Transport{name: "test-transport"}
	t.handler = respond(200, []byte("{}"), nil)
	return t
}

func respond(status int, body []byte, headers map[string]string) HandlerFunc {
	return func(context.Context, httpclient.TransportRequest) (*httpclient.TransportResponse, error) {
		return &httpclient.TransportResponse{
			StatusCode: status,
			Headers:    maps.Clone(headers),
			Body:       slices.Clone(body),
		}, nil
	}
}

// Respond programs the response returned for subsequent requests.
func (t *Transport) Respond(status int, body []byte, headers map[string]string) *Transport {
	return t.Handle(respond(status, body, headers))
}

// RespondJSON programs a JSON response. v is marshaled as-is, without key
// casing, so tests control the exact wire keys.
func (t *Transport) RespondJSON(status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("testutil: marshal response: %w", err)
	}
	t.Respond(status, body, map[string]string{"Content-Type": "application/json"})
	return nil
}

// Fail programs a transport error for subsequent requests.
func (t *Transport) Fail(err error) *Transport {
	return t.Handle(func(context.Context, httpclient.TransportRequest) (*httpclient.TransportResponse, error) {
		return nil, err
	})
}

// Hang makes subsequent requests block until their context is done.
func (t *Transport) Hang() *Transport {
	return t.Handle(func(ctx context.Context, _ httpclient.TransportRequest) (*httpclient.TransportResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
}

// Handle programs a custom outcome for subsequent requests.
func (t *Transport) Handle(fn HandlerFunc) *Transport {
	t.mu.Lock()
	t.handler = fn
	t.mu.Unlock()
	return t
}

// Name implements provider.Provider and component.Component.
func (t *Transport) Name() string { return t.name }

// IsAvailable implements provider.Provider.
func (t *Transport) IsAvailable(context.Context) bool { return true }

// Execute records req and returns the programmed outcome.
func (t *Transport) Execute(ctx context.Context, req httpclient.TransportRequest) (*httpclient.TransportResponse, error) {
	t.mu.Lock()
	t.requests = append(t.requests, copyRequest(req))
	handler := t.handler
	t.mu.Unlock()
	return handler(ctx, req)
}

func copyRequest(req httpclient.TransportRequest) httpclient.TransportRequest {
	req.Headers = maps.Clone(req.Headers)
	req.Body = slices.Clone(req.Body)
	return req
}

// LastRequest returns the most recent request, if any.
func (t *Transport) LastRequest() (httpclient.TransportRequest, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return httpclient.TransportRequest{}, false
	}
	return copyRequest(t.requests[len(t.requests)-1]), true
}

// Requests returns every recorded request in order.
func (t *Transport) Requests() []httpclient.TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]httpclient.TransportRequest, len(t.requests))
	for i, r := range t.requests {
		out[i] = copyRequest(r)
	}
	return out
}

// Count returns the number of recorded requests.
func (t *Transport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.requests)
}

// Start implements component.Component.
func (t *Transport) Start(context.Context) error {
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()
	return nil
}

// Stop implements component.Component.
func (t *Transport) Stop(context.Context) error {
	t.mu.Lock()
	t.started = false
	t.mu.Unlock()
	return nil
}

// Health implements component.Component.
func (t *Transport) Health(context.Context) component.Health {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return component.Health{Name: t.name, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: t.name, Status: component.StatusHealthy}
}

// Reset clears recorded requests and restores the 200 {} outcome.
func (t *Transport) Reset(context.Context) error {
	t.mu.Lock()
	t.requests = nil
	t.handler = respond(200, []byte("{}"), nil)
	t.mu.Unlock()
	return nil
}

// Snapshot captures recorded requests and the programmed outcome.
func (t *Transport) Snapshot(context.Context) (interface{}, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	reqs := make([]httpclient.TransportRequest, len(t.requests))
	for i, r := range t.requests {
		reqs[i] = copyRequest(r)
	}
	return transportSnapshot{requests: reqs, handler: t.handler}, nil
}

// Restore returns the transport to a state captured by Snapshot.
func (t *Transport) Restore(_ context.Context, snapshot interface{}) error {
	s, ok := snapshot.(transportSnapshot)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	t.mu.Lock()
	t.requests = s.requests
	t.handler = s.handler
	t.mu.Unlock()
	return nil
}
