package httpclient

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/provider"
)

// TransportRequest is what a Request produces for a Transport.
type TransportRequest struct {
	Method  Method
	URL     string
	Headers map[string]string
	Body    []byte
}

// Labels implements provider.Labeler.
func (r TransportRequest) Labels() map[string]string {
	return map[string]string{
		"method": r.Method.String(),
		"url":    r.URL,
	}
}

// TransportResponse is the raw outcome of a transport call.
type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Labels implements provider.Labeler.
func (r *TransportResponse) Labels() map[string]string {
	if r == nil {
		return nil
	}
	return map[string]string{"status_code": strconv.Itoa(r.StatusCode)}
}

// Transport sends a TransportRequest and yields exactly one response or
// error. Implementations must honor context cancellation.
type Transport = provider.RequestResponse[TransportRequest, *TransportResponse]

// TransportFunc adapts a function into a Transport.
func TransportFunc(name string, fn func(ctx context.Context, req TransportRequest) (*TransportResponse, error)) Transport {
	return provider.Func(name, fn)
}

type transportHolder struct{ t Transport }

var (
	defaultTransport atomic.Pointer[transportHolder]

	sharedAdapter = sync.OnceValue(func() *Adapter {
		a, err := NewAdapter(AdapterConfig{Name: "default"})
		if err != nil {
			panic(err)
		}
		return a
	})
)

// Default returns the process-wide transport used by clients created
// without WithTransport. Until SetDefault is called it is a shared Adapter
// with default configuration.
func Default() Transport {
	if h := defaultTransport.Load(); h != nil {
		return h.t
	}
	return sharedAdapter()
}

// SetDefault replaces the process-wide transport. A nil transport restores
// the shared Adapter.
func SetDefault(t Transport) {
	if t == nil {
		defaultTransport.Store(nil)
		return
	}
	defaultTransport.Store(&transportHolder{t: t})
}

// ResetDefaults restores the default transport and the process-wide casing
// policy.
func ResetDefaults() {
	SetDefault(nil)
	casing.Reset()
}
