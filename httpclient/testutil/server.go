package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/netc/component"
	"github.com/kbukum/netc/testutil"
)

var _ testutil.TestComponent = (*Server)(nil)

// RecordedRequest is a request observed by Server.
type RecordedRequest struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
	Body    []byte
}

// Server is a fake JSON API backed by gin and httptest. Routes are
// registered before Start.
type Server struct {
	engine *gin.Engine

	mu       sync.Mutex
	srv      *httptest.Server
	received []RecordedRequest
}

// NewServer creates a server with a request recorder installed.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{engine: gin.New()}
	s.engine.Use(s.record)
	return s
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.received = append(s.received, RecordedRequest{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   c.Request.URL.RawQuery,
		Headers: c.Request.Header.Clone(),
		Body:    body,
	})
	s.mu.Unlock()
	c.Next()
}

// Engine exposes the gin engine for custom routes.
func (s *Server) Engine() *gin.Engine { return s.engine }

// JSON answers method and path with status and v encoded by gin.
func (s *Server) JSON(method, path string, status int, v any) *Server {
	s.engine.Handle(method, path, func(c *gin.Context) {
		c.JSON(status, v)
	})
	return s
}

// Raw answers method and path with a fixed body and content type.
func (s *Server) Raw(method, path string, status int, contentType string, body []byte) *Server {
	s.engine.Handle(method, path, func(c *gin.Context) {
		c.Data(status, contentType, body)
	})
	return s
}

// Echo answers method and path with the request body as JSON.
func (s *Server) Echo(method, path string) *Server {
	s.engine.Handle(method, path, func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", body)
	})
	return s
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Requests returns every request observed so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.received)
}

// LastRequest returns the most recent request, if any.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.received) == 0 {
		return RecordedRequest{}, false
	}
	return s.received[len(s.received)-1], true
}

// Name implements component.Component.
func (s *Server) Name() string { return "test-api-server" }

// Start begins serving on a random local port.
func (s *Server) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		s.srv = httptest.NewServer(s.engine)
	}
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop(context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
	return nil
}

// Health implements component.Component.
func (s *Server) Health(context.Context) component.Health {
	if s.URL() == "" {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Reset clears recorded requests.
func (s *Server) Reset(context.Context) error {
	s.mu.Lock()
	s.received = nil
	s.mu.Unlock()
	return nil
}

// Snapshot captures the recorded requests.
func (s *Server) Snapshot(context.Context) (interface{}, error) {
	return s.Requests(), nil
}

// Restore replaces the recorded requests with a Snapshot.
func (s *Server) Restore(_ context.Context, snapshot interface{}) error {
	reqs, ok := snapshot.([]RecordedRequest)
	if !ok {
		return fmt.Errorf("testutil: unexpected snapshot type %T", snapshot)
	}
	s.mu.Lock()
	s.received = slices.Clone(reqs)
	s.mu.Unlock()
	return nil
}
