package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// TransportErrorCode classifies adapter-level failures.
type TransportErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout TransportErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, reset).
	ErrCodeConnection
	// ErrCodeCanceled indicates the caller canceled the request.
	ErrCodeCanceled
	// ErrCodeInvalidRequest indicates the request could not be built.
	ErrCodeInvalidRequest
)

// String returns the error code name.
func (c TransportErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// TransportError is returned by Adapter when no HTTP response was obtained.
type TransportError struct {
	Code   TransportErrorCode
	Method Method
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("httpclient: %s: %s %s: %v", e.Code, e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	return e.Code == ErrCodeTimeout
}

func newTransportError(ctx context.Context, req TransportRequest, err error) *TransportError {
	return &TransportError{
		Code:   transportErrorCode(ctx, err),
		Method: req.Method,
		URL:    req.URL,
		Err:    err,
	}
}

func transportErrorCode(ctx context.Context, err error) TransportErrorCode {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return ErrCodeCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrCodeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrCodeTimeout
	}
	return ErrCodeConnection
}

// IsTimeout checks if err carries a timeout TransportError.
func IsTimeout(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if err carries a connection TransportError.
func IsConnection(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsCanceled checks if err carries a canceled TransportError.
func IsCanceled(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Code == ErrCodeCanceled
}
