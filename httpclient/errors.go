package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/netc/errors"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindUnknown covers failures that could not be classified, including
	// calls abandoned because their context was done.
	KindUnknown Kind = iota
	// KindTransportFailure means no interpretable HTTP response was obtained.
	KindTransportFailure
	// KindInvalidRequest means a non-2xx response whose body decoded as the
	// declared error shape.
	KindInvalidRequest
	// KindInvalidResponse means a non-2xx response whose body did not decode
	// as the declared error shape.
	KindInvalidResponse
	// KindTypeMismatch means a 2xx response whose body did not decode as the
	// declared success shape.
	KindTypeMismatch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransportFailure:
		return "transport_failure"
	case KindInvalidRequest:
		return "invalid_request"
	case KindInvalidResponse:
		return "invalid_response"
	case KindTypeMismatch:
		return "type_mismatch"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error[F] of the same kind.
var (
	ErrTransportFailure = errors.New("httpclient: transport failure")
	ErrInvalidRequest   = errors.New("httpclient: invalid request")
	ErrInvalidResponse  = errors.New("httpclient: invalid response")
	ErrTypeMismatch     = errors.New("httpclient: type mismatch")
	ErrUnknown          = errors.New("httpclient: unknown error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindTransportFailure:
		return ErrTransportFailure
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindInvalidResponse:
		return ErrInvalidResponse
	case KindTypeMismatch:
		return ErrTypeMismatch
	default:
		return ErrUnknown
	}
}

// Error is the failure branch of a typed call. Detail holds the decoded
// error payload and is only meaningful for KindInvalidRequest.
type Error[F any] struct {
	Kind       Kind
	StatusCode int
	Detail     F
	Body       []byte
	Err        error
}

// Failure is implemented by every *Error[F] regardless of F.
type Failure interface {
	error
	ErrorKind() Kind
	HTTPStatus() int
}

// Error implements the error interface.
func (e *Error[F]) Error() string {
	msg := "httpclient: " + e.Kind.String()
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	msg += ": " + e.Description()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error[F]) Unwrap() error { return e.Err }

// Is matches the sentinel of e's kind.
func (e *Error[F]) Is(target error) bool { return target == e.Kind.sentinel() }

// ErrorKind implements Failure.
func (e *Error[F]) ErrorKind() Kind { return e.Kind }

// HTTPStatus implements Failure.
func (e *Error[F]) HTTPStatus() int { return e.StatusCode }

// Description is a human-readable summary of the failure. For
// KindInvalidRequest it is the decoded payload's message when the payload
// implements error.
func (e *Error[F]) Description() string {
	switch e.Kind {
	case KindTransportFailure:
		return "The request failed."
	case KindInvalidRequest:
		return e.detailMessage()
	case KindInvalidResponse:
		return fmt.Sprintf("The response was invalid (%d).", e.StatusCode)
	case KindTypeMismatch:
		return "The response did not match the expected type."
	default:
		return "Unknown Error"
	}
}

// FailureReason explains why the failure happened. It is empty for a
// transport failure without a cause.
func (e *Error[F]) FailureReason() string {
	switch e.Kind {
	case KindTransportFailure:
		if e.Err == nil {
			return ""
		}
		return e.Err.Error()
	case KindInvalidRequest:
		return e.detailMessage()
	case KindInvalidResponse:
		return fmt.Sprintf("The server returned a %d status code.", e.StatusCode)
	case KindTypeMismatch:
		return "The response did not match the expected error type."
	default:
		return "Unknown Error"
	}
}

func (e *Error[F]) detailMessage() string {
	if m, ok := any(e.Detail).(error); ok {
		return m.Error()
	}
	return fmt.Sprintf("The request was rejected (%d).", e.StatusCode)
}

// AppError converts the failure into the shared application error taxonomy.
func (e *Error[F]) AppError() *apperrors.AppError {
	switch e.Kind {
	case KindTransportFailure:
		if IsTimeout(e.Err) || errors.Is(e.Err, context.DeadlineExceeded) {
			return apperrors.Timeout("http request").WithCause(e)
		}
		return apperrors.ConnectionFailed("http").WithCause(e)
	case KindInvalidRequest, KindInvalidResponse:
		var app *apperrors.AppError
		switch e.StatusCode {
		case http.StatusTooManyRequests:
			app = apperrors.RateLimited().WithCause(e)
		case http.StatusServiceUnavailable:
			app = apperrors.ServiceUnavailable("http").WithCause(e)
		default:
			app = apperrors.ExternalServiceError("http", e)
		}
		return app.
			WithDetail("status_code", e.StatusCode).
			WithDetail("kind", e.Kind.String())
	case KindTypeMismatch:
		return apperrors.InvalidFormat("body", "json").
			WithCause(e).
			WithDetail("status_code", e.StatusCode)
	default:
		if errors.Is(e.Err, context.Canceled) {
			return apperrors.Canceled("http request").WithCause(e)
		}
		return apperrors.Internal(e)
	}
}

// KindOf returns the kind of the *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var f Failure
	if errors.As(err, &f) {
		return f.ErrorKind()
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var f Failure
	if errors.As(err, &f) {
		return f.HTTPStatus()
	}
	return 0
}

// IsTransportFailure checks if err is a transport failure.
func IsTransportFailure(err error) bool { return errors.Is(err, ErrTransportFailure) }

// IsInvalidRequest checks if err is a decoded error response.
func IsInvalidRequest(err error) bool { return errors.Is(err, ErrInvalidRequest) }

// IsInvalidResponse checks if err is an undecodable error response.
func IsInvalidResponse(err error) bool { return errors.Is(err, ErrInvalidResponse) }

// IsTypeMismatch checks if err is an undecodable success response.
func IsTypeMismatch(err error) bool { return errors.Is(err, ErrTypeMismatch) }

// AsInvalidRequest extracts the decoded error payload from err.
func AsInvalidRequest[F any](err error) (F, bool) {
	var e *Error[F]
	if errors.As(err, &e) && e.Kind == KindInvalidRequest {
		return e.Detail, true
	}
	var zero F
	return zero, false
}
