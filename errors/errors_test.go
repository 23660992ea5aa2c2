package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "bad shape", http.StatusBadRequest)
	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidFormat, err.Code)
	}
	if err.Message != "bad shape" {
		t.Errorf("expected message 'bad shape', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("INVALID_FORMAT should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
}

func TestAppError_ErrorString(t *testing.T) {
	err := Validation("bad")
	if err.Error() != "INVALID_INPUT: bad" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	err.WithCause(fmt.Errorf("root"))
	if !strings.Contains(err.Error(), "(cause: root)") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := ConnectionFailed("billing").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Details["service"] != "billing" {
		t.Errorf("expected service=billing, got %v", err.Details["service"])
	}
}

func TestAppError_Details(t *testing.T) {
	err := Internal(nil).
		WithDetail("status_code", 500).
		WithDetails(map[string]any{"path": "/users"})
	if err.Details["status_code"] != 500 {
		t.Errorf("expected status_code=500, got %v", err.Details["status_code"])
	}
	if err.Details["path"] != "/users" {
		t.Errorf("expected path=/users, got %v", err.Details["path"])
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"ServiceUnavailable", ServiceUnavailable("api"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable, true},
		{"ConnectionFailed", ConnectionFailed("api"), ErrCodeConnectionFailed, http.StatusServiceUnavailable, true},
		{"Timeout", Timeout("GET /users"), ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{"RateLimited", RateLimited(), ErrCodeRateLimited, http.StatusTooManyRequests, true},
		{"Canceled", Canceled("GET /users"), ErrCodeCanceled, 499, false},
		{"Validation", Validation("bad"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"InvalidFormat", InvalidFormat("body", "json"), ErrCodeInvalidFormat, http.StatusBadRequest, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
		{"ExternalServiceError", ExternalServiceError("api", nil), ErrCodeExternalService, http.StatusBadGateway, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.HTTPStatus)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("expected retryable=%v, got %v", tt.retryable, tt.err.Retryable)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	inner := InvalidFormat("name", "string")
	wrapped := fmt.Errorf("decode: %w", inner)

	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to see through wrapping")
	}
	got, ok := AsAppError(wrapped)
	if !ok || got != inner {
		t.Errorf("expected inner AppError, got %v", got)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to be an AppError")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("x: %w", Timeout("op"))); got != ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got)
	}
}

func TestIsRetryableCode(t *testing.T) {
	if !IsRetryableCode(ErrCodeConnectionFailed) {
		t.Error("CONNECTION_FAILED should be retryable")
	}
	if IsRetryableCode(ErrCodeCanceled) {
		t.Error("CANCELED should not be retryable")
	}
}
