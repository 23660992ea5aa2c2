// Package errors provides the application-level error type shared across netc.
//
// AppError carries a machine-readable code, a human-readable message, the
// recommended HTTP status and a retryable flag. Transport and decoding
// failures raised by the httpclient package convert to AppError through
// their AppError method so callers can surface them uniformly.
package errors
