package httpclient

import (
	"bytes"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/codec"
)

var emptyObject = []byte("{}")

// Classify turns one transport outcome into one typed outcome. A 2xx status
// takes the success path and decodes S; any other status decodes F. The
// decode strategy comes from policy, or the process-wide policy when nil.
// A non-nil error is always an *Error[F].
func Classify[S, F any](resp *TransportResponse, err error, policy *casing.Policy) (*Response[S], error) {
	if err != nil {
		return nil, &Error[F]{Kind: KindTransportFailure, Err: err}
	}
	if resp == nil || resp.StatusCode < 100 || resp.StatusCode > 599 {
		return nil, &Error[F]{Kind: KindTransportFailure}
	}

	p := casing.Resolve(policy)
	if isSuccess(resp.StatusCode) {
		return classifySuccess[S, F](resp, &p)
	}
	return nil, classifyFailure[F](resp, &p)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func classifySuccess[S, F any](resp *TransportResponse, p *casing.Policy) (*Response[S], error) {
	body := resp.Body
	if len(bytes.TrimSpace(body)) == 0 {
		body = emptyObject
	}
	var value S
	if err := codec.Unmarshal(body, &value, p); err != nil {
		return nil, &Error[F]{
			Kind:       KindTypeMismatch,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        err,
		}
	}
	return &Response[S]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Value:      value,
	}, nil
}

func classifyFailure[F any](resp *TransportResponse, p *casing.Policy) *Error[F] {
	var detail F
	if err := codec.Unmarshal(resp.Body, &detail, p); err != nil {
		return &Error[F]{
			Kind:       KindInvalidResponse,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	}
	return &Error[F]{
		Kind:       KindInvalidRequest,
		StatusCode: resp.StatusCode,
		Detail:     detail,
		Body:       resp.Body,
	}
}
