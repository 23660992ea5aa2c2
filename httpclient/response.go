package httpclient

import (
	"net/http"
	"strings"
)

// Response is the success branch of a typed call.
type Response[S any] struct {
	StatusCode int
	Headers    map[string]string
	Value      S
}

// Header returns the value of the named header, matched case-insensitively.
func (r *Response[S]) Header(name string) string {
	if v, ok := r.Headers[http.CanonicalHeaderKey(name)]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Empty is a placeholder shape for payloads the caller does not care about,
// such as the body of a DELETE or an error body whose content is ignored.
type Empty struct{}

// Error implements error so Empty can serve as an error shape.
func (Empty) Error() string { return "httpclient: empty error payload" }
