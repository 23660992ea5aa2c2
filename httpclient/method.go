package httpclient

import (
	"fmt"
	"strings"
)

// Method is an HTTP method supported by Request.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// String returns the wire form of the method.
func (m Method) String() string { return string(m) }

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodDelete, MethodPatch:
		return true
	}
	return false
}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("httpclient: unsupported method %q", s)
	}
	return m, nil
}
