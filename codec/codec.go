// Package codec encodes and decodes JSON bodies under a casing.Policy.
//
// A nil policy resolves to the process-wide casing policy at call time.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/tidwall/gjson"

	"github.com/kbukum/netc/casing"
	"github.com/kbukum/netc/validation"
)

var (
	// ErrEmptyBody is returned when there is nothing to decode.
	ErrEmptyBody = errors.New("codec: empty body")
	// ErrInvalidJSON is returned for malformed documents.
	ErrInvalidJSON = casing.ErrInvalidJSON
	// ErrNullBody is returned when a top-level null targets a value that cannot hold it.
	ErrNullBody = errors.New("codec: null body")
	// ErrTrailingData is returned when a document is followed by another value.
	ErrTrailingData = errors.New("codec: unexpected data after JSON value")
	// ErrValidation wraps struct tag failures (for example a missing required key).
	ErrValidation = errors.New("codec: validation failed")
)

// Marshal encodes v as JSON and rewrites its keys with the encoding strategy.
func Marshal(v any, p *casing.Policy) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: encode %T: %w", v, err)
	}
	out, err := casing.Resolve(p).RewriteEncoded(data)
	if err != nil {
		return nil, fmt.Errorf("codec: rewrite keys: %w", err)
	}
	return out, nil
}

// Unmarshal rewrites the keys of data with the decoding strategy, decodes
// the result into v and validates it.
func Unmarshal(data []byte, v any, p *casing.Policy) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	if gjson.ParseBytes(data).Type == gjson.Null && !nullable(v) {
		return fmt.Errorf("codec: decode into %T: %w", v, ErrNullBody)
	}
	rewritten, err := casing.Resolve(p).RewriteDecoded(data)
	if err != nil {
		return fmt.Errorf("codec: rewrite keys: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(rewritten))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("codec: decode into %T: %w", v, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	if err := validation.ValidateValue(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// nullable reports whether the value v points at can represent a JSON null.
func nullable(v any) bool {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer {
		return false
	}
	switch t.Elem().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

// Decode is the generic form of Unmarshal.
func Decode[T any](data []byte, p *casing.Policy) (T, error) {
	var out T
	if err := Unmarshal(data, &out, p); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
