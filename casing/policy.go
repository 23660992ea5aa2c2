package casing

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when a document handed to a rewrite is not JSON.
var ErrInvalidJSON = errors.New("casing: invalid JSON")

// Policy pairs the strategies used for outgoing and incoming bodies.
type Policy struct {
	Encoding Strategy
	Decoding Strategy
}

// DefaultPolicy is snake_case in both directions.
func DefaultPolicy() Policy {
	return Policy{Encoding: SnakeCase(), Decoding: SnakeCase()}
}

// EncodeKey converts a Go-side key to its wire form.
func (p Policy) EncodeKey(key string) string { return p.Encoding.encode(key) }

// String reports the strategy names, e.g. "encoding=snake_case decoding=identity".
func (p Policy) String() string {
	return "encoding=" + p.Encoding.Name() + " decoding=" + p.Decoding.Name()
}

// DecodeKey converts a wire key to its Go-side form.
func (p Policy) DecodeKey(key string) string { return p.Decoding.decode(key) }

// RewriteEncoded rewrites every object key of doc with the encoding strategy.
func (p Policy) RewriteEncoded(doc []byte) ([]byte, error) {
	if p.Encoding.IsIdentity() {
		return doc, nil
	}
	return rewriteKeys(doc, p.EncodeKey)
}

// RewriteDecoded rewrites every object key of doc with the decoding strategy.
func (p Policy) RewriteDecoded(doc []byte) ([]byte, error) {
	if p.Decoding.IsIdentity() {
		return doc, nil
	}
	return rewriteKeys(doc, p.DecodeKey)
}

func rewriteKeys(doc []byte, fn func(string) string) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidJSON
	}
	var buf bytes.Buffer
	buf.Grow(len(doc))
	writeValue(&buf, gjson.ParseBytes(doc), fn)
	return buf.Bytes(), nil
}

// writeValue re-emits v with rewritten object keys. Scalars are copied
// from the source verbatim so numbers keep their precision.
func writeValue(buf *bytes.Buffer, v gjson.Result, fn func(string) string) {
	switch {
	case v.IsObject():
		buf.WriteByte('{')
		first := true
		v.ForEach(func(k, val gjson.Result) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			name, _ := json.Marshal(fn(k.String()))
			buf.Write(name)
			buf.WriteByte(':')
			writeValue(buf, val, fn)
			return true
		})
		buf.WriteByte('}')
	case v.IsArray():
		buf.WriteByte('[')
		first := true
		v.ForEach(func(_, val gjson.Result) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			writeValue(buf, val, fn)
			return true
		})
		buf.WriteByte(']')
	default:
		buf.WriteString(v.Raw)
	}
}

// --- Process-wide policy ---

var global atomic.Pointer[Policy]

func init() { Reset() }

// Global returns the current process-wide policy.
func Global() Policy { return *global.Load() }

// SetGlobal replaces the process-wide policy.
func SetGlobal(p Policy) { global.Store(&p) }

// SetEncoding replaces only the process-wide encoding strategy.
func SetEncoding(s Strategy) {
	update(func(p *Policy) { p.Encoding = s })
}

// SetDecoding replaces only the process-wide decoding strategy.
func SetDecoding(s Strategy) {
	update(func(p *Policy) { p.Decoding = s })
}

// Reset restores the process-wide policy to DefaultPolicy.
func Reset() { SetGlobal(DefaultPolicy()) }

// Resolve returns *p, or the process-wide policy when p is nil.
func Resolve(p *Policy) Policy {
	if p != nil {
		return *p
	}
	return Global()
}

func update(mut func(*Policy)) {
	for {
		old := global.Load()
		next := *old
		mut(&next)
		if global.CompareAndSwap(old, &next) {
			return
		}
	}
}
