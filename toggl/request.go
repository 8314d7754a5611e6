package toggl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Request is the wire-level description of one API call. Options builders
// produce it; the transport executes it.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// URL returns the path with its encoded query string.
func (r Request) URL() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// String implements fmt.Stringer
func (r Request) String() string {
	return r.Method + " " + r.URL()
}

func get(path string) Request {
	return Request{Method: http.MethodGet, Path: path}
}

func del(path string) Request {
	return Request{Method: http.MethodDelete, Path: path}
}

func withBody(method, path, envelope string, b *body) (Request, error) {
	var payload any = b
	if envelope != "" {
		payload = map[string]any{envelope: b}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Request{}, err
	}
	return Request{Method: method, Path: path, Body: data}, nil
}

// body is a JSON object that keeps its keys in insertion order, so request
// bodies are byte-for-byte reproducible.
type body struct {
	keys []string
	vals map[string]any
}

func newBody() *body {
	return &body{vals: make(map[string]any)}
}

func (b *body) set(key string, v any) *body {
	if _, ok := b.vals[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.vals[key] = v
	return b
}

func (b *body) setIf(ok bool, key string, v any) *body {
	if ok {
		b.set(key, v)
	}
	return b
}

func (b *body) setString(key, v string) *body {
	return b.setIf(v != "", key, v)
}

func (b *body) setInt(key string, v *int64) *body {
	if v != nil {
		b.set(key, *v)
	}
	return b
}

func (b *body) setBool(key string, v *bool) *body {
	if v != nil {
		b.set(key, *v)
	}
	return b
}

func (b *body) setTime(key string, v *time.Time) *body {
	if v != nil && !v.IsZero() {
		b.set(key, FormatTime(*v))
	}
	return b
}

// Len returns the number of keys
func (b *body) Len() int {
	return len(b.keys)
}

// MarshalJSON implements json.Marshaler
func (b *body) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Bool returns a pointer to v, for optional option fields.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v, for optional option fields.
func Int64(v int64) *int64 { return &v }

// Time returns a pointer to v, for optional option fields.
func Time(v time.Time) *time.Time { return &v }
