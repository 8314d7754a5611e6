package toggl

import (
	"net/http"
	"sync"
)

// Accepted reports whether status is one the API uses for success.
func Accepted(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated
}

// Response pairs a raw API response with its lazily parsed body.
type Response[T any] struct {
	StatusCode int
	Raw        []byte

	envelope bool
	parse    func(Object) (*T, error)

	once sync.Once
	body *T
	err  error
}

// NewResponse wraps a raw response. Statuses other than 200 and 201 give an
// *APIError carrying the status and body. When envelope is set a top-level
// {"data": ...} wrapper is removed before parsing.
func NewResponse[T any](statusCode int, raw []byte, envelope bool, parse func(Object) (*T, error)) (*Response[T], error) {
	if parse == nil {
		return nil, ErrNilArgument
	}
	if !Accepted(statusCode) {
		return nil, &APIError{StatusCode: statusCode, Body: raw}
	}
	return &Response[T]{StatusCode: statusCode, Raw: raw, envelope: envelope, parse: parse}, nil
}

// Body parses the response once and returns the model. A JSON null body
// yields a nil model and no error.
func (r *Response[T]) Body() (*T, error) {
	r.once.Do(func() {
		v, err := unwrap(r.Raw, r.envelope)
		if err != nil {
			r.err = err
			return
		}
		obj, err := asObject(v)
		if err != nil {
			r.err = err
			return
		}
		r.body, r.err = r.parse(obj)
	})
	return r.body, r.err
}

// ListResponse pairs a raw API response with its lazily parsed items.
type ListResponse[T any] struct {
	StatusCode int
	Raw        []byte

	envelope bool
	parse    func(Object) (*T, error)

	once  sync.Once
	items []*T
	err   error
}

// NewListResponse wraps a raw response holding a JSON array, with the same
// status handling as NewResponse. Items are parsed with the singular parser.
func NewListResponse[T any](statusCode int, raw []byte, envelope bool, parse func(Object) (*T, error)) (*ListResponse[T], error) {
	if parse == nil {
		return nil, ErrNilArgument
	}
	if !Accepted(statusCode) {
		return nil, &APIError{StatusCode: statusCode, Body: raw}
	}
	return &ListResponse[T]{StatusCode: statusCode, Raw: raw, envelope: envelope, parse: parse}, nil
}

// Items parses the response once and returns the models. A JSON null body
// yields a nil slice and no error.
func (r *ListResponse[T]) Items() ([]*T, error) {
	r.once.Do(func() {
		v, err := unwrap(r.Raw, r.envelope)
		if err != nil {
			r.err = err
			return
		}
		objs, err := asObjects(v)
		if err != nil {
			r.err = err
			return
		}
		r.items, r.err = parseAll(objs, r.parse)
	})
	return r.items, r.err
}

func unwrap(raw []byte, envelope bool) (any, error) {
	v, err := decodeValue(raw)
	if err != nil || !envelope {
		return v, err
	}
	if m, ok := v.(map[string]any); ok {
		if data, ok := m["data"]; ok {
			return data, nil
		}
	}
	return v, nil
}
