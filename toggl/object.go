package toggl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Object is a decoded JSON object as returned by the Toggl API.
//
// Accessors take one or more keys and read the first one present with a
// non-null value, which lets a parser accept both the v8 (`wid`, `pid`) and
// the v9 (`workspace_id`, `project_id`) spelling of a field.
type Object map[string]any

// DecodeObject decodes a JSON object. A JSON null decodes to a nil Object.
func DecodeObject(data []byte) (Object, error) {
	v, err := decodeValue(data)
	if err != nil {
		return nil, err
	}
	return asObject(v)
}

// DecodeArray decodes a JSON array of objects. A JSON null decodes to nil.
func DecodeArray(data []byte) ([]Object, error) {
	v, err := decodeValue(data)
	if err != nil {
		return nil, err
	}
	return asObjects(v)
}

func decodeValue(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return v, nil
}

func asObject(v any) (Object, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return Object(t), nil
	case Object:
		return t, nil
	default:
		return nil, fmt.Errorf("expected JSON object, got %T", v)
	}
}

func asObjects(v any) ([]Object, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected JSON array, got %T", v)
	}
	out := make([]Object, 0, len(arr))
	for i, item := range arr {
		obj, err := asObject(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, obj)
	}
	return out, nil
}

func (o Object) lookup(keys ...string) (any, bool) {
	if o == nil {
		return nil, false
	}
	for _, k := range keys {
		if v, ok := o[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of keys is present with a non-null value.
func (o Object) Has(keys ...string) bool {
	_, ok := o.lookup(keys...)
	return ok
}

// String returns the value as a string, or nil when absent or not convertible.
func (o Object) String(keys ...string) *string {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil
	}
	return &s
}

// StringOr returns the value as a string, or def.
func (o Object) StringOr(def string, keys ...string) string {
	if s := o.String(keys...); s != nil {
		return *s
	}
	return def
}

// Int64 returns the value as an int64, or nil when absent or not convertible.
func (o Object) Int64(keys ...string) *int64 {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil
	}
	return &n
}

// Int64Or returns the value as an int64, or def.
func (o Object) Int64Or(def int64, keys ...string) int64 {
	if n := o.Int64(keys...); n != nil {
		return *n
	}
	return def
}

// Float64 returns the value as a float64, or nil when absent or not convertible.
func (o Object) Float64(keys ...string) *float64 {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil
	}
	return &f
}

// Bool returns the value as a bool, or nil when absent or not convertible.
func (o Object) Bool(keys ...string) *bool {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil
	}
	return &b
}

// BoolOr returns the value as a bool, or def.
func (o Object) BoolOr(def bool, keys ...string) bool {
	if b := o.Bool(keys...); b != nil {
		return *b
	}
	return def
}

// Time parses the value as an API timestamp. Absent or empty values give nil;
// a present value that is not a timestamp is an error.
func (o Object) Time(keys ...string) (*time.Time, error) {
	s := o.String(keys...)
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Object returns a nested object, or nil.
func (o Object) Object(keys ...string) Object {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	obj, err := asObject(v)
	if err != nil {
		return nil
	}
	return obj
}

// Array returns a nested array, or nil.
func (o Object) Array(keys ...string) []any {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil
	}
	arr, _ := v.([]any)
	return arr
}

// Strings returns an array of strings, skipping elements that are not convertible.
func (o Object) Strings(keys ...string) []string {
	arr := o.Array(keys...)
	if arr == nil {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, err := cast.ToStringE(v); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Int64s returns an array of integers, skipping elements that are not convertible.
func (o Object) Int64s(keys ...string) []int64 {
	arr := o.Array(keys...)
	if arr == nil {
		return nil
	}
	out := make([]int64, 0, len(arr))
	for _, v := range arr {
		if n, err := cast.ToInt64E(v); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// ArrayOf parses every object of a nested array with parse.
func ArrayOf[T any](o Object, parse func(Object) (*T, error), keys ...string) ([]*T, error) {
	v, ok := o.lookup(keys...)
	if !ok {
		return nil, nil
	}
	objs, err := asObjects(v)
	if err != nil {
		return nil, err
	}
	return parseAll(objs, parse)
}

func parseAll[T any](objs []Object, parse func(Object) (*T, error)) ([]*T, error) {
	if objs == nil {
		return nil, nil
	}
	out := make([]*T, 0, len(objs))
	for i, obj := range objs {
		item, err := parse(obj)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}
