// Package value holds the helpers every field relies on to handle loosely
// typed JSON-like data: deep copies, canonical comparison and dotted-path
// access into nested maps and slices.
package value

import (
	"fmt"
	"reflect"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/mohae/deepcopy"
)

// Clone returns a deep copy of a JSON-like value so that callers never share
// maps or slices with upstream data.
func Clone(v any) any {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case string, bool, int, int64, float64:
		return v
	}
	return deepcopy.Copy(v)
}

// Canonical serializes a value with stable key ordering. Map keys are
// emitted sorted, so two maps holding the same entries serialize identically
// regardless of insertion order.
func Canonical(v any) string {
	data, err := gojson.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

// Equal reports whether a and b serialize identically.
func Equal(a, b any) bool {
	return Canonical(a) == Canonical(b)
}

// IsEmpty reports whether v is absent or blank: nil, a whitespace-only
// string, or an empty slice or map.
func IsEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Len returns the element count of slice-like values.
func Len(v any) (int, bool) {
	switch typed := v.(type) {
	case []any:
		return len(typed), true
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len(), true
	}
	return 0, false
}

// AsSlice converts slice-like values to []any.
func AsSlice(v any) ([]any, bool) {
	switch typed := v.(type) {
	case []any:
		return typed, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsMap returns v as a string keyed map when possible.
func AsMap(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
