package api

import (
	"encoding/json"
	"reflect"
)

// Body is the JSON body mapping of a write request.
type Body map[string]interface{}

// encodeBody filters nil-valued entries and marshals the rest as a JSON
// object. Enumerable values (slices and arrays, but never strings) always
// serialize as JSON arrays, even with zero or one elements.
func encodeBody(body Body) ([]byte, error) {
	filtered := make(map[string]interface{}, len(body))
	for key, value := range body {
		if value == nil {
			continue
		}
		filtered[key] = normalizeEnumerable(value)
	}
	return json.Marshal(filtered)
}

// normalizeEnumerable maps nil typed slices to empty ones so they serialize
// as "[]" rather than "null".
func normalizeEnumerable(value interface{}) interface{} {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return []interface{}{}
	}
	return value
}
