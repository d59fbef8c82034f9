package api

import (
	"bytes"
	"encoding/json"
	"io"
)

// Document is a generic JSON value (null, bool, number, string, array or
// object) with by-key access. It is used for responses whose exact shape
// varies by call, such as upload session documents, where only a few fields
// are of interest.
type Document struct {
	value interface{}
	valid bool
}

// ParseDocument decodes a JSON document from r. Numbers are preserved as
// json.Number so large ids survive the round trip.
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return &Document{value: value, valid: true}, nil
}

// Exists reports whether the document holds a value, including JSON null.
func (d *Document) Exists() bool {
	return d != nil && d.valid
}

// IsNull reports whether the document holds JSON null.
func (d *Document) IsNull() bool {
	return d.Exists() && d.value == nil
}

// Get returns the value under key. The result always answers Exists, so
// lookups can be chained without nil checks.
func (d *Document) Get(key string) *Document {
	if !d.Exists() {
		return &Document{}
	}
	obj, ok := d.value.(map[string]interface{})
	if !ok {
		return &Document{}
	}
	value, ok := obj[key]
	if !ok {
		return &Document{}
	}
	return &Document{value: value, valid: true}
}

// Index returns the i-th element of an array document.
func (d *Document) Index(i int) *Document {
	if !d.Exists() {
		return &Document{}
	}
	arr, ok := d.value.([]interface{})
	if !ok || i < 0 || i >= len(arr) {
		return &Document{}
	}
	return &Document{value: arr[i], valid: true}
}

// Len returns the element count of an array document, or 0.
func (d *Document) Len() int {
	if !d.Exists() {
		return 0
	}
	arr, ok := d.value.([]interface{})
	if !ok {
		return 0
	}
	return len(arr)
}

// String returns the document as a string if it holds one.
func (d *Document) String() (string, bool) {
	if !d.Exists() {
		return "", false
	}
	s, ok := d.value.(string)
	return s, ok
}

// Int64 returns the document as an int64 if it holds a JSON number.
func (d *Document) Int64() (int64, bool) {
	if !d.Exists() {
		return 0, false
	}
	n, ok := d.value.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float64 returns the document as a float64 if it holds a JSON number.
func (d *Document) Float64() (float64, bool) {
	if !d.Exists() {
		return 0, false
	}
	n, ok := d.value.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns the document as a bool if it holds one.
func (d *Document) Bool() (bool, bool) {
	if !d.Exists() {
		return false, false
	}
	b, ok := d.value.(bool)
	return b, ok
}

// Text returns the canonical textual form of a scalar document: strings
// verbatim, numbers as their literal, booleans as "true"/"false".
// Returns "" for anything else. Handy for ids that may arrive as either
// strings or numbers.
func (d *Document) Text() string {
	if !d.Exists() {
		return ""
	}
	switch v := d.value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// MarshalJSON re-encodes the held value.
func (d *Document) MarshalJSON() ([]byte, error) {
	if !d.Exists() {
		return []byte("null"), nil
	}
	return json.Marshal(d.value)
}

// UnmarshalJSON allows a Document to appear as a field of a typed DTO.
func (d *Document) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return err
	}
	d.value = value
	d.valid = true
	return nil
}
