package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Params is an insertion-ordered collection of query parameters.
// The encoded query preserves the order in which parameters were set,
// so repeated encodings of the same Params are reproducible.
type Params struct {
	pairs []paramPair
}

type paramPair struct {
	name     string
	value    interface{}
	noEscape bool
}

// NewParams returns an empty parameter collection.
func NewParams() *Params {
	return &Params{}
}

// Set appends a parameter. A nil value is dropped entirely at encode time.
// Values are stringified by type: booleans become "1"/"0", integers their
// decimal form, timestamps RFC 3339 UTC, and fmt.Stringer values (enums)
// their lower-cased String().
func (p *Params) Set(name string, value interface{}) *Params {
	p.pairs = append(p.pairs, paramPair{name: name, value: value})
	return p
}

// SetRaw appends a pre-validated value that is emitted without
// percent-escaping.
func (p *Params) SetRaw(name string, value string) *Params {
	p.pairs = append(p.pairs, paramPair{name: name, value: value, noEscape: true})
	return p
}

// Encode renders the query string without a leading "?".
// Returns "" when there is nothing to encode.
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, pair := range p.pairs {
		if pair.value == nil {
			continue
		}
		value := stringifyParam(pair.value)
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.name))
		b.WriteByte('=')
		if pair.noEscape {
			b.WriteString(value)
		} else {
			b.WriteString(url.QueryEscape(value))
		}
	}
	return b.String()
}

func stringifyParam(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return strings.ToLower(v.String())
	default:
		return fmt.Sprintf("%v", v)
	}
}
