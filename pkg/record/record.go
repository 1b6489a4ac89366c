package record

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind distinguishes the two scalar types a record field can hold.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
)

// Value is a dynamically-typed scalar: a number or a string.
// The zero Value is the empty string.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Kind reports whether v holds a number or a string.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric interpretation of v. Strings are trimmed and
// parsed as floats. The second result is false when v has no finite
// numeric interpretation.
func (v Value) Float() (float64, bool) {
	f := v.num
	if v.kind == KindString {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// String returns the textual form of v. Numbers use the shortest
// representation that round-trips ("42", "0.5", "1e+21").
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
// Non-finite numbers encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// Record is one input row: field name to scalar value.
type Record map[string]Value

// Get returns the value for field. An exact key match wins; otherwise the
// first key (in sorted order) that matches case-insensitively is used, so
// CSV headers such as "Label" or "VALUE" resolve.
func (r Record) Get(field string) (Value, bool) {
	if v, ok := r[field]; ok {
		return v, true
	}
	for _, k := range slices.Sorted(maps.Keys(r)) {
		if strings.EqualFold(k, field) {
			return r[k], true
		}
	}
	return Value{}, false
}

// Float returns the finite numeric value of field, if present and parseable.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r.Get(field)
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Text returns the textual value of field. Missing fields and empty strings
// report false.
func (r Record) Text(field string) (string, bool) {
	v, ok := r.Get(field)
	if !ok {
		return "", false
	}
	s := v.String()
	if s == "" {
		return "", false
	}
	return s, true
}

// Fields returns the record's field names in sorted order.
func (r Record) Fields() []string {
	return slices.Sorted(maps.Keys(r))
}
