package domain

import (
	"encoding/json"
	"strconv"
)

// ValueKind discriminates the cell union. Every cell in a parsed dataset is
// exactly one of missing, number, string, or bool; "missing" covers absent
// cells, nulls, and empty strings alike.
type ValueKind uint8

const (
	KindMissing ValueKind = iota
	KindNumber
	KindString
	KindBool
)

// Value is a single loosely typed cell. Construct values through the
// *Value helpers so the missing-normalization rules hold everywhere.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
}

// MissingValue returns the missing cell.
func MissingValue() Value {
	return Value{Kind: KindMissing}
}

// NumberValue returns a numeric cell.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// StringValue returns a string cell. An empty string is normalized to
// missing, so callers never need to triple-check null/absent/empty.
func StringValue(s string) Value {
	if s == "" {
		return MissingValue()
	}
	return Value{Kind: KindString, Str: s}
}

// BoolValue returns a boolean cell.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// IsMissing reports whether the cell has no usable value.
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// String renders the cell the way it is written to CSV output: numbers in
// their shortest exact form, missing as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// Key returns the canonical identity used when counting distinct values.
// Two cells with the same Key are the same value for cardinality purposes.
func (v Value) Key() string {
	switch v.Kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindString:
		return "s:" + v.Str
	case KindBool:
		return "b:" + strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// MarshalJSON encodes the cell as the natural JSON scalar: null, number,
// string, or bool.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// Row maps a header name to its cell. A header absent from the map is a
// missing cell; feature synthesis may leave derived keys unset for rows
// whose source value could not be parsed.
type Row map[string]Value

// Get returns the cell for a header, treating absent keys as missing.
func (r Row) Get(header string) Value {
	if v, ok := r[header]; ok {
		return v
	}
	return MissingValue()
}

// Dataset is an ordered sequence of rows sharing one header set. Headers
// fixes both the column order for export and the iteration order for
// per-column processing; feature synthesis appends to it.
type Dataset struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Clone returns a deep copy. Cleaning mutates the copy in place while the
// caller keeps the untouched original for diffing, so the two must never
// share row maps.
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		Headers: make([]string, len(d.Headers)),
		Rows:    make([]Row, len(d.Rows)),
	}
	copy(clone.Headers, d.Headers)
	for i, row := range d.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		clone.Rows[i] = dup
	}
	return clone
}

// Column returns the ordered cells under one header.
func (d *Dataset) Column(header string) []Value {
	values := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row.Get(header)
	}
	return values
}
