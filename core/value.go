package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind tags the dynamic type of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindFloat
	KindText
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindText:
		return "Text"
	case KindBoolean:
		return "Boolean"
	default:
		return "Null"
	}
}

// Value is the cell type carried through the engine. The zero Value is
// Null. Exactly one payload field is meaningful, selected by Kind.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Text  string
	Bool  bool
}

func NewInteger(i int64) Value { return Value{Kind: KindInteger, Int: i} }
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func NewText(s string) Value   { return Value{Kind: KindText, Text: s} }
func NewBoolean(b bool) Value  { return Value{Kind: KindBoolean, Bool: b} }
func Null() Value              { return Value{} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsFloat widens a numeric value. Only meaningful for KindInteger and
// KindFloat.
func (v Value) AsFloat() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}
	return v.Float
}

// String renders the value the way index files and display output use
// it. Text renders bare, without quoting.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return "NULL"
	}
}

// Equals reports plain equality between two values. Both Null counts
// as equal, Integer and Float compare numerically, and any other kind
// mix is simply unequal. No error is ever returned; callers that need
// strict type checking use Compare.
func (v Value) Equals(o Value) bool {
	if v.Kind == KindNull || o.Kind == KindNull {
		return v.Kind == KindNull && o.Kind == KindNull
	}
	if isNumeric(v.Kind) && isNumeric(o.Kind) {
		return v.AsFloat() == o.AsFloat()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == o.Text
	case KindBoolean:
		return v.Bool == o.Bool
	}
	return false
}

// Compare orders two non-null values, returning -1, 0 or 1. Integer
// and Float compare numerically; any other kind mix is a type
// mismatch. Null operands are the caller's concern.
func (v Value) Compare(o Value) (int, error) {
	if isNumeric(v.Kind) && isNumeric(o.Kind) {
		a, b := v.AsFloat(), o.AsFloat()
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		}
		return 0, nil
	}
	if v.Kind != o.Kind {
		return 0, &TypeMismatchError{Left: v.Kind, Right: o.Kind}
	}
	switch v.Kind {
	case KindText:
		return strings.Compare(v.Text, o.Text), nil
	case KindBoolean:
		a, b := btoi(v.Bool), btoi(o.Bool)
		return a - b, nil
	}
	return 0, &TypeMismatchError{Left: v.Kind, Right: o.Kind}
}

func isNumeric(k ValueKind) bool { return k == KindInteger || k == KindFloat }

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MarshalJSON writes the bare scalar so persisted rows stay plain
// JSON documents. Floats always carry a decimal point or exponent,
// otherwise an integral float would reload as an Integer.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInteger:
		return json.Marshal(v.Int)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return []byte(s), nil
	case KindText:
		return json.Marshal(v.Text)
	case KindBoolean:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = Null()
	case json.Number:
		if i, err := t.Int64(); err == nil && !strings.ContainsAny(t.String(), ".eE") {
			*v = NewInteger(i)
		} else {
			f, err := t.Float64()
			if err != nil {
				return err
			}
			*v = NewFloat(f)
		}
	case string:
		*v = NewText(t)
	case bool:
		*v = NewBoolean(t)
	default:
		return &StorageError{Op: "decode value", Err: errUnsupportedJSON}
	}
	return nil
}

// Row maps column names to values. Absent columns read as Null via
// the zero Value.
type Row map[string]Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
