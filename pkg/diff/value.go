package diff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind classifies a backend value.
type Kind uint8

const (
	// KindNull is SQL NULL (also used for the absent side of one-sided rows).
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
	KindBytes
	KindDate
	KindTimestamp
	// KindOther holds the string form of a backend-specific value that has
	// no primitive representation (intervals, structs, decimals, ...).
	KindOther
)

// Value is a tagged variant for values surfaced by either backend.
// Backends return heterogeneous native types; wrapping them keeps equality
// and serialization well-defined without reflection at comparison time.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
	t    time.Time
}

// Null returns the NULL value.
func Null() Value { return Value{kind: KindNull} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// Int64Value wraps an integer.
func Int64Value(i int64) Value { return Value{kind: KindInt64, i: i} }

// Float64Value wraps a float.
func Float64Value(f float64) Value { return Value{kind: KindFloat64, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BytesValue wraps a byte slice.
func BytesValue(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// DateValue wraps a calendar date.
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }

// TimestampValue wraps a point in time.
func TimestampValue(t time.Time) Value { return Value{kind: KindTimestamp, t: t} }

// OtherValue wraps the string form of a non-primitive backend value.
func OtherValue(s string) Value { return Value{kind: KindOther, s: s} }

// FromAny converts a driver-provided value into a Value. Unrecognized types
// are coerced to their string form; this applies uniformly to every backend.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return BoolValue(x)
	case int:
		return Int64Value(int64(x))
	case int8:
		return Int64Value(int64(x))
	case int16:
		return Int64Value(int64(x))
	case int32:
		return Int64Value(int64(x))
	case int64:
		return Int64Value(x)
	case uint:
		return uint64Value(uint64(x))
	case uint8:
		return Int64Value(int64(x))
	case uint16:
		return Int64Value(int64(x))
	case uint32:
		return Int64Value(int64(x))
	case uint64:
		return uint64Value(x)
	case float32:
		return Float64Value(float64(x))
	case float64:
		return Float64Value(x)
	case string:
		return StringValue(x)
	case []byte:
		return BytesValue(x)
	case time.Time:
		if h, m, s := x.Clock(); h == 0 && m == 0 && s == 0 && x.Nanosecond() == 0 {
			return DateValue(x)
		}
		return TimestampValue(x)
	default:
		return OtherValue(fmt.Sprintf("%v", x))
	}
}

// uint64Value widens an unsigned integer. Values beyond the int64 range
// (MySQL unsigned BIGINT can produce them) keep their decimal string form
// instead of flipping sign.
func uint64Value(x uint64) Value {
	if x > math.MaxInt64 {
		return OtherValue(strconv.FormatUint(x, 10))
	}
	return Int64Value(int64(x))
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Equal reports whether two values are equal under null-safe semantics:
// NULL equals NULL, integers and floats compare numerically, dates and
// timestamps compare as instants, and non-primitive values compare by
// string form.
func (v Value) Equal(o Value) bool {
	if v.kind == KindNull || o.kind == KindNull {
		return v.kind == o.kind
	}

	if v.isNumeric() && o.isNumeric() {
		if v.kind == KindInt64 && o.kind == KindInt64 {
			return v.i == o.i
		}
		return v.asFloat() == o.asFloat()
	}
	if v.isTime() && o.isTime() {
		return v.t.Equal(o.t)
	}

	if v.kind == o.kind {
		switch v.kind {
		case KindBool:
			return v.b == o.b
		case KindString, KindOther:
			return v.s == o.s
		case KindBytes:
			return bytes.Equal(v.raw, o.raw)
		}
	}

	if v.kind == KindOther || o.kind == KindOther {
		return v.String() == o.String()
	}

	return false
}

func (v Value) isNumeric() bool { return v.kind == KindInt64 || v.kind == KindFloat64 }
func (v Value) isTime() bool    { return v.kind == KindDate || v.kind == KindTimestamp }

func (v Value) asFloat() float64 {
	if v.kind == KindInt64 {
		return float64(v.i)
	}
	return v.f
}

// String returns the value's string form.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString, KindOther:
		return v.s
	case KindBytes:
		return string(v.raw)
	case KindDate:
		return v.t.Format(time.DateOnly)
	case KindTimestamp:
		return v.t.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// MarshalJSON serializes the value for diff output. NULL becomes null,
// primitives keep their JSON type, everything else is emitted as its
// string form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindInt64:
		return json.Marshal(v.i)
	case KindFloat64:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	default:
		return json.Marshal(v.String())
	}
}
