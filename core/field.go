package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType selects which union slot of a Field carries the value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field is one key/value pair attached to a log entry. The value
// lives in the slot matching Type; scalar kinds never allocate.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// String makes a string field
func String(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// Int makes an int field
func Int(key string, val int) Field {
	return Field{Key: key, Type: IntType, Int64: int64(val)}
}

// Int64 makes an int64 field
func Int64(key string, val int64) Field {
	return Field{Key: key, Type: Int64Type, Int64: val}
}

// Float64 makes a float64 field
func Float64(key string, val float64) Field {
	return Field{Key: key, Type: Float64Type, Float64: val}
}

// Bool makes a bool field
func Bool(key string, val bool) Field {
	f := Field{Key: key, Type: BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time makes a time field, stored as Unix nanoseconds
func Time(key string, val time.Time) Field {
	return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
}

// Duration makes a duration field
func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Int64: int64(val)}
}

// Err makes an error field under the key "error". A nil error yields
// an empty value rather than a nil dereference.
func Err(err error) Field {
	f := Field{Key: "error", Type: ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any makes a field holding an arbitrary value. Formatting it goes
// through fmt, so prefer the typed constructors on hot paths.
func Any(key string, val interface{}) Field {
	return Field{Key: key, Type: AnyType, Any: val}
}

// StringValue renders the field's value as text
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}
