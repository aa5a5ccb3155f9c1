package logger

import (
	"time"

	"github.com/pmartell/logconf/core"
)

// Field constructors re-exported from core so call sites logging
// through this package need only one import.

// String makes a string field
func String(key, val string) core.Field { return core.String(key, val) }

// Int makes an int field
func Int(key string, val int) core.Field { return core.Int(key, val) }

// Int64 makes an int64 field
func Int64(key string, val int64) core.Field { return core.Int64(key, val) }

// Float64 makes a float64 field
func Float64(key string, val float64) core.Field { return core.Float64(key, val) }

// Bool makes a bool field
func Bool(key string, val bool) core.Field { return core.Bool(key, val) }

// Time makes a time field
func Time(key string, val time.Time) core.Field { return core.Time(key, val) }

// Duration makes a duration field
func Duration(key string, val time.Duration) core.Field { return core.Duration(key, val) }

// Err makes an error field under the key "error"
func Err(err error) core.Field { return core.Err(err) }

// Any makes a field holding an arbitrary value
func Any(key string, val interface{}) core.Field { return core.Any(key, val) }
