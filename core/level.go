package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log entry
type Level int8

const (
	// NotSetLevel means the level is inherited from an ancestor logger
	NotSetLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages
	InfoLevel
	// WarningLevel for warning messages
	WarningLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for unrecoverable error messages
	CriticalLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case NotSetLevel:
		return "NOTSET"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a severity name to a Level. Names are matched
// case-insensitively; WARN and FATAL are accepted as aliases for
// WARNING and CRITICAL.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOTSET":
		return NotSetLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarningLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL", "CRITICAL":
		return CriticalLevel, nil
	default:
		return NotSetLevel, fmt.Errorf("unknown level %q", s)
	}
}
