package logger

import (
	"github.com/pmartell/logconf/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	NotSetLevel   = core.NotSetLevel
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a string to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
