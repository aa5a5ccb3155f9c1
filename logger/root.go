package logger

import (
	"sync"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// The out-of-the-box default mirrors an unconfigured root logger:
	// WARNING and above to stderr.
	h := handler.NewStreamHandler(handler.StreamConfig{})

	defaultLogger = NewBuilder().
		WithName(RootName).
		WithHandler(h).
		WithLevel(core.WarningLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	Default().Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}

// Critical logs a critical message using the default logger
func Critical(msg string, fields ...core.Field) {
	Default().Critical(msg, fields...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	Default().Debugf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	Default().Infof(format, args...)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	Default().Warnf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	Default().Errorf(format, args...)
}

// Criticalf logs a formatted critical message using the default logger
func Criticalf(format string, args ...interface{}) {
	Default().Criticalf(format, args...)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}
