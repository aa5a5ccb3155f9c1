package logger

import (
	"fmt"
	"time"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/handler"
)

// Logger is a named, immutable emission point for log records. Its
// level gates records before any allocation; everything at or above
// it is passed to the handler chain, where per-handler thresholds
// apply.
type Logger struct {
	name          string
	handler       handler.Handler
	fastHandler   handler.FastHandler
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name          string
	handler       handler.Handler
	fastHandler   handler.FastHandler
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		callerSkip: 3,              // Default skip for getCaller
	}
}

// WithName sets the logger name stamped on every record
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	// Pre-compute recycleEntry to avoid interface assertion in Build()
	if rc, ok := h.(interface{ CanRecycleEntry() bool }); ok {
		b.recycleEntry = rc.CanRecycleEntry()
	} else {
		b.recycleEntry = false
	}
	// Cache FastHandler for pool-free hot path
	b.fastHandler, _ = h.(handler.FastHandler)
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		name:          b.name,
		handler:       b.handler,
		fastHandler:   b.fastHandler,
		level:         b.level,
		fields:        b.fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		recycleEntry:  b.recycleEntry,
	}
}

// Name returns the logger's name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the logger's effective level
func (l *Logger) Level() core.Level {
	return l.level
}

// Handler returns the logger's handler chain
func (l *Logger) Handler() handler.Handler {
	return l.handler
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	clone := *l
	clone.fields = newFields
	return &clone
}

// Named creates a new Logger that stamps records with the given name
// but shares this logger's level and handler chain.
func (l *Logger) Named(name string) *Logger {
	clone := *l
	clone.name = name
	return &clone
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}

	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	// Handler check - exit if no handler (avoid any work)
	if l.handler == nil {
		return
	}

	// Fast path: use FastHandler when there are no call-site fields.
	// This avoids sync.Pool Get/Put overhead. We cannot pass variadic
	// fields through the interface because that causes them to escape
	// to the heap.
	if l.fastHandler != nil && len(fields) == 0 {
		t := time.Now()
		var caller core.CallerInfo
		if l.includeCaller {
			caller = core.GetCaller(l.callerSkip)
		}
		l.fastHandler.HandleLog(t, level, l.name, msg, l.fields, nil, caller)
		return
	}

	// Get entry from pool AFTER level check
	entry := core.GetEntry()
	entry.Time = time.Now()
	entry.Level = level
	entry.Logger = l.name
	entry.Message = msg

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}

	// Add provided fields
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	err := l.handler.Handle(entry)
	if err != nil {
		return
	}

	// Return entry to pool if handler supports it
	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarningLevel < l.level {
		return
	}
	l.log(core.WarningLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, msg, fields)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarningLevel < l.level {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...), nil)
}

// Close closes the logger's handler
func (l *Logger) Close() error {
	if l.handler != nil {
		return l.handler.Close()
	}
	return nil
}
