// Package handler implements the sinks that consume log entries.
//
// A Handler receives entries via Handle and releases its resources in
// Close. Handlers that also implement FastHandler can consume the raw
// record data (time, level, logger name, message, fields) without a
// pooled Entry, which keeps the common single-sink path allocation
// free.
//
// StreamHandler writes to an io.Writer and FileHandler writes to a
// file opened in append or truncate mode, with optional size-based
// rotation. Both carry their own minimum severity: an entry below the
// handler's level is dropped regardless of the logger that emitted
// it, which is what lets one logger fan out to sinks with different
// thresholds. Both can also run asynchronously behind a buffered
// queue with per-level overflow policies (DropNewest, DropOldest, or
// Block with a timeout) and atomic drop/block/processed counters.
//
// MultiHandler fans a record out to several handlers; the
// configuration loader uses it to flatten a logger's own handlers and
// the handlers it inherits through propagation into one chain.
// NullHandler discards everything, and SlogHandler adapts any Handler
// to the standard library's log/slog interface.
package handler
