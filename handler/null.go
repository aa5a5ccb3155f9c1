package handler

import (
	"time"

	"github.com/pmartell/logconf/core"
)

// NullHandler discards every entry. It backs the configuration
// format's NullHandler class, used to silence a logger explicitly.
type NullHandler struct{}

// NewNullHandler creates a new null handler
func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

// Handle discards the entry
func (*NullHandler) Handle(*core.Entry) error {
	return nil
}

// HandleLog discards the record
func (*NullHandler) HandleLog(time.Time, core.Level, string, string, []core.Field, []core.Field, core.CallerInfo) error {
	return nil
}

// CanRecycleEntry always returns true
func (*NullHandler) CanRecycleEntry() bool {
	return true
}

// Close is a no-op
func (*NullHandler) Close() error {
	return nil
}
