package handler

import (
	"sync/atomic"

	"github.com/pmartell/logconf/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest log entry when queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest log entry when queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel:    DropNewest, // Drop debug logs when full
		core.InfoLevel:     DropNewest, // Drop info logs when full
		core.WarningLevel:  DropNewest, // Drop warnings when full
		core.ErrorLevel:    Block,      // Block for errors (with timeout)
		core.CriticalLevel: Block,      // Never drop critical records silently
	}
}

// Stats tracks handler statistics
type Stats struct {
	// Separate atomic counters per level
	DroppedDebug    uint64
	DroppedInfo     uint64
	DroppedWarning  uint64
	DroppedError    uint64
	DroppedCritical uint64
	// BlockedTotal counts times logging blocked due to full queue
	BlockedTotal uint64
	// ProcessedTotal counts total processed logs
	ProcessedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	switch level {
	case core.DebugLevel:
		atomic.AddUint64(&s.DroppedDebug, 1)
	case core.InfoLevel:
		atomic.AddUint64(&s.DroppedInfo, 1)
	case core.WarningLevel:
		atomic.AddUint64(&s.DroppedWarning, 1)
	case core.ErrorLevel:
		atomic.AddUint64(&s.DroppedError, 1)
	case core.CriticalLevel:
		atomic.AddUint64(&s.DroppedCritical, 1)
	}
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	atomic.AddUint64(&s.BlockedTotal, 1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	switch level {
	case core.DebugLevel:
		return atomic.LoadUint64(&s.DroppedDebug)
	case core.InfoLevel:
		return atomic.LoadUint64(&s.DroppedInfo)
	case core.WarningLevel:
		return atomic.LoadUint64(&s.DroppedWarning)
	case core.ErrorLevel:
		return atomic.LoadUint64(&s.DroppedError)
	case core.CriticalLevel:
		return atomic.LoadUint64(&s.DroppedCritical)
	default:
		return 0
	}
}

// GetBlocked returns the blocked count
func (s *Stats) GetBlocked() uint64 {
	return atomic.LoadUint64(&s.BlockedTotal)
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return atomic.LoadUint64(&s.ProcessedTotal)
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	return atomic.LoadUint64(&s.DroppedDebug) +
		atomic.LoadUint64(&s.DroppedInfo) +
		atomic.LoadUint64(&s.DroppedWarning) +
		atomic.LoadUint64(&s.DroppedError) +
		atomic.LoadUint64(&s.DroppedCritical)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.DroppedDebug, 0)
	atomic.StoreUint64(&s.DroppedInfo, 0)
	atomic.StoreUint64(&s.DroppedWarning, 0)
	atomic.StoreUint64(&s.DroppedError, 0)
	atomic.StoreUint64(&s.DroppedCritical, 0)
	atomic.StoreUint64(&s.BlockedTotal, 0)
	atomic.StoreUint64(&s.ProcessedTotal, 0)
}

// Snapshot returns a snapshot of current stats
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		DroppedTotal: map[core.Level]uint64{
			core.DebugLevel:    s.GetDropped(core.DebugLevel),
			core.InfoLevel:     s.GetDropped(core.InfoLevel),
			core.WarningLevel:  s.GetDropped(core.WarningLevel),
			core.ErrorLevel:    s.GetDropped(core.ErrorLevel),
			core.CriticalLevel: s.GetDropped(core.CriticalLevel),
		},
		BlockedTotal:   s.GetBlocked(),
		ProcessedTotal: s.GetProcessed(),
	}
}
