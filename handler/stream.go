package handler

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/formatter"
)

// StreamHandler writes log entries to an io.Writer, typically a
// standard stream. It is the implementation behind the configuration
// format's StreamHandler class.
type StreamHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	level           core.Level
	mu              sync.Mutex
	q               *asyncQueue
	stats           *Stats
}

// StreamConfig holds configuration for stream handler
type StreamConfig struct {
	// Writer to write to (default: os.Stderr)
	Writer io.Writer
	// Formatter to use (default: TemplateFormatter with defaults)
	Formatter formatter.Formatter
	// Level is the handler's own minimum severity (NotSetLevel accepts everything)
	Level core.Level
	// Async enables asynchronous logging (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(cfg StreamConfig) *StreamHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Formatter == nil {
		cfg.Formatter, _ = formatter.NewTemplateFormatter("", "")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &StreamHandler{
		writer: cfg.Writer,
		level:  cfg.Level,
		stats:  NewStats(),
	}

	h.formatter = cfg.Formatter
	// Cache WriterFormatter for the single-write path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if cfg.Async {
		h.q = newAsyncQueue(h, cfg.BufferSize, cfg.OverflowPolicy, cfg.BlockTimeout, cfg.DrainTimeout, h.stats)
	}

	return h
}

// Level returns the handler's minimum severity
func (h *StreamHandler) Level() core.Level {
	return h.level
}

// Handle processes a log entry
func (h *StreamHandler) Handle(entry *core.Entry) error {
	if entry.Level < h.level {
		return nil
	}
	if h.q == nil {
		return h.write(entry)
	}
	return h.q.enqueue(entry)
}

// HandleLog processes log data directly without requiring a pooled Entry
func (h *StreamHandler) HandleLog(t time.Time, level core.Level, logger, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if level < h.level {
		return nil
	}

	if h.q != nil {
		// The queue owns its entries, so the fast path still needs one
		entry := core.GetEntry()
		entry.Time = t
		entry.Level = level
		entry.Logger = logger
		entry.Message = msg
		entry.Caller = caller
		if len(loggerFields) > 0 {
			entry.Fields = append(entry.Fields, loggerFields...)
		}
		if len(callFields) > 0 {
			entry.Fields = append(entry.Fields, callFields...)
		}
		return h.q.enqueue(entry)
	}

	entry := core.Entry{
		Time:    t,
		Level:   level,
		Logger:  logger,
		Message: msg,
		Caller:  caller,
	}
	entry.Fields = combineFields(loggerFields, callFields)
	return h.write(&entry)
}

// write formats and writes an entry
func (h *StreamHandler) write(entry *core.Entry) error {
	if h.writerFormatter != nil {
		h.mu.Lock()
		err := h.writerFormatter.FormatTo(entry, h.writer)
		h.mu.Unlock()
		if err == nil {
			h.stats.IncrementProcessed()
		}
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	_, writeErr := h.writer.Write(data)
	h.mu.Unlock()

	if writeErr == nil {
		h.stats.IncrementProcessed()
	}

	return writeErr
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *StreamHandler) CanRecycleEntry() bool {
	return h.q == nil
}

// Stats returns a snapshot of the current statistics
func (h *StreamHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler
func (h *StreamHandler) Close() error {
	if h.q != nil {
		h.q.close()
	}
	return nil
}

// combineFields merges logger and call-site fields without copying
// when one side is empty.
func combineFields(loggerFields, callFields []core.Field) []core.Field {
	switch {
	case len(callFields) == 0:
		return loggerFields
	case len(loggerFields) == 0:
		return callFields
	default:
		fields := make([]core.Field, 0, len(loggerFields)+len(callFields))
		fields = append(fields, loggerFields...)
		return append(fields, callFields...)
	}
}
