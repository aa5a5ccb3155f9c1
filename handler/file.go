package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/formatter"
)

// File open modes, matching the configuration format's args
const (
	ModeAppend   = "a"
	ModeTruncate = "w"
)

// FileHandler writes log entries to a file. It is the implementation
// behind the configuration format's FileHandler and
// RotatingFileHandler classes; rotation only happens when MaxSize is
// set. A single FileHandler may be shared by several loggers, so the
// write path is serialized with a mutex.
type FileHandler struct {
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	level           core.Level
	mu              sync.Mutex
	q               *asyncQueue
	maxSize         int64
	maxBackups      int
	currentSize     int64
	stats           *Stats
}

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Mode is the open mode: ModeAppend (default) or ModeTruncate
	Mode string
	// Formatter to use (default: TemplateFormatter with defaults)
	Formatter formatter.Formatter
	// Level is the handler's own minimum severity (NotSetLevel accepts everything)
	Level core.Level
	// Async enables asynchronous logging (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of old log files to retain (0 = keep all)
	MaxBackups int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// NewFileHandler creates a new file handler
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
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

	flags := os.O_CREATE | os.O_WRONLY
	switch cfg.Mode {
	case "", ModeAppend:
		flags |= os.O_APPEND
	case ModeTruncate:
		flags |= os.O_TRUNC
	default:
		return nil, fmt.Errorf("unsupported file mode %q", cfg.Mode)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(cfg.Filename, flags, 0644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	h := &FileHandler{
		filename:    cfg.Filename,
		file:        file,
		formatter:   cfg.Formatter,
		level:       cfg.Level,
		maxSize:     cfg.MaxSize,
		maxBackups:  cfg.MaxBackups,
		currentSize: info.Size(),
		stats:       NewStats(),
	}

	// Cache WriterFormatter for the buffered write path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)

	if cfg.Async {
		h.q = newAsyncQueue(h, cfg.BufferSize, cfg.OverflowPolicy, cfg.BlockTimeout, cfg.DrainTimeout, h.stats)
	}

	return h, nil
}

// Level returns the handler's minimum severity
func (h *FileHandler) Level() core.Level {
	return h.level
}

// Handle processes a log entry
func (h *FileHandler) Handle(entry *core.Entry) error {
	if entry.Level < h.level {
		return nil
	}
	if h.q == nil {
		return h.write(entry)
	}
	return h.q.enqueue(entry)
}

// HandleLog processes log data directly without requiring a pooled Entry
func (h *FileHandler) HandleLog(t time.Time, level core.Level, logger, msg string, loggerFields, callFields []core.Field, caller core.CallerInfo) error {
	if level < h.level {
		return nil
	}

	if h.q != nil {
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
func (h *FileHandler) write(entry *core.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rotateIfNeeded(); err != nil {
		return err
	}

	n, err := h.file.Write(data)
	if err == nil {
		h.currentSize += int64(n)
		h.stats.IncrementProcessed()
	}

	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns
func (h *FileHandler) CanRecycleEntry() bool {
	return h.q == nil
}

// rotateIfNeeded rotates the file once it exceeds the size limit
func (h *FileHandler) rotateIfNeeded() error {
	if h.maxSize <= 0 || h.currentSize < h.maxSize {
		return nil
	}
	return h.rotate()
}

// rotate performs the actual file rotation
func (h *FileHandler) rotate() error {
	if err := h.file.Sync(); err != nil {
		return err
	}
	if err := h.file.Close(); err != nil {
		return err
	}

	// Rename current file with timestamp
	timestamp := time.Now().Format("2006-01-02T15-04-05")
	rotatedName := fmt.Sprintf("%s.%s", h.filename, timestamp)

	if err := os.Rename(h.filename, rotatedName); err != nil {
		// If rename fails, try to reopen the original file
		file, openErr := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			return fmt.Errorf("rotation failed: %v, reopen failed: %v", err, openErr)
		}
		h.file = file
		return err
	}

	if h.maxBackups > 0 {
		h.cleanupOldBackups()
	}

	file, err := os.OpenFile(h.filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	h.file = file
	h.currentSize = 0

	return nil
}

// cleanupOldBackups removes old backup files based on MaxBackups
func (h *FileHandler) cleanupOldBackups() {
	dir := filepath.Dir(h.filename)
	base := filepath.Base(h.filename)

	pattern := filepath.Join(dir, base+".*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return
	}

	var backups []string
	for _, match := range matches {
		if strings.HasPrefix(filepath.Base(match), base+".") {
			backups = append(backups, match)
		}
	}

	// Oldest first
	sort.Slice(backups, func(i, j int) bool {
		infoI, errI := os.Stat(backups[i])
		infoJ, errJ := os.Stat(backups[j])
		if errI != nil || errJ != nil {
			return false
		}
		return infoI.ModTime().Before(infoJ.ModTime())
	})

	if len(backups) > h.maxBackups {
		for _, file := range backups[:len(backups)-h.maxBackups] {
			if err := os.Remove(file); err != nil {
				return
			}
		}
	}
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler
func (h *FileHandler) Close() error {
	if h.q != nil {
		h.q.close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	file := h.file
	h.file = nil
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
