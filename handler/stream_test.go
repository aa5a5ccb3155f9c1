package handler

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/formatter"
)

func newTestFormatter(t *testing.T) *formatter.TemplateFormatter {
	t.Helper()
	f, err := formatter.NewTemplateFormatter("%(levelname)s %(message)s", "")
	if err != nil {
		t.Fatalf("NewTemplateFormatter() error = %v", err)
	}
	return f
}

func TestStreamHandler_Writes(t *testing.T) {
	var buf bytes.Buffer
	h := NewStreamHandler(StreamConfig{
		Writer:    &buf,
		Formatter: newTestFormatter(t),
	})

	entry := &core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: "hello"}
	if err := h.Handle(entry); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !strings.Contains(buf.String(), "INFO hello") {
		t.Errorf("output = %q", buf.String())
	}
	if h.Stats().ProcessedTotal != 1 {
		t.Errorf("processed = %d, want 1", h.Stats().ProcessedTotal)
	}
}

func TestStreamHandler_LevelThreshold(t *testing.T) {
	var buf bytes.Buffer
	h := NewStreamHandler(StreamConfig{
		Writer:    &buf,
		Formatter: newTestFormatter(t),
		Level:     core.WarningLevel,
	})

	h.Handle(&core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: "filtered"})
	if buf.Len() > 0 {
		t.Errorf("entry below handler level was written: %q", buf.String())
	}

	h.Handle(&core.Entry{Time: time.Now(), Level: core.WarningLevel, Message: "kept"})
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("entry at handler level was dropped: %q", buf.String())
	}
}

func TestStreamHandler_HandleLog(t *testing.T) {
	var buf bytes.Buffer
	h := NewStreamHandler(StreamConfig{
		Writer:    &buf,
		Formatter: newTestFormatter(t),
	})

	err := h.HandleLog(time.Now(), core.ErrorLevel, "app", "direct",
		[]core.Field{{Key: "a", Type: core.IntType, Int64: 1}},
		[]core.Field{{Key: "b", Type: core.IntType, Int64: 2}},
		core.CallerInfo{})
	if err != nil {
		t.Fatalf("HandleLog() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ERROR direct") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "a=1") || !strings.Contains(out, "b=2") {
		t.Errorf("fields missing from output: %q", out)
	}
}

func TestStreamHandler_Async(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	})

	h := NewStreamHandler(StreamConfig{
		Writer:    w,
		Formatter: newTestFormatter(t),
		Async:     true,
	})

	for i := 0; i < 10; i++ {
		entry := core.GetEntry()
		entry.Level = core.InfoLevel
		entry.Message = "async"
		if err := h.Handle(entry); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	if h.CanRecycleEntry() {
		t.Error("async handler must not allow caller-side recycling")
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if got := strings.Count(buf.String(), "async"); got != 10 {
		t.Errorf("wrote %d entries, want 10\n%s", got, buf.String())
	}
}

func TestStreamHandler_AsyncSurvivesWriteError(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	failuresLeft := 1
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		if failuresLeft > 0 {
			failuresLeft--
			return 0, errors.New("sink unavailable")
		}
		return buf.Write(p)
	})

	h := NewStreamHandler(StreamConfig{
		Writer:    w,
		Formatter: newTestFormatter(t),
		Async:     true,
	})

	for i := 0; i < 3; i++ {
		entry := core.GetEntry()
		entry.Level = core.InfoLevel
		entry.Message = "record"
		if err := h.Handle(entry); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	// The failed write must not stop the worker: the remaining entries
	// still reach the sink and the failure is counted as a drop.
	if got := strings.Count(buf.String(), "record"); got != 2 {
		t.Errorf("wrote %d entries after failure, want 2\n%s", got, buf.String())
	}
	if got := h.Stats().DroppedTotal[core.InfoLevel]; got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}

func TestStreamHandler_CloseIdempotent(t *testing.T) {
	h := NewStreamHandler(StreamConfig{Writer: &bytes.Buffer{}, Formatter: newTestFormatter(t), Async: true})
	if err := h.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
