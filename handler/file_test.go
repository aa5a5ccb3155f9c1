package handler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pmartell/logconf/core"
)

func TestFileHandler_AppendMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("existing line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := NewFileHandler(FileConfig{
		Filename:  path,
		Mode:      ModeAppend,
		Formatter: newTestFormatter(t),
	})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	h.Handle(&core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: "appended"})
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "existing line\n") {
		t.Errorf("append mode lost existing content: %q", content)
	}
	if !strings.Contains(content, "INFO appended") {
		t.Errorf("new entry missing: %q", content)
	}
}

func TestFileHandler_TruncateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("old content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := NewFileHandler(FileConfig{
		Filename:  path,
		Mode:      ModeTruncate,
		Formatter: newTestFormatter(t),
	})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	h.Handle(&core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: "fresh"})
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "old content") {
		t.Errorf("truncate mode kept old content: %q", data)
	}
	if !strings.Contains(string(data), "INFO fresh") {
		t.Errorf("new entry missing: %q", data)
	}
}

func TestFileHandler_BadMode(t *testing.T) {
	_, err := NewFileHandler(FileConfig{
		Filename: filepath.Join(t.TempDir(), "x.log"),
		Mode:     "rb",
	})
	if err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}

func TestFileHandler_MissingFilename(t *testing.T) {
	if _, err := NewFileHandler(FileConfig{}); err == nil {
		t.Fatal("expected error for empty filename")
	}
}

func TestFileHandler_LevelThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFileHandler(FileConfig{
		Filename:  path,
		Formatter: newTestFormatter(t),
		Level:     core.ErrorLevel,
	})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	h.Handle(&core.Entry{Time: time.Now(), Level: core.DebugLevel, Message: "quiet"})
	h.Handle(&core.Entry{Time: time.Now(), Level: core.CriticalLevel, Message: "loud"})
	h.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "quiet") {
		t.Errorf("below-level entry written: %q", data)
	}
	if !strings.Contains(string(data), "CRITICAL loud") {
		t.Errorf("above-level entry missing: %q", data)
	}
}

func TestFileHandler_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rot.log")
	h, err := NewFileHandler(FileConfig{
		Filename:  path,
		Formatter: newTestFormatter(t),
		MaxSize:   64,
	})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	long := strings.Repeat("x", 64)
	for i := 0; i < 3; i++ {
		if err := h.Handle(&core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: long}); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	h.Close()

	matches, err := filepath.Glob(path + ".*")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Error("expected at least one rotated backup file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("active log file missing after rotation: %v", err)
	}
}

func TestFileHandler_SharedAcrossGoroutines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.log")
	h, err := NewFileHandler(FileConfig{
		Filename:  path,
		Formatter: newTestFormatter(t),
	})
	if err != nil {
		t.Fatalf("NewFileHandler() error = %v", err)
	}

	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 25; i++ {
				h.Handle(&core.Entry{Time: time.Now(), Level: core.InfoLevel, Message: "line"})
			}
		}()
	}
	for g := 0; g < 4; g++ {
		<-done
	}
	h.Close()

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), "INFO line"); got != 100 {
		t.Errorf("wrote %d lines, want 100", got)
	}
}
