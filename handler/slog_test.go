package handler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/pmartell/logconf/core"
)

func TestSlogHandler_Basic(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamHandler(StreamConfig{Writer: &buf, Formatter: newTestFormatter(t)})
	logger := slog.New(NewSlogHandler(sink, core.InfoLevel))

	logger.Info("via slog", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "INFO via slog") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("attr missing: %q", out)
	}
}

func TestSlogHandler_LevelMapping(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamHandler(StreamConfig{Writer: &buf, Formatter: newTestFormatter(t)})
	logger := slog.New(NewSlogHandler(sink, core.WarningLevel))

	logger.Info("hidden")
	if buf.Len() > 0 {
		t.Errorf("info passed a WARNING threshold: %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "WARNING shown") {
		t.Errorf("warn mapped wrong: %q", buf.String())
	}

	buf.Reset()
	logger.Error("bad")
	if !strings.Contains(buf.String(), "ERROR bad") {
		t.Errorf("error mapped wrong: %q", buf.String())
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStreamHandler(StreamConfig{Writer: &buf, Formatter: newTestFormatter(t)})
	logger := slog.New(NewSlogHandler(sink, core.DebugLevel)).
		With("app", "demo").
		WithGroup("req")

	logger.Info("msg", "id", 7)

	out := buf.String()
	if !strings.Contains(out, "app=demo") {
		t.Errorf("inherited attr missing: %q", out)
	}
	if !strings.Contains(out, "req.id=7") {
		t.Errorf("group prefix missing: %q", out)
	}
}
