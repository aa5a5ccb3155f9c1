package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/handler"
)

// referenceConf is the shipped configuration with the log file path
// parameterized so tests write under t.TempDir.
const referenceConf = `
[loggers]
keys=root,nailgun,robottelo,robozilla

[handlers]
keys=console,logfile

[formatters]
keys=standard

[logger_root]
level=WARNING
handlers=console

[logger_nailgun]
level=DEBUG
handlers=logfile
qualname=nailgun

[logger_robottelo]
level=DEBUG
handlers=logfile
qualname=robottelo

[logger_robozilla]
level=DEBUG
handlers=logfile
qualname=robozilla

[handler_console]
class=StreamHandler
level=NOTSET
formatter=standard
args=(sys.stdout,)

[handler_logfile]
class=FileHandler
level=NOTSET
formatter=standard
args=('%s', 'a')

[formatter_standard]
format=%%(asctime)s - %%(name)s - %%(levelname)s - %%(message)s
datefmt=%%Y-%%m-%%d %%H:%%M:%%S
`

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logging.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := strings.TrimRight(string(data), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestBuildReferenceConfig(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "robottelo.log")
	reg, err := BuildFile(writeConf(t, fmt.Sprintf(referenceConf, logPath)))
	require.NoError(t, err)

	reg.Get("robottelo").Debug("host created")
	reg.Get("nailgun").Debug("entity pushed")
	reg.Root().Debug("below root threshold")
	require.NoError(t, reg.Close())

	lines := readLines(t, logPath)
	require.Len(t, lines, 2)
	assert.Regexp(t,
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - robottelo - DEBUG - host created$`),
		lines[0])
	assert.Regexp(t,
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - nailgun - DEBUG - entity pushed$`),
		lines[1])
}

func TestBuildReferenceConfigShape(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "robottelo.log")
	reg, err := BuildFile(writeConf(t, fmt.Sprintf(referenceConf, logPath)))
	require.NoError(t, err)
	defer reg.Close()

	assert.Equal(t, core.WarningLevel, reg.Root().Level())
	assert.Equal(t, []string{"nailgun", "robottelo", "robozilla"}, reg.Names())

	for _, name := range []string{"nailgun", "robottelo", "robozilla"} {
		l := reg.Get(name)
		assert.Equal(t, core.DebugLevel, l.Level(), name)
		// Own file handler plus the propagated console handler
		mh, ok := l.Handler().(*handler.MultiHandler)
		require.True(t, ok, name)
		assert.Len(t, mh.Handlers(), 2, name)
	}

	// Shared handler: the three loggers front the same file handler
	h1 := reg.Get("robottelo").Handler().(*handler.MultiHandler).Handlers()[0]
	h2 := reg.Get("nailgun").Handler().(*handler.MultiHandler).Handlers()[0]
	assert.Same(t, h1, h2)
}

func TestBuildRootRecordsBypassFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "robottelo.log")
	reg, err := BuildFile(writeConf(t, fmt.Sprintf(referenceConf, logPath)))
	require.NoError(t, err)

	// Root fronts the console stream handler alone; the file handler is
	// only reachable through the named loggers.
	_, ok := reg.Root().Handler().(*handler.StreamHandler)
	require.True(t, ok, "root handler = %T", reg.Root().Handler())

	reg.Root().Warn("root warning")
	reg.Root().Error("root error")
	reg.Get("nailgun").Debug("dbg record")
	require.NoError(t, reg.Close())

	// Deliverable root records (>= WARNING) go to the console stream,
	// never to the log file.
	lines := readLines(t, logPath)
	require.Len(t, lines, 1)
	assert.Regexp(t,
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - nailgun - DEBUG - dbg record$`),
		lines[0])
	assert.NotContains(t, lines[0], "root warning")
}

func TestBuildAppendMode(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "robottelo.log")
	conf := fmt.Sprintf(referenceConf, logPath)

	for _, msg := range []string{"first run", "second run"} {
		reg, err := BuildFile(writeConf(t, conf))
		require.NoError(t, err)
		reg.Get("robozilla").Debug(msg)
		require.NoError(t, reg.Close())
	}

	lines := readLines(t, logPath)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first run")
	assert.Contains(t, lines[1], "second run")
}

func TestBuildLevelInheritance(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	cfg := &Config{
		Formatters: map[string]FormatterConfig{
			"plain": {Format: "%(name)s %(levelname)s %(message)s"},
		},
		Handlers: map[string]HandlerConfig{
			"logfile": {Class: "FileHandler", Formatter: "plain", Filename: logPath},
		},
		Loggers: map[string]LoggerConfig{
			"root": {Level: "ERROR", Handlers: []string{"logfile"}},
			"app":  {}, // level and handlers inherited from root
		},
	}

	reg, err := cfg.Build()
	require.NoError(t, err)

	app := reg.Get("app")
	assert.Equal(t, core.ErrorLevel, app.Level())
	app.Warn("suppressed")
	app.Error("kept")

	// Derived child rides the nearest configured ancestor
	reg.Get("app.worker").Error("from child")
	require.NoError(t, reg.Close())

	lines := readLines(t, logPath)
	require.Len(t, lines, 2)
	assert.Equal(t, "app ERROR kept", lines[0])
	assert.Equal(t, "app.worker ERROR from child", lines[1])
}

func TestBuildPropagateDisabled(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "root.log")
	taskPath := filepath.Join(dir, "task.log")

	off := false
	cfg := &Config{
		Handlers: map[string]HandlerConfig{
			"rootfile": {Class: "FileHandler", Filename: rootPath},
			"taskfile": {Class: "FileHandler", Filename: taskPath},
		},
		Loggers: map[string]LoggerConfig{
			"root": {Level: "DEBUG", Handlers: []string{"rootfile"}},
			"task": {Level: "DEBUG", Handlers: []string{"taskfile"}, Propagate: &off},
		},
	}

	reg, err := cfg.Build()
	require.NoError(t, err)
	reg.Get("task").Info("contained")
	require.NoError(t, reg.Close())

	assert.Len(t, readLines(t, taskPath), 1)
	assert.Empty(t, readLines(t, rootPath))
}

func TestBuildRootLevelDefaultsToWarning(t *testing.T) {
	cfg := &Config{
		Handlers: map[string]HandlerConfig{"null": {Class: "NullHandler"}},
		Loggers: map[string]LoggerConfig{
			"root": {Handlers: []string{"null"}},
		},
	}
	reg, err := cfg.Build()
	require.NoError(t, err)
	defer reg.Close()
	assert.Equal(t, core.WarningLevel, reg.Root().Level())
}

func TestBuildUnopenableFile(t *testing.T) {
	cfg := &Config{
		Handlers: map[string]HandlerConfig{
			"logfile": {Class: "FileHandler", Filename: filepath.Join(t.TempDir(), "missing", "app.log")},
		},
		Loggers: map[string]LoggerConfig{
			"root": {Handlers: []string{"logfile"}},
		},
	}
	_, err := cfg.Build()
	assert.Error(t, err)
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := &Config{
		Loggers: map[string]LoggerConfig{
			"root": {Handlers: []string{"missing"}},
		},
	}
	_, err := cfg.Build()
	assert.ErrorIs(t, err, ErrUndefinedHandler)
}
