package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/formatter"
	"github.com/pmartell/logconf/handler"
)

const rootKey = "root"

// Formatter classes
const (
	classTemplate = "template"
	classJSON     = "json"
)

// Built-in handler classes. Class names accept the optional
// "logging." and "handlers." prefixes the configuration format uses.
const (
	classStream       = "streamhandler"
	classFile         = "filehandler"
	classRotatingFile = "rotatingfilehandler"
	classNull         = "nullhandler"
)

// HandlerBuilder constructs a handler from its validated section. The
// formatter and level are already resolved.
type HandlerBuilder func(hc HandlerConfig, f formatter.Formatter, level core.Level) (handler.Handler, error)

var (
	classMu sync.RWMutex
	classes = map[string]HandlerBuilder{
		classStream:       buildStreamHandler,
		classFile:         buildFileHandler,
		classRotatingFile: buildFileHandler,
		classNull:         buildNullHandler,
	}
)

// RegisterHandlerClass makes a custom handler class available to
// configurations under the given name (case-insensitive).
func RegisterHandlerClass(name string, b HandlerBuilder) {
	classMu.Lock()
	classes[canonicalClass(name)] = b
	classMu.Unlock()
}

// canonicalClass lowercases a class name and strips the module
// prefixes the configuration format allows.
func canonicalClass(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "logging.")
	name = strings.TrimPrefix(name, "handlers.")
	return name
}

// resolveClass looks up the builder for a class name.
func resolveClass(name string) (HandlerBuilder, bool) {
	classMu.RLock()
	b, ok := classes[canonicalClass(name)]
	classMu.RUnlock()
	return b, ok
}

func buildStreamHandler(hc HandlerConfig, f formatter.Formatter, level core.Level) (handler.Handler, error) {
	w := os.Stderr
	if hc.Stream == "stdout" {
		w = os.Stdout
	}
	return handler.NewStreamHandler(handler.StreamConfig{
		Writer:     w,
		Formatter:  f,
		Level:      level,
		Async:      hc.Async,
		BufferSize: hc.BufferSize,
	}), nil
}

func buildFileHandler(hc HandlerConfig, f formatter.Formatter, level core.Level) (handler.Handler, error) {
	return handler.NewFileHandler(handler.FileConfig{
		Filename:   hc.Filename,
		Mode:       hc.Mode,
		Formatter:  f,
		Level:      level,
		Async:      hc.Async,
		BufferSize: hc.BufferSize,
		MaxSize:    hc.MaxBytes,
		MaxBackups: hc.BackupCount,
	})
}

func buildNullHandler(HandlerConfig, formatter.Formatter, core.Level) (handler.Handler, error) {
	return handler.NewNullHandler(), nil
}

// applyArgs maps an INI args tuple onto the class-specific fields.
func applyArgs(hc *HandlerConfig, args []arg) error {
	switch canonicalClass(hc.Class) {
	case classStream:
		if len(args) > 1 {
			return fmt.Errorf("%w: StreamHandler takes at most one arg", ErrBadArgs)
		}
		if len(args) == 1 {
			if args[0].kind != argStream {
				return fmt.Errorf("%w: StreamHandler arg must be a stream", ErrBadArgs)
			}
			hc.Stream = args[0].str
		}

	case classFile:
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("%w: FileHandler takes (filename[, mode])", ErrBadArgs)
		}
		if args[0].kind != argString {
			return fmt.Errorf("%w: filename must be a string", ErrBadArgs)
		}
		hc.Filename = args[0].str
		if len(args) == 2 {
			if args[1].kind != argString {
				return fmt.Errorf("%w: mode must be a string", ErrBadArgs)
			}
			hc.Mode = args[1].str
		}

	case classRotatingFile:
		if len(args) < 1 || len(args) > 4 {
			return fmt.Errorf("%w: RotatingFileHandler takes (filename[, mode[, maxBytes[, backupCount]]])", ErrBadArgs)
		}
		if args[0].kind != argString {
			return fmt.Errorf("%w: filename must be a string", ErrBadArgs)
		}
		hc.Filename = args[0].str
		if len(args) >= 2 {
			if args[1].kind != argString {
				return fmt.Errorf("%w: mode must be a string", ErrBadArgs)
			}
			hc.Mode = args[1].str
		}
		if len(args) >= 3 {
			if args[2].kind != argInt {
				return fmt.Errorf("%w: maxBytes must be an integer", ErrBadArgs)
			}
			hc.MaxBytes = args[2].num
		}
		if len(args) == 4 {
			if args[3].kind != argInt {
				return fmt.Errorf("%w: backupCount must be an integer", ErrBadArgs)
			}
			hc.BackupCount = int(args[3].num)
		}

	case classNull:
		if len(args) != 0 {
			return fmt.Errorf("%w: NullHandler takes no args", ErrBadArgs)
		}

	default:
		// Custom classes interpret their own fields; args tuples are
		// only defined for the built-in classes.
		if len(args) != 0 {
			return fmt.Errorf("%w: class %q does not accept args", ErrBadArgs, hc.Class)
		}
	}
	return nil
}
