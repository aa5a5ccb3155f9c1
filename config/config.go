package config

import (
	"fmt"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/formatter"
)

// Config is the validated model of one logging configuration: three
// maps of named records, loaded once and immutable afterwards. The
// root logger lives in Loggers under the key "root".
type Config struct {
	Formatters map[string]FormatterConfig `yaml:"formatters"`
	Handlers   map[string]HandlerConfig   `yaml:"handlers"`
	Loggers    map[string]LoggerConfig    `yaml:"loggers"`
}

// FormatterConfig describes one formatter section.
type FormatterConfig struct {
	// Class selects the formatter kind: "" or "template" for the
	// %(field)s template formatter, "json" for the JSON formatter.
	Class string `yaml:"class"`
	// Format is the template string (template class only).
	Format string `yaml:"format"`
	// DateFormat is a strftime-style timestamp pattern.
	DateFormat string `yaml:"datefmt"`
}

// HandlerConfig describes one handler section. The INI loader fills
// the class-specific fields from the args tuple; the YAML loader maps
// them directly.
type HandlerConfig struct {
	Class     string `yaml:"class"`
	Level     string `yaml:"level"`
	Formatter string `yaml:"formatter"`

	// Stream is "stdout" or "stderr" (StreamHandler; default stderr).
	Stream string `yaml:"stream"`
	// Filename is the log file path (FileHandler, RotatingFileHandler).
	Filename string `yaml:"filename"`
	// Mode is the file open mode: "a" (default) or "w".
	Mode string `yaml:"mode"`
	// MaxBytes enables size rotation when positive (RotatingFileHandler).
	MaxBytes int64 `yaml:"maxBytes"`
	// BackupCount limits retained rotated files (RotatingFileHandler).
	BackupCount int `yaml:"backupCount"`

	// Async moves writes onto a buffered queue.
	Async bool `yaml:"async"`
	// BufferSize sizes the async queue.
	BufferSize int `yaml:"bufferSize"`
}

// LoggerConfig describes one logger section.
type LoggerConfig struct {
	// Level is empty to inherit from the nearest configured ancestor.
	Level string `yaml:"level"`
	// Handlers lists handler names this logger forwards records to.
	Handlers []string `yaml:"handlers"`
	// Qualname is the dotted name calling code uses to retrieve this
	// logger; defaults to the section name.
	Qualname string `yaml:"qualname"`
	// Propagate controls whether records also reach ancestor
	// handlers; nil means true.
	Propagate *bool `yaml:"propagate"`
}

// propagates reports the effective propagate flag.
func (lc LoggerConfig) propagates() bool {
	return lc.Propagate == nil || *lc.Propagate
}

// Validate checks the referential integrity of the configuration:
// every handler a logger names must exist, every formatter a handler
// names must exist, a root logger must be present, and levels,
// classes, templates, and class arguments must be well formed.
func (c *Config) Validate() error {
	if _, ok := c.Loggers[rootKey]; !ok {
		return ErrNoRootLogger
	}

	for name, fc := range c.Formatters {
		if err := validateFormatter(fc); err != nil {
			return fmt.Errorf("formatter %q: %w", name, err)
		}
	}

	for name, hc := range c.Handlers {
		if err := c.validateHandler(hc); err != nil {
			return fmt.Errorf("handler %q: %w", name, err)
		}
	}

	for name, lc := range c.Loggers {
		if err := c.validateLogger(name, lc); err != nil {
			return err
		}
	}

	return nil
}

func validateFormatter(fc FormatterConfig) error {
	switch fc.Class {
	case "", classTemplate:
		if _, err := formatter.NewTemplateFormatter(fc.Format, fc.DateFormat); err != nil {
			return err
		}
	case classJSON:
		// No template to compile
	default:
		return fmt.Errorf("%w: formatter class %q", ErrUnknownClass, fc.Class)
	}
	return nil
}

func (c *Config) validateHandler(hc HandlerConfig) error {
	if _, ok := resolveClass(hc.Class); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClass, hc.Class)
	}
	if hc.Formatter != "" {
		if _, ok := c.Formatters[hc.Formatter]; !ok {
			return fmt.Errorf("%w: %q", ErrUndefinedFormatter, hc.Formatter)
		}
	}
	if hc.Level != "" {
		if _, err := core.ParseLevel(hc.Level); err != nil {
			return fmt.Errorf("%w: %q", ErrBadLevel, hc.Level)
		}
	}

	switch canonicalClass(hc.Class) {
	case classStream:
		if hc.Stream != "" && hc.Stream != "stdout" && hc.Stream != "stderr" {
			return fmt.Errorf("%w: stream %q", ErrBadArgs, hc.Stream)
		}
	case classFile, classRotatingFile:
		if hc.Filename == "" {
			return fmt.Errorf("%w: missing filename", ErrBadArgs)
		}
		if hc.Mode != "" && hc.Mode != "a" && hc.Mode != "w" {
			return fmt.Errorf("%w: mode %q", ErrBadArgs, hc.Mode)
		}
	}
	return nil
}

func (c *Config) validateLogger(name string, lc LoggerConfig) error {
	for _, hname := range lc.Handlers {
		if _, ok := c.Handlers[hname]; !ok {
			return fmt.Errorf("logger %q: %w: %q", name, ErrUndefinedHandler, hname)
		}
	}
	if lc.Level != "" {
		if _, err := core.ParseLevel(lc.Level); err != nil {
			return fmt.Errorf("logger %q: %w: %q", name, ErrBadLevel, lc.Level)
		}
	}
	return nil
}
