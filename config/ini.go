package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadFile reads a fileConfig-style INI document from disk.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load reads a fileConfig-style INI document: [loggers], [handlers],
// and [formatters] list the defined names; [logger_<name>],
// [handler_<name>], and [formatter_<name>] sections describe them.
// The returned Config is validated.
func Load(r io.Reader) (*Config, error) {
	v := viper.New()
	v.SetConfigType("ini")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Formatters: make(map[string]FormatterConfig),
		Handlers:   make(map[string]HandlerConfig),
		Loggers:    make(map[string]LoggerConfig),
	}

	for _, name := range splitList(v.GetString("formatters.keys")) {
		section := "formatter_" + name
		if !v.IsSet(section) {
			return nil, fmt.Errorf("%w: [%s]", ErrMissingSection, section)
		}
		cfg.Formatters[name] = FormatterConfig{
			Class:      v.GetString(section + ".class"),
			Format:     v.GetString(section + ".format"),
			DateFormat: v.GetString(section + ".datefmt"),
		}
	}

	for _, name := range splitList(v.GetString("handlers.keys")) {
		section := "handler_" + name
		if !v.IsSet(section) {
			return nil, fmt.Errorf("%w: [%s]", ErrMissingSection, section)
		}
		hc := HandlerConfig{
			Class:      v.GetString(section + ".class"),
			Level:      v.GetString(section + ".level"),
			Formatter:  v.GetString(section + ".formatter"),
			Async:      v.GetBool(section + ".async"),
			BufferSize: v.GetInt(section + ".buffersize"),
		}
		args, err := parseArgs(v.GetString(section + ".args"))
		if err != nil {
			return nil, fmt.Errorf("handler %q: %w: %v", name, ErrBadArgs, err)
		}
		if err := applyArgs(&hc, args); err != nil {
			return nil, fmt.Errorf("handler %q: %w", name, err)
		}
		cfg.Handlers[name] = hc
	}

	for _, name := range splitList(v.GetString("loggers.keys")) {
		section := "logger_" + name
		if !v.IsSet(section) {
			return nil, fmt.Errorf("%w: [%s]", ErrMissingSection, section)
		}
		lc := LoggerConfig{
			Level:    v.GetString(section + ".level"),
			Handlers: splitList(v.GetString(section + ".handlers")),
			Qualname: strings.ToLower(v.GetString(section + ".qualname")),
		}
		if v.IsSet(section + ".propagate") {
			p := v.GetInt(section+".propagate") != 0
			lc.Propagate = &p
		}
		cfg.Loggers[name] = lc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList splits a comma-separated name list, trimming whitespace
// and lowercasing (viper treats INI keys case-insensitively).
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
