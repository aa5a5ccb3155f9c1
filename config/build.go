package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmartell/logconf/core"
	"github.com/pmartell/logconf/formatter"
	"github.com/pmartell/logconf/handler"
	"github.com/pmartell/logconf/logger"
)

// BuildFile loads a configuration file and builds its registry in one
// step. YAML documents are recognized by their .yaml/.yml extension;
// everything else is read as INI.
func BuildFile(path string) (*logger.Registry, error) {
	var cfg *Config
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = LoadYAMLFile(path)
	default:
		cfg, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

// Build turns a validated configuration into an immutable logger
// registry. Handlers are constructed once per name, so loggers that
// share a handler share the instance. Propagation is resolved here:
// each logger's chain holds its own handlers followed by those
// inherited from ancestors, and the hot path never walks the
// hierarchy.
func (c *Config) Build() (*logger.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	formatters, err := c.buildFormatters()
	if err != nil {
		return nil, err
	}

	handlers, err := c.buildHandlers(formatters)
	if err != nil {
		return nil, err
	}

	// Index loggers by qualified name
	byQual := make(map[string]LoggerConfig, len(c.Loggers))
	for key, lc := range c.Loggers {
		qual := key
		if key != rootKey && lc.Qualname != "" {
			qual = lc.Qualname
		}
		byQual[qual] = lc
	}

	b := &registryBuilder{
		byQual:   byQual,
		handlers: handlers,
		chains:   make(map[string][]string),
		levels:   make(map[string]core.Level),
	}

	root := logger.NewBuilder().
		WithName(logger.RootName).
		WithHandler(b.chainHandler(rootKey)).
		WithLevel(b.levelFor(rootKey)).
		Build()

	named := make(map[string]*logger.Logger, len(byQual)-1)
	for qual := range byQual {
		if qual == rootKey {
			continue
		}
		named[qual] = logger.NewBuilder().
			WithName(qual).
			WithHandler(b.chainHandler(qual)).
			WithLevel(b.levelFor(qual)).
			Build()
	}

	// Each distinct handler is closed once by the registry
	distinct := make([]handler.Handler, 0, len(handlers))
	for _, name := range sortedKeys(handlers) {
		distinct = append(distinct, handlers[name])
	}

	return logger.NewRegistry(root, named, distinct), nil
}

func (c *Config) buildFormatters() (map[string]formatter.Formatter, error) {
	formatters := make(map[string]formatter.Formatter, len(c.Formatters))
	for name, fc := range c.Formatters {
		switch fc.Class {
		case "", classTemplate:
			f, err := formatter.NewTemplateFormatter(fc.Format, fc.DateFormat)
			if err != nil {
				return nil, fmt.Errorf("formatter %q: %w", name, err)
			}
			formatters[name] = f
		case classJSON:
			formatters[name] = formatter.NewJSONFormatter()
		}
	}
	return formatters, nil
}

func (c *Config) buildHandlers(formatters map[string]formatter.Formatter) (map[string]handler.Handler, error) {
	handlers := make(map[string]handler.Handler, len(c.Handlers))
	for _, name := range sortedKeys(c.Handlers) {
		hc := c.Handlers[name]

		var f formatter.Formatter
		if hc.Formatter != "" {
			f = formatters[hc.Formatter]
		}

		level := core.NotSetLevel
		if hc.Level != "" {
			level, _ = core.ParseLevel(hc.Level) // validated already
		}

		build, _ := resolveClass(hc.Class) // validated already
		h, err := build(hc, f, level)
		if err != nil {
			// Release whatever was opened before the failure
			for _, built := range handlers {
				built.Close()
			}
			return nil, fmt.Errorf("handler %q: %w", name, err)
		}
		handlers[name] = h
	}
	return handlers, nil
}

// registryBuilder memoizes chain and level resolution while loggers
// are constructed.
type registryBuilder struct {
	byQual   map[string]LoggerConfig
	handlers map[string]handler.Handler
	chains   map[string][]string
	levels   map[string]core.Level
}

// chainHandler flattens a logger's resolved handler chain into a
// single handler: nil for none, the handler itself for one, and a
// MultiHandler otherwise.
func (b *registryBuilder) chainHandler(qual string) handler.Handler {
	names := b.chainFor(qual)
	switch len(names) {
	case 0:
		return nil
	case 1:
		return b.handlers[names[0]]
	default:
		chain := make([]handler.Handler, len(names))
		for i, name := range names {
			chain[i] = b.handlers[name]
		}
		return handler.NewMultiHandler(chain...)
	}
}

// chainFor resolves propagation: a logger's own handlers, then its
// nearest configured ancestor's chain, stopping at root or at a
// non-propagating logger.
func (b *registryBuilder) chainFor(qual string) []string {
	if chain, ok := b.chains[qual]; ok {
		return chain
	}

	lc := b.byQual[qual]
	chain := append([]string(nil), lc.Handlers...)
	if qual != rootKey && lc.propagates() {
		chain = append(chain, b.chainFor(b.parent(qual))...)
	}

	b.chains[qual] = chain
	return chain
}

// levelFor resolves a logger's effective level: its own when set,
// otherwise the nearest configured ancestor's, with root defaulting
// to WARNING.
func (b *registryBuilder) levelFor(qual string) core.Level {
	if level, ok := b.levels[qual]; ok {
		return level
	}

	var level core.Level
	if lc := b.byQual[qual]; lc.Level != "" {
		level, _ = core.ParseLevel(lc.Level) // validated already
	}
	// NOTSET, spelled or implied, inherits from the nearest ancestor
	if level == core.NotSetLevel {
		if qual == rootKey {
			level = core.WarningLevel
		} else {
			level = b.levelFor(b.parent(qual))
		}
	}

	b.levels[qual] = level
	return level
}

// parent returns the nearest configured ancestor's qualified name,
// falling back to root.
func (b *registryBuilder) parent(qual string) string {
	for {
		i := strings.LastIndexByte(qual, '.')
		if i < 0 {
			return rootKey
		}
		qual = qual[:i]
		if _, ok := b.byQual[qual]; ok {
			return qual
		}
	}
}

func sortedKeys[M map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
