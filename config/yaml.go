package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDoc is the dictConfig-style YAML document shape. The root
// logger sits in its own top-level key, mirroring the dict layout.
type yamlDoc struct {
	Formatters map[string]FormatterConfig `yaml:"formatters"`
	Handlers   map[string]HandlerConfig   `yaml:"handlers"`
	Loggers    map[string]LoggerConfig    `yaml:"loggers"`
	Root       *LoggerConfig              `yaml:"root"`
}

// LoadYAMLFile reads a dictConfig-style YAML document from disk.
func LoadYAMLFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadYAML parses a dictConfig-style YAML document into a validated
// Config. It accepts the same model as the INI loader with the class
// arguments spelled as named fields instead of an args tuple.
func LoadYAML(data []byte) (*Config, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	cfg := &Config{
		Formatters: make(map[string]FormatterConfig, len(doc.Formatters)),
		Handlers:   make(map[string]HandlerConfig, len(doc.Handlers)),
		Loggers:    make(map[string]LoggerConfig, len(doc.Loggers)+1),
	}
	for name, fc := range doc.Formatters {
		cfg.Formatters[strings.ToLower(name)] = fc
	}
	for name, hc := range doc.Handlers {
		cfg.Handlers[strings.ToLower(name)] = hc
	}
	for name, lc := range doc.Loggers {
		name = strings.ToLower(name)
		lc.Handlers = lowerAll(lc.Handlers)
		lc.Qualname = strings.ToLower(lc.Qualname)
		cfg.Loggers[name] = lc
	}
	if doc.Root != nil {
		root := *doc.Root
		root.Handlers = lowerAll(root.Handlers)
		root.Qualname = ""
		cfg.Loggers[rootKey] = root
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func lowerAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return out
}
