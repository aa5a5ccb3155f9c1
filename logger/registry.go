package logger

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/pmartell/logconf/handler"
)

// RootName is the reserved name of the root logger.
const RootName = "root"

// Registry holds the loggers produced by one configuration load. The
// configured set is immutable for the process lifetime; only the
// cache of name-derived loggers grows after construction.
type Registry struct {
	rootLogger *Logger
	loggers    map[string]*Logger
	handlers   []handler.Handler

	mu      sync.RWMutex
	derived map[string]*Logger
}

// NewRegistry creates a registry from a root logger, the configured
// named loggers, and the distinct handlers backing them. The handler
// slice is what Close releases; each shared handler must appear once.
func NewRegistry(root *Logger, loggers map[string]*Logger, handlers []handler.Handler) *Registry {
	if loggers == nil {
		loggers = make(map[string]*Logger)
	}
	return &Registry{
		rootLogger: root,
		loggers:    loggers,
		handlers:   handlers,
		derived:    make(map[string]*Logger),
	}
}

// Root returns the root logger
func (r *Registry) Root() *Logger {
	return r.rootLogger
}

// Get returns the logger for a dotted name. An exact match returns
// the configured logger; otherwise the nearest configured ancestor
// (root as the last resort) is used, stamped with the requested name
// so records still carry the caller's qualified name.
func (r *Registry) Get(name string) *Logger {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == RootName {
		return r.rootLogger
	}

	if l, ok := r.loggers[name]; ok {
		return l
	}

	r.mu.RLock()
	l, ok := r.derived[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	l = r.ancestor(name).Named(name)

	r.mu.Lock()
	// A racing Get may have cached the same name already
	if cached, ok := r.derived[name]; ok {
		l = cached
	} else {
		r.derived[name] = l
	}
	r.mu.Unlock()

	return l
}

// ancestor walks the dotted name upward to the nearest configured logger.
func (r *Registry) ancestor(name string) *Logger {
	for {
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return r.rootLogger
		}
		name = name[:i]
		if l, ok := r.loggers[name]; ok {
			return l
		}
	}
}

// Names returns the configured logger names in sorted order, root excluded.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every distinct handler once, combining errors.
func (r *Registry) Close() error {
	var err error
	for _, h := range r.handlers {
		err = multierr.Append(err, h.Close())
	}
	return err
}
