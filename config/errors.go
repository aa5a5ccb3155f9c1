package config

import "errors"

// Validation failure classes. Load and Build wrap these with the
// offending names, so callers can both print a precise message and
// branch with errors.Is.
var (
	// ErrNoRootLogger means the configuration defines no root logger.
	ErrNoRootLogger = errors.New("logconf: configuration has no root logger")
	// ErrMissingSection means a name listed in a keys entry has no section.
	ErrMissingSection = errors.New("logconf: listed name has no section")
	// ErrUndefinedHandler means a logger references a handler that is not defined.
	ErrUndefinedHandler = errors.New("logconf: undefined handler")
	// ErrUndefinedFormatter means a handler references a formatter that is not defined.
	ErrUndefinedFormatter = errors.New("logconf: undefined formatter")
	// ErrUnknownClass means a handler or formatter class is not known.
	ErrUnknownClass = errors.New("logconf: unknown class")
	// ErrBadLevel means a level string did not parse.
	ErrBadLevel = errors.New("logconf: invalid level")
	// ErrBadArgs means a handler args tuple does not fit its class.
	ErrBadArgs = errors.New("logconf: invalid handler args")
)
