// Package config loads declarative logging configuration and builds
// the logger registry from it.
//
// Two document formats are supported. The INI format uses [loggers],
// [handlers], and [formatters] key lists with one [logger_<name>],
// [handler_<name>], or [formatter_<name>] section per definition:
//
//	[loggers]
//	keys=root,app
//
//	[handlers]
//	keys=logfile
//
//	[formatters]
//	keys=simple
//
//	[logger_root]
//	level=WARNING
//	handlers=logfile
//
//	[logger_app]
//	level=DEBUG
//	handlers=logfile
//	qualname=app
//
//	[handler_logfile]
//	class=handlers.FileHandler
//	level=NOTSET
//	formatter=simple
//	args=('app.log', 'a')
//
//	[formatter_simple]
//	format=%(asctime)s - %(name)s - %(levelname)s - %(message)s
//	datefmt=%Y-%m-%d %H:%M:%S
//
// The YAML format carries the same model with class arguments spelled
// as named fields and the root logger under its own top-level key.
//
// Loading validates referential integrity and compiles every format
// template; Build then constructs shared handler instances and
// resolves logger levels and propagation up front, so the resulting
// registry never walks the hierarchy at log time.
package config
