// Package logger provides the named, immutable Logger type and the
// Registry produced by configuration loading.
//
// A Logger is assembled once through the Builder and never mutated:
// its name, level, default fields, and handler chain are fixed. The
// level gate runs before any allocation, and when the handler chain
// implements FastHandler and the call site passes no fields, records
// bypass the entry pool entirely.
//
// The Registry maps qualified dotted names to configured loggers.
// Propagation is resolved when a configuration is built, so a
// configured logger's handler chain already contains everything its
// ancestors would have contributed; Get on an unconfigured name
// borrows the nearest configured ancestor's chain (root as the last
// resort) while stamping the requested name on records. Close
// releases each distinct handler exactly once, which matters because
// several loggers commonly share a single file handler.
//
// The package-level functions log through a default logger that
// mirrors an unconfigured root: WARNING and above to stderr. A
// configuration loader typically replaces it via SetDefault with the
// registry's root.
package logger
