// Package core defines the shared types used across the logconf framework.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log record, and the Field type for zero-allocation
// structured key-value pairs.
//
// The severity scale follows the declarative configuration format this
// module loads: NOTSET < DEBUG < INFO < WARNING < ERROR < CRITICAL.
// NOTSET is never emitted; it marks a logger whose level is inherited
// from an ancestor. ParseLevel accepts the upper-case names plus the
// WARN and FATAL aliases and rejects everything else, so configuration
// loaders can surface bad level strings as errors instead of silently
// defaulting.
//
// Entry objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get an Entry with GetEntry and must
// return it with PutEntry once the handler has consumed it. Each Entry
// carries the name of the logger that emitted it, which formatters
// substitute for the name template field.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
