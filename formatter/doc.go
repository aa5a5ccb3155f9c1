// Package formatter defines how log entries are serialized into bytes.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Handlers
// check for WriterFormatter at construction time and prefer it when
// available, eliminating the intermediate byte slice allocation on
// the write path.
//
// TemplateFormatter is the formatter behind the declarative
// configuration format: it compiles a %(field)s-style template
// (asctime, name, levelname, message, and a few caller attributes)
// together with a strftime date format into a flat list of segments,
// so rendering a record is a straight walk with no parsing on the hot
// path. Compilation rejects unknown fields and date directives, which
// lets configuration loading fail fast on a bad formatter section.
//
// JSONFormatter encodes records as single-line JSON objects without
// going through encoding/json. Both formatters use a pooled
// bytes.Buffer and Go's Append-style functions (time.AppendFormat,
// strconv.AppendInt) to avoid per-call allocations.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
