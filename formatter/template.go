package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pmartell/logconf/core"
)

// Template defaults. A formatter section that omits format or datefmt
// falls back to these.
const (
	DefaultFormat     = "%(message)s"
	DefaultTimeLayout = "2006-01-02 15:04:05,000"
)

// templateField identifies one substitutable record attribute.
type templateField int

const (
	fieldLiteral templateField = iota
	fieldAsctime
	fieldName
	fieldLevelname
	fieldMessage
	fieldCreated
	fieldFilename
	fieldLineno
	fieldFuncName
)

var templateFields = map[string]templateField{
	"asctime":   fieldAsctime,
	"name":      fieldName,
	"levelname": fieldLevelname,
	"message":   fieldMessage,
	"created":   fieldCreated,
	"filename":  fieldFilename,
	"lineno":    fieldLineno,
	"funcName":  fieldFuncName,
}

// segment is one compiled piece of a template: either a literal run of
// bytes or a field reference.
type segment struct {
	field   templateField
	literal string
}

// TemplateFormatter renders entries through a compiled %(field)s
// template with a configurable timestamp layout. It is the formatter
// behind the declarative configuration's formatter sections.
type TemplateFormatter struct {
	segments   []segment
	timeLayout string
}

// NewTemplateFormatter compiles the given template and strftime date
// format. Empty arguments select DefaultFormat and DefaultTimeLayout.
// Unknown template fields and unsupported date directives are compile
// errors.
func NewTemplateFormatter(format, datefmt string) (*TemplateFormatter, error) {
	if format == "" {
		format = DefaultFormat
	}

	layout := DefaultTimeLayout
	if datefmt != "" {
		var err error
		layout, err = StrftimeLayout(datefmt)
		if err != nil {
			return nil, err
		}
	}

	segments, err := compile(format)
	if err != nil {
		return nil, err
	}

	return &TemplateFormatter{
		segments:   segments,
		timeLayout: layout,
	}, nil
}

// compile splits the template into literal and field segments.
func compile(format string) ([]segment, error) {
	var segments []segment
	var literal bytes.Buffer

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{field: fieldLiteral, literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			literal.WriteByte('%')
			i += 2
			continue
		}
		if i+1 >= len(format) || format[i+1] != '(' {
			return nil, fmt.Errorf("stray %% at position %d in format %q", i, format)
		}
		end := strings.IndexByte(format[i+2:], ')')
		if end < 0 {
			return nil, fmt.Errorf("unterminated field reference in format %q", format)
		}
		name := format[i+2 : i+2+end]
		i += 2 + end + 1
		if i >= len(format) || (format[i] != 's' && format[i] != 'd') {
			return nil, fmt.Errorf("field %%(%s) must end with 's' or 'd' in format %q", name, format)
		}
		i++

		field, ok := templateFields[name]
		if !ok {
			return nil, fmt.Errorf("unknown format field %%(%s)s in %q", name, format)
		}
		flush()
		segments = append(segments, segment{field: field})
	}
	flush()

	return segments, nil
}

// Format formats an entry through the template
func (f *TemplateFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(entry, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TemplateFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEntry formats an entry into the given buffer (implements BufferFormatter).
func (f *TemplateFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	f.formatToBuffer(entry, buf)
}

// formatToBuffer writes the formatted entry into the given buffer
func (f *TemplateFormatter) formatToBuffer(entry *core.Entry, buf *bytes.Buffer) {
	for _, seg := range f.segments {
		switch seg.field {
		case fieldLiteral:
			buf.WriteString(seg.literal)
		case fieldAsctime:
			// AppendFormat avoids a string allocation
			buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.timeLayout))
		case fieldName:
			if entry.Logger == "" {
				buf.WriteString("root")
			} else {
				buf.WriteString(entry.Logger)
			}
		case fieldLevelname:
			buf.WriteString(entry.Level.String())
		case fieldMessage:
			buf.WriteString(entry.Message)
		case fieldCreated:
			sec := float64(entry.Time.UnixNano()) / 1e9
			buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), sec, 'f', 6, 64))
		case fieldFilename:
			buf.WriteString(entry.Caller.ShortFile)
		case fieldLineno:
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		case fieldFuncName:
			buf.WriteString(entry.Caller.Function)
		}
	}

	// Structured fields land after the rendered template
	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
