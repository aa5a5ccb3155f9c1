package formatter

import (
	"fmt"
	"strings"
)

// strftime directive -> Go reference-time layout element. Only the
// directives that have an exact Go equivalent are supported; anything
// else is a configuration error surfaced at compile time.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
}

// StrftimeLayout translates a strftime-style date format into a Go
// time layout string. A literal percent is written as %%.
func StrftimeLayout(datefmt string) (string, error) {
	var b strings.Builder
	b.Grow(len(datefmt))

	for i := 0; i < len(datefmt); i++ {
		c := datefmt[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(datefmt) {
			return "", fmt.Errorf("trailing %% in date format %q", datefmt)
		}
		d := datefmt[i]
		if d == '%' {
			b.WriteByte('%')
			continue
		}
		layout, ok := strftimeLayouts[d]
		if !ok {
			return "", fmt.Errorf("unsupported date directive %%%c in %q", d, datefmt)
		}
		b.WriteString(layout)
	}

	return b.String(), nil
}
