package config

import (
	"fmt"
	"strconv"
	"strings"
)

// argKind discriminates the literal kinds an args tuple may carry.
type argKind int

const (
	argString argKind = iota
	argStream
	argInt
)

// arg is one parsed element of a handler args tuple.
type arg struct {
	kind argKind
	str  string // argString: the literal; argStream: "stdout" or "stderr"
	num  int64
}

// parseArgs parses a handler section's args value: a parenthesized
// tuple of quoted strings, integers, and stream references, e.g.
// (sys.stdout,) or ('app.log', 'a', 1048576, 5). An empty value or
// () yields no args.
func parseArgs(s string) ([]arg, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("args %q is not a tuple", s)
	}
	s = s[1 : len(s)-1]

	var args []arg
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			return args, nil
		}

		var a arg
		var rest string
		var err error
		switch s[0] {
		case '\'', '"':
			a, rest, err = scanQuoted(s)
		default:
			a, rest, err = scanAtom(s)
		}
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		rest = strings.TrimSpace(rest)
		if rest == "" {
			return args, nil
		}
		if rest[0] != ',' {
			return nil, fmt.Errorf("expected ',' before %q in args", rest)
		}
		s = rest[1:] // trailing comma is fine
	}
}

// scanQuoted consumes a single- or double-quoted string literal.
func scanQuoted(s string) (arg, string, error) {
	quote := s[0]
	end := strings.IndexByte(s[1:], quote)
	if end < 0 {
		return arg{}, "", fmt.Errorf("unterminated string in args %q", s)
	}
	return arg{kind: argString, str: s[1 : 1+end]}, s[end+2:], nil
}

// scanAtom consumes an unquoted token: an integer or a stream reference.
func scanAtom(s string) (arg, string, error) {
	end := strings.IndexByte(s, ',')
	token := s
	rest := ""
	if end >= 0 {
		token = s[:end]
		rest = s[end:]
	}
	token = strings.TrimSpace(token)

	switch token {
	case "sys.stdout", "stdout":
		return arg{kind: argStream, str: "stdout"}, rest, nil
	case "sys.stderr", "stderr":
		return arg{kind: argStream, str: "stderr"}, rest, nil
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return arg{}, "", fmt.Errorf("unrecognized args token %q", token)
	}
	return arg{kind: argInt, num: n}, rest, nil
}
