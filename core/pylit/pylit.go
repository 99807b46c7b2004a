package pylit

import (
	"strconv"
	"strings"
)

// None is the literal used for absent values.
const None = "None"

// ParseList parses a cell that holds a Python list literal and returns its
// elements as strings. An empty cell and the literal "[]" both yield an empty
// list with ok=true. A quoted or numeric scalar yields a one-element list.
// Anything else is malformed and returns ok=false; callers are expected to
// degrade to an empty list without raising an error.
func ParseList(cell string) ([]string, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return []string{}, true
	}

	if strings.HasPrefix(s, "[") {
		sc := &scanner{input: s}
		items, ok := sc.list()
		if !ok {
			return nil, false
		}
		sc.skipSpace()
		if !sc.done() {
			return nil, false
		}
		return items, true
	}

	// Scalar cell: a quoted string or a number, mirroring how the upstream
	// tooling wraps non-list literals into a one-element list.
	if v, ok := parseScalar(s); ok {
		return []string{v}, true
	}
	return nil, false
}

func parseScalar(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') {
		sc := &scanner{input: s}
		v, ok := sc.quoted()
		if !ok {
			return "", false
		}
		sc.skipSpace()
		if !sc.done() {
			return "", false
		}
		return v, true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s, true
	}
	return "", false
}

type scanner struct {
	input string
	pos   int
}

func (sc *scanner) done() bool {
	return sc.pos >= len(sc.input)
}

func (sc *scanner) peek() byte {
	return sc.input[sc.pos]
}

func (sc *scanner) skipSpace() {
	for !sc.done() && (sc.peek() == ' ' || sc.peek() == '\t' || sc.peek() == '\n' || sc.peek() == '\r') {
		sc.pos++
	}
}

// list parses "[elem, elem, ...]" starting at the opening bracket.
func (sc *scanner) list() ([]string, bool) {
	if sc.done() || sc.peek() != '[' {
		return nil, false
	}
	sc.pos++

	items := []string{}
	for {
		sc.skipSpace()
		if sc.done() {
			return nil, false
		}
		if sc.peek() == ']' {
			sc.pos++
			return items, true
		}

		var v string
		var ok bool
		if sc.peek() == '\'' || sc.peek() == '"' {
			v, ok = sc.quoted()
		} else {
			v, ok = sc.atom()
		}
		if !ok {
			return nil, false
		}
		items = append(items, v)

		sc.skipSpace()
		if sc.done() {
			return nil, false
		}
		switch sc.peek() {
		case ',':
			sc.pos++
		case ']':
			// handled on the next loop turn
		default:
			return nil, false
		}
	}
}

// quoted parses a single- or double-quoted string starting at the quote.
func (sc *scanner) quoted() (string, bool) {
	quote := sc.peek()
	sc.pos++

	var b strings.Builder
	for !sc.done() {
		c := sc.peek()
		sc.pos++
		switch c {
		case quote:
			return b.String(), true
		case '\\':
			if sc.done() {
				return "", false
			}
			e := sc.peek()
			sc.pos++
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"':
				b.WriteByte(e)
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}

// atom parses an unquoted element up to the next comma or closing bracket.
// Only numbers are accepted, matching what a Python literal list may hold
// besides quoted strings in these datasets.
func (sc *scanner) atom() (string, bool) {
	start := sc.pos
	for !sc.done() && sc.peek() != ',' && sc.peek() != ']' {
		sc.pos++
	}
	v := strings.TrimSpace(sc.input[start:sc.pos])
	if v == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return "", false
	}
	return v, true
}

// Quote renders s as a Python string literal. Single quotes are preferred;
// strings containing a single quote but no double quote switch to double
// quotes, matching CPython repr().
func Quote(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, "\"") {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// StrOrNone renders s as a quoted literal, or None when empty.
func StrOrNone(s string) string {
	if s == "" {
		return None
	}
	return Quote(s)
}

// FormatList renders items as a Python list literal of strings.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Quote(item))
	}
	b.WriteByte(']')
	return b.String()
}
