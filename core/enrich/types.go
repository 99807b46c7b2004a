package enrich

import (
	"strings"

	"netrule-mapper/core/pylit"
)

// Side identifies which rule column an analysis belongs to.
type Side string

const (
	SideSource      Side = "source"
	SideDestination Side = "destination"
)

// Entry is the resolved metadata for one token: which table matched and the
// attributes it carried, plus the second-stage identifier name. Empty
// strings render as None.
type Entry struct {
	Table          string
	Environment    string
	Function       string
	Location       string
	Infra          string
	Identifier     string
	IdentifierName string
}

// Analysis maps each resolved raw token to its Entry, preserving the order
// in which tokens first appeared. Tokens that were unparseable or did not
// resolve are absent entirely.
type Analysis struct {
	keys    []string
	entries map[string]Entry
}

// NewAnalysis returns an empty analysis map.
func NewAnalysis() *Analysis {
	return &Analysis{entries: make(map[string]Entry)}
}

// Put records the entry for a token. Re-putting a token overwrites its
// entry without duplicating the key, like assignment into a dict.
func (a *Analysis) Put(token string, e Entry) {
	if _, exists := a.entries[token]; !exists {
		a.keys = append(a.keys, token)
	}
	a.entries[token] = e
}

// Get returns the entry for a token.
func (a *Analysis) Get(token string) (Entry, bool) {
	e, ok := a.entries[token]
	return e, ok
}

// Len returns the number of resolved tokens.
func (a *Analysis) Len() int {
	return len(a.keys)
}

// Tokens returns the resolved tokens in insertion order.
func (a *Analysis) Tokens() []string {
	return a.keys
}

// Render serializes the analysis as a Python dict literal, the cell format
// the downstream spreadsheet consumers parse. An empty analysis renders
// as "{}".
func (a *Analysis) Render() string {
	if a.Len() == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, token := range a.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		e := a.entries[token]
		b.WriteString(pylit.Quote(token))
		b.WriteString(": {'File Name': ")
		b.WriteString(pylit.StrOrNone(e.Table))
		b.WriteString(", 'Environment': ")
		b.WriteString(pylit.StrOrNone(e.Environment))
		b.WriteString(", 'Function': ")
		b.WriteString(pylit.StrOrNone(e.Function))
		b.WriteString(", 'Location': ")
		b.WriteString(pylit.StrOrNone(e.Location))
		b.WriteString(", 'Infra': ")
		b.WriteString(pylit.StrOrNone(e.Infra))
		b.WriteString(", 'Identifier': ")
		b.WriteString(pylit.StrOrNone(e.Identifier))
		b.WriteString(", 'Identifier Name': ")
		b.WriteString(pylit.StrOrNone(e.IdentifierName))
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}
