package enrich

import (
	"strings"

	"netrule-mapper/core/classify"
	"netrule-mapper/core/lookup"
)

// EnrichTokens resolves each token in a rule's list field against the
// layered indices and returns the analysis map plus the number of
// syntactically valid tokens that matched no table.
//
// Per-token behavior: trim; skip empty and unparseable tokens silently;
// single IPs and host routes probe the IP table; subnets probe the subnet
// tables in priority order; a resolved entry with a non-empty identifier
// gets its display name from the name index (empty when unknown).
func EnrichTokens(tokens []string, ix *lookup.Index, names *lookup.NameIndex) (*Analysis, int) {
	analysis := NewAnalysis()
	unmatched := 0

	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}

		var attrs lookup.Attributes
		var ok bool
		switch classify.Classify(token) {
		case classify.SingleIP, classify.HostRoute:
			attrs, ok = ix.LookupIP(token)
		case classify.Subnet:
			attrs, ok = ix.LookupSubnet(token)
		default:
			continue
		}
		if !ok {
			unmatched++
			continue
		}

		e := Entry{
			Table:       attrs.Table,
			Environment: attrs.Environment,
			Function:    attrs.Function,
			Location:    attrs.Location,
			Infra:       attrs.Infra,
			Identifier:  attrs.Identifier,
		}
		if e.Identifier != "" {
			if name, found := names.Lookup(e.Identifier); found {
				e.IdentifierName = name
			}
		}

		analysis.Put(token, e)
	}

	return analysis, unmatched
}
