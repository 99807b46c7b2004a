package clean

import (
	"regexp"
	"strings"

	"netrule-mapper/core/pylit"
	"netrule-mapper/core/tabular"
)

var (
	// entryPattern matches a dotted-quad address with an optional prefix,
	// the shape of entries worth moving out of a groups column.
	entryPattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}(/\d{1,2})?$`)
	// rangePattern matches dash-form ranges like 10.0.0.1-10.0.0.9, which
	// the enrichment pipeline cannot resolve and the dataset drops.
	rangePattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}-\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
)

// IsEntry reports whether a token looks like an IP address or subnet.
func IsEntry(s string) bool {
	return entryPattern.MatchString(strings.TrimSpace(s))
}

// IsRange reports whether a token is a dash-form IP range.
func IsRange(s string) bool {
	return rangePattern.MatchString(strings.TrimSpace(s))
}

// Result counts what one MergeGroups pass did on a column pair.
type Result struct {
	// Moved counts IP-looking entries appended from the groups column.
	Moved int
	// Dropped counts dash-range entries removed from the IP list.
	Dropped int
	// Malformed counts cells that failed to parse and were treated as empty.
	Malformed int
}

// MergeGroups rewrites the ipColumn of every row: IP-looking entries from
// the groups column are appended (deduplicated), dash ranges are dropped,
// and the result is serialized back as a Python list literal. The groups
// column itself is left untouched.
func MergeGroups(t *tabular.Table, path, groupsColumn, ipColumn string) (Result, error) {
	var res Result
	if err := tabular.RequireColumns(t, path, groupsColumn, ipColumn); err != nil {
		return res, err
	}
	groupsIdx, _ := t.ColumnIndex(groupsColumn)
	ipIdx, _ := t.ColumnIndex(ipColumn)

	for r := 0; r < t.NumRows(); r++ {
		ips := parseCell(t.Cell(r, ipIdx), &res)
		groups := parseCell(t.Cell(r, groupsIdx), &res)

		seen := make(map[string]struct{}, len(ips))
		merged := make([]string, 0, len(ips)+len(groups))
		for _, ip := range ips {
			ip = strings.TrimSpace(ip)
			if ip == "" {
				continue
			}
			if IsRange(ip) {
				res.Dropped++
				continue
			}
			if _, dup := seen[ip]; dup {
				continue
			}
			seen[ip] = struct{}{}
			merged = append(merged, ip)
		}
		for _, g := range groups {
			g = strings.TrimSpace(g)
			if !IsEntry(g) {
				continue
			}
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			merged = append(merged, g)
			res.Moved++
		}

		t.SetCell(r, ipIdx, pylit.FormatList(merged))
	}

	return res, nil
}

func parseCell(cell string, res *Result) []string {
	items, ok := pylit.ParseList(cell)
	if !ok {
		res.Malformed++
		return nil
	}
	return items
}
