package enrich

import "strings"

// SideStats holds the per-side run counters.
type SideStats struct {
	// Mapped counts tokens that resolved against any table.
	Mapped int
	// IPs counts mapped tokens that are single IPs or host routes.
	IPs int
	// Subnets counts mapped tokens that are genuine subnets.
	Subnets int
	// Unmatched counts syntactically valid tokens absent from every table.
	Unmatched int
	// ByTable counts mapped tokens per matched table name.
	ByTable map[string]int
}

// Stats accumulates run counters across all rows. Purely observational: it
// never influences the enriched output.
type Stats struct {
	Rows        int
	Malformed   int
	Source      SideStats
	Destination SideStats
}

// NewStats returns zeroed statistics.
func NewStats() *Stats {
	return &Stats{
		Source:      SideStats{ByTable: make(map[string]int)},
		Destination: SideStats{ByTable: make(map[string]int)},
	}
}

func (s *Stats) side(side Side) *SideStats {
	if side == SideDestination {
		return &s.Destination
	}
	return &s.Source
}

// Record tallies one row-side analysis. A token counts as a subnet when it
// carries a prefix that is not /32 or /128; host routes count as IPs even
// though they carry a slash.
func (s *Stats) Record(a *Analysis, side Side) {
	ss := s.side(side)
	for _, token := range a.Tokens() {
		ss.Mapped++
		if isRealSubnet(token) {
			ss.Subnets++
		} else {
			ss.IPs++
		}
		if e, ok := a.Get(token); ok {
			ss.ByTable[e.Table]++
		}
	}
}

// AddUnmatched adds n to the side's unmatched counter.
func (s *Stats) AddUnmatched(side Side, n int) {
	s.side(side).Unmatched += n
}

func isRealSubnet(token string) bool {
	return strings.Contains(token, "/") &&
		!strings.HasSuffix(token, "/32") &&
		!strings.HasSuffix(token, "/128")
}
