package enrich_test

import (
	"testing"

	"netrule-mapper/core/enrich"
	"netrule-mapper/core/lookup"
	"netrule-mapper/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refTable(t *testing.T, name, keyColumn string, rows [][]string) *lookup.RefTable {
	t.Helper()
	tbl := &tabular.Table{
		Columns: []string{keyColumn, "environment", "function", "location", "infra", "identifier"},
		Rows:    rows,
	}
	rt, err := lookup.NewRefTable(tbl, name, name, keyColumn)
	require.NoError(t, err)
	return rt
}

func nameIndex(t *testing.T, rows [][]string) *lookup.NameIndex {
	t.Helper()
	tbl := &tabular.Table{Columns: []string{"identifier", "name"}, Rows: rows}
	ni, err := lookup.NewNameIndex(tbl, "itam.xlsx")
	require.NoError(t, err)
	return ni
}

// testIndices builds the fixture shared by the enricher tests:
// an IP table with one host, three subnet tables where the /16 appears in
// both the second and third, and an identifier-name table.
func testIndices(t *testing.T) (*lookup.Index, *lookup.NameIndex) {
	t.Helper()
	ips := refTable(t, "ip-table", "ip", [][]string{
		{"10.1.1.1", "prod", "", "", "", "I100"},
		{"192.168.5.10", "prod", "", "", "", ""},
	})
	t1 := refTable(t, "t1", "subnet", [][]string{})
	t2 := refTable(t, "t2", "subnet", [][]string{
		{"10.2.0.0/16", "dev", "app", "", "", "I200"},
	})
	t3 := refTable(t, "t3", "subnet", [][]string{
		{"10.2.0.0/16", "staging", "", "", "", ""},
	})
	ix := lookup.NewIndex(ips, []*lookup.RefTable{t1, t2, t3})
	ni := nameIndex(t, [][]string{{"I100", "Payments"}})
	return ix, ni
}

func TestEnrichTokens_SingleIP(t *testing.T) {
	ix, ni := testIndices(t)

	a, unmatched := enrich.EnrichTokens([]string{"10.1.1.1"}, ix, ni)
	assert.Zero(t, unmatched)
	require.Equal(t, 1, a.Len())

	e, ok := a.Get("10.1.1.1")
	require.True(t, ok)
	assert.Equal(t, enrich.Entry{
		Table:          "ip-table",
		Environment:    "prod",
		Identifier:     "I100",
		IdentifierName: "Payments",
	}, e)
}

func TestEnrichTokens_HostRouteCollapsesToIPLookup(t *testing.T) {
	ix, ni := testIndices(t)

	bare, _ := enrich.EnrichTokens([]string{"10.1.1.1"}, ix, ni)
	host, _ := enrich.EnrichTokens([]string{"10.1.1.1/32"}, ix, ni)

	bareEntry, ok := bare.Get("10.1.1.1")
	require.True(t, ok)
	// Keyed by the raw token, resolved like the bare address.
	hostEntry, ok := host.Get("10.1.1.1/32")
	require.True(t, ok)
	assert.Equal(t, bareEntry, hostEntry)
}

func TestEnrichTokens_SubnetPriority(t *testing.T) {
	ix, ni := testIndices(t)

	a, unmatched := enrich.EnrichTokens([]string{"10.2.0.0/16"}, ix, ni)
	assert.Zero(t, unmatched)

	e, ok := a.Get("10.2.0.0/16")
	require.True(t, ok)
	// First match in priority order: t2, not t3.
	assert.Equal(t, "t2", e.Table)
	assert.Equal(t, "dev", e.Environment)
	// Identifier I200 has no name mapping.
	assert.Equal(t, "I200", e.Identifier)
	assert.Equal(t, "", e.IdentifierName)
}

func TestEnrichTokens_SubnetNeverProbesIPTable(t *testing.T) {
	ix, ni := testIndices(t)

	// 192.168.5.10 exists in the IP table, but with a /24 prefix the token
	// is a subnet and only subnet tables are probed.
	a, unmatched := enrich.EnrichTokens([]string{"192.168.5.10/24"}, ix, ni)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 1, unmatched)
}

func TestEnrichTokens_SkipsAndMisses(t *testing.T) {
	ix, ni := testIndices(t)

	tests := []struct {
		name      string
		tokens    []string
		wantLen   int
		unmatched int
	}{
		{"UnparseableSkippedSilently", []string{"not-an-ip", ""}, 0, 0},
		{"ValidButAbsent", []string{"10.9.9.9"}, 0, 1},
		{"AbsentSubnet", []string{"172.16.0.0/12"}, 0, 1},
		{"MixedList", []string{"10.1.1.1", "garbage", "10.9.9.9", "10.2.0.0/16"}, 2, 1},
		{"EmptyList", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, unmatched := enrich.EnrichTokens(tt.tokens, ix, ni)
			assert.Equal(t, tt.wantLen, a.Len())
			assert.Equal(t, tt.unmatched, unmatched)
		})
	}
}

func TestEnrichTokens_DuplicateTokensDeduped(t *testing.T) {
	ix, ni := testIndices(t)

	a, _ := enrich.EnrichTokens([]string{"10.1.1.1", "10.1.1.1"}, ix, ni)
	assert.Equal(t, 1, a.Len())

	// Differently formatted tokens for the same host stay separate keys.
	a, _ = enrich.EnrichTokens([]string{"10.1.1.1", "10.1.1.1/32"}, ix, ni)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"10.1.1.1", "10.1.1.1/32"}, a.Tokens())
}

func TestAnalysis_Render(t *testing.T) {
	ix, ni := testIndices(t)

	a, _ := enrich.EnrichTokens([]string{"10.1.1.1"}, ix, ni)
	want := "{'10.1.1.1': {'File Name': 'ip-table', 'Environment': 'prod', " +
		"'Function': None, 'Location': None, 'Infra': None, " +
		"'Identifier': 'I100', 'Identifier Name': 'Payments'}}"
	assert.Equal(t, want, a.Render())

	empty, _ := enrich.EnrichTokens(nil, ix, ni)
	assert.Equal(t, "{}", empty.Render())
}
