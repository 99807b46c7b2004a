package lookup_test

import (
	"testing"

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

func TestNewRefTable(t *testing.T) {
	rt := refTable(t, "ip.xlsx", "ip", [][]string{
		{" 10.1.1.1 ", " prod ", "web", "dc1", "vm", "I100"},
		{"10.1.1.2", "", "", "", "", ""},
	})

	assert.Equal(t, 2, rt.Len())

	attrs, ok := rt.Get("10.1.1.1")
	require.True(t, ok)
	assert.Equal(t, lookup.Attributes{
		Table:       "ip.xlsx",
		Environment: "prod",
		Function:    "web",
		Location:    "dc1",
		Infra:       "vm",
		Identifier:  "I100",
	}, attrs)

	// Blank attribute cells stay empty.
	attrs, ok = rt.Get("10.1.1.2")
	require.True(t, ok)
	assert.Equal(t, lookup.Attributes{Table: "ip.xlsx"}, attrs)
}

func TestNewRefTable_DuplicateKeysLastWriteWins(t *testing.T) {
	rt := refTable(t, "ip.xlsx", "ip", [][]string{
		{"10.1.1.1", "dev", "", "", "", ""},
		{"10.1.1.1", "prod", "", "", "", ""},
	})

	assert.Equal(t, 1, rt.Len())
	attrs, ok := rt.Get("10.1.1.1")
	require.True(t, ok)
	assert.Equal(t, "prod", attrs.Environment)
}

func TestNewRefTable_MissingColumn(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"ip", "environment"},
		Rows:    [][]string{},
	}

	_, err := lookup.NewRefTable(tbl, "ip.xlsx", "ip.xlsx", "ip")
	require.Error(t, err)

	var missing *tabular.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "function", missing.Column)
}

func TestIndex_LookupIP(t *testing.T) {
	ips := refTable(t, "ip.xlsx", "ip", [][]string{
		{"10.1.1.1", "prod", "", "", "", "I100"},
	})
	ix := lookup.NewIndex(ips, nil)

	tests := []struct {
		name  string
		token string
		found bool
	}{
		{"Bare", "10.1.1.1", true},
		{"HostRoute", "10.1.1.1/32", true},
		{"Whitespace", "  10.1.1.1  ", true},
		{"Absent", "10.9.9.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs, ok := ix.LookupIP(tt.token)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "ip.xlsx", attrs.Table)
				assert.Equal(t, "prod", attrs.Environment)
			}
		})
	}
}

func TestIndex_LookupSubnet_PriorityOrder(t *testing.T) {
	t1 := refTable(t, "ipam_subnet.xlsx", "subnet", [][]string{
		{"10.0.0.0/24", "prod", "", "", "", ""},
	})
	t2 := refTable(t, "dev_subnet.xlsx", "subnet", [][]string{
		{"10.0.0.0/24", "dev", "", "", "", ""},
		{"10.2.0.0/16", "dev", "", "", "", ""},
	})
	t3 := refTable(t, "staging_subnet.xlsx", "subnet", [][]string{
		{"10.2.0.0/16", "staging", "", "", "", ""},
	})
	ix := lookup.NewIndex(nil, []*lookup.RefTable{t1, t2, t3})

	// Key in both T1 and T2 resolves to T1.
	attrs, ok := ix.LookupSubnet("10.0.0.0/24")
	require.True(t, ok)
	assert.Equal(t, "ipam_subnet.xlsx", attrs.Table)
	assert.Equal(t, "prod", attrs.Environment)

	// Key absent from T1 but in T2 and T3 resolves to T2.
	attrs, ok = ix.LookupSubnet("10.2.0.0/16")
	require.True(t, ok)
	assert.Equal(t, "dev_subnet.xlsx", attrs.Table)
	assert.Equal(t, "dev", attrs.Environment)

	// No containment: a sub-range of a table entry does not match.
	_, ok = ix.LookupSubnet("10.2.1.0/24")
	assert.False(t, ok)

	assert.Equal(t, []string{"ipam_subnet.xlsx", "dev_subnet.xlsx", "staging_subnet.xlsx"}, ix.SubnetTables())
}

func TestNameIndex(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"identifier", "name"},
		Rows: [][]string{
			{"I100", "Payments"},
			{"I101", ""},
			{"I100", "Payments Core"},
		},
	}
	ni, err := lookup.NewNameIndex(tbl, "itam.xlsx")
	require.NoError(t, err)

	// Blank names skipped, duplicates last-write-wins.
	assert.Equal(t, 1, ni.Len())

	name, ok := ni.Lookup("I100")
	require.True(t, ok)
	assert.Equal(t, "Payments Core", name)

	_, ok = ni.Lookup("I999")
	assert.False(t, ok)
}

func TestNameIndex_MissingColumn(t *testing.T) {
	tbl := &tabular.Table{Columns: []string{"identifier"}, Rows: [][]string{}}

	_, err := lookup.NewNameIndex(tbl, "itam.xlsx")
	var missing *tabular.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Column)
}
