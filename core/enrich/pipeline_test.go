package enrich_test

import (
	"testing"

	"netrule-mapper/core/enrich"
	"netrule-mapper/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rulesTable() *tabular.Table {
	return &tabular.Table{
		Columns: []string{"Rule", "Source IP", "Destination IP"},
		Rows: [][]string{
			{"r1", "['10.1.1.1']", "['10.2.0.0/16']"},
			{"r2", "['10.1.1.1/32', '10.9.9.9']", "[]"},
			{"r3", "not a list at all", "['garbage']"},
		},
	}
}

func testSpec(t *testing.T) *enrich.Spec {
	t.Helper()
	ix, ni := testIndices(t)
	return &enrich.Spec{
		DatasetPath:  "rules.csv",
		SourceColumn: "Source IP",
		DestColumn:   "Destination IP",
		Index:        ix,
		Names:        ni,
	}
}

func TestRun(t *testing.T) {
	tbl := rulesTable()
	summary, err := enrich.Run(tbl, testSpec(t), zap.NewNop())
	require.NoError(t, err)

	// Row count preserved; column set extended by exactly the two analysis columns.
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"Rule", "Source IP", "Destination IP", "Source IP Analysis", "Destination IP Analysis"}, tbl.Columns)
	assert.Equal(t, []string{"Source IP Analysis", "Destination IP Analysis"}, summary.NewColumns)

	srcIdx, _ := tbl.ColumnIndex("Source IP Analysis")
	dstIdx, _ := tbl.ColumnIndex("Destination IP Analysis")

	// r1: both sides resolve.
	assert.Contains(t, tbl.Cell(0, srcIdx), "'10.1.1.1'")
	assert.Contains(t, tbl.Cell(0, dstIdx), "'File Name': 't2'")

	// r2: host route resolves, absent IP omitted; empty destination list.
	assert.Contains(t, tbl.Cell(1, srcIdx), "'10.1.1.1/32'")
	assert.NotContains(t, tbl.Cell(1, srcIdx), "10.9.9.9")
	assert.Equal(t, "{}", tbl.Cell(1, dstIdx))

	// r3: malformed source cell degrades to empty; unparseable token skipped.
	assert.Equal(t, "{}", tbl.Cell(2, srcIdx))
	assert.Equal(t, "{}", tbl.Cell(2, dstIdx))

	// Original cells untouched.
	assert.Equal(t, "['10.1.1.1']", tbl.Cell(0, 1))
	assert.Equal(t, "not a list at all", tbl.Cell(2, 1))
}

func TestRun_Stats(t *testing.T) {
	tbl := rulesTable()
	summary, err := enrich.Run(tbl, testSpec(t), zap.NewNop())
	require.NoError(t, err)

	s := summary.Stats
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 1, s.Malformed)

	// Source: 10.1.1.1 (r1) and 10.1.1.1/32 (r2) mapped, both count as IPs;
	// 10.9.9.9 is valid but absent from every table.
	assert.Equal(t, 2, s.Source.Mapped)
	assert.Equal(t, 2, s.Source.IPs)
	assert.Equal(t, 0, s.Source.Subnets)
	assert.Equal(t, 1, s.Source.Unmatched)
	assert.Equal(t, 2, s.Source.ByTable["ip-table"])

	// Destination: one real subnet from t2.
	assert.Equal(t, 1, s.Destination.Mapped)
	assert.Equal(t, 0, s.Destination.IPs)
	assert.Equal(t, 1, s.Destination.Subnets)
	assert.Equal(t, 0, s.Destination.Unmatched)
	assert.Equal(t, 1, s.Destination.ByTable["t2"])
}

func TestRun_MissingRuleColumn(t *testing.T) {
	tbl := &tabular.Table{Columns: []string{"Rule"}, Rows: [][]string{}}

	_, err := enrich.Run(tbl, testSpec(t), zap.NewNop())
	require.Error(t, err)

	var missing *tabular.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "rules.csv", missing.Path)
	assert.Equal(t, "Source IP", missing.Column)
}

func TestRun_Idempotent(t *testing.T) {
	first := rulesTable()
	_, err := enrich.Run(first, testSpec(t), zap.NewNop())
	require.NoError(t, err)

	second := rulesTable()
	_, err = enrich.Run(second, testSpec(t), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
