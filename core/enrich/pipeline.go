package enrich

import (
	"fmt"

	"netrule-mapper/core/lookup"
	"netrule-mapper/core/pylit"
	"netrule-mapper/core/tabular"

	"go.uber.org/zap"
)

// AnalysisSuffix is appended to a rule column's name to form its analysis
// column, e.g. "Source IP" -> "Source IP Analysis".
const AnalysisSuffix = " Analysis"

// Config holds the rule dataset settings.
type Config struct {
	// Input is the rule dataset path.
	Input string `mapstructure:"input" default:"nfast_rules.xlsx"`
	// Output is the enriched output path. Empty derives "<stem>_analyzed<ext>".
	Output string `mapstructure:"output" default:""`
	// SourceColumn is the rule column holding the source entry list.
	SourceColumn string `mapstructure:"source_column" default:"Source IP"`
	// DestColumn is the rule column holding the destination entry list.
	DestColumn string `mapstructure:"dest_column" default:"Destination IP"`
	// NoBackup disables the pre-run backup copy of the input file.
	NoBackup bool `mapstructure:"no_backup" default:"false"`
}

// Spec bundles everything one enrichment run needs.
type Spec struct {
	// DatasetPath names the rule dataset in error messages.
	DatasetPath string
	// SourceColumn and DestColumn are the two list-valued rule columns.
	SourceColumn string
	DestColumn   string
	// Index is the layered IP/subnet index, built once, read-only.
	Index *lookup.Index
	// Names is the identifier-name index, built once, read-only.
	Names *lookup.NameIndex
}

// Summary is the run result: final counters and the columns added.
type Summary struct {
	Stats      *Stats
	NewColumns []string
}

// Run enriches every row of the rule table in place, appending one analysis
// column per side. Row count and order, and all original columns, are
// preserved. A row whose list cell fails to parse degrades to an empty list
// for that side; only missing rule columns are fatal.
func Run(t *tabular.Table, spec *Spec, log *zap.Logger) (*Summary, error) {
	if err := tabular.RequireColumns(t, spec.DatasetPath, spec.SourceColumn, spec.DestColumn); err != nil {
		return nil, err
	}
	srcIdx, _ := t.ColumnIndex(spec.SourceColumn)
	dstIdx, _ := t.ColumnIndex(spec.DestColumn)

	stats := NewStats()
	srcOut := make([]string, t.NumRows())
	dstOut := make([]string, t.NumRows())

	for r := 0; r < t.NumRows(); r++ {
		stats.Rows++
		srcOut[r] = enrichCell(t.Cell(r, srcIdx), SideSource, spec, stats)
		dstOut[r] = enrichCell(t.Cell(r, dstIdx), SideDestination, spec, stats)

		if (r+1)%5000 == 0 {
			log.Info("rows processed", zap.Int("count", r+1), zap.Int("total", t.NumRows()))
		}
	}

	srcCol := spec.SourceColumn + AnalysisSuffix
	dstCol := spec.DestColumn + AnalysisSuffix
	if err := t.AddColumn(srcCol, srcOut); err != nil {
		return nil, fmt.Errorf("failed to add analysis column: %w", err)
	}
	if err := t.AddColumn(dstCol, dstOut); err != nil {
		return nil, fmt.Errorf("failed to add analysis column: %w", err)
	}

	return &Summary{Stats: stats, NewColumns: []string{srcCol, dstCol}}, nil
}

func enrichCell(cell string, side Side, spec *Spec, stats *Stats) string {
	tokens, ok := pylit.ParseList(cell)
	if !ok {
		// Malformed list cell: treated as empty, not an error.
		stats.Malformed++
		tokens = nil
	}

	analysis, unmatched := EnrichTokens(tokens, spec.Index, spec.Names)
	stats.Record(analysis, side)
	stats.AddUnmatched(side, unmatched)
	return analysis.Render()
}

// LogSummary emits the final run statistics the way the operator reads
// them: totals per side, the ip/subnet split, and per-table match counts.
func LogSummary(log *zap.Logger, s *Summary) {
	log.Info("enrichment summary",
		zap.Int("rows_processed", s.Stats.Rows),
		zap.Int("malformed_list_cells", s.Stats.Malformed),
		zap.Strings("new_columns", s.NewColumns),
	)
	logSide(log, "source", &s.Stats.Source)
	logSide(log, "destination", &s.Stats.Destination)
}

func logSide(log *zap.Logger, side string, ss *SideStats) {
	fields := []zap.Field{
		zap.Int("total_mapped", ss.Mapped),
		zap.Int("ips_found", ss.IPs),
		zap.Int("subnets_found", ss.Subnets),
		zap.Int("unmatched", ss.Unmatched),
	}
	for table, n := range ss.ByTable {
		fields = append(fields, zap.Int("from_"+table, n))
	}
	log.Info(side+" analysis", fields...)
}
