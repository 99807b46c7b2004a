package cmd

import (
	"fmt"
	"path/filepath"

	"netrule-mapper/core/config"
	"netrule-mapper/core/enrich"
	"netrule-mapper/core/logger"
	"netrule-mapper/core/lookup"
	"netrule-mapper/core/tabular"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the enrich command
	enrichInput        string
	enrichOutput       string
	enrichIPTable      string
	enrichSubnetTables []string
	enrichIDNameTable  string
	enrichManifest     string
	enrichSourceCol    string
	enrichDestCol      string
	enrichNoBackup     bool
)

// enrichCmd runs the IP/subnet metadata enrichment pipeline.
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich rule IP/subnet lists with reference table metadata",
	Long: `Enrich a firewall rule export: resolve every IP and subnet in the
source and destination lists against the reference tables and append one
analysis column per side.

Single IPs and host routes (/32, /128) resolve against the IP table;
subnets probe the subnet tables in the order given, first match wins;
identifiers found in a match are resolved to display names as a second
stage. Lookups are exact-string matches, not CIDR containment.

Examples:
  # Defaults from config/env (ip.xlsx, ipam/dev/staging subnet tables)
  netrule-mapper enrich --input nfast_rules.xlsx

  # Explicit tables, priority order = flag order
  netrule-mapper enrich --input rules.csv \
    --ip-table hosts.csv \
    --subnet-table ipam.csv --subnet-table dev.csv --subnet-table staging.csv \
    --id-name-table itam.csv

  # Table set from a manifest file
  netrule-mapper enrich --input rules.csv --manifest tables.yaml --no-backup`,
	RunE: runEnrich,
}

func init() {
	f := enrichCmd.Flags()
	f.StringVar(&enrichInput, "input", "", "Rule dataset file (.csv or .xlsx)")
	f.StringVar(&enrichOutput, "output", "", "Output file (default: <input>_analyzed)")
	f.StringVar(&enrichIPTable, "ip-table", "", "Single-IP reference table")
	f.StringArrayVar(&enrichSubnetTables, "subnet-table", nil, "Subnet reference table (repeatable, priority order)")
	f.StringVar(&enrichIDNameTable, "id-name-table", "", "Identifier to display-name reference table")
	f.StringVar(&enrichManifest, "manifest", "", "YAML manifest declaring the reference table set")
	f.StringVar(&enrichSourceCol, "source-column", "", "Rule column holding the source entry list")
	f.StringVar(&enrichDestCol, "dest-column", "", "Rule column holding the destination entry list")
	f.BoolVar(&enrichNoBackup, "no-backup", false, "Skip the timestamped backup copy of the input file")

	RootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, logger.NewRunID())

	// Resolve the table set: config defaults, then manifest, then flags.
	ipTable := cfg.Tables.IPTable
	subnetTables := cfg.Tables.SubnetTableList()
	idNameTable := cfg.Tables.IDNameTable

	manifestPath := cfg.Tables.Manifest
	if cmd.Flags().Changed("manifest") {
		manifestPath = enrichManifest
	}
	if manifestPath != "" {
		m, err := lookup.LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		if m.IPTable != "" {
			ipTable = m.IPTable
		}
		if len(m.SubnetTables) > 0 {
			subnetTables = m.SubnetTables
		}
		if m.IDNameTable != "" {
			idNameTable = m.IDNameTable
		}
	}
	if cmd.Flags().Changed("ip-table") {
		ipTable = enrichIPTable
	}
	if cmd.Flags().Changed("subnet-table") {
		subnetTables = enrichSubnetTables
	}
	if cmd.Flags().Changed("id-name-table") {
		idNameTable = enrichIDNameTable
	}

	input := cfg.Dataset.Input
	if cmd.Flags().Changed("input") {
		input = enrichInput
	}
	output := cfg.Dataset.Output
	if cmd.Flags().Changed("output") {
		output = enrichOutput
	}
	if output == "" {
		output = derivedOutput(input, "_analyzed")
	}
	sourceCol := cfg.Dataset.SourceColumn
	if cmd.Flags().Changed("source-column") {
		sourceCol = enrichSourceCol
	}
	destCol := cfg.Dataset.DestColumn
	if cmd.Flags().Changed("dest-column") {
		destCol = enrichDestCol
	}
	noBackup := cfg.Dataset.NoBackup || enrichNoBackup

	if len(subnetTables) == 0 {
		return fmt.Errorf("no subnet tables configured")
	}

	// Fatal checks happen before the output file is touched: existence of
	// every input, then schema of every table.
	inputs := append([]string{input, ipTable, idNameTable}, subnetTables...)
	if err := checkFilesExist(inputs); err != nil {
		return err
	}

	l.Info("Starting enrichment",
		zap.String("input", input),
		zap.String("output", output),
		zap.String("ip_table", ipTable),
		zap.Strings("subnet_tables", subnetTables),
		zap.String("id_name_table", idNameTable),
	)

	rules, err := tabular.Read(input)
	if err != nil {
		return err
	}
	l.Info("Rule dataset loaded", zap.Int("rows", rules.NumRows()))

	index, names, err := buildIndices(l, ipTable, subnetTables, idNameTable)
	if err != nil {
		return err
	}

	if err := tabular.RequireColumns(rules, input, sourceCol, destCol); err != nil {
		return err
	}

	// Input validated; the input file itself is never mutated, the backup
	// is a recovery convenience and its failure only warns.
	backupInput(l, input, noBackup)

	spec := &enrich.Spec{
		DatasetPath:  input,
		SourceColumn: sourceCol,
		DestColumn:   destCol,
		Index:        index,
		Names:        names,
	}
	summary, err := enrich.Run(rules, spec, l)
	if err != nil {
		return err
	}

	if err := tabular.Write(output, rules); err != nil {
		return err
	}

	enrich.LogSummary(l, summary)
	l.Info("Enrichment completed", zap.String("output", output))
	return nil
}

// buildIndices loads and indexes all reference tables.
func buildIndices(l *zap.Logger, ipTable string, subnetTables []string, idNameTable string) (*lookup.Index, *lookup.NameIndex, error) {
	ipTbl, err := tabular.Read(ipTable)
	if err != nil {
		return nil, nil, err
	}
	ips, err := lookup.NewRefTable(ipTbl, ipTable, filepath.Base(ipTable), lookup.ColIP)
	if err != nil {
		return nil, nil, err
	}
	l.Info("IP index built", zap.String("table", ips.Name()), zap.Int("entries", ips.Len()))

	subnets := make([]*lookup.RefTable, 0, len(subnetTables))
	for _, path := range subnetTables {
		tbl, err := tabular.Read(path)
		if err != nil {
			return nil, nil, err
		}
		rt, err := lookup.NewRefTable(tbl, path, filepath.Base(path), lookup.ColSubnet)
		if err != nil {
			return nil, nil, err
		}
		l.Info("Subnet index built", zap.String("table", rt.Name()), zap.Int("entries", rt.Len()))
		subnets = append(subnets, rt)
	}

	nameTbl, err := tabular.Read(idNameTable)
	if err != nil {
		return nil, nil, err
	}
	names, err := lookup.NewNameIndex(nameTbl, idNameTable)
	if err != nil {
		return nil, nil, err
	}
	l.Info("Name index built", zap.Int("entries", names.Len()))

	return lookup.NewIndex(ips, subnets), names, nil
}
