package cmd

import (
	"fmt"

	"netrule-mapper/core/clean"
	"netrule-mapper/core/config"
	"netrule-mapper/core/logger"
	"netrule-mapper/core/tabular"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the clean command
	cleanInput           string
	cleanOutput          string
	cleanSourceCol       string
	cleanDestCol         string
	cleanSourceGroupsCol string
	cleanDestGroupsCol   string
	cleanNoBackup        bool
)

// cleanCmd prepares a raw rule export for enrichment.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Merge group-column IP entries into the IP columns and drop ranges",
	Long: `Prepare a raw rule export: IP addresses and subnets buried in the
source/destination group columns are appended to the IP list columns, and
dash-form ranges (e.g. 0.0.0.0-9.255.255.255) are dropped since the
enrichment pipeline cannot resolve them.

Example:
  netrule-mapper clean --input nfast_rules.xlsx --output nfast_rules_cleaned.xlsx`,
	RunE: runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.StringVar(&cleanInput, "input", "", "Rule dataset file (.csv or .xlsx)")
	f.StringVar(&cleanOutput, "output", "", "Output file (default: <input>_cleaned)")
	f.StringVar(&cleanSourceCol, "source-column", "", "Rule column holding the source entry list")
	f.StringVar(&cleanDestCol, "dest-column", "", "Rule column holding the destination entry list")
	f.StringVar(&cleanSourceGroupsCol, "source-groups-column", "Source Groups", "Rule column holding the source groups list")
	f.StringVar(&cleanDestGroupsCol, "dest-groups-column", "Destination Groups", "Rule column holding the destination groups list")
	f.BoolVar(&cleanNoBackup, "no-backup", false, "Skip the timestamped backup copy of the input file")

	RootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, logger.NewRunID())

	input := cfg.Dataset.Input
	if cmd.Flags().Changed("input") {
		input = cleanInput
	}
	output := cleanOutput
	if output == "" {
		output = derivedOutput(input, "_cleaned")
	}
	sourceCol := cfg.Dataset.SourceColumn
	if cmd.Flags().Changed("source-column") {
		sourceCol = cleanSourceCol
	}
	destCol := cfg.Dataset.DestColumn
	if cmd.Flags().Changed("dest-column") {
		destCol = cleanDestCol
	}
	noBackup := cfg.Dataset.NoBackup || cleanNoBackup

	if err := checkFilesExist([]string{input}); err != nil {
		return err
	}

	l.Info("Starting cleanup",
		zap.String("input", input),
		zap.String("output", output),
	)

	rules, err := tabular.Read(input)
	if err != nil {
		return err
	}
	l.Info("Rule dataset loaded", zap.Int("rows", rules.NumRows()))

	backupInput(l, input, noBackup)

	srcRes, err := clean.MergeGroups(rules, input, cleanSourceGroupsCol, sourceCol)
	if err != nil {
		return err
	}
	dstRes, err := clean.MergeGroups(rules, input, cleanDestGroupsCol, destCol)
	if err != nil {
		return err
	}

	if err := tabular.Write(output, rules); err != nil {
		return err
	}

	l.Info("Cleanup summary",
		zap.Int("rows_processed", rules.NumRows()),
		zap.Int("source_entries_moved", srcRes.Moved),
		zap.Int("source_ranges_dropped", srcRes.Dropped),
		zap.Int("dest_entries_moved", dstRes.Moved),
		zap.Int("dest_ranges_dropped", dstRes.Dropped),
		zap.Int("malformed_cells", srcRes.Malformed+dstRes.Malformed),
	)
	l.Info("Cleanup completed", zap.String("output", output))
	return nil
}
