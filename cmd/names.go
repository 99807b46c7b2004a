package cmd

import (
	"fmt"
	"strings"

	"netrule-mapper/core/config"
	"netrule-mapper/core/logger"
	"netrule-mapper/core/lookup"
	"netrule-mapper/core/tabular"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the names command
	namesInput       string
	namesOutput      string
	namesIDNameTable string
	namesIDColumn    string
	namesNoBackup    bool
)

// namesCmd joins display names onto a table's identifier column.
var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Join identifier display names onto a table",
	Long: `Add an "identifier name" column to any table carrying an identifier
column, resolved through the identifier-name reference table. Identifiers
with no mapping, and blank identifiers, yield empty cells.

Example:
  netrule-mapper names --input assets.xlsx --id-name-table itam.xlsx`,
	RunE: runNames,
}

func init() {
	f := namesCmd.Flags()
	f.StringVar(&namesInput, "input", "", "Input file with an identifier column (.csv or .xlsx)")
	f.StringVar(&namesOutput, "output", "", "Output file (default: <input>_with_names)")
	f.StringVar(&namesIDNameTable, "id-name-table", "", "Identifier to display-name reference table")
	f.StringVar(&namesIDColumn, "id-column", lookup.ColIdentifier, "Name of the identifier column in the input")
	f.BoolVar(&namesNoBackup, "no-backup", false, "Skip the timestamped backup copy of the input file")

	RootCmd.AddCommand(namesCmd)
}

func runNames(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, logger.NewRunID())

	if namesInput == "" {
		return fmt.Errorf("--input is required")
	}
	input := namesInput
	output := namesOutput
	if output == "" {
		output = derivedOutput(input, "_with_names")
	}
	idNameTable := cfg.Tables.IDNameTable
	if cmd.Flags().Changed("id-name-table") {
		idNameTable = namesIDNameTable
	}
	noBackup := cfg.Dataset.NoBackup || namesNoBackup

	if err := checkFilesExist([]string{input, idNameTable}); err != nil {
		return err
	}

	l.Info("Starting name join",
		zap.String("input", input),
		zap.String("output", output),
		zap.String("id_name_table", idNameTable),
	)

	tbl, err := tabular.Read(input)
	if err != nil {
		return err
	}

	nameTbl, err := tabular.Read(idNameTable)
	if err != nil {
		return err
	}
	names, err := lookup.NewNameIndex(nameTbl, idNameTable)
	if err != nil {
		return err
	}
	l.Info("Name index built", zap.Int("entries", names.Len()))

	if err := tabular.RequireColumns(tbl, input, namesIDColumn); err != nil {
		return err
	}
	idIdx, _ := tbl.ColumnIndex(namesIDColumn)

	backupInput(l, input, noBackup)

	var matched, unmatched, empty int
	values := make([]string, tbl.NumRows())
	for r := 0; r < tbl.NumRows(); r++ {
		id := strings.TrimSpace(tbl.Cell(r, idIdx))
		if id == "" {
			empty++
			continue
		}
		if name, ok := names.Lookup(id); ok {
			values[r] = name
			matched++
		} else {
			unmatched++
		}
	}

	if err := tbl.AddColumn(namesIDColumn+" name", values); err != nil {
		return err
	}

	if err := tabular.Write(output, tbl); err != nil {
		return err
	}

	l.Info("Name join summary",
		zap.Int("rows_processed", tbl.NumRows()),
		zap.Int("matched", matched),
		zap.Int("unmatched", unmatched),
		zap.Int("empty_identifiers", empty),
		zap.String("new_column", namesIDColumn+" name"),
	)
	l.Info("Name join completed", zap.String("output", output))
	return nil
}
