package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"netrule-mapper/core/logger"
	"netrule-mapper/core/tabular"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "netrule-mapper",
	Short: "Firewall rule IP/subnet metadata mapper",
	Long: `netrule-mapper reconciles the IP addresses and subnets referenced by
firewall rule exports against layered reference tables (single-IP table,
prioritized subnet tables, identifier-name table) and attaches structured
metadata back onto each rule.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			// Log the error with structured logger (Console encoding will make it pretty)
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// checkFilesExist verifies every path exists, reporting all missing files
// and the working directory in one error so the operator can fix them in
// a single pass.
func checkFilesExist(paths []string) error {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	cwd, _ := os.Getwd()
	return fmt.Errorf("input file(s) not found: %s (current directory: %s)",
		strings.Join(missing, ", "), cwd)
}

// derivedOutput builds the default output path from the input path, e.g.
// rules.xlsx + "_analyzed" -> rules_analyzed.xlsx.
func derivedOutput(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// backupInput makes the pre-run backup unless disabled. Failure is a
// warning, never fatal.
func backupInput(l *zap.Logger, path string, disabled bool) {
	if disabled {
		return
	}
	backupPath, err := tabular.Backup(path)
	if err != nil {
		l.Warn("could not create backup, continuing without one", zap.Error(err))
		return
	}
	l.Info("backup created", zap.String("path", backupPath))
}
