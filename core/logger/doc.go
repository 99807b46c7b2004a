// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports console output for
// interactive CLI runs and JSON output for automation.
//
// # Run Correlation
//
// Every CLI invocation gets a run id. The WithRunID helper attaches it to
// the logger so all lines written during one run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (interactive) or json (automation)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Enrichment started")
package logger
