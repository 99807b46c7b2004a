package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding: console for interactive use, json
	// for automation.
	Format string `mapstructure:"format" default:"console"`
}
