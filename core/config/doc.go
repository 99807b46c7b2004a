// Package config provides configuration management for netrule-mapper.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Log: logging level and format
//   - Tables: the default reference table set (IP table, ordered subnet
//     tables, identifier-name table, optional YAML manifest)
//   - Dataset: the default rule dataset paths and column names
//
// Command-line flags, when set, take precedence over all of these.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Tables.IPTable)
package config
