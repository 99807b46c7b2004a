package lookup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest declares the reference table set for a run in one document:
// the single-IP table, the subnet tables in descending priority order,
// and the identifier-name table.
type Manifest struct {
	IPTable      string   `yaml:"ip_table"`
	SubnetTables []string `yaml:"subnet_tables"`
	IDNameTable  string   `yaml:"id_name_table"`
}

// LoadManifest reads a manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return &m, nil
}

// Config holds the default reference table set, overridable by a manifest
// file or command-line flags.
type Config struct {
	// IPTable is the single-IP reference table path.
	IPTable string `mapstructure:"ip_table" default:"ip.xlsx"`
	// SubnetTables is a comma-separated, priority-ordered list of subnet
	// reference table paths.
	SubnetTables string `mapstructure:"subnet_tables" default:"ipam_subnet.xlsx,dev_subnet.xlsx,staging_subnet.xlsx"`
	// IDNameTable is the identifier to display-name table path.
	IDNameTable string `mapstructure:"id_name_table" default:"itam.xlsx"`
	// Manifest, when set, points to a YAML file declaring the table set.
	Manifest string `mapstructure:"manifest" default:""`
}

// SubnetTableList splits the comma-separated subnet table setting,
// preserving order and dropping empty segments.
func (c Config) SubnetTableList() []string {
	var out []string
	for _, p := range strings.Split(c.SubnetTables, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
