package lookup

import (
	"strings"

	"netrule-mapper/core/classify"
	"netrule-mapper/core/tabular"
)

// Reference table column names.
const (
	ColIP          = "ip"
	ColSubnet      = "subnet"
	ColEnvironment = "environment"
	ColFunction    = "function"
	ColLocation    = "location"
	ColInfra       = "infra"
	ColIdentifier  = "identifier"
	ColName        = "name"
)

// Attributes is the metadata carried by one reference entry. Empty strings
// mean the source cell was blank; Table names the file the entry came from.
type Attributes struct {
	Table       string
	Environment string
	Function    string
	Location    string
	Infra       string
	Identifier  string
}

// RefTable is one loaded reference table: trimmed exact-string keys to
// attributes. Duplicate keys resolve last-write-wins.
type RefTable struct {
	name    string
	entries map[string]Attributes
}

// NewRefTable builds a reference table from tabular data. The keyColumn is
// "ip" for the single-IP table and "subnet" for subnet tables; name is the
// table's display name reported in analysis output (typically the base file
// name). All attribute columns must be present.
func NewRefTable(t *tabular.Table, path, name, keyColumn string) (*RefTable, error) {
	required := []string{keyColumn, ColEnvironment, ColFunction, ColLocation, ColInfra, ColIdentifier}
	if err := tabular.RequireColumns(t, path, required...); err != nil {
		return nil, err
	}

	keyIdx, _ := t.ColumnIndex(keyColumn)
	envIdx, _ := t.ColumnIndex(ColEnvironment)
	funcIdx, _ := t.ColumnIndex(ColFunction)
	locIdx, _ := t.ColumnIndex(ColLocation)
	infraIdx, _ := t.ColumnIndex(ColInfra)
	idIdx, _ := t.ColumnIndex(ColIdentifier)

	entries := make(map[string]Attributes, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		key := strings.TrimSpace(t.Cell(r, keyIdx))
		if key == "" {
			continue
		}
		entries[key] = Attributes{
			Table:       name,
			Environment: strings.TrimSpace(t.Cell(r, envIdx)),
			Function:    strings.TrimSpace(t.Cell(r, funcIdx)),
			Location:    strings.TrimSpace(t.Cell(r, locIdx)),
			Infra:       strings.TrimSpace(t.Cell(r, infraIdx)),
			Identifier:  strings.TrimSpace(t.Cell(r, idIdx)),
		}
	}

	return &RefTable{name: name, entries: entries}, nil
}

// Name returns the table's display name.
func (rt *RefTable) Name() string {
	return rt.name
}

// Len returns the number of entries.
func (rt *RefTable) Len() int {
	return len(rt.entries)
}

// Get returns the attributes for a trimmed exact-string key.
func (rt *RefTable) Get(key string) (Attributes, bool) {
	attrs, ok := rt.entries[strings.TrimSpace(key)]
	return attrs, ok
}

// Index is the layered lookup structure: one single-IP table plus subnet
// tables in descending priority order. It is built once per run and is
// read-only afterwards, so it is safe to share across concurrent readers.
//
// Lookups are exact-string matches on trimmed keys. There is no CIDR
// containment: a /24 token that falls inside a table's /16 entry will not
// match. This mirrors the behavior of the source datasets and is a known
// limitation, not a bug.
type Index struct {
	ips     *RefTable
	subnets []*RefTable
}

// NewIndex builds an Index from the single-IP table and the subnet tables
// in priority order (first is probed first).
func NewIndex(ips *RefTable, subnets []*RefTable) *Index {
	return &Index{ips: ips, subnets: subnets}
}

// LookupIP resolves a bare address or host-route token against the IP
// table. Any "/32" or "/128" suffix is stripped before the probe.
func (ix *Index) LookupIP(token string) (Attributes, bool) {
	return ix.ips.Get(classify.HostPart(token))
}

// LookupSubnet resolves a subnet token against each subnet table in
// priority order, returning the first hit. The returned attributes carry
// the matching table's name.
func (ix *Index) LookupSubnet(token string) (Attributes, bool) {
	key := strings.TrimSpace(token)
	for _, rt := range ix.subnets {
		if attrs, ok := rt.Get(key); ok {
			return attrs, true
		}
	}
	return Attributes{}, false
}

// SubnetTables returns the subnet table names in priority order.
func (ix *Index) SubnetTables() []string {
	names := make([]string, len(ix.subnets))
	for i, rt := range ix.subnets {
		names[i] = rt.name
	}
	return names
}

// NameIndex maps opaque identifiers to display names. It is the second
// lookup stage, applied only when a primary lookup yields an identifier.
type NameIndex struct {
	names map[string]string
}

// NewNameIndex builds a NameIndex from a table with identifier and name
// columns. Rows with a blank name are skipped; duplicates last-write-wins.
func NewNameIndex(t *tabular.Table, path string) (*NameIndex, error) {
	if err := tabular.RequireColumns(t, path, ColIdentifier, ColName); err != nil {
		return nil, err
	}

	idIdx, _ := t.ColumnIndex(ColIdentifier)
	nameIdx, _ := t.ColumnIndex(ColName)

	names := make(map[string]string, t.NumRows())
	for r := 0; r < t.NumRows(); r++ {
		id := strings.TrimSpace(t.Cell(r, idIdx))
		name := strings.TrimSpace(t.Cell(r, nameIdx))
		if id == "" || name == "" {
			continue
		}
		names[id] = name
	}

	return &NameIndex{names: names}, nil
}

// Len returns the number of identifier mappings.
func (n *NameIndex) Len() int {
	return len(n.names)
}

// Lookup returns the display name for an identifier.
func (n *NameIndex) Lookup(id string) (string, bool) {
	name, ok := n.names[strings.TrimSpace(id)]
	return name, ok
}
