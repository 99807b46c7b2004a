// Package lookup builds and probes the layered reference indices that back
// the enrichment pipeline.
//
// An Index holds one single-IP table and an ordered list of subnet tables.
// Tokens classified as single IPs or host routes resolve against the IP
// table (with the /32 or /128 suffix stripped); subnet tokens probe each
// subnet table in declared priority order and the first hit wins. A separate
// NameIndex resolves identifiers to display names as a second stage.
//
// All lookups are exact-string matches on trimmed keys; there is no subnet
// containment logic. Indices are built once per run from tabular files or a
// YAML manifest and are immutable afterwards.
package lookup
