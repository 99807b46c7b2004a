// Package pylit reads and writes the Python-literal cell format used by the
// rule spreadsheets.
//
// The upstream tooling stores lists and dictionaries in single spreadsheet
// cells as their Python repr() output, e.g. ['10.0.0.1', '10.2.0.0/16'].
// This package parses that representation into plain string slices and
// renders values back so that downstream consumers reading the cells with
// ast.literal_eval keep working unchanged.
//
// Parsing is deliberately permissive in result but strict in signal:
// a malformed cell never raises, it returns ok=false so callers can degrade
// to an empty list while still being able to count the occurrence.
package pylit
