// Package tabular reads and writes the tabular datasets the pipeline
// consumes: rule exports and reference tables stored as CSV or XLSX files.
//
// The model is intentionally simple: a Table is a header plus string rows,
// loaded fully into memory before any processing starts. The package also
// creates the timestamped pre-mutation backup copies of input files and
// defines MissingColumnError, the operator-facing schema failure that names
// the file and every column actually present.
package tabular
