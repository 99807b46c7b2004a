// Package enrich is the reconciliation pipeline: it resolves each IP/subnet
// token in a rule dataset's source and destination lists against the layered
// lookup indices and appends one analysis column per side.
//
// The pipeline is a single linear pass: parse a row's list cells, classify
// and resolve each token, assemble the per-token metadata record, and tally
// run statistics. Unparseable and unresolved tokens are skipped silently and
// show up only in the aggregate counters. Indices are immutable during the
// run, so rows could be processed in any order; output order matches input
// order regardless.
package enrich
