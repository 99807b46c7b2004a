// Package clean prepares raw rule exports for enrichment: IP-looking
// entries buried in the source/destination group columns are merged into
// the IP list columns, and dash-form ranges the pipeline cannot resolve
// are dropped.
package clean
