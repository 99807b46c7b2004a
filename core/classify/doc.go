// Package classify decides whether a raw rule token is a bare IP address,
// a host route (/32 or /128), a genuine subnet, or unparseable noise.
//
// The classification drives which lookup table a token is resolved against:
// single IPs and host routes go to the IP table, subnets go to the ordered
// subnet tables, and unparseable tokens are skipped silently.
package classify
