package classify

import (
	"net/netip"
	"strings"
)

// Kind is the classification of a raw IP/subnet token.
type Kind int

const (
	// Unparseable marks tokens that are neither a valid address nor a
	// valid CIDR network, including empty strings.
	Unparseable Kind = iota
	// SingleIP is a bare address with no prefix, e.g. "10.0.0.5".
	SingleIP
	// HostRoute is a CIDR with a full-length prefix (/32 IPv4, /128 IPv6),
	// semantically a single host. Resolved against the IP table.
	HostRoute
	// Subnet is a CIDR with a non-host prefix. Resolved against the
	// subnet tables.
	Subnet
)

// String returns the kind name for logs and tests.
func (k Kind) String() string {
	switch k {
	case SingleIP:
		return "single-ip"
	case HostRoute:
		return "host-route"
	case Subnet:
		return "subnet"
	default:
		return "unparseable"
	}
}

// Classify decides what a raw token is. It trims surrounding whitespace
// first and never panics on malformed input.
func Classify(raw string) Kind {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unparseable
	}

	if !strings.Contains(s, "/") {
		if _, err := netip.ParseAddr(s); err != nil {
			return Unparseable
		}
		return SingleIP
	}

	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return Unparseable
	}
	if prefix.Bits() == prefix.Addr().BitLen() {
		return HostRoute
	}
	return Subnet
}

// HostPart strips the prefix suffix from a token, turning "10.0.0.5/32"
// into "10.0.0.5". Bare addresses pass through unchanged.
func HostPart(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
