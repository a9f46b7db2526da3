package endpoint

import (
	"net/netip"
	"net/url"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// Address schemes that unambiguously mark an encrypted transport.
const (
	SchemeHTTPS = "https"
	SchemeTLS   = "tls"
	SchemeQUIC  = "quic"
	SchemeSDNS  = "sdns"
)

var schemes = []string{SchemeHTTPS, SchemeTLS, SchemeQUIC, SchemeSDNS}

// Scheme splits a known transport scheme off address. The returned scheme
// is lowercased and rest is everything after "://". It returns ok=false
// when address does not begin with one of the known schemes.
func Scheme(address string) (scheme, rest string, ok bool) {
	i := strings.Index(address, "://")
	if i <= 0 {
		return "", "", false
	}

	s := strings.ToLower(address[:i])
	for _, known := range schemes {
		if s == known {
			return s, address[i+len("://"):], true
		}
	}

	return "", "", false
}

// Valid reports whether candidate is a plausible resolver endpoint: a URL
// with a known transport scheme, an IPv4 or IPv6 literal, or a hostname,
// optionally followed by a numeric port.
//
// The IPv6 unspecified address "::" is not a concrete endpoint and is
// rejected in every spelling.
func Valid(candidate string) bool {
	if candidate == "" {
		return false
	}

	if _, rest, ok := Scheme(candidate); ok {
		return rest != ""
	}

	host, port, bracketed, ok := splitHostPort(candidate)
	if !ok {
		return false
	}

	if port != "" && !validPort(port) {
		return false
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.Is6() {
			return !addr.IsUnspecified()
		}
		return !bracketed
	}

	if bracketed {
		return false
	}

	return validHostname(host)
}

// Canonicalize reduces a valid address to its deduplication key, which is
// stable across ports, IPv6 brackets, and the casing of schemes and
// hostnames:
//
//   - https URLs keep scheme, host, path, query and fragment, minus the port,
//     since different DoH paths on one host are different services;
//   - tls URLs reduce to their host (plus any path), so they meet the bare
//     "host:port" spelling of the same endpoint;
//   - quic URLs keep their scheme, host and path, minus the port, so a DoQ
//     service never merges with DoT or plain DNS on the same host;
//   - sdns stamps are their own identity and are returned unchanged;
//   - everything else loses a trailing ":port".
//
// Canonicalize never fails. A URL that does not parse is treated as a bare
// address.
func Canonicalize(address string) string {
	scheme, _, ok := Scheme(address)
	switch {
	case ok && scheme == SchemeSDNS:
		return address
	case ok:
		if key, ok := urlKey(scheme, address); ok {
			return key
		}
	}

	return hostKey(address)
}

func urlKey(scheme, address string) (string, bool) {
	u, err := url.Parse(address)
	if err != nil || u.Hostname() == "" {
		return "", false
	}

	var b strings.Builder

	if scheme == SchemeHTTPS || scheme == SchemeQUIC {
		b.WriteString(scheme)
		b.WriteString("://")
	}

	b.WriteString(canonicalHost(u.Hostname()))

	if path := u.EscapedPath(); path != "/" {
		b.WriteString(path)
	}

	if u.RawQuery != "" || u.ForceQuery {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}

	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.EscapedFragment())
	}

	return b.String(), true
}

func hostKey(address string) string {
	host, port, _, ok := splitHostPort(address)
	if !ok || (port != "" && !allDigits(port)) {
		return address
	}

	return canonicalHost(host)
}

// canonicalHost renders IP literals in their standard short form, with
// IPv6 always bracketed, and lowercases hostnames. Anything else is
// returned as is.
func canonicalHost(host string) string {
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.Is4() {
			return addr.String()
		}
		return "[" + addr.String() + "]"
	}

	if validHostname(host) {
		return strings.ToLower(host)
	}

	return host
}

// Family is the IP address family of an endpoint's host.
type Family string

const (
	FamilyNone Family = ""
	FamilyIPv4 Family = "ipv4"
	FamilyIPv6 Family = "ipv6"
)

// Host returns the host portion of address, without scheme, brackets,
// port or path. DNSCrypt stamps have no readable host and yield "".
func Host(address string) string {
	scheme, rest, ok := Scheme(address)
	if ok {
		if scheme == SchemeSDNS {
			return ""
		}
		if u, err := url.Parse(address); err == nil {
			return u.Hostname()
		}
		address, _, _ = strings.Cut(rest, "/")
	}

	host, _, _, ok := splitHostPort(address)
	if !ok {
		return ""
	}

	return host
}

// AddressFamily classifies the host of address as IPv4, IPv6, or neither
// (hostnames and stamps).
func AddressFamily(address string) Family {
	addr, err := netip.ParseAddr(Host(address))
	switch {
	case err != nil:
		return FamilyNone
	case addr.Is4():
		return FamilyIPv4
	default:
		return FamilyIPv6
	}
}

// splitHostPort splits "host", "host:port", "[v6]" and "[v6]:port". A text
// with more than one colon and no brackets is returned whole as the host,
// so bare IPv6 literals are never cut apart.
func splitHostPort(s string) (host, port string, bracketed, ok bool) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", "", false, false
		}

		host, tail := s[1:end], s[end+1:]
		switch {
		case tail == "":
			return host, "", true, true
		case strings.HasPrefix(tail, ":"):
			// An empty port is reported as an invalid one.
			if tail == ":" {
				return host, ":", true, true
			}
			return host, tail[1:], true, true
		default:
			return "", "", false, false
		}
	}

	if strings.Count(s, ":") == 1 {
		host, port, _ := strings.Cut(s, ":")
		if port == "" {
			port = ":"
		}
		return host, port, false, true
	}

	return s, "", false, true
}

func validPort(port string) bool {
	if !allDigits(port) {
		return false
	}

	_, err := strconv.ParseUint(port, 10, 16)
	return err == nil
}

// validHostname checks hostname syntax: dot-separated labels of letters,
// digits and internal hyphens, where the last label is not all digits.
func validHostname(host string) bool {
	if _, ok := dns.IsDomainName(host); !ok {
		return false
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}

	return !allDigits(labels[len(labels)-1])
}

func validLabel(label string) bool {
	if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for i := 0; i < len(label); i++ {
		c := label[i]
		if !isAlnum(c) && c != '-' {
			return false
		}
	}

	return true
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
