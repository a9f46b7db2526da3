package endpoint

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Protocol is an encrypted DNS transport tag.
type Protocol string

const (
	DoH         Protocol = "doh"
	DoT         Protocol = "dot"
	DoQ         Protocol = "doq"
	DoH3        Protocol = "doh3"
	DNSCrypt    Protocol = "dnscrypt"
	Unspecified Protocol = "unspecified"
)

// Protocols lists every concrete protocol, in output order.
var Protocols = []Protocol{DoH, DoT, DoQ, DoH3, DNSCrypt}

// ParseProtocol returns the protocol named by s, ignoring case and
// surrounding whitespace.
func ParseProtocol(s string) (Protocol, bool) {
	p := Protocol(strings.ToLower(strings.TrimSpace(s)))
	if p == Unspecified {
		return p, true
	}
	return p, p.bit() != 0
}

// ErrUnknownProtocol is returned when decoding a protocol name that is
// not one of the known tags.
var ErrUnknownProtocol = errors.New("dnslists: unknown protocol")

// UnmarshalText decodes a protocol name the way [ParseProtocol] reads it,
// so "DoT" and " dot " both decode to [DoT].
func (p *Protocol) UnmarshalText(text []byte) error {
	parsed, ok := ParseProtocol(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProtocol, text)
	}
	*p = parsed
	return nil
}

func (p Protocol) bit() ProtocolSet {
	for i, known := range Protocols {
		if p == known {
			return 1 << i
		}
	}
	return 0
}

// SchemeProtocol returns the protocol implied by an address scheme, or
// Unspecified for schemes that imply none.
func SchemeProtocol(scheme string) Protocol {
	switch scheme {
	case SchemeHTTPS:
		return DoH
	case SchemeTLS:
		return DoT
	case SchemeQUIC:
		return DoQ
	case SchemeSDNS:
		return DNSCrypt
	default:
		return Unspecified
	}
}

// compatible reports whether a declared protocol hint may be attached to
// an address with the given scheme. The scheme always wins: a stamp is
// never anything but DNSCrypt, and only HTTPS URLs may also speak DoH3.
func compatible(scheme string, p Protocol) bool {
	if p == SchemeProtocol(scheme) {
		return true
	}
	return scheme == SchemeHTTPS && p == DoH3
}

// ProtocolSet is a set of concrete protocols.
type ProtocolSet uint8

// Add adds p to the set. Unknown and Unspecified protocols are ignored.
func (s *ProtocolSet) Add(p Protocol) {
	*s |= p.bit()
}

// Has reports whether p is in the set.
func (s ProtocolSet) Has(p Protocol) bool {
	b := p.bit()
	return b != 0 && s&b == b
}

// Len returns the number of protocols in the set.
func (s ProtocolSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

// List returns the protocols in the set, in output order.
func (s ProtocolSet) List() []Protocol {
	var out []Protocol
	for _, p := range Protocols {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// String implements fmt.Stringer.
func (s ProtocolSet) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = string(p)
	}
	return "{" + strings.Join(names, ",") + "}"
}
