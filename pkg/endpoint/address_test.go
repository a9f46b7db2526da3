package endpoint_test

import (
	"testing"

	"github.com/picatz/dnslists/pkg/endpoint"
	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty", input: "", want: false},
		{name: "ipv4 octet out of range", input: "256.1.1.1", want: false},
		{name: "ipv4 trailing octet out of range", input: "10.0.0.300", want: false},
		{name: "http without host", input: "http://", want: false},
		{name: "https without host", input: "https://", want: false},
		{name: "empty label", input: "dns..example.com", want: false},
		{name: "trailing dot", input: "dns.example.com.", want: false},
		{name: "leading hyphen", input: "-dns.example.com", want: false},
		{name: "underscore", input: "dns_example.com", want: false},
		{name: "prose", input: "N/A", want: false},
		{name: "unspecified ipv6", input: "::", want: false},
		{name: "bracketed unspecified ipv6", input: "[::]:53", want: false},
		{name: "non-numeric port", input: "dns.example.com:dns", want: false},
		{name: "empty port", input: "1.1.1.1:", want: false},
		{name: "port out of range", input: "1.1.1.1:70000", want: false},
		{name: "bracketed ipv4", input: "[1.1.1.1]", want: false},
		{name: "unterminated bracket", input: "[2001:db8::1", want: false},
		{name: "bracket garbage", input: "[2001:db8::1]853", want: false},
		{name: "bracketed non-numeric port", input: "[2001:db8::1]:dot", want: false},

		{name: "ipv6", input: "2001:db8::1", want: true},
		{name: "ipv4", input: "1.1.1.1", want: true},
		{name: "ipv4 with port", input: "1.1.1.1:853", want: true},
		{name: "hostname", input: "dns.google", want: true},
		{name: "hostname with port", input: "dns.example.com:853", want: true},
		{name: "single label", input: "localhost", want: true},
		{name: "stamp", input: "sdns://AQcAAAAAAAAADjIwOC42Ny4yMjAuMjIw", want: true},
		{name: "doh url", input: "https://dns.google/dns-query", want: true},
		{name: "dot url", input: "tls://dns.quad9.net", want: true},
		{name: "doq url", input: "quic://dns.adguard-dns.com", want: true},
		{name: "scheme casing", input: "HTTPS://DNS.GOOGLE", want: true},
		{name: "bracketed ipv6", input: "[2606:4700:4700::1111]", want: true},
		{name: "bracketed ipv6 with port", input: "[2606:4700:4700::1111]:853", want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, endpoint.Valid(test.input), "Valid(%q)", test.input)
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "dns.example.com:853", want: "dns.example.com"},
		{input: "DNS.Example.com", want: "dns.example.com"},
		{input: "tls://dns.example.com", want: "dns.example.com"},
		{input: "tls://dns.example.com:853", want: "dns.example.com"},
		{input: "quic://dns.adguard-dns.com:784", want: "quic://dns.adguard-dns.com"},
		{input: "QUIC://DNS.AdGuard-dns.com", want: "quic://dns.adguard-dns.com"},
		{input: "https://dns.example.com:443/dns-query", want: "https://dns.example.com/dns-query"},
		{input: "HTTPS://DNS.Example.com/dns-query", want: "https://dns.example.com/dns-query"},
		{input: "https://dns.example.com/", want: "https://dns.example.com"},
		{input: "https://doh.example.net/dns-query?ct=1#x", want: "https://doh.example.net/dns-query?ct=1#x"},
		{input: "https://dns.example.com/family", want: "https://dns.example.com/family"},
		{input: "sdns://AQcAAAAAAAAADjIwOC42Ny4yMjAuMjIw", want: "sdns://AQcAAAAAAAAADjIwOC42Ny4yMjAuMjIw"},
		{input: "[2001:db8::1]:53", want: "[2001:db8::1]"},
		{input: "[2001:db8::1]", want: "[2001:db8::1]"},
		{input: "2001:db8::1", want: "[2001:db8::1]"},
		{input: "2001:0db8:0000::1", want: "[2001:db8::1]"},
		{input: "1.1.1.1:53", want: "1.1.1.1"},
		{input: "1.1.1.1", want: "1.1.1.1"},
		{input: "tls://[2a07:a8c0::]:853", want: "[2a07:a8c0::]"},
		{input: "https://[2a07:a8c0::]:443/dns-query", want: "https://[2a07:a8c0::]/dns-query"},
		{input: "https://exa mple.com/", want: "https://exa mple.com/"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.want, endpoint.Canonicalize(test.input))
		})
	}

	t.Run("stable", func(t *testing.T) {
		for _, test := range tests {
			key := endpoint.Canonicalize(test.input)
			assert.Equal(t, key, endpoint.Canonicalize(test.input))
		}
	})
}

func TestAddressFamily(t *testing.T) {
	tests := []struct {
		input string
		want  endpoint.Family
	}{
		{input: "1.1.1.1", want: endpoint.FamilyIPv4},
		{input: "1.1.1.1:53", want: endpoint.FamilyIPv4},
		{input: "https://1.1.1.1/dns-query", want: endpoint.FamilyIPv4},
		{input: "2606:4700::1111", want: endpoint.FamilyIPv6},
		{input: "[2606:4700::1111]:853", want: endpoint.FamilyIPv6},
		{input: "tls://[2606:4700::1111]:853", want: endpoint.FamilyIPv6},
		{input: "dns.google", want: endpoint.FamilyNone},
		{input: "https://dns.google/dns-query", want: endpoint.FamilyNone},
		{input: "sdns://AQcAAAAAAAAADjIwOC42Ny4yMjAuMjIw", want: endpoint.FamilyNone},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.want, endpoint.AddressFamily(test.input))
		})
	}
}

func TestScheme(t *testing.T) {
	scheme, rest, ok := endpoint.Scheme("TLS://dns.quad9.net")
	assert.True(t, ok)
	assert.Equal(t, endpoint.SchemeTLS, scheme)
	assert.Equal(t, "dns.quad9.net", rest)

	_, _, ok = endpoint.Scheme("http://example.com")
	assert.False(t, ok)

	_, _, ok = endpoint.Scheme("://example.com")
	assert.False(t, ok)
}

func TestParseProtocol(t *testing.T) {
	p, ok := endpoint.ParseProtocol(" DoH3 ")
	assert.True(t, ok)
	assert.Equal(t, endpoint.DoH3, p)

	p, ok = endpoint.ParseProtocol("unspecified")
	assert.True(t, ok)
	assert.Equal(t, endpoint.Unspecified, p)

	_, ok = endpoint.ParseProtocol("dnscurve")
	assert.False(t, ok)
}
