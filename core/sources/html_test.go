package sources_test

import (
	"testing"

	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/core/sources"
	"github.com/picatz/dnslists/pkg/endpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adguardPage = `<!DOCTYPE html>
<html><body><article><div class="theme-doc-markdown markdown">
<h1>Known DNS providers</h1>
<h3>AdGuard DNS</h3>
<p>AdGuard DNS is a foolproof way to block ads.</p>
<h4>Default</h4>
<p>These servers block ads, tracking, and phishing.</p>
<table>
<thead><tr><th>Protocol</th><th>Address</th></tr></thead>
<tbody>
<tr><td>DNS, IPv4</td><td><code>94.140.14.14</code> and <code>94.140.15.15</code></td></tr>
<tr><td>DNS, IPv6</td><td><code>2a10:50c0::ad1:ff</code></td></tr>
<tr><td>DNS-over-HTTPS</td><td><code>https://dns.adguard-dns.com/dns-query</code></td></tr>
<tr><td>DNS-over-TLS</td><td><code>tls://dns.adguard-dns.com</code></td></tr>
<tr><td>DNSCrypt, IPv4</td><td>Provider: <code>2.dnscrypt.default.ns1.adguard.com</code> <a href="sdns://AQMAAAAAAAAAETk0LjE0MC4xNC4xNDo1NDQz">IP: 94.140.14.14:5443</a></td></tr>
</tbody>
</table>
<h4>Non-filtering</h4>
<table>
<tbody>
<tr><td>DNS-over-HTTPS</td><td><code>https://unfiltered.adguard-dns.com/dns-query</code></td></tr>
<tr><td>DNS-over-HTTPS</td><td><code>https://unfiltered.adguard-dns.com/dns-query</code></td></tr>
</tbody>
</table>
<h3>Quad9&#8203; DNS</h3>
<h4>Family protection</h4>
<table>
<tbody>
<tr><td>DNS-over-HTTPS</td><td><code>https://dns11.quad9.net/dns-query</code></td></tr>
</tbody>
</table>
</div></article></body></html>`

func TestParseAdGuard(t *testing.T) {
	records, err := sources.ParseAdGuard([]byte(adguardPage))
	require.NoError(t, err)
	require.Len(t, records, 6)

	defaults := endpoint.Filters{Ads: true, Malware: true}

	assert.Equal(t, endpoint.Observation{
		Provider:  "AdGuard",
		Addresses: []string{"94.140.14.14", "94.140.15.15", "2a10:50c0::ad1:ff"},
		Filters:   defaults,
	}, records[0])

	assert.Equal(t, endpoint.Observation{
		Provider:  "AdGuard",
		Protocols: []endpoint.Protocol{endpoint.DoH},
		Addresses: []string{"https://dns.adguard-dns.com/dns-query"},
		Filters:   defaults,
	}, records[1])

	assert.Equal(t, []endpoint.Protocol{endpoint.DoT}, records[2].Protocols)
	assert.Equal(t, []string{"tls://dns.adguard-dns.com"}, records[2].Addresses)

	assert.Equal(t, []endpoint.Protocol{endpoint.DNSCrypt}, records[3].Protocols)
	assert.Equal(t, []string{"sdns://AQMAAAAAAAAAETk0LjE0MC4xNC4xNDo1NDQz"}, records[3].Addresses)

	assert.Equal(t, endpoint.Observation{
		Provider:  "AdGuard",
		Protocols: []endpoint.Protocol{endpoint.DoH},
		Addresses: []string{"https://unfiltered.adguard-dns.com/dns-query"},
		Filters:   endpoint.Filters{Unfiltered: true},
	}, records[4])

	assert.Equal(t, "Quad9", records[5].Provider)
	assert.Equal(t, endpoint.Filters{Family: true}, records[5].Filters)
}

func TestParseAdGuardWithoutContent(t *testing.T) {
	_, err := sources.ParseAdGuard([]byte("<html><body><p>moved</p></body></html>"))
	require.ErrorIs(t, err, core.ErrNoContent)
}

const mullvadPage = `<html><body><main>
<h3>Hostnames and content blockers</h3>
<table>
<thead><tr><th>Hostname</th><th>Ads</th><th>Trackers</th><th>Malware</th><th>Adult</th><th>Gambling</th><th>Social media</th></tr></thead>
<tbody>
<tr><td>dns.mullvad.net</td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
<tr><td>adblock.dns.mullvad.net</td><td>✅</td><td>✅</td><td></td><td></td><td></td><td></td></tr>
<tr><td>family.dns.mullvad.net</td><td>✅</td><td>✅</td><td>✅</td><td>✅</td><td>✅</td><td></td></tr>
</tbody>
</table>
<h3>IP-addresses and ports</h3>
<table>
<thead><tr><th>Hostname</th><th>IPv4</th><th>IPv6</th><th>DoH</th><th>DoT</th></tr></thead>
<tbody>
<tr><td>dns.mullvad.net</td><td>194.242.2.2</td><td>2a07:e340::2</td><td>443</td><td>853</td></tr>
<tr><td>adblock.dns.mullvad.net</td><td>194.242.2.3</td><td></td><td>443</td><td></td></tr>
<tr><td>family.dns.mullvad.net</td><td>194.242.2.6</td><td>2a07:e340::6</td><td>443</td><td>853</td></tr>
<tr><td>unknown.dns.mullvad.net</td><td>194.242.2.9</td><td></td><td>443</td><td>853</td></tr>
</tbody>
</table>
<h3>Using a specific DNS server</h3>
<table>
<tbody>
<tr><td>https://se-sto-dns-001.mullvad.net/dns-query</td></tr>
<tr><td>Sweden</td></tr>
</tbody>
</table>
</main></body></html>`

func TestParseMullvad(t *testing.T) {
	records, err := sources.ParseMullvad([]byte(mullvadPage))
	require.NoError(t, err)
	require.Len(t, records, 6)

	features := endpoint.Features{DNSSEC: true, NoLog: true, IPv6: true}

	assert.Equal(t, endpoint.Observation{
		Provider:  "Mullvad",
		Protocols: []endpoint.Protocol{endpoint.DoH},
		Addresses: []string{"https://dns.mullvad.net/dns-query"},
		Filters:   endpoint.Filters{Unfiltered: true},
		Features:  features,
	}, records[0])

	assert.Equal(t, endpoint.Observation{
		Provider:  "Mullvad",
		Protocols: []endpoint.Protocol{endpoint.DoT},
		Addresses: []string{"tls://dns.mullvad.net", "194.242.2.2", "2a07:e340::2"},
		Filters:   endpoint.Filters{Unfiltered: true},
		Features:  features,
	}, records[1])

	assert.Equal(t, []string{"https://adblock.dns.mullvad.net/dns-query"}, records[2].Addresses)
	assert.Equal(t, endpoint.Filters{Ads: true}, records[2].Filters)
	assert.False(t, records[2].Features.IPv6)

	assert.Equal(t, endpoint.Filters{Ads: true, Malware: true, Family: true}, records[3].Filters)
	assert.Equal(t, []endpoint.Protocol{endpoint.DoT}, records[4].Protocols)

	assert.Equal(t, []string{"https://se-sto-dns-001.mullvad.net/dns-query"}, records[5].Addresses)
	assert.True(t, records[5].Filters.Unfiltered)
}

const dnsPrivacyPage = `<html><body><div id="body-inner">
<h2>DNS-over-TLS</h2>
<table>
<thead><tr><th>Hosted by</th><th>IP addresses</th><th>TLS Port</th><th>Hostname for TLS
authentication</th><th>Base 64 encoded form of SPKI pin(s)</th><th>Notes</th></tr></thead>
<tbody>
<tr><td>Quad9 'secure'</td><td>9.9.9.9</td><td>853</td><td>dns.quad9.net</td><td>pin</td><td>It also does DoH</td></tr>
<tr><td>Quad9 'insecure'</td><td>9.9.9.10</td><td>853</td><td>dns10.quad9.net</td><td>pin</td><td></td></tr>
<tr><td>Somewhere</td><td>1.2.3.4</td><td>853</td><td>Various</td><td></td><td></td></tr>
<tr><td>Plain Resolver</td><td>5.6.7.8</td><td>853</td><td>dns.plain.example</td><td></td><td>No logging</td></tr>
</tbody>
</table>
<h2>DNS-over-HTTPS</h2>
<table>
<thead><tr><th>Hosted by</th><th>URL</th><th>Notes</th></tr></thead>
<tbody>
<tr><td>Cleanbrowsing</td><td>https://doh.cleanbrowsing.org/doh/family-filter/</td><td>Family filter, adult content blocking</td></tr>
</tbody>
</table>
<h2>DNS-over-QUIC (DoQ)</h2>
<p>AdGuard runs a public DoQ resolver.</p>
</div></body></html>`

func TestParseDNSPrivacy(t *testing.T) {
	records, err := sources.ParseDNSPrivacy([]byte(dnsPrivacyPage))
	require.NoError(t, err)
	require.Len(t, records, 4)

	features := endpoint.Features{DNSSEC: true, NoLog: true}

	assert.Equal(t, endpoint.Observation{
		Provider:  "Quad9",
		Protocols: []endpoint.Protocol{endpoint.DoT, endpoint.DoH},
		Addresses: []string{"tls://dns.quad9.net", "tls://dns10.quad9.net"},
		Filters:   endpoint.Filters{Malware: true},
		Features:  features,
	}, records[0])

	assert.Equal(t, endpoint.Observation{
		Provider:  "Plain Resolver",
		Protocols: []endpoint.Protocol{endpoint.DoT},
		Addresses: []string{"tls://dns.plain.example"},
		Filters:   endpoint.Filters{Unfiltered: true},
		Features:  features,
	}, records[1])

	assert.Equal(t, endpoint.Observation{
		Provider:  "Cleanbrowsing",
		Protocols: []endpoint.Protocol{endpoint.DoH},
		Addresses: []string{"https://doh.cleanbrowsing.org/doh/family-filter/"},
		Filters:   endpoint.Filters{Family: true},
		Features:  features,
	}, records[2])

	assert.Equal(t, endpoint.Observation{
		Provider:  "Adguard",
		Protocols: []endpoint.Protocol{endpoint.DoQ},
		Addresses: []string{"quic://dns.adguard-dns.com"},
		Filters:   endpoint.Filters{Unfiltered: true},
		Features:  features,
	}, records[3])
}

func TestParseDNSPrivacyWithoutContent(t *testing.T) {
	_, err := sources.ParseDNSPrivacy([]byte("<html><body></body></html>"))
	require.ErrorIs(t, err, core.ErrNoContent)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{
		"adguard", "blacklantern", "curl", "dnscrypt", "dnsprivacy",
		"mullvad", "mutinsa", "paulmillr", "thiagozs",
	}, sources.Names())

	for _, name := range sources.Names() {
		parse, ok := sources.Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, parse, name)
	}

	_, ok := sources.Lookup("unknown")
	assert.False(t, ok)
}
