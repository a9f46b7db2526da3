package sources

import (
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// wellKnown maps provider name fragments to an address that identifies
// them, for tables that name providers without listing addresses.
var wellKnown = []struct {
	fragment string
	address  string
}{
	{fragment: "adguard", address: "dns.adguard.com"},
	{fragment: "cloudflare", address: "1.1.1.1"},
	{fragment: "google", address: "dns.google"},
	{fragment: "quad9", address: "dns.quad9.net"},
	{fragment: "opendns", address: "doh.opendns.com"},
}

// ParsePaulmillr parses the provider table of paulmillr/encrypted-dns.
// The table has no addresses, so only well-known providers are kept, and
// the entries mostly contribute filtering policy for addresses that other
// sources list.
//
// Columns: Name | Regions | Censorship | Notes | Install.
func ParsePaulmillr(doc []byte) ([]endpoint.Observation, error) {
	var (
		out     []endpoint.Observation
		inTable bool
	)

	for _, line := range lines(doc) {
		if strings.HasPrefix(line, "| Name") {
			inTable = true
			continue
		}

		cells := tableRow(line)
		if !inTable || len(cells) < 4 || separatorRow(cells) || cells[0] == "" {
			continue
		}

		o := endpoint.Observation{Provider: linkText(cells[0])}

		name := strings.ToLower(o.Provider)
		for _, known := range wellKnown {
			if strings.Contains(name, known.fragment) {
				o.Addresses = []string{known.address}
				break
			}
		}
		if len(o.Addresses) == 0 {
			continue
		}

		install := strings.ToLower(cell(cells, 3) + cell(cells, 4))
		if strings.Contains(install, "https") {
			addProtocol(&o, endpoint.DoH)
		}
		if strings.Contains(install, "tls") {
			addProtocol(&o, endpoint.DoT)
		}

		censorship := strings.ToLower(cell(cells, 2))
		notes := name + " " + strings.ToLower(cell(cells, 3))

		o.Filters.Unfiltered = strings.Contains(censorship, "no")
		o.Filters.Family = strings.Contains(notes, "family")
		o.Filters.Ads = containsAny(notes, "adblock", "ads") ||
			(strings.Contains(censorship, "yes") && !o.Filters.Family)
		o.Filters.Malware = containsAny(notes, "malware", "security", "protected", "phishing")

		out = append(out, o)
	}

	return out, nil
}
