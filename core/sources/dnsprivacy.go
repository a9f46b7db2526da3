package sources

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/pkg/endpoint"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// variantQuote matches the quoted variant names dnsprivacy.org appends to
// providers, as in "Quad9 'secure'".
var variantQuote = regexp.MustCompile(`'(secure|insecure|unfiltered)'`)

// ParseDNSPrivacy parses dnsprivacy.org's public resolvers page. Rows of
// the DoT and DoH tables are merged per provider, ignoring the quoted
// variant name.
func ParseDNSPrivacy(doc []byte) ([]endpoint.Observation, error) {
	root, err := parseHTML(doc)
	if err != nil {
		return nil, err
	}

	content := find(root, withID("body-inner"))
	if content == nil {
		return nil, fmt.Errorf("%w: no #body-inner container", core.ErrNoContent)
	}

	var (
		order     []string
		providers = map[string]*endpoint.Observation{}
	)

	provider := func(name string) *endpoint.Observation {
		name = strings.TrimSpace(variantQuote.ReplaceAllString(name, ""))
		o, ok := providers[name]
		if !ok {
			o = &endpoint.Observation{Provider: name}
			providers[name] = o
			order = append(order, name)
		}
		return o
	}

	for _, table := range findAll(content, isTag(atom.Table)) {
		headers := tableHeaders(table)

		switch {
		case containsAny(strings.Join(headers, "\x00"), "hostname for tls"):
			for _, cells := range tableRows(table) {
				if len(cells) < 5 {
					continue
				}

				name, hostname, notes := cellText(cells, 0), cellText(cells, 3), cellText(cells, 5)
				if name == "" || hostname == "" || strings.Contains(strings.ToLower(hostname), "various") {
					continue
				}

				o := provider(name)
				addProtocol(o, endpoint.DoT)
				o.Addresses = append(o.Addresses, "tls://"+hostname)
				dnsPrivacyFilters(o, name, notes, true)

				if strings.Contains(strings.ToLower(notes), "it also does doh") {
					addProtocol(o, endpoint.DoH)
				}
			}
		case hasHeader(headers, "url") && hasHeader(headers, "notes"):
			for _, cells := range tableRows(table) {
				if len(cells) < 2 {
					continue
				}

				name, urls, notes := cellText(cells, 0), cellText(cells, 1), cellText(cells, 2)
				if name == "" || strings.Contains(strings.ToLower(urls), "various") {
					continue
				}

				o := provider(name)
				addProtocol(o, endpoint.DoH)
				o.Addresses = append(o.Addresses, httpsURLs(urls)...)
				dnsPrivacyFilters(o, name, notes, false)
			}
		}
	}

	for _, h := range findAll(root, isTag(atom.H2, atom.H3)) {
		if !strings.Contains(text(h), "DNS-over-QUIC (DoQ)") {
			continue
		}
		if next := nextElement(h); next != nil && strings.Contains(strings.ToLower(text(next)), "adguard") {
			o := provider("Adguard")
			addProtocol(o, endpoint.DoQ)
			o.Addresses = append(o.Addresses, "quic://dns.adguard-dns.com")
		}
		break
	}

	var out []endpoint.Observation

	for _, name := range order {
		o := providers[name]

		o.Addresses = unique(o.Addresses)
		if len(o.Addresses) == 0 {
			continue
		}

		o.Filters.Unfiltered = !o.Filters.Any()
		o.Features.DNSSEC = true
		o.Features.NoLog = true

		out = append(out, *o)
	}

	return out, nil
}

// dnsPrivacyFilters ORs the filters named by a row's provider and notes
// into o. Only DoT rows may mark a provider explicitly unfiltered.
func dnsPrivacyFilters(o *endpoint.Observation, name, notes string, unfiltered bool) {
	lowerName := strings.ToLower(name)
	combined := lowerName + " " + strings.ToLower(notes)

	if strings.Contains(combined, "ad blocking") || strings.Contains(lowerName, "adguard") {
		o.Filters.Ads = true
	}
	if containsAny(combined, "secure", "protective", "security") {
		o.Filters.Malware = true
	}
	if containsAny(combined, "family", "child protective", "adult") {
		o.Filters.Family = true
	}
	if unfiltered && containsAny(combined, "insecure", "unfiltered") {
		o.Filters.Unfiltered = true
	}
}

// tableHeaders returns the lowercased, space-normalized text of every th
// in table.
func tableHeaders(table *html.Node) []string {
	var headers []string
	for _, th := range findAll(table, isTag(atom.Th)) {
		headers = append(headers, strings.ToLower(strings.Join(strings.Fields(text(th)), " ")))
	}
	return headers
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
