package sources

import (
	"fmt"
	"strings"

	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/pkg/endpoint"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseAdGuard parses AdGuard's "Known DNS providers" knowledge base page.
// Each provider is an h3 followed by h4 filter variants, each with a table
// of protocol and address rows.
func ParseAdGuard(doc []byte) ([]endpoint.Observation, error) {
	root, err := parseHTML(doc)
	if err != nil {
		return nil, err
	}

	content := find(root, withClasses("theme-doc-markdown", "markdown"))
	if content == nil {
		return nil, fmt.Errorf("%w: no provider documentation container", core.ErrNoContent)
	}

	var out []endpoint.Observation

	for _, h3 := range findAll(content, isTag(atom.H3)) {
		provider := strings.ReplaceAll(text(h3), "\u200b", "")
		provider = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(provider), " DNS"))
		if provider == "" {
			continue
		}

		for s := nextElement(h3); s != nil && s.DataAtom != atom.H3; s = nextElement(s) {
			if s.DataAtom != atom.H4 {
				continue
			}

			table := nextTable(s)
			if table == nil {
				continue
			}

			out = append(out, adguardVariant(provider, adguardFilters(strings.ToLower(text(s))), table)...)
		}
	}

	return out, nil
}

func adguardFilters(variant string) endpoint.Filters {
	var f endpoint.Filters

	if strings.Contains(variant, "family") {
		f.Family = true
	}
	if containsAny(variant, "default", "malware", "ad blocking", "standard", "security") {
		f.Ads, f.Malware = true, true
	}
	if containsAny(variant, "non-filtering", "unfiltered", "sandbox") {
		f.Unfiltered = true
	}

	return f
}

// adguardVariant reads one filter variant's table into an observation per
// protocol, plus one for plain DNS addresses.
func adguardVariant(provider string, filters endpoint.Filters, table *html.Node) []endpoint.Observation {
	addresses := map[endpoint.Protocol][]string{}

	for _, cells := range tableRows(table) {
		if len(cells) < 2 {
			continue
		}

		kind := strings.ToLower(text(cells[0]))

		switch {
		case strings.Contains(kind, "dns-over-https"):
			addresses[endpoint.DoH] = append(addresses[endpoint.DoH], codeTexts(cells[1])...)
		case strings.Contains(kind, "dns-over-tls"):
			addresses[endpoint.DoT] = append(addresses[endpoint.DoT], codeTexts(cells[1])...)
		case strings.Contains(kind, "dnscrypt"):
			if a := find(cells[1], stampLink); a != nil {
				addresses[endpoint.DNSCrypt] = append(addresses[endpoint.DNSCrypt], attr(a, "href"))
			}
		case containsAny(kind, "dns, ipv4", "dns, ipv6"):
			addresses[endpoint.Unspecified] = append(addresses[endpoint.Unspecified], codeTexts(cells[1])...)
		}
	}

	var out []endpoint.Observation

	for _, p := range append([]endpoint.Protocol{endpoint.Unspecified}, endpoint.Protocols...) {
		list := unique(addresses[p])
		if len(list) == 0 {
			continue
		}

		o := endpoint.Observation{
			Provider:  provider,
			Addresses: list,
			Filters:   filters,
		}
		if p != endpoint.Unspecified {
			o.Protocols = []endpoint.Protocol{p}
		}

		out = append(out, o)
	}

	return out
}

func codeTexts(n *html.Node) []string {
	var out []string
	for _, code := range findAll(n, isTag(atom.Code)) {
		if t := text(code); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func stampLink(n *html.Node) bool {
	return n.DataAtom == atom.A && strings.HasPrefix(attr(n, "href"), "sdns://")
}
