package sources

import (
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mullvadBlockers is one row of the "Hostnames and content blockers" table.
type mullvadBlockers struct {
	ads, trackers, malware, adult, gambling, social bool
}

// ParseMullvad parses Mullvad's DNS over HTTPS and TLS help page. The
// blocker table decides the filters of each hostname, the address table
// lists the hostnames with their IPs and ports, and the "specific DNS
// server" table holds extra unfiltered DoH URLs.
func ParseMullvad(doc []byte) ([]endpoint.Observation, error) {
	root, err := parseHTML(doc)
	if err != nil {
		return nil, err
	}

	headings := findAll(root, isTag(atom.H3))

	blockers := map[string]mullvadBlockers{}
	if table := tableAfter(headings, "Hostnames and content blockers"); table != nil {
		for _, cells := range tableRows(table) {
			if len(cells) < 7 {
				continue
			}
			checked := func(i int) bool {
				return strings.Contains(text(cells[i]), "✅")
			}
			blockers[text(cells[0])] = mullvadBlockers{
				ads:      checked(1),
				trackers: checked(2),
				malware:  checked(3),
				adult:    checked(4),
				gambling: checked(5),
				social:   checked(6),
			}
		}
	}

	var out []endpoint.Observation

	if table := tableAfter(headings, "IP-addresses and ports"); table != nil {
		for _, cells := range tableRows(table) {
			if len(cells) < 5 {
				continue
			}

			hostname := cellText(cells, 0)
			b, ok := blockers[hostname]
			if !ok {
				continue
			}

			ipv4, ipv6 := cellText(cells, 1), cellText(cells, 2)

			base := endpoint.Observation{
				Provider: "Mullvad",
				Filters: endpoint.Filters{
					Ads:     b.ads || b.trackers,
					Malware: b.malware,
					Family:  b.adult || b.gambling,
				},
				Features: endpoint.Features{
					DNSSEC: true,
					NoLog:  true,
					IPv6:   ipv6 != "",
				},
			}
			base.Filters.Unfiltered = !base.Filters.Any() && !b.social

			if cellText(cells, 3) != "" {
				doh := base
				doh.Protocols = []endpoint.Protocol{endpoint.DoH}
				doh.Addresses = []string{"https://" + hostname + "/dns-query"}
				out = append(out, doh)
			}

			if cellText(cells, 4) != "" {
				dot := base
				dot.Protocols = []endpoint.Protocol{endpoint.DoT}
				dot.Addresses = unique([]string{"tls://" + hostname, ipv4, ipv6})
				out = append(out, dot)
			}
		}
	}

	if table := tableAfter(headings, "Using a specific DNS server"); table != nil {
		for _, cells := range tableRows(table) {
			url := cellText(cells, 0)
			if !strings.HasPrefix(url, "https://") {
				continue
			}
			out = append(out, endpoint.Observation{
				Provider:  "Mullvad",
				Protocols: []endpoint.Protocol{endpoint.DoH},
				Addresses: []string{url},
				Filters:   endpoint.Filters{Unfiltered: true},
				Features:  endpoint.Features{DNSSEC: true, NoLog: true},
			})
		}
	}

	return out, nil
}

// tableAfter returns the first table following the heading whose text
// contains title.
func tableAfter(headings []*html.Node, title string) *html.Node {
	for _, h := range headings {
		if strings.Contains(text(h), title) {
			return nextTable(h)
		}
	}
	return nil
}
