package sources

import (
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// ParseMutinSA parses mutin-sa's "Public Recursive Name Servers" gist.
// Rows are grouped per provider; rows below the "# DNS64:" heading use the
// same columns and describe DNS64 resolvers.
//
// Columns: IPv4 Addr | IPv6 Addr | ASn | Political Region | Geo | Svc | Provider.
func ParseMutinSA(doc []byte) ([]endpoint.Observation, error) {
	var (
		out     []endpoint.Observation
		index   = map[string]int{}
		inTable bool
		dns64   bool
	)

	for _, line := range lines(doc) {
		if strings.HasPrefix(strings.TrimSpace(line), "# DNS64") {
			dns64, inTable = true, false
			continue
		}

		cells := tableRow(line)
		if cell(cells, 0) == "IPv4 Addr" {
			inTable = true
			continue
		}

		if !inTable || len(cells) < 7 || separatorRow(cells) {
			continue
		}

		ipv4, ipv6, svc, provider := cells[0], cells[1], strings.ToLower(cells[5]), cells[6]
		if provider == "" {
			continue
		}

		key := provider
		if dns64 {
			key += "\x00dns64"
		}

		i, ok := index[key]
		if !ok {
			out = append(out, endpoint.Observation{
				Provider: provider,
				Filters:  endpoint.Filters{Unfiltered: true},
				Features: endpoint.Features{DNSSEC: true, DNS64: dns64},
			})
			i = len(out) - 1
			index[key] = i
		}

		o := &out[i]

		if ipv4 != "" {
			o.Addresses = append(o.Addresses, ipv4)
		}
		if ipv6 != "" {
			o.Addresses = append(o.Addresses, ipv6)
			o.Features.IPv6 = true
		}

		if containsAny(svc, "doh", "cloudflare", "google") {
			addProtocol(o, endpoint.DoH)
		}
		if strings.Contains(svc, "dot") {
			addProtocol(o, endpoint.DoT)
		}
	}

	for i := range out {
		out[i].Addresses = unique(out[i].Addresses)
	}

	return out, nil
}
