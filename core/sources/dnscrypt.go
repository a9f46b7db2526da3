package sources

import (
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// ParseDNSCrypt parses the DNSCrypt project's public-resolvers.md, where
// every resolver is a "## name" section of prose followed by its
// sdns:// stamps.
func ParseDNSCrypt(doc []byte) ([]endpoint.Observation, error) {
	var (
		out     []endpoint.Observation
		current *endpoint.Observation
		desc    []string
	)

	flush := func() {
		if current != nil && len(current.Addresses) > 0 {
			describeDNSCrypt(current, strings.ToLower(strings.Join(desc, " ")))
			out = append(out, *current)
		}
		current, desc = nil, nil
	}

	for _, line := range lines(doc) {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			if name := strings.TrimSpace(strings.TrimPrefix(line, "## ")); name != "" {
				current = &endpoint.Observation{
					Provider:  name,
					Protocols: []endpoint.Protocol{endpoint.DNSCrypt},
				}
			}
		case current == nil || line == "":
		case strings.HasPrefix(line, "sdns://"):
			current.Addresses = append(current.Addresses, line)
		default:
			desc = append(desc, line)
		}
	}
	flush()

	return out, nil
}

func describeDNSCrypt(o *endpoint.Observation, desc string) {
	o.Features.DNSSEC = strings.Contains(desc, "dnssec")
	o.Features.NoLog = containsAny(desc, "no-logging", "no logs", "no persistent logs", "non-logging")
	o.Features.IPv6 = strings.Contains(desc, "ipv6")

	o.Filters.Ads = containsAny(desc, "blocks ads", "adblock", "ad-blocking", "ad blocking")
	o.Filters.Malware = strings.Contains(desc, "malware")
	o.Filters.Family = containsAny(desc, "family", "adult content blocking")
	o.Filters.Unfiltered = containsAny(desc, "non-filtering", "no filter", "uncensored", "unfiltered")

	fallbackUnfiltered(o)
}
