package sources

import (
	"net/netip"
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// ParseBlacklantern parses blacklanternsecurity's public DNS list: one
// plain IPv4 resolver per line, no encrypted transports, no filtering.
func ParseBlacklantern(doc []byte) ([]endpoint.Observation, error) {
	var addresses []string

	for _, line := range lines(doc) {
		line = strings.TrimSpace(line)
		if addr, err := netip.ParseAddr(line); err == nil && addr.Is4() {
			addresses = append(addresses, line)
		}
	}

	if len(addresses) == 0 {
		return nil, nil
	}

	return []endpoint.Observation{{
		Provider:  "Blacklantern Security",
		Addresses: addresses,
		Filters:   endpoint.Filters{Unfiltered: true},
	}}, nil
}
