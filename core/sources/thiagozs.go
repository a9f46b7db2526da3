package sources

import (
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// ParseThiagozs parses thiagozs' DoH server gist, a table in the same
// shape as curl's wiki where one cell may hold several URLs separated by
// <br>, and bold single letters head alphabet sections.
func ParseThiagozs(doc []byte) ([]endpoint.Observation, error) {
	var (
		out      []endpoint.Observation
		inTable  bool
		provider string
	)

	for _, line := range lines(doc) {
		if strings.Contains(line, "| Who runs it") {
			inTable = true
			continue
		}

		cells := tableRow(line)
		if !inTable || len(cells) < 4 || separatorRow(cells) {
			continue
		}

		if name := cells[0]; strings.HasPrefix(name, "**") && strings.HasSuffix(name, "**") {
			continue
		}

		if name := linkText(cells[0]); name != "" {
			provider = name
		}

		urls := httpsURLs(strings.ReplaceAll(cells[1], "<br>", "\n"))
		if len(urls) == 0 {
			continue
		}

		comment := strings.ToLower(cells[3])

		o := endpoint.Observation{
			Provider:  provider,
			Protocols: []endpoint.Protocol{endpoint.DoH},
			Addresses: urls,
		}

		describeComment(&o, comment, comment)

		if containsAny(comment, "no filtering", "uncensored") {
			o.Filters.Unfiltered = true
		}
		fallbackUnfiltered(&o)

		out = append(out, o)
	}

	return out, nil
}
