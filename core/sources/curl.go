package sources

import (
	"regexp"
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// protocolKeywords find transports other than DoH mentioned in comments.
var protocolKeywords = []struct {
	protocol endpoint.Protocol
	pattern  *regexp.Regexp
}{
	{protocol: endpoint.DoT, pattern: regexp.MustCompile(`(?i)\bdot\b`)},
	{protocol: endpoint.DoQ, pattern: regexp.MustCompile(`(?i)\bdoq\b`)},
	{protocol: endpoint.DoH3, pattern: regexp.MustCompile(`(?i)\bdoh3\b`)},
	{protocol: endpoint.DNSCrypt, pattern: regexp.MustCompile(`(?i)\bdnscrypt\b`)},
}

// ParseCurl parses curl's DNS-over-HTTPS wiki table. A provider may span
// several rows; rows with an empty name belong to the provider above.
//
// Columns: Who runs it | Base URL | Working | Comment.
func ParseCurl(doc []byte) ([]endpoint.Observation, error) {
	var (
		out      []endpoint.Observation
		inTable  bool
		provider string
	)

	for _, line := range lines(doc) {
		if strings.Contains(line, "| Who runs it") && strings.Contains(line, "| Base URL") {
			inTable = true
			continue
		}

		cells := tableRow(line)
		if !inTable || len(cells) < 4 || separatorRow(cells) {
			continue
		}

		// Alphabet section rows such as "| A | | | |".
		if name := cells[0]; len(name) == 1 && 'A' <= name[0] && name[0] <= 'Z' && cells[1] == "" && cells[2] == "" {
			continue
		}

		if name := linkText(cells[0]); name != "" {
			provider = name
		}

		urls := httpsURLs(cells[1])
		if len(urls) == 0 {
			continue
		}

		comment := strings.ToLower(cells[3])

		o := endpoint.Observation{
			Provider:  provider,
			Protocols: []endpoint.Protocol{endpoint.DoH},
			Addresses: urls,
		}

		for _, kw := range protocolKeywords {
			if kw.pattern.MatchString(comment) {
				addProtocol(&o, kw.protocol)
			}
		}

		describeComment(&o, comment+" "+strings.ToLower(strings.Join(urls, " ")), comment)

		if containsAny(comment, "no filter", "unfiltered", "non-filtering") {
			o.Filters.Unfiltered = true
		}
		fallbackUnfiltered(&o)

		out = append(out, o)
	}

	return out, nil
}

// describeComment sets filters from keywords in filterText and features
// from keywords in comment.
func describeComment(o *endpoint.Observation, filterText, comment string) {
	o.Filters.Ads = containsAny(filterText, "adblock", "block ads", "blocks ads", "ad-blocking", "ad blocking")
	o.Filters.Malware = containsAny(filterText, "malware", "phishing")
	o.Filters.Family = containsAny(filterText, "family", "parental", "adult content", "porn")

	o.Features.DNSSEC = strings.Contains(comment, "dnssec")
	o.Features.NoLog = containsAny(comment, "no log", "no-log", "non-logging", "zero ip and dns query logging")
}
