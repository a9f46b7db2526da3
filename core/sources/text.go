package sources

import (
	"regexp"
	"strings"

	"github.com/picatz/dnslists/pkg/endpoint"
)

var (
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	httpsURL     = regexp.MustCompile("https://[^\\s<>()\\[\\]`'\"|]+")
)

// tableRow splits a Markdown table row into trimmed cells, without the
// empty cells outside the leading and trailing pipes. It returns nil for
// lines that are not table rows.
func tableRow(line string) []string {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "|") {
		return nil
	}

	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}

	return cells
}

// separatorRow reports whether cells form a Markdown header separator
// such as "| --- | :---: |".
func separatorRow(cells []string) bool {
	return len(cells) > 0 && strings.Contains(cells[0], "---")
}

// cell returns cells[i], or "" when the row is too short.
func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// linkText replaces Markdown links with their text.
func linkText(s string) string {
	return strings.TrimSpace(markdownLink.ReplaceAllString(s, "$1"))
}

func httpsURLs(s string) []string {
	return httpsURL.FindAllString(s, -1)
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lines(doc []byte) []string {
	return strings.Split(strings.ReplaceAll(string(doc), "\r\n", "\n"), "\n")
}

// unique drops repeated strings, keeping first occurrences in order.
func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// addProtocol appends p unless it is already present.
func addProtocol(o *endpoint.Observation, p endpoint.Protocol) {
	for _, have := range o.Protocols {
		if have == p {
			return
		}
	}
	o.Protocols = append(o.Protocols, p)
}

// fallbackUnfiltered marks an observation unfiltered when its source
// described no filtering at all.
func fallbackUnfiltered(o *endpoint.Observation) {
	if !o.Filters.Any() {
		o.Filters.Unfiltered = true
	}
}
