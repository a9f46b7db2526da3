package output

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/picatz/dnslists/core"
	"github.com/picatz/dnslists/pkg/endpoint"
)

// SummaryFile is the name of the summary written next to the lists.
const SummaryFile = "SUMMARY.md"

var descriptions = map[endpoint.List]string{
	endpoint.ListAll:        "Every valid resolver address",
	endpoint.ListDoH:        "DNS-over-HTTPS",
	endpoint.ListDoT:        "DNS-over-TLS",
	endpoint.ListDoQ:        "DNS-over-QUIC",
	endpoint.ListDoH3:       "DNS-over-HTTP/3",
	endpoint.ListDNSCrypt:   "DNSCrypt stamps",
	endpoint.ListIPv4:       "Plain IPv4 addresses",
	endpoint.ListIPv6:       "Plain IPv6 addresses",
	endpoint.ListAdblock:    "Blocks ads and trackers",
	endpoint.ListMalware:    "Blocks malware and phishing",
	endpoint.ListFamily:     "Blocks adult content",
	endpoint.ListUnfiltered: "Explicitly unfiltered",
	endpoint.ListNoLog:      "Does not log queries",
	endpoint.ListDNSSEC:     "Validates DNSSEC",
	endpoint.ListDNS64:      "Synthesizes DNS64 answers",
}

// Summary is what the Markdown summary reports on.
type Summary struct {
	Generated time.Time
	Catalog   core.Catalog
	Results   []core.Result
}

type summaryRow struct {
	Name        endpoint.List
	File        string
	Count       int
	Description string
}

type sourceRow struct {
	Name     string
	URL      string
	Records  int
	Duration time.Duration
	Error    string
}

type perSourceRow struct {
	Name  string
	Lists []summaryRow
}

var summaryTemplate = template.Must(template.New("summary").Parse(`# Public DNS resolver lists

Generated {{ .Generated }} from {{ len .Sources }} sources: {{ .Endpoints }} distinct endpoints out of {{ .Stats.Addresses }} addresses ({{ .Stats.Invalid }} invalid).

| List | Count | Description |
|------|------:|-------------|
{{- range .Lists }}
| [{{ .Name }}]({{ .File }}) | {{ .Count }} | {{ .Description }} |
{{- end }}

## Sources

| Source | Records | Time | Status |
|--------|--------:|-----:|--------|
{{- range .Sources }}
| [{{ .Name }}]({{ .URL }}) | {{ .Records }} | {{ .Duration }} | {{ if .Error }}{{ .Error }}{{ else }}ok{{ end }} |
{{- end }}
{{ range .PerSource }}
### {{ .Name }}

| List | Count |
|------|------:|
{{- range .Lists }}
| [{{ .Name }}]({{ .File }}) | {{ .Count }} |
{{- end }}
{{ end -}}
`))

// WriteSummary renders s as Markdown into path.
func WriteSummary(path string, s Summary) error {
	data := struct {
		Generated string
		Endpoints int
		Stats     endpoint.Stats
		Lists     []summaryRow
		Sources   []sourceRow
		PerSource []perSourceRow
	}{
		Generated: s.Generated.UTC().Format(time.RFC3339),
		Endpoints: s.Catalog.Endpoints,
		Stats:     s.Catalog.Stats,
		Lists:     rows(s.Catalog.Lists, "", true),
	}

	for _, result := range s.Results {
		row := sourceRow{
			Name:     result.Source.Name,
			URL:      result.Source.URL,
			Records:  len(result.Records),
			Duration: result.Duration.Round(time.Millisecond),
		}
		if result.Err != nil {
			row.Error = strings.ReplaceAll(result.Err.Error(), "|", `\|`)
		}
		data.Sources = append(data.Sources, row)
	}

	for _, sl := range s.Catalog.Sources {
		data.PerSource = append(data.PerSource, perSourceRow{
			Name:  sl.Source.Name,
			Lists: rows(sl.Lists, SourcesDir+"/"+DirName(sl.Source.Name)+"/", false),
		})
	}

	var b strings.Builder
	if err := summaryTemplate.Execute(&b, data); err != nil {
		return fmt.Errorf("dnslists: error rendering summary: %w", err)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("dnslists: error writing summary: %w", err)
	}
	return nil
}

// rows lists the lists in preferred order, skipping empty ones unless
// all is set.
func rows(lists endpoint.Lists, prefix string, all bool) []summaryRow {
	var out []summaryRow
	for _, name := range endpoint.ListNames {
		count := len(lists.Get(name))
		if count == 0 && !all {
			continue
		}
		out = append(out, summaryRow{
			Name:        name,
			File:        prefix + string(name) + Extension,
			Count:       count,
			Description: descriptions[name],
		})
	}
	return out
}
