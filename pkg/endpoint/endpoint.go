// Package endpoint normalizes, deduplicates and categorizes public DNS
// resolver endpoints gathered from many loosely formatted documents.
//
// The flow is a single in-memory batch transform:
//
//	records -> [Valid] -> [Canonicalize] -> [Aggregate] -> [Categorize] -> lists
//
// Nothing in this package performs I/O, and the same input always yields
// the same output.
package endpoint

// Filters describe the content filtering policy of a resolver.
type Filters struct {
	Ads        bool `json:"ads"`
	Malware    bool `json:"malware"`
	Family     bool `json:"family"`
	Unfiltered bool `json:"unfiltered"`
}

// Any reports whether a positive filter (ads, malware or family) is set.
func (f Filters) Any() bool {
	return f.Ads || f.Malware || f.Family
}

// Features describe optional resolver capabilities.
type Features struct {
	DNSSEC bool `json:"dnssec"`
	NoLog  bool `json:"no_log"`
	IPv6   bool `json:"ipv6"`
	DNS64  bool `json:"dns64"`
}

// Observation is one description of a resolver as found in a source
// document. It carries no identity guarantee: the same logical endpoint
// may show up in many observations with different spellings.
type Observation struct {
	Provider  string     `json:"provider"`
	Protocols []Protocol `json:"protocols,omitempty"`
	Addresses []string   `json:"addresses"`
	Filters   Filters    `json:"filters"`
	Features  Features   `json:"features"`
}

// Empty reports whether the observation cannot contribute anything,
// because it names no provider or lists no addresses.
func (o *Observation) Empty() bool {
	return o.Provider == "" || len(o.Addresses) == 0
}
