package endpoint

import (
	"sort"
	"strings"
)

// Info is the merged view of one logical endpoint within a batch.
type Info struct {
	// Key is the canonical identity, see [Canonicalize].
	Key string

	// Address is the first literal address observed for Key.
	Address string

	Protocols ProtocolSet

	// Filters is the OR of every contributing observation. Its Unfiltered
	// field only records that some observation asserted it; use
	// [Info.Unfiltered] for the resolved value.
	Filters Filters

	Features Features
}

// Unfiltered reports whether the endpoint was asserted unfiltered and no
// positive filter was ever observed for it.
func (i *Info) Unfiltered() bool {
	return i.Filters.Unfiltered && !i.Filters.Any()
}

func (i *Info) merge(scheme string, o *Observation) {
	if scheme != "" {
		i.Protocols.Add(SchemeProtocol(scheme))
	}

	for _, p := range o.Protocols {
		if scheme == "" || compatible(scheme, p) {
			i.Protocols.Add(p)
		}
	}

	i.Filters.Ads = i.Filters.Ads || o.Filters.Ads
	i.Filters.Malware = i.Filters.Malware || o.Filters.Malware
	i.Filters.Family = i.Filters.Family || o.Filters.Family
	i.Filters.Unfiltered = i.Filters.Unfiltered || o.Filters.Unfiltered

	i.Features.DNSSEC = i.Features.DNSSEC || o.Features.DNSSEC
	i.Features.NoLog = i.Features.NoLog || o.Features.NoLog
	i.Features.IPv6 = i.Features.IPv6 || o.Features.IPv6
	i.Features.DNS64 = i.Features.DNS64 || o.Features.DNS64
}

// Endpoints maps canonical keys to merged endpoints.
type Endpoints map[string]*Info

// Keys returns the canonical keys in lexical order.
func (e Endpoints) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats counts what an [Aggregator] did with its input.
type Stats struct {
	Records   int `json:"records"`   // observations seen
	Skipped   int `json:"skipped"`   // empty observations
	Addresses int `json:"addresses"` // addresses seen in non-empty observations
	Invalid   int `json:"invalid"`   // addresses dropped by Valid
}

// Aggregator folds observations into one [Info] per canonical key.
// The zero value is not usable; see [NewAggregator].
type Aggregator struct {
	endpoints Endpoints
	stats     Stats
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{endpoints: Endpoints{}}
}

// Add folds one observation in. Empty observations and invalid addresses
// are counted and dropped.
func (a *Aggregator) Add(o Observation) {
	a.stats.Records++

	if o.Empty() {
		a.stats.Skipped++
		return
	}

	for _, raw := range o.Addresses {
		a.stats.Addresses++

		address := strings.TrimSpace(raw)
		if !Valid(address) {
			a.stats.Invalid++
			continue
		}

		key := Canonicalize(address)

		info, ok := a.endpoints[key]
		if !ok {
			info = &Info{Key: key, Address: address}
			a.endpoints[key] = info
		}

		scheme, _, _ := Scheme(address)
		info.merge(scheme, &o)
	}
}

// Endpoints returns the merged endpoints. The map is owned by the
// aggregator and changes with later calls to Add.
func (a *Aggregator) Endpoints() Endpoints {
	return a.endpoints
}

// Stats returns the counters collected so far.
func (a *Aggregator) Stats() Stats {
	return a.stats
}

// Aggregate folds a batch of observations into one [Info] per canonical
// key. Apart from each endpoint's representative Address, which is the
// first one seen, the result does not depend on the order of records or
// of the addresses within them.
func Aggregate(records []Observation) Endpoints {
	a := NewAggregator()
	for _, o := range records {
		a.Add(o)
	}
	return a.Endpoints()
}
