package endpoint

import "sort"

// List names an output address list.
type List string

const (
	ListAll        List = "all"
	ListDoH        List = List(DoH)
	ListDoT        List = List(DoT)
	ListDoQ        List = List(DoQ)
	ListDoH3       List = List(DoH3)
	ListDNSCrypt   List = List(DNSCrypt)
	ListIPv4       List = "ipv4"
	ListIPv6       List = "ipv6"
	ListAdblock    List = "adblock"
	ListMalware    List = "malware"
	ListFamily     List = "family"
	ListUnfiltered List = "unfiltered"
	ListNoLog      List = "no_log"
	ListDNSSEC     List = "dnssec"
	ListDNS64      List = "dns64"
)

// ListNames holds every list [Categorize] may produce, in display order.
var ListNames = []List{
	ListAll,
	ListDoH, ListDoT, ListDoQ, ListDoH3, ListDNSCrypt,
	ListIPv4, ListIPv6,
	ListAdblock, ListMalware, ListFamily, ListUnfiltered,
	ListNoLog, ListDNSSEC, ListDNS64,
}

// Set is a set of addresses.
type Set map[string]struct{}

// Add adds address to the set.
func (s Set) Add(address string) {
	s[address] = struct{}{}
}

// Has reports whether address is in the set.
func (s Set) Has(address string) bool {
	_, ok := s[address]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for address := range s {
		out = append(out, address)
	}
	sort.Strings(out)
	return out
}

// Lists maps list names to their members. Lists without members are
// absent rather than empty.
type Lists map[List]Set

func (l Lists) add(name List, address string) {
	set, ok := l[name]
	if !ok {
		set = Set{}
		l[name] = set
	}
	set.Add(address)
}

// Get returns the named list, or an empty set.
func (l Lists) Get(name List) Set {
	if set, ok := l[name]; ok {
		return set
	}
	return Set{}
}

// Counts returns the size of every known list, including empty ones.
func (l Lists) Counts() map[List]int {
	counts := make(map[List]int, len(ListNames))
	for _, name := range ListNames {
		counts[name] = len(l[name])
	}
	return counts
}

// Categorize projects merged endpoints into the named output lists. Each
// endpoint contributes its representative address. Categorize does not
// modify endpoints.
func Categorize(endpoints Endpoints) Lists {
	lists := Lists{}

	for _, key := range endpoints.Keys() {
		info := endpoints[key]
		address := info.Address

		lists.add(ListAll, address)

		for _, p := range info.Protocols.List() {
			lists.add(List(p), address)
		}

		switch AddressFamily(address) {
		case FamilyIPv4:
			lists.add(ListIPv4, address)
		case FamilyIPv6:
			lists.add(ListIPv6, address)
		}

		if info.Filters.Ads {
			lists.add(ListAdblock, address)
		}
		if info.Filters.Malware {
			lists.add(ListMalware, address)
		}
		if info.Filters.Family {
			lists.add(ListFamily, address)
		}
		if info.Unfiltered() {
			lists.add(ListUnfiltered, address)
		}

		if info.Features.NoLog {
			lists.add(ListNoLog, address)
		}
		if info.Features.DNSSEC {
			lists.add(ListDNSSEC, address)
		}
		if info.Features.DNS64 {
			lists.add(ListDNS64, address)
		}
	}

	return lists
}
