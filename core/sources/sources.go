// Package sources holds a parser for every public resolver list format
// dnslists knows how to read.
package sources

import (
	"sort"

	"github.com/picatz/dnslists/core"
)

var parsers = map[string]core.Parser{
	"adguard":      ParseAdGuard,
	"blacklantern": ParseBlacklantern,
	"curl":         ParseCurl,
	"dnscrypt":     ParseDNSCrypt,
	"dnsprivacy":   ParseDNSPrivacy,
	"mullvad":      ParseMullvad,
	"mutinsa":      ParseMutinSA,
	"paulmillr":    ParsePaulmillr,
	"thiagozs":     ParseThiagozs,
}

// Lookup returns the parser registered under name.
func Lookup(name string) (core.Parser, bool) {
	p, ok := parsers[name]
	return p, ok
}

// Names returns the registered parser names, sorted.
func Names() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
