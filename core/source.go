package core

import (
	"errors"

	"github.com/picatz/dnslists/pkg/endpoint"
)

// ErrNoContent is returned when a source document holds nothing a parser
// recognizes, which usually means the upstream format changed.
var ErrNoContent = errors.New("dnslists: no resolvers found in document")

// Parser turns one fetched document into resolver observations.
type Parser func(doc []byte) ([]endpoint.Observation, error)

// Source is a document listing public resolvers, and the parser for its
// format.
type Source struct {
	Name  string
	URL   string
	Parse Parser
}

// String is a custom printer for debugging purposes.
func (s Source) String() string {
	return s.Name
}

// Sources is an ordered list of sources.
type Sources []Source

// Names returns the source names, in order.
func (s Sources) Names() []string {
	names := make([]string, len(s))
	for i, src := range s {
		names[i] = src.Name
	}
	return names
}
