package core

import "github.com/picatz/dnslists/pkg/endpoint"

// SourceLists holds the lists built from a single source's records.
type SourceLists struct {
	Source    Source
	Lists     endpoint.Lists
	Endpoints int
}

// Catalog is the categorized result of one collection run.
type Catalog struct {
	// Lists merges the records of every source.
	Lists endpoint.Lists

	// Sources holds per-source lists, in result order. It is empty unless
	// requested.
	Sources []SourceLists

	// Endpoints is the number of distinct endpoints across all sources.
	Endpoints int

	Stats endpoint.Stats

	// Failed names the sources that produced no records.
	Failed []string
}

// BuildCatalog aggregates and categorizes collected records, across all
// sources and, when perSource is set, for each source on its own.
func BuildCatalog(results []Result, perSource bool) Catalog {
	var catalog Catalog

	all := endpoint.NewAggregator()

	for _, result := range results {
		if result.Err != nil {
			catalog.Failed = append(catalog.Failed, result.Source.Name)
		}

		for _, o := range result.Records {
			all.Add(o)
		}

		if perSource && len(result.Records) > 0 {
			endpoints := endpoint.Aggregate(result.Records)
			catalog.Sources = append(catalog.Sources, SourceLists{
				Source:    result.Source,
				Lists:     endpoint.Categorize(endpoints),
				Endpoints: len(endpoints),
			})
		}
	}

	catalog.Lists = endpoint.Categorize(all.Endpoints())
	catalog.Endpoints = len(all.Endpoints())
	catalog.Stats = all.Stats()

	return catalog
}
