// Package query builds the ranking expression the autocomplete
// orchestrator and the POI enrichment pipeline send to the search
// backend (spec §4.3, C4 Query Builder).
package query

// M is a JSON object clause in the backend's query DSL. The query builder
// composes expressions out of these rather than a closed set of typed
// clause structs, mirroring how every Elasticsearch-family Go client
// represents a query tree: a nested map that marshals to JSON as-is.
type M map[string]interface{}

// Expression is the top-level structured query sent to SearchBackend.Search.
type Expression = M

// MatchType selects between the two autocomplete stages (spec §4.3, §4.4).
type MatchType int

const (
	Prefix MatchType = iota
	Fuzzy
)

func (m MatchType) String() string {
	if m == Fuzzy {
		return "fuzzy"
	}
	return "prefix"
}
