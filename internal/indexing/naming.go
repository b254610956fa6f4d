// Package indexing resolves which physical backend indices to consult for
// a given autocomplete request (spec §4.2, C3 Index Naming).
package indexing

// Global and default index names (spec §6).
const (
	GlobalAlias  = "munin"
	GeoDataAlias = "munin_geo_data"
)

const stopAreaToken = "public_transport:stop_area"

// kindByToken maps a requested place-type token to the kind used in the
// physical index name `munin_<kind>`. Tokens not present in this table
// pass through unchanged (spec §4.2 table).
var kindByToken = map[string]string{
	"city":  "admin",
	"house": "addr",
}

func kindOf(token string) string {
	if kind, ok := kindByToken[token]; ok {
		return kind
	}
	return token
}

func indexNameForKind(kind string) string {
	return "munin_" + kind
}

// Exists reports whether a candidate index name actually exists on the
// backend. Implementations typically delegate to the backend port.
type Exists func(name string) bool

// Resolve computes the deterministic ordered list of physical index names
// to search, following the rules in spec §4.2:
//
//  1. allData short-circuits to ["munin"], no existence check.
//  2. Otherwise, if types is non-nil: map each non-stop-area token to
//     munin_<kind>; additionally emit the pt_dataset's stop index if the
//     stop-area token is present and a dataset is set.
//  3. Otherwise: emit munin_geo_data, plus the pt_dataset's stop index if
//     set.
//
// Every candidate from (2) and (3) is filtered through exists. The result
// may be empty, in which case the caller must short-circuit rather than
// fall back to a wildcard index.
func Resolve(allData bool, ptDatasetIndex string, types []string, exists Exists) []string {
	if allData {
		return []string{GlobalAlias}
	}

	var result []string
	push := func(name string) {
		if exists(name) {
			result = append(result, name)
		}
	}

	if types != nil {
		hasStopArea := false
		for _, token := range types {
			if token == stopAreaToken {
				hasStopArea = true
				continue
			}
			push(indexNameForKind(kindOf(token)))
		}
		if hasStopArea && ptDatasetIndex != "" {
			push(ptDatasetIndex)
		}
		return result
	}

	push(GeoDataAlias)
	if ptDatasetIndex != "" {
		push(ptDatasetIndex)
	}
	return result
}

// DatasetIndexName formats a public-transport dataset tag into its
// physical stop index name, e.g. "fr" -> "munin_stop_fr" (spec §6).
func DatasetIndexName(dataset string) string {
	if dataset == "" {
		return ""
	}
	return "munin_stop_" + dataset
}
