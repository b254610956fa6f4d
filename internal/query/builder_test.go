package query

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munin-search/autocomplete/internal/places"
)

func countGeoPolygon(t *testing.T, expr Expression) int {
	t.Helper()
	blob, err := json.Marshal(expr)
	require.NoError(t, err)
	return strings.Count(string(blob), `"geo_polygon"`)
}

// Invariant 4: the filter clause contains exactly one geo-polygon
// sub-clause iff shape was supplied.
func TestBuildGeoPolygonPresenceMatchesShape(t *testing.T) {
	settings := DefaultRankingSettings()

	noShape := Build("paris", Prefix, nil, nil, settings)
	assert.Equal(t, 0, countGeoPolygon(t, noShape))

	shape := []places.Coord{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}}
	withShape := Build("paris", Prefix, nil, shape, settings)
	assert.Equal(t, 1, countGeoPolygon(t, withShape))
}

// Invariant 5: Prefix mode never references label.ngram; Fuzzy mode
// references both label.ngram and label.prefix scoring clauses.
func TestBuildLabelFieldsByMatchType(t *testing.T) {
	settings := DefaultRankingSettings()

	prefixBlob := marshal(t, Build("rue hector malot", Prefix, nil, nil, settings))
	assert.NotContains(t, prefixBlob, "label.ngram")
	assert.Contains(t, prefixBlob, "label.prefix")

	fuzzyBlob := marshal(t, Build("rue hector malot", Fuzzy, nil, nil, settings))
	assert.Contains(t, fuzzyBlob, "label.ngram")
	assert.Contains(t, fuzzyBlob, "label.prefix")
}

func TestBuildFocusUsesProximityDecayNotWeight(t *testing.T) {
	settings := DefaultRankingSettings()
	focus := places.Coord{Lon: 2.35, Lat: 48.85}

	blob := marshal(t, Build("paris", Prefix, &focus, nil, settings))
	assert.Contains(t, blob, `"exp"`)
	assert.NotContains(t, blob, "field_value_factor")
}

func TestBuildNoFocusUsesWeightFallback(t *testing.T) {
	settings := DefaultRankingSettings()

	blob := marshal(t, Build("paris", Prefix, nil, nil, settings))
	assert.Contains(t, blob, "field_value_factor")
	assert.Contains(t, blob, "log1p")
	assert.NotContains(t, blob, `"exp"`)
}

func TestBuildCrossFieldConditionDiffersByMode(t *testing.T) {
	settings := DefaultRankingSettings()

	prefixBlob := marshal(t, Build("20 rue hector malot 75012", Prefix, nil, nil, settings))
	assert.Contains(t, prefixBlob, "cross_fields")
	assert.Contains(t, prefixBlob, `"and"`)

	fuzzyBlob := marshal(t, Build("20 rue hector malot 75012", Fuzzy, nil, nil, settings))
	assert.Contains(t, fuzzyBlob, "minimum_should_match")
	assert.Contains(t, fuzzyBlob, "45")
}

func TestBuildReverseQueryShape(t *testing.T) {
	expr := BuildReverseQuery(48.85, 2.35, 50)
	blob := marshal(t, expr)
	assert.Contains(t, blob, `"50m"`)
	assert.Contains(t, blob, "geo_distance")
}

func marshal(t *testing.T, expr Expression) string {
	t.Helper()
	blob, err := json.Marshal(expr)
	require.NoError(t, err)
	return string(blob)
}
