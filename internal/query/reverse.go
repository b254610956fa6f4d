package query

import "strconv"

// BuildReverseQuery builds the reverse-geocode DSL used by the POI
// enrichment pipeline: a geo-distance filter around (lat, lon) at the
// given radius in metres (spec §4.5 step 3, §6 Reverse query DSL).
// Callers restrict doc types to {addr, street} and size to 1 when issuing
// the search; those are search-call parameters, not part of the
// expression itself.
func BuildReverseQuery(lat, lon, radiusMeters float64) Expression {
	return M{
		"bool": M{
			"filter": M{
				"geo_distance": M{
					"distance": strconv.FormatFloat(radiusMeters, 'f', -1, 64) + "m",
					"coord":    M{"lat": lat, "lon": lon},
				},
			},
		},
	}
}
