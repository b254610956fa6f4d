package query

import (
	"github.com/munin-search/autocomplete/internal/places"
)

// Build constructs the ranking expression for one autocomplete attempt
// (spec §4.3). q is the free-text query; matchType selects prefix or
// fuzzy; focus, if non-nil, biases ranking toward that coordinate; shape,
// if non-empty, restricts results to its (implicitly closed) polygon
// ring.
func Build(q string, matchType MatchType, focus *places.Coord, shape []places.Coord, settings RankingSettings) Expression {
	should := []M{
		termBoost("_type", string(places.DocTypeAddr), settings.BoostAddr),
		termBoost("_type", string(places.DocTypeAdmin), settings.BoostAdmin),
		termBoost("_type", string(places.DocTypeStop), settings.BoostStop),
		matchBoost(primaryMatchField(matchType), q, settings.BoostPrimaryMatch),
		matchBoost("zip_codes.prefix", q, settings.BoostZipCodeMatch),
	}

	// Fuzzy mode additionally searches the prefix index, with a boost
	// greater than the ngram match, so correctly-spelt tokens still rank
	// highest during a fuzzy fallback (spec §4.3).
	if matchType == Fuzzy {
		should = append(should, matchBoost("label.prefix", q, settings.BoostFuzzyPrefix))
	}

	if focus != nil {
		should = append(should, proximityFunctionScore(*focus, settings))
	} else {
		should = append(should, weightFunctionScore(settings))
	}

	scoring := M{"bool": M{"should": should}}

	must := []M{
		houseNumberCondition(q),
		crossFieldCondition(q, matchType, settings),
	}
	if len(shape) > 0 {
		must = append(must, geoPolygonFilter(shape))
	}
	filter := M{"bool": M{"must": must}}

	return M{
		"bool": M{
			"must":   []M{scoring},
			"filter": filter,
		},
	}
}

func primaryMatchField(matchType MatchType) string {
	if matchType == Fuzzy {
		return "label.ngram"
	}
	return "label.prefix"
}

func termBoost(field, value string, boost float64) M {
	return M{
		"term": M{
			field: M{"value": value, "boost": boost},
		},
	}
}

func matchBoost(field, q string, boost float64) M {
	return M{
		"match": M{
			field: M{"query": q, "boost": boost},
		},
	}
}

// proximityFunctionScore is the geographic prior used when a focus
// coordinate is available: an exponential-decay function over `coord`
// centred at the focus, multiplicative, boost 1500 (spec §4.3).
//
// The primary query here wraps no inner query, unlike the weight-based
// branch below which wraps match_all — an asymmetry inherited unchanged
// from the system this was distilled from (spec §9 Open Questions flags
// it; we preserve it rather than silently "fixing" it into symmetry).
func proximityFunctionScore(focus places.Coord, settings RankingSettings) M {
	return M{
		"function_score": M{
			"boost_mode": "multiply",
			"boost":      settings.BoostProximity,
			"functions": []M{
				{
					"exp": M{
						"coord": M{
							"origin": M{"lat": focus.Lat, "lon": focus.Lon},
							"scale":  distanceKm(settings.ProximityDecayKm),
						},
					},
				},
			},
		},
	}
}

// weightFunctionScore is the fallback prior used when no focus is given:
// a match-all query whose function-score factor is log1p(weight),
// multiplicative, boost 500 (spec §4.3).
func weightFunctionScore(settings RankingSettings) M {
	return M{
		"function_score": M{
			"query":      M{"match_all": M{}},
			"boost_mode": "multiply",
			"boost":      settings.BoostWeightFallback,
			"functions": []M{
				{
					"field_value_factor": M{
						"field":    "weight",
						"factor":   1,
						"modifier": "log1p",
					},
				},
			},
		},
	}
}

func distanceKm(km float64) string {
	return formatKm(km) + "km"
}

// houseNumberCondition accepts street/admin/POI documents, which lack a
// house_number field, while requiring any numeric token in the query to
// match the address's number (spec §4.3 Filter clause).
//
// It matches the whole of q against house_number, the way the system
// this was distilled from does; whether q also carries non-numeric
// tokens is left to the backend's analyser for that field, per spec §9
// Open Questions.
func houseNumberCondition(q string) M {
	return M{
		"bool": M{
			"should": []M{
				{"bool": M{"must_not": M{"exists": M{"field": "house_number"}}}},
				{"match": M{"house_number": q}},
			},
		},
	}
}

// crossFieldCondition requires the query's tokens to collectively appear
// across {label.prefix, zip_codes.prefix} — every token in Prefix mode,
// 45% of tokens in Fuzzy mode (spec §4.3 Filter clause).
func crossFieldCondition(q string, matchType MatchType, settings RankingSettings) M {
	multiMatch := M{
		"query":  q,
		"fields": []string{"label.prefix", "zip_codes.prefix"},
	}
	switch matchType {
	case Prefix:
		multiMatch["type"] = "cross_fields"
		multiMatch["operator"] = "and"
	case Fuzzy:
		multiMatch["minimum_should_match"] = formatPercent(settings.FuzzyMinimumShouldMatchPercent)
	}
	return M{"multi_match": multiMatch}
}

func geoPolygonFilter(shape []places.Coord) M {
	points := make([]M, 0, len(shape))
	for _, c := range shape {
		points = append(points, M{"lat": c.Lat, "lon": c.Lon})
	}
	return M{
		"geo_polygon": M{
			"coord": M{"points": points},
		},
	}
}
