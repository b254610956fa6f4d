package query

// RankingSettings externalizes the tunable constants of the ranking
// expression (spec §4.3), resolving the Open Question in spec §9 about
// making the proximity-decay radius (and friends) configurable instead of
// hard-coded at the call site.
type RankingSettings struct {
	BoostAddr float64
	BoostAdmin float64
	BoostStop  float64

	BoostPrimaryMatch    float64
	BoostZipCodeMatch    float64
	BoostFuzzyPrefix     float64

	ProximityDecayKm    float64
	BoostProximity      float64
	BoostWeightFallback float64

	FuzzyMinimumShouldMatchPercent float64

	// ReverseGeocodeRadiusMeters is the search radius used by the POI
	// enrichment pipeline's reverse-geocode step (spec §4.5 step 3).
	// Resolves the "FIXME: put in configuration" Open Question in spec §9
	// by making the radius a tunable setting instead of a call-site literal.
	ReverseGeocodeRadiusMeters float64
}

// DefaultRankingSettings reproduces the constants in spec §4.3 verbatim.
func DefaultRankingSettings() RankingSettings {
	return RankingSettings{
		BoostAddr:  5000,
		BoostAdmin: 3000,
		BoostStop:  2000,

		BoostPrimaryMatch: 500,
		BoostZipCodeMatch: 100,
		BoostFuzzyPrefix:  1000,

		ProximityDecayKm:    50,
		BoostProximity:      1500,
		BoostWeightFallback: 500,

		FuzzyMinimumShouldMatchPercent: 45,

		ReverseGeocodeRadiusMeters: 50,
	}
}
