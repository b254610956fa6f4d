// Package labels composes the human-facing display string used by
// indexed places, grounded on the POI label composition step described in
// spec §4.5 step 5.
package labels

import (
	"strings"

	"github.com/munin-search/autocomplete/internal/places"
)

// FormatPoiLabel builds a POI's label from its name and admin hierarchy:
// "<name>, <finest city-or-suburb label>, <country label>" when one is
// available, falling back gracefully as the hierarchy thins out. The
// country suffix is omitted for the country_codes' primary jurisdiction
// ("fr"), matching the convention that a label already implicitly local
// to its own country does not repeat the obvious.
func FormatPoiLabel(name string, admins []*places.Admin, countryCodes []string) string {
	parts := []string{name}

	if cityLabel := finestCityLabel(admins); cityLabel != "" {
		parts = append(parts, cityLabel)
	}

	if countryLabel := countryLabel(admins, countryCodes); countryLabel != "" {
		parts = append(parts, countryLabel)
	}

	return strings.Join(parts, ", ")
}

func finestCityLabel(admins []*places.Admin) string {
	for _, a := range admins {
		if a.ZoneType == places.ZoneTypeCity || a.ZoneType == places.ZoneTypeCityDistrict || a.ZoneType == places.ZoneTypeSuburb {
			return a.LabelStr
		}
	}
	if len(admins) > 0 {
		return admins[0].LabelStr
	}
	return ""
}

func countryLabel(admins []*places.Admin, countryCodes []string) string {
	if len(countryCodes) == 0 || strings.EqualFold(countryCodes[0], "fr") {
		return ""
	}
	for _, a := range admins {
		if a.ZoneType == places.ZoneTypeCountry {
			return a.LabelStr
		}
	}
	return ""
}
