package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/munin-search/autocomplete/internal/places"
)

func TestFormatPoiLabelWithCityAndForeignCountry(t *testing.T) {
	city := &places.Admin{ZoneType: places.ZoneTypeCity, LabelStr: "Berlin"}
	country := &places.Admin{ZoneType: places.ZoneTypeCountry, LabelStr: "Germany"}

	got := FormatPoiLabel("Brandenburg Gate", []*places.Admin{city, country}, []string{"de"})
	assert.Equal(t, "Brandenburg Gate, Berlin, Germany", got)
}

func TestFormatPoiLabelOmitsCountrySuffixForFr(t *testing.T) {
	city := &places.Admin{ZoneType: places.ZoneTypeCity, LabelStr: "Paris"}

	got := FormatPoiLabel("Tour Eiffel", []*places.Admin{city}, []string{"fr"})
	assert.Equal(t, "Tour Eiffel, Paris", got)
}

func TestFormatPoiLabelNoAdminsIsJustName(t *testing.T) {
	got := FormatPoiLabel("Solo Cafe", nil, nil)
	assert.Equal(t, "Solo Cafe", got)
}

func TestFormatPoiLabelFallsBackToFinestAdminWhenNoCityZone(t *testing.T) {
	suburbless := &places.Admin{ZoneType: places.ZoneTypeState, LabelStr: "Bavaria"}

	got := FormatPoiLabel("Farmhouse", []*places.Admin{suburbless}, nil)
	assert.Equal(t, "Farmhouse, Bavaria", got)
}
