package poi

import "github.com/munin-search/autocomplete/internal/places"

// DefaultTypes seeds the TypeDictionary with the OSM amenity/shop/leisure
// categories the teacher's POI repository already groups PoiTypes by
// (category/subcategory), given a narrower id format of "category:subcategory".
func DefaultTypes() []places.PoiType {
	return []places.PoiType{
		{ID: "amenity:restaurant", Name: "Restaurant"},
		{ID: "amenity:cafe", Name: "Cafe"},
		{ID: "amenity:bar", Name: "Bar"},
		{ID: "amenity:pharmacy", Name: "Pharmacy"},
		{ID: "amenity:hospital", Name: "Hospital"},
		{ID: "amenity:school", Name: "School"},
		{ID: "amenity:bank", Name: "Bank"},
		{ID: "amenity:fuel", Name: "Gas station"},
		{ID: "amenity:parking", Name: "Parking"},
		{ID: "amenity:post_office", Name: "Post office"},
		{ID: "shop:supermarket", Name: "Supermarket"},
		{ID: "shop:bakery", Name: "Bakery"},
		{ID: "shop:clothes", Name: "Clothing store"},
		{ID: "shop:convenience", Name: "Convenience store"},
		{ID: "leisure:park", Name: "Park"},
		{ID: "leisure:fitness_centre", Name: "Gym"},
		{ID: "tourism:hotel", Name: "Hotel"},
		{ID: "tourism:museum", Name: "Museum"},
		{ID: "tourism:attraction", Name: "Attraction"},
	}
}
