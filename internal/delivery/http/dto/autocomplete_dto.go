// Package dto carries the HTTP-facing request/response shapes for the
// delivery layer, validated with go-playground/validator the way the
// teacher's usecase/dto package does.
package dto

// AutocompleteRequest is the validated query-parameter shape of
// GET /api/v1/autocomplete.
type AutocompleteRequest struct {
	Query     string  `json:"q"`
	PtDataset string  `json:"pt_dataset"`
	AllData   bool    `json:"all_data"`
	Offset    uint64  `json:"offset" validate:"gte=0"`
	Limit     uint64  `json:"limit" validate:"gte=1,lte=50"`
	FocusLon  *float64 `json:"focus_lon" validate:"omitempty,gte=-180,lte=180"`
	FocusLat  *float64 `json:"focus_lat" validate:"omitempty,gte=-90,lte=90"`
	Types     []string `json:"types"`
	// Shape is the query-bounding polygon as a flat "lon,lat,lon,lat,..."
	// list (spec §6), at least 3 vertices when present.
	Shape []float64 `json:"shape"`
}

// PlaceResponse is the serialised shape of one ranked Place in the
// autocomplete response.
type PlaceResponse struct {
	ID           string   `json:"id"`
	DocType      string   `json:"type"`
	Label        string   `json:"label"`
	Lon          float64  `json:"lon"`
	Lat          float64  `json:"lat"`
	Weight       float64  `json:"weight"`
	ZipCodes     []string `json:"zip_codes,omitempty"`
	CountryCodes []string `json:"country_codes,omitempty"`
	DistanceM    *float64 `json:"distance_m,omitempty"`
}

// AutocompleteResponse wraps the ranked results.
type AutocompleteResponse struct {
	Results []PlaceResponse `json:"results"`
}
