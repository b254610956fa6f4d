package places

// ZoneType classifies an administrative zone by its place in the
// hierarchy: country, state, city, district, etc.
type ZoneType string

const (
	ZoneTypeCountry    ZoneType = "country"
	ZoneTypeState      ZoneType = "state"
	ZoneTypeCity       ZoneType = "city"
	ZoneTypeSuburb     ZoneType = "suburb"
	ZoneTypeCityDistrict ZoneType = "city_district"
	ZoneTypeUnknown    ZoneType = ""
)

// Boundary is a set of closed polygon rings, each expressed as (lon, lat)
// vertices. Each ring is implicitly closed: the caller need not repeat the
// first vertex as the last.
type Boundary struct {
	Rings [][]Coord `json:"rings"`
}

// Admin is an administrative zone: country, region, city, district, with
// a polygonal boundary. Handles are shared: multiple places reference the
// same Admin concurrently and it is read-only after construction.
type Admin struct {
	IDValue   string    `json:"id"`
	ZoneType  ZoneType  `json:"zone_type"`
	LabelStr  string    `json:"label"`
	Names     I18nNames `json:"names,omitempty"`
	Labels    I18nNames `json:"labels,omitempty"`
	CoordV    Coord     `json:"coord"`
	WeightV   float64   `json:"weight"`
	Zips      []string  `json:"zip_codes,omitempty"`
	Countries []string  `json:"country_codes,omitempty"`
	Codes     []Code    `json:"codes,omitempty"`
	Boundary  *Boundary `json:"boundary,omitempty"`
	ApproxV   *Coord    `json:"approx_coord,omitempty"`

	distance *float64
}

var _ Place = (*Admin)(nil)

func (a *Admin) ID() string             { return a.IDValue }
func (a *Admin) DocType() DocType       { return DocTypeAdmin }
func (a *Admin) Label() string          { return a.LabelStr }
func (a *Admin) Coord() Coord           { return a.CoordV }
func (a *Admin) Weight() float64        { return a.WeightV }
func (a *Admin) ZipCodes() []string     { return a.Zips }
func (a *Admin) CountryCodes() []string { return a.Countries }
func (a *Admin) Admins() []*Admin       { return nil }
func (a *Admin) Distance() *float64     { return a.distance }
func (a *Admin) SetDistance(m float64)  { a.distance = &m }

// IsCity reports whether this admin represents a city-level zone. Used by
// the POI enrichment pipeline to pick the canonical weight (spec §4.5
// step 6 and invariant 5).
func (a *Admin) IsCity() bool {
	return a.ZoneType == ZoneTypeCity
}

// FindCountryCodes returns the finest non-empty CountryCodes list among
// the given admins, walking from index 0 (finest) to the coarsest. This
// implements the "finest non-empty country_codes list wins" rule used
// when composing POI labels (spec §4.5 step 5).
func FindCountryCodes(admins []*Admin) []string {
	for _, a := range admins {
		if len(a.Countries) > 0 {
			return a.Countries
		}
	}
	return nil
}
