package places

// PoiType identifies the category of a point of interest: an id plus a
// display name, e.g. ("amenity:restaurant", "Restaurant").
type PoiType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Poi is a point of interest enriched with its resolved address (if any)
// and administrative hierarchy.
type Poi struct {
	IDValue     string            `json:"id"`
	Name        string            `json:"name"`
	LabelStr    string            `json:"label"`
	CoordV      Coord             `json:"coord"`
	ApproxV     *Coord            `json:"approx_coord,omitempty"`
	WeightV     float64           `json:"weight"`
	Type        PoiType           `json:"poi_type"`
	Properties  map[string]string `json:"properties,omitempty"`
	Address     *Addr             `json:"address,omitempty"`
	AdminList   []*Admin          `json:"administrative_regions"`
	Zips        []string          `json:"zip_codes,omitempty"`
	Countries   []string          `json:"country_codes,omitempty"`
	Names       I18nNames         `json:"names,omitempty"`
	Labels      I18nNames         `json:"labels,omitempty"`

	distance *float64
}

var _ Place = (*Poi)(nil)

func (p *Poi) ID() string               { return p.IDValue }
func (p *Poi) DocType() DocType         { return DocTypePoi }
func (p *Poi) Label() string            { return p.LabelStr }
func (p *Poi) Coord() Coord             { return p.CoordV }
func (p *Poi) Weight() float64          { return p.WeightV }
func (p *Poi) ZipCodes() []string       { return p.Zips }
func (p *Poi) CountryCodes() []string   { return p.Countries }
func (p *Poi) Admins() []*Admin         { return p.AdminList }
func (p *Poi) Distance() *float64       { return p.distance }
func (p *Poi) SetDistance(m float64)    { p.distance = &m }
