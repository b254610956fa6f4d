package places

// Stop is a public-transport stop, scoped to a dataset (a named grouping
// of stops for one transport network).
type Stop struct {
	IDValue   string   `json:"id"`
	LabelStr  string   `json:"label"`
	CoordV    Coord    `json:"coord"`
	ApproxV   *Coord   `json:"approx_coord,omitempty"`
	WeightV   float64  `json:"weight"`
	Mode      string   `json:"mode"` // bus, metro, tram, rail, ...
	Dataset   string   `json:"pt_dataset"`
	Zips      []string `json:"zip_codes,omitempty"`
	Countries []string `json:"country_codes,omitempty"`
	AdminList []*Admin `json:"administrative_regions,omitempty"`

	distance *float64
}

var _ Place = (*Stop)(nil)

func (s *Stop) ID() string             { return s.IDValue }
func (s *Stop) DocType() DocType       { return DocTypeStop }
func (s *Stop) Label() string          { return s.LabelStr }
func (s *Stop) Coord() Coord           { return s.CoordV }
func (s *Stop) Weight() float64        { return s.WeightV }
func (s *Stop) ZipCodes() []string     { return s.Zips }
func (s *Stop) CountryCodes() []string { return s.Countries }
func (s *Stop) Admins() []*Admin       { return s.AdminList }
func (s *Stop) Distance() *float64     { return s.distance }
func (s *Stop) SetDistance(m float64)  { s.distance = &m }
