package places

// Street carries the ordered admin hierarchy (finest to coarsest) that
// every Address built on top of it inherits. Multiple addresses on the
// same street share the same Admin handles (spec §9: shared references,
// DAG not a cycle).
type Street struct {
	IDValue   string    `json:"id"`
	Name      string    `json:"name"`
	LabelStr  string    `json:"label"`
	CoordV    Coord     `json:"coord"`
	WeightV   float64   `json:"weight"`
	Zips      []string  `json:"zip_codes,omitempty"`
	AdminList []*Admin  `json:"administrative_regions,omitempty"`
	ApproxV   *Coord    `json:"approx_coord,omitempty"`

	distance *float64
}

var _ Place = (*Street)(nil)

func (s *Street) ID() string       { return s.IDValue }
func (s *Street) DocType() DocType { return DocTypeStreet }
func (s *Street) Label() string    { return s.LabelStr }
func (s *Street) Coord() Coord     { return s.CoordV }
func (s *Street) Weight() float64  { return s.WeightV }
func (s *Street) ZipCodes() []string { return s.Zips }
func (s *Street) CountryCodes() []string {
	return FindCountryCodes(s.AdminList)
}
func (s *Street) Admins() []*Admin      { return s.AdminList }
func (s *Street) Distance() *float64    { return s.distance }
func (s *Street) SetDistance(m float64) { s.distance = &m }
