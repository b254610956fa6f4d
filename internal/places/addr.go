package places

// Addr is a postal address: a house number owned by a Street. Its admin
// hierarchy (invariant 3) is always the street's, never its own.
type Addr struct {
	IDValue     string  `json:"id"`
	HouseNumber string  `json:"house_number"`
	StreetV     Street  `json:"street"`
	LabelStr    string  `json:"label"`
	CoordV      Coord   `json:"coord"`
	WeightV     float64 `json:"weight"`
	Zips        []string `json:"zip_codes,omitempty"`
	ApproxV     *Coord   `json:"approx_coord,omitempty"`

	distance *float64
}

var _ Place = (*Addr)(nil)

func (a *Addr) ID() string       { return a.IDValue }
func (a *Addr) DocType() DocType { return DocTypeAddr }
func (a *Addr) Label() string    { return a.LabelStr }
func (a *Addr) Coord() Coord     { return a.CoordV }
func (a *Addr) Weight() float64  { return a.WeightV }
func (a *Addr) ZipCodes() []string {
	if len(a.Zips) > 0 {
		return a.Zips
	}
	return a.StreetV.Zips
}
func (a *Addr) CountryCodes() []string  { return a.StreetV.CountryCodes() }
func (a *Addr) Admins() []*Admin        { return a.StreetV.Admins() }
func (a *Addr) Distance() *float64      { return a.distance }
func (a *Addr) SetDistance(m float64)   { a.distance = &m }
