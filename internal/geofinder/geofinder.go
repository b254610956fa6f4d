// Package geofinder implements the in-memory, read-only point-in-polygon
// index over admin boundaries (spec §4.1, C2 Admin Geofinder).
package geofinder

import (
	"sort"

	"github.com/golang/geo/s2"

	"github.com/munin-search/autocomplete/internal/places"
)

// cellLevel is the S2 cell level used to bucket admin boundaries for fast
// candidate lookup, the same grid-index technique geobed's ReverseGeocode
// uses for its city index: coarse enough that most admin polygons are
// covered by a handful of cells, fine enough to keep buckets small.
const cellLevel = 6

type entry struct {
	admin *places.Admin
	loops []*s2.Loop
	area  float64
}

func (e *entry) contains(p s2.Point) bool {
	for _, loop := range e.loops {
		if loop.ContainsPoint(p) {
			return true
		}
	}
	return false
}

// AdminGeoFinder is a spatial index of admin polygons. It is built once
// from a finite stream of admins and is thereafter read-only and safe for
// concurrent queries (spec §5: shared, read-only after construction).
type AdminGeoFinder struct {
	entries []*entry
	index   map[s2.CellID][]*entry
}

// New builds an AdminGeoFinder from a slice of admins. Admins with no
// boundary are excluded, per spec §4.1.
func New(admins []*places.Admin) *AdminGeoFinder {
	gf := &AdminGeoFinder{
		index: make(map[s2.CellID][]*entry),
	}
	coverer := &s2.RegionCoverer{MinLevel: cellLevel, MaxLevel: cellLevel, MaxCells: 32}

	for _, admin := range admins {
		if admin.Boundary == nil || len(admin.Boundary.Rings) == 0 {
			continue
		}
		e := buildEntry(admin)
		if e == nil {
			continue
		}
		gf.entries = append(gf.entries, e)

		seen := make(map[s2.CellID]bool)
		for _, loop := range e.loops {
			for _, cell := range coverer.Covering(loop) {
				if seen[cell] {
					continue
				}
				seen[cell] = true
				gf.index[cell] = append(gf.index[cell], e)
			}
		}
	}
	return gf
}

// NewFromChan builds an AdminGeoFinder by draining a finite channel of
// admins. This is how the POI enrichment pipeline warms up the geofinder
// from a backend `list` stream (spec §4.5 step 1) without materialising
// anything beyond the admins slice.
func NewFromChan(admins <-chan *places.Admin) *AdminGeoFinder {
	var all []*places.Admin
	for a := range admins {
		all = append(all, a)
	}
	return New(all)
}

func buildEntry(admin *places.Admin) *entry {
	var loops []*s2.Loop
	var area float64
	for _, ring := range admin.Boundary.Rings {
		if len(ring) < 3 {
			continue
		}
		points := make([]s2.Point, 0, len(ring))
		for _, c := range ring {
			points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
		}
		loop := s2.LoopFromPoints(points)
		loops = append(loops, loop)
		area += loop.Area()
	}
	if len(loops) == 0 {
		return nil
	}
	return &entry{admin: admin, loops: loops, area: area}
}

// cellAndNeighbors returns the cell plus its edge and corner neighbors, so
// a query point near a polygon's covering-cell boundary still finds
// admins indexed under the adjoining cell.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)
	edges := cell.EdgeNeighbors()
	cells = append(cells, edges[:]...)

	seen := make(map[s2.CellID]bool, 9)
	for _, c := range cells {
		seen[c] = true
	}
	for _, edge := range edges {
		for _, corner := range edge.EdgeNeighbors() {
			if !seen[corner] {
				seen[corner] = true
				cells = append(cells, corner)
			}
		}
	}
	return cells
}

// Get returns the admin hierarchy containing the given point, ordered
// finest-containing-zone first, terminating at the coarsest enclosing
// admin. The list is empty when the point lies outside all known admins
// (spec §4.1).
func (gf *AdminGeoFinder) Get(lon, lat float64) []*places.Admin {
	ll := s2.LatLngFromDegrees(lat, lon)
	point := s2.PointFromLatLng(ll)
	cell := s2.CellIDFromLatLng(ll).Parent(cellLevel)

	seen := make(map[*entry]bool)
	var candidates []*entry
	for _, c := range cellAndNeighbors(cell) {
		for _, e := range gf.index[c] {
			if seen[e] {
				continue
			}
			seen[e] = true
			candidates = append(candidates, e)
		}
	}

	var hits []*entry
	for _, e := range candidates {
		if e.contains(point) {
			hits = append(hits, e)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].area < hits[j].area
	})

	result := make([]*places.Admin, len(hits))
	for i, e := range hits {
		result[i] = e.admin
	}
	return result
}

// Len reports how many admins carry a boundary and are indexed.
func (gf *AdminGeoFinder) Len() int {
	return len(gf.entries)
}
