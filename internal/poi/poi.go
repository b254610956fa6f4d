// Package poi implements the POI enrichment pipeline (spec §4.5, C6):
// admin warm-up, POI-type resolution, reverse geocoding, admin
// resolution, label composition, weight selection, and emission to the
// backend's bulk indexer.
package poi

import (
	"github.com/munin-search/autocomplete/internal/places"
)

// RawPoi is one input record from the upstream POI producer: id, name,
// coordinate, poi-type id and free-form properties (spec §4.5 Inputs).
type RawPoi struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Coord      places.Coord      `json:"coord"`
	PoiTypeID  string            `json:"poi_type_id"`
	Properties map[string]string `json:"properties,omitempty"`
}

// TypeDictionary resolves a poi_type_id to its canonical PoiType. It is
// immutable after construction and safely shared across every pipeline
// task (spec §5 Shared resources).
type TypeDictionary struct {
	byID map[string]places.PoiType
}

// NewTypeDictionary builds a dictionary from the known POI types.
func NewTypeDictionary(types []places.PoiType) *TypeDictionary {
	d := &TypeDictionary{byID: make(map[string]places.PoiType, len(types))}
	for _, t := range types {
		d.byID[t.ID] = t
	}
	return d
}

// Lookup returns the PoiType for id, or false if it is not recognised.
func (d *TypeDictionary) Lookup(id string) (places.PoiType, bool) {
	t, ok := d.byID[id]
	return t, ok
}
