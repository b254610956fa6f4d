package poi

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munin-search/autocomplete/internal/backend"
	"github.com/munin-search/autocomplete/internal/backend/memory"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

func parisAdmin(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(places.Admin{
		IDValue:   "admin:paris",
		ZoneType:  places.ZoneTypeCity,
		LabelStr:  "Paris",
		WeightV:   0.9,
		Countries: []string{"fr"},
		Boundary: &places.Boundary{Rings: [][]places.Coord{{
			{Lon: 2.2, Lat: 48.8}, {Lon: 2.5, Lat: 48.8}, {Lon: 2.5, Lat: 48.9}, {Lon: 2.2, Lat: 48.9},
		}}},
	})
	require.NoError(t, err)
	return body
}

func newTestPipeline(t *testing.T, b *memory.Backend) *Pipeline {
	t.Helper()
	dict := NewTypeDictionary([]places.PoiType{{ID: "amenity:cafe", Name: "Cafe"}})
	return New(b, dict, query.DefaultRankingSettings(), 2, nil)
}

func TestRunEnrichesAndBulkIndexes(t *testing.T) {
	b := memory.New()
	b.Listed[AdminIndexName] = [][]byte{parisAdmin(t)}
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return nil, nil // no reverse-geocode hit; fall back to geofinder
	}

	p := newTestPipeline(t, b)
	input := make(chan RawPoi, 1)
	input <- RawPoi{ID: "osm:1", Name: "Cafe de Flore", Coord: places.Coord{Lon: 2.3, Lat: 48.85}, PoiTypeID: "amenity:cafe"}
	close(input)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	dropped, err := p.Run(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, b.BulkIndexed, 1)

	poi, ok := b.BulkIndexed[0].(*places.Poi)
	require.True(t, ok)
	assert.Equal(t, "poi:osm:1", poi.ID())
	assert.Contains(t, poi.Label(), "Cafe de Flore")
	assert.Contains(t, poi.Label(), "Paris")
	assert.Equal(t, 0.9, poi.Weight())
}

func TestRunDropsUnrecognizedPoiType(t *testing.T) {
	b := memory.New()
	b.Listed[AdminIndexName] = [][]byte{parisAdmin(t)}

	p := newTestPipeline(t, b)
	input := make(chan RawPoi, 1)
	input <- RawPoi{ID: "osm:2", Name: "Mystery Place", Coord: places.Coord{Lon: 2.3, Lat: 48.85}, PoiTypeID: "unknown:type"}
	close(input)

	dropped, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Empty(t, b.BulkIndexed)
}

func TestRunDropsPoiWithNoAdminFound(t *testing.T) {
	b := memory.New() // no admins warmed up at all

	p := newTestPipeline(t, b)
	input := make(chan RawPoi, 1)
	input <- RawPoi{ID: "osm:3", Name: "Nowhere Cafe", Coord: places.Coord{Lon: 40, Lat: 40}, PoiTypeID: "amenity:cafe"}
	close(input)

	dropped, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Empty(t, b.BulkIndexed)
}

func TestRunUsesAddressAdminsWhenReverseGeocodeSucceeds(t *testing.T) {
	b := memory.New()
	b.Listed[AdminIndexName] = [][]byte{parisAdmin(t)}

	street := places.Street{
		IDValue: "street:1",
		Name:    "Rue de Rivoli",
		AdminList: []*places.Admin{{
			IDValue:   "admin:lyon",
			ZoneType:  places.ZoneTypeCity,
			LabelStr:  "Lyon",
			WeightV:   0.5,
			Countries: []string{"fr"},
		}},
	}
	addrBody, err := json.Marshal(places.Addr{IDValue: "addr:1", StreetV: street, LabelStr: "1 Rue de Rivoli"})
	require.NoError(t, err)

	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return []backend.Hit{{DocType: string(places.DocTypeAddr), Body: addrBody}}, nil
	}

	p := newTestPipeline(t, b)
	input := make(chan RawPoi, 1)
	input <- RawPoi{ID: "osm:4", Name: "Hotel de Ville", Coord: places.Coord{Lon: 2.3, Lat: 48.85}, PoiTypeID: "amenity:cafe"}
	close(input)

	dropped, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, b.BulkIndexed, 1)

	poi := b.BulkIndexed[0].(*places.Poi)
	assert.Equal(t, 0.5, poi.Weight())
	assert.Contains(t, poi.Label(), "Lyon")
}

func TestRunUsesStreetAdminsWhenReverseGeocodeHitsStreet(t *testing.T) {
	b := memory.New()
	b.Listed[AdminIndexName] = [][]byte{parisAdmin(t)}

	street := places.Street{
		IDValue: "street:2",
		Name:    "Rue Victor Hugo",
		AdminList: []*places.Admin{{
			IDValue:   "admin:lyon",
			ZoneType:  places.ZoneTypeCity,
			LabelStr:  "Lyon",
			WeightV:   0.5,
			Countries: []string{"fr"},
		}},
	}
	streetBody, err := json.Marshal(street)
	require.NoError(t, err)

	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return []backend.Hit{{DocType: string(places.DocTypeStreet), Body: streetBody}}, nil
	}

	p := newTestPipeline(t, b)
	input := make(chan RawPoi, 1)
	input <- RawPoi{ID: "osm:5", Name: "Kiosque", Coord: places.Coord{Lon: 2.3, Lat: 48.85}, PoiTypeID: "amenity:cafe"}
	close(input)

	dropped, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	require.Len(t, b.BulkIndexed, 1)

	poi := b.BulkIndexed[0].(*places.Poi)
	assert.Equal(t, 0.5, poi.Weight())
	assert.Contains(t, poi.Label(), "Lyon")
	assert.Nil(t, poi.Address, "a street hit must not populate the POI's Addr-specific address field")
}

func TestTypeDictionaryLookup(t *testing.T) {
	dict := NewTypeDictionary([]places.PoiType{{ID: "amenity:cafe", Name: "Cafe"}})

	got, ok := dict.Lookup("amenity:cafe")
	require.True(t, ok)
	assert.Equal(t, "Cafe", got.Name)

	_, ok = dict.Lookup("missing")
	assert.False(t, ok)
}
