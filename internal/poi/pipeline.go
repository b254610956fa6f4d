package poi

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/backend"
	"github.com/munin-search/autocomplete/internal/geofinder"
	"github.com/munin-search/autocomplete/internal/labels"
	coreerrors "github.com/munin-search/autocomplete/internal/pkg/errors"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

// DefaultConcurrency is the bounded in-flight cap on reverse-geocode
// tasks (spec §4.5: "pipelined with bounded in-flight concurrency of 8").
const DefaultConcurrency = 8

// AdminIndexName is the physical index the admin warm-up step streams
// from (spec §6: munin_geo_data is the default geographic alias).
const AdminIndexName = "munin_geo_data"

// PoiIndexName is the physical index the pipeline bulk-indexes enriched
// POIs into (spec §4.2 table: the poi token maps to munin_poi).
const PoiIndexName = "munin_poi"

// Pipeline runs the POI enrichment algorithm in spec §4.5 end to end:
// admin warm-up, per-POI enrichment with bounded concurrency, and a
// final bulk_index of the enriched stream.
type Pipeline struct {
	Backend     backend.SearchBackend
	Types       *TypeDictionary
	Settings    query.RankingSettings
	Concurrency int
	Log         *zap.Logger
}

// New builds a Pipeline. A zero Concurrency defaults to
// DefaultConcurrency; a nil logger falls back to zap.NewNop().
func New(b backend.SearchBackend, types *TypeDictionary, settings query.RankingSettings, concurrency int, log *zap.Logger) *Pipeline {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{Backend: b, Types: types, Settings: settings, Concurrency: concurrency, Log: log}
}

// warmUpAdmins streams every admin from AdminIndexName into a fresh
// geofinder (spec §4.5 step 1). If the backend holds none, it logs a
// warning and returns an empty geofinder rather than failing the run.
func (p *Pipeline) warmUpAdmins(ctx context.Context) (*geofinder.AdminGeoFinder, error) {
	bodies, err := p.Backend.List(ctx, AdminIndexName)
	if err != nil {
		return nil, fmt.Errorf("poi: admin warm-up: %w: %w", coreerrors.ErrConnection, err)
	}

	admins := make(chan *places.Admin)
	go func() {
		defer close(admins)
		for body := range bodies {
			place, err := places.Decode(string(places.DocTypeAdmin), body)
			if err != nil {
				p.Log.Warn("dropping undecodable admin during warm-up", zap.Error(err))
				continue
			}
			admin, ok := place.(*places.Admin)
			if !ok {
				continue
			}
			select {
			case admins <- admin:
			case <-ctx.Done():
				return
			}
		}
	}()

	finder := geofinder.NewFromChan(admins)
	if finder.Len() == 0 {
		p.Log.Warn("admin warm-up yielded no admins; geofinder fallback will never resolve")
	}
	return finder, nil
}

// Run executes the full pipeline: admin warm-up, bounded-concurrency
// enrichment of every item from input, and a single bulk_index call
// against the backend with the successfully enriched POIs. It returns
// the count of POIs dropped by a per-record failure alongside any fatal
// (non-per-record) error.
func (p *Pipeline) Run(ctx context.Context, input <-chan RawPoi) (dropped int, err error) {
	finder, err := p.warmUpAdmins(ctx)
	if err != nil {
		return 0, err
	}

	out := make(chan places.Place)
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.Concurrency)

	var mu sync.Mutex
	var droppedCount int

	go func() {
		defer close(out)
		for raw := range input {
			sem <- struct{}{}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()

				poi, err := p.enrich(ctx, raw, finder)
				if err != nil {
					p.Log.Warn("dropping poi", zap.String("id", raw.ID), zap.Error(err))
					mu.Lock()
					droppedCount++
					mu.Unlock()
					return
				}
				select {
				case out <- poi:
				case <-ctx.Done():
				}
			}()
		}
		wg.Wait()
	}()

	bulkErr := p.Backend.BulkIndex(ctx, backend.ContainerConfig{IndexName: PoiIndexName, DocType: places.DocTypePoi}, out)

	mu.Lock()
	droppedCount2 := droppedCount
	mu.Unlock()

	if bulkErr != nil {
		return droppedCount2, fmt.Errorf("poi: bulk index: %w", bulkErr)
	}
	return droppedCount2, nil
}

// enrich runs steps 2-6 of spec §4.5 for a single raw POI, returning the
// fully composed places.Poi ready for indexing.
func (p *Pipeline) enrich(ctx context.Context, raw RawPoi, finder *geofinder.AdminGeoFinder) (*places.Poi, error) {
	poiType, ok := p.Types.Lookup(raw.PoiTypeID)
	if !ok {
		return nil, fmt.Errorf("poi %s: %w: %s", raw.ID, coreerrors.ErrUnrecognizedPoiType, raw.PoiTypeID)
	}

	reverseGeocoded := p.reverseGeocode(ctx, raw)

	var admins []*places.Admin
	if reverseGeocoded != nil {
		admins = reverseGeocoded.Admins()
	}
	if len(admins) == 0 {
		admins = finder.Get(raw.Coord.Lon, raw.Coord.Lat)
	}
	if len(admins) == 0 {
		return nil, fmt.Errorf("poi %s: %w", raw.ID, coreerrors.ErrNoAdminFound)
	}

	var addr *places.Addr
	if a, ok := reverseGeocoded.(*places.Addr); ok {
		addr = a
	}

	countryCodes := places.FindCountryCodes(admins)
	label := labels.FormatPoiLabel(raw.Name, admins, countryCodes)
	weight := cityWeight(admins)

	return &places.Poi{
		IDValue:    places.NormalizeID("poi", raw.ID),
		Name:       raw.Name,
		LabelStr:   label,
		CoordV:     raw.Coord,
		ApproxV:    &raw.Coord,
		WeightV:    weight,
		Type:       poiType,
		Properties: raw.Properties,
		Address:    addr,
		AdminList:  admins,
		Countries:  countryCodes,
	}, nil
}

// reverseGeocode issues the backend search described in spec §4.5 step 3
// over both street and addr doc types, returning whichever place was
// found so its admin hierarchy can be reused regardless of kind (only the
// POI's embedded address field is Addr-specific). A failure or empty
// result is not fatal to the POI: it simply proceeds without one.
func (p *Pipeline) reverseGeocode(ctx context.Context, raw RawPoi) places.Place {
	expr := query.BuildReverseQuery(raw.Coord.Lat, raw.Coord.Lon, p.Settings.ReverseGeocodeRadiusMeters)
	hits, err := p.Backend.Search(ctx, []string{"munin_" + string(places.DocTypeStreet), "munin_" + string(places.DocTypeAddr)}, expr, 0, 1)
	if err != nil {
		p.Log.Warn("reverse geocode failed", zap.String("poi_id", raw.ID), zap.Error(err))
		return nil
	}
	if len(hits) == 0 {
		return nil
	}

	hit := hits[0]
	place, err := places.Decode(hit.DocType, hit.Body)
	if err != nil {
		p.Log.Warn("reverse geocode hit undecodable", zap.String("poi_id", raw.ID), zap.Error(err))
		return nil
	}
	return place
}

// cityWeight returns the weight of the first admin flagged as a city, or
// 0.0 if none (spec §4.5 step 6).
func cityWeight(admins []*places.Admin) float64 {
	for _, a := range admins {
		if a.IsCity() {
			return a.WeightV
		}
	}
	return 0.0
}
