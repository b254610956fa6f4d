// Package autocomplete implements the two-stage prefix/fuzzy search
// orchestrator (spec §4.4, C5): resolve indices, try a prefix query, fall
// back to fuzzy only if the prefix attempt came back empty, and decode
// hits into places.Place.
package autocomplete

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/backend"
	"github.com/munin-search/autocomplete/internal/indexing"
	"github.com/munin-search/autocomplete/internal/pkg/utils"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

const metersPerKm = 1000.0

// Request carries every parameter the orchestrator's contract names:
// autocomplete(q, pt_dataset, all_data, offset, limit, focus, shape, types).
type Request struct {
	Query      string
	PtDataset  string
	AllData    bool
	Offset     uint64
	Limit      uint64
	Focus      *places.Coord
	Shape      []places.Coord
	Types      []string
}

// Orchestrator wires C3 (index naming), C4 (query building) and C7
// (the backend port) into the contract described in spec §4.4.
type Orchestrator struct {
	Backend  backend.SearchBackend
	Settings query.RankingSettings
	Log      *zap.Logger
}

// New builds an Orchestrator. A nil logger falls back to zap.NewNop().
func New(b backend.SearchBackend, settings query.RankingSettings, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{Backend: b, Settings: settings, Log: log}
}

// Autocomplete runs the full algorithm in spec §4.4:
//  1. Resolve the index set via C3. If empty, return empty immediately.
//  2. Build and execute a Prefix expression.
//  3. If non-empty, decode and return it.
//  4. Otherwise build and execute a Fuzzy expression; decode and return
//     whatever it yields, possibly empty.
//
// A successful query with zero prefix hits is not an error — it triggers
// step 4. Transport/protocol errors from the backend propagate unchanged.
func (o *Orchestrator) Autocomplete(ctx context.Context, req Request) ([]places.Place, error) {
	datasetIndex := indexing.DatasetIndexName(req.PtDataset)
	indices := indexing.Resolve(req.AllData, datasetIndex, req.Types, func(name string) bool {
		return o.Backend.Exists(ctx, name)
	})
	if len(indices) == 0 {
		return nil, nil
	}

	prefixExpr := query.Build(req.Query, query.Prefix, req.Focus, req.Shape, o.Settings)
	prefixHits, err := o.Backend.Search(ctx, indices, prefixExpr, req.Offset, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: prefix search: %w", err)
	}
	if len(prefixHits) > 0 {
		return o.decodeHits(prefixHits, req.Focus), nil
	}

	fuzzyExpr := query.Build(req.Query, query.Fuzzy, req.Focus, req.Shape, o.Settings)
	fuzzyHits, err := o.Backend.Search(ctx, indices, fuzzyExpr, req.Offset, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: fuzzy search: %w", err)
	}
	return o.decodeHits(fuzzyHits, req.Focus), nil
}

// decodeHits decodes every hit via C1, logging and dropping any hit whose
// type tag is unrecognised or whose body fails to parse, rather than
// failing the whole request (spec §4.4 Decoding). When focus is set, each
// decoded place's distance from focus is attached in metres (spec §3:
// "distance — metres from query focus, populated post-query only").
func (o *Orchestrator) decodeHits(hits []backend.Hit, focus *places.Coord) []places.Place {
	out := make([]places.Place, 0, len(hits))
	for _, hit := range hits {
		place, err := places.Decode(hit.DocType, hit.Body)
		if err != nil {
			o.Log.Warn("dropping undecodable hit", zap.String("doc_type", hit.DocType), zap.Error(err))
			continue
		}
		if focus != nil {
			coord := place.Coord()
			km := utils.HaversineDistance(focus.Lat, focus.Lon, coord.Lat, coord.Lon)
			place.SetDistance(km * metersPerKm)
		}
		out = append(out, place)
	}
	return out
}
