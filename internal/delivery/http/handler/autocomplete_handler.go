// Package handler implements the HTTP handlers exposing the core's
// operations, following the teacher's handler/usecase split.
package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/autocomplete"
	"github.com/munin-search/autocomplete/internal/delivery/http/dto"
	coreerrors "github.com/munin-search/autocomplete/internal/pkg/errors"
	"github.com/munin-search/autocomplete/internal/pkg/utils"
	"github.com/munin-search/autocomplete/internal/pkg/validator"
	"github.com/munin-search/autocomplete/internal/places"
)

// AutocompleteHandler exposes GET /api/v1/autocomplete, the sole HTTP
// entry point into C5 (spec §1, §4.4).
type AutocompleteHandler struct {
	orchestrator *autocomplete.Orchestrator
	logger       *zap.Logger
}

// NewAutocompleteHandler builds an AutocompleteHandler.
func NewAutocompleteHandler(o *autocomplete.Orchestrator, logger *zap.Logger) *AutocompleteHandler {
	return &AutocompleteHandler{orchestrator: o, logger: logger}
}

// Autocomplete handles GET /api/v1/autocomplete.
func (h *AutocompleteHandler) Autocomplete(c *fiber.Ctx) error {
	req := dto.AutocompleteRequest{
		Query:     c.Query("q"),
		PtDataset: c.Query("pt_dataset"),
		AllData:   c.QueryBool("all_data", false),
		Offset:    uint64(c.QueryInt("offset", 0)),
		Limit:     uint64(c.QueryInt("limit", 10)),
	}
	if types := c.Query("types"); types != "" {
		req.Types = strings.Split(types, ",")
	}
	if c.Query("focus_lon") != "" && c.Query("focus_lat") != "" {
		lon := c.QueryFloat("focus_lon", 0)
		lat := c.QueryFloat("focus_lat", 0)
		req.FocusLon = &lon
		req.FocusLat = &lat
	}
	if shape := c.Query("shape"); shape != "" {
		parsed, err := parseShape(shape)
		if err != nil {
			return utils.SendError(c, coreerrors.ErrInvalidRequest)
		}
		req.Shape = parsed
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, coreerrors.ErrInvalidRequest)
	}

	// An empty query yields an empty result set rather than an error
	// (spec §6).
	if req.Query == "" {
		return utils.SendSuccess(c, dto.AutocompleteResponse{Results: []dto.PlaceResponse{}}, &utils.Meta{Total: 0})
	}

	var focus *places.Coord
	if req.FocusLon != nil && req.FocusLat != nil {
		focus = &places.Coord{Lon: *req.FocusLon, Lat: *req.FocusLat}
	}

	results, err := h.orchestrator.Autocomplete(c.Context(), autocomplete.Request{
		Query:     req.Query,
		PtDataset: req.PtDataset,
		AllData:   req.AllData,
		Offset:    req.Offset,
		Limit:     req.Limit,
		Focus:     focus,
		Shape:     toShapeCoords(req.Shape),
		Types:     req.Types,
	})
	if err != nil {
		h.logger.Error("autocomplete failed", zap.Error(err))
		return utils.SendError(c, coreerrors.ErrBackendUnavailable)
	}

	return utils.SendSuccess(c, dto.AutocompleteResponse{Results: toPlaceResponses(results)}, &utils.Meta{Total: len(results)})
}

// parseShape parses a comma-separated "lon,lat,lon,lat,..." polygon with
// at least 3 vertices (spec §6 shape parameter).
func parseShape(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts)%2 != 0 || len(parts) < 6 {
		return nil, fmt.Errorf("shape: expected an even list of at least 6 coordinates, got %d", len(parts))
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("shape: invalid coordinate %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

// toShapeCoords converts a flat "lon,lat,lon,lat,..." list into vertices.
func toShapeCoords(flat []float64) []places.Coord {
	if len(flat) == 0 {
		return nil
	}
	out := make([]places.Coord, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, places.Coord{Lon: flat[i], Lat: flat[i+1]})
	}
	return out
}

func toPlaceResponses(places_ []places.Place) []dto.PlaceResponse {
	out := make([]dto.PlaceResponse, 0, len(places_))
	for _, p := range places_ {
		out = append(out, dto.PlaceResponse{
			ID:           p.ID(),
			DocType:      string(p.DocType()),
			Label:        p.Label(),
			Lon:          p.Coord().Lon,
			Lat:          p.Coord().Lat,
			Weight:       p.Weight(),
			ZipCodes:     p.ZipCodes(),
			CountryCodes: p.CountryCodes(),
			DistanceM:    p.Distance(),
		})
	}
	return out
}
