// Package docs Autocomplete Service API.
//
// Geographic autocomplete and place-indexing service: text search over
// administrative areas, streets, addresses, points of interest and public
// transport stops, with prefix-first/fuzzy-fallback ranking and POI
// reverse-geocode enrichment.
//
// Capabilities:
// - Prefix autocomplete with fuzzy fallback
// - Proximity- and weight-based ranking
// - Multi-type, multi-dataset index targeting
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
