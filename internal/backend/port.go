// Package backend defines the capability set the core requires from the
// search backend (spec §4.6, C7 Backend Port). The backend itself — HTTP
// transport, connection pooling, index/alias lifecycle — is treated as an
// opaque collaborator; this package only states the contract.
package backend

import (
	"context"

	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

// Hit is one result row from a search: the claimed doc type, the raw
// document body, and the backend-assigned relevance score. Hit order as
// returned by Search must be preserved end to end.
type Hit struct {
	DocType string
	Body    []byte
	Score   float64
}

// ContainerConfig names the physical index (or index template) that a
// bulk_index call writes into.
type ContainerConfig struct {
	IndexName string
	DocType   places.DocType
}

// ConfigureKind distinguishes the two template-import backend operations
// (spec §6 Template import surface).
type ConfigureKind string

const (
	ConfigureIndex     ConfigureKind = "index"
	ConfigureComponent ConfigureKind = "component"
)

// ClusterStatus reports the combination of backend health and version
// that `status()` returns (spec §4.6).
type ClusterStatus struct {
	Health  string
	Version string
}

// SearchBackend is the minimal capability set the core consumes from the
// search backend.
//
// Implementations must preserve hit order as delivered by the backend,
// and must treat every call's context deadline as authoritative: a
// caller-provided deadline that is exceeded yields a transport-class
// error, never a retry (spec §5 Timeouts).
type SearchBackend interface {
	// Search executes one query expression against the given indices,
	// returning hits in backend-assigned score order.
	Search(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]Hit, error)

	// Exists reports whether a physical index name exists on the backend.
	// Used by the index-naming resolver (C3) to filter candidate indices.
	Exists(ctx context.Context, indexName string) bool

	// List streams every raw document body stored in an index. The
	// channel is closed when the stream is exhausted or the context is
	// cancelled.
	List(ctx context.Context, indexName string) (<-chan []byte, error)

	// BulkIndex drains docs into the backend under the given container
	// configuration. A partial write is fatal: BulkIndex returns an error
	// and the caller must not assume any particular subset was committed.
	BulkIndex(ctx context.Context, cfg ContainerConfig, docs <-chan places.Place) error

	// Configure applies a merged template configuration to the backend,
	// once per template file (spec §6 Template import surface).
	Configure(ctx context.Context, kind ConfigureKind, name string, mergedConfig map[string]interface{}) error

	// Status returns the backend's health and version.
	Status(ctx context.Context) (ClusterStatus, error)
}
