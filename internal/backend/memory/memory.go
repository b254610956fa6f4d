// Package memory provides an in-memory backend.SearchBackend fake used by
// tests, mirroring the teacher's practice of hand-written repository
// fakes rather than a mocking framework.
package memory

import (
	"context"
	"sync"

	"github.com/munin-search/autocomplete/internal/backend"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

// SearchFunc lets a test script the hits returned for a given call,
// keyed by call index, so orchestration tests can assert the prefix/fuzzy
// short-circuit property (spec §8 invariant 6).
type SearchFunc func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error)

// Backend is a scriptable, call-counting backend.SearchBackend.
type Backend struct {
	mu sync.Mutex

	SearchCalls int
	SearchFn    SearchFunc

	ExistingIndices map[string]bool

	Listed map[string][][]byte

	BulkIndexed []places.Place
	BulkErr     error

	ClusterStatus backend.ClusterStatus
	StatusErr     error

	ConfigureErr error
}

// New builds a Backend in which no index exists until a test adds it to
// ExistingIndices.
func New() *Backend {
	return &Backend{
		ExistingIndices: map[string]bool{},
		Listed:          map[string][][]byte{},
		ClusterStatus:   backend.ClusterStatus{Health: "green", Version: "test"},
	}
}

func (b *Backend) Search(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
	b.mu.Lock()
	b.SearchCalls++
	b.mu.Unlock()
	if b.SearchFn != nil {
		return b.SearchFn(ctx, indices, expr, from, size)
	}
	return nil, nil
}

func (b *Backend) Exists(ctx context.Context, indexName string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ExistingIndices == nil {
		return true
	}
	return b.ExistingIndices[indexName]
}

func (b *Backend) List(ctx context.Context, indexName string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		defer close(ch)
		for _, body := range b.Listed[indexName] {
			select {
			case ch <- body:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (b *Backend) BulkIndex(ctx context.Context, cfg backend.ContainerConfig, docs <-chan places.Place) error {
	if b.BulkErr != nil {
		return b.BulkErr
	}
	for doc := range docs {
		b.mu.Lock()
		b.BulkIndexed = append(b.BulkIndexed, doc)
		b.mu.Unlock()
	}
	return nil
}

func (b *Backend) Configure(ctx context.Context, kind backend.ConfigureKind, name string, mergedConfig map[string]interface{}) error {
	return b.ConfigureErr
}

func (b *Backend) Status(ctx context.Context) (backend.ClusterStatus, error) {
	return b.ClusterStatus, b.StatusErr
}

var _ backend.SearchBackend = (*Backend)(nil)
