package autocomplete

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munin-search/autocomplete/internal/backend"
	"github.com/munin-search/autocomplete/internal/backend/memory"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

func adminHit(t *testing.T, id, label string) backend.Hit {
	t.Helper()
	body, err := json.Marshal(places.Admin{IDValue: id, LabelStr: label})
	require.NoError(t, err)
	return backend.Hit{DocType: string(places.DocTypeAdmin), Body: body, Score: 1}
}

func TestAutocompleteEmptyIndexSetReturnsEmptyWithoutSearching(t *testing.T) {
	b := memory.New()
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "paris"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, b.SearchCalls)
}

func TestAutocompleteStopsAfterNonEmptyPrefix(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return []backend.Hit{adminHit(t, "admin:1", "Paris")}, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "paris"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin:1", got[0].ID())
	assert.Equal(t, 1, b.SearchCalls, "fuzzy must not run once prefix returned a hit")
}

func TestAutocompleteFallsBackToFuzzyWhenPrefixEmpty(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		if b.SearchCalls == 1 {
			return nil, nil
		}
		return []backend.Hit{adminHit(t, "admin:2", "Lyon")}, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "lyon"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin:2", got[0].ID())
	assert.Equal(t, 2, b.SearchCalls)
}

func TestAutocompleteFuzzyAlsoEmptyReturnsEmptyNotError(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return nil, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 2, b.SearchCalls)
}

func TestAutocompleteSearchErrorPropagates(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	wantErr := errors.New("boom")
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return nil, wantErr
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	_, err := o.Autocomplete(context.Background(), Request{Query: "paris"})
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestAutocompleteDropsUndecodableHits(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return []backend.Hit{
			{DocType: "bogus", Body: []byte(`{}`)},
			adminHit(t, "admin:3", "Nice"),
		}, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "nice"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "admin:3", got[0].ID())
}

func TestAutocompleteAttachesDistanceWhenFocusSet(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	body, err := json.Marshal(places.Admin{IDValue: "admin:5", LabelStr: "Paris", CoordV: places.Coord{Lon: 2.35, Lat: 48.86}})
	require.NoError(t, err)
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return []backend.Hit{{DocType: string(places.DocTypeAdmin), Body: body}}, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	focus := &places.Coord{Lon: 2.29, Lat: 48.86}
	got, err := o.Autocomplete(context.Background(), Request{Query: "paris", Focus: focus})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Distance())
	assert.InDelta(t, 4391, *got[0].Distance(), 50)
}

func TestAutocompleteLeavesDistanceNilWithoutFocus(t *testing.T) {
	b := memory.New()
	b.ExistingIndices["munin_geo_data"] = true
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		return []backend.Hit{adminHit(t, "admin:6", "Nice")}, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "nice"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Distance())
}

func TestAutocompleteAllDataBypassesExistsCheck(t *testing.T) {
	b := memory.New()
	b.SearchFn = func(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
		assert.Equal(t, []string{"munin"}, indices)
		return []backend.Hit{adminHit(t, "admin:4", "Berlin")}, nil
	}
	o := New(b, query.DefaultRankingSettings(), nil)

	got, err := o.Autocomplete(context.Background(), Request{Query: "berlin", AllData: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
}
