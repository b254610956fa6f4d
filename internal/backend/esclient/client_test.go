package esclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munin-search/autocomplete/internal/backend"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

func TestSearchDecodesHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/munin_geo_data/_search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_type":"admin","_score":1.5,"_source":{"id":"admin:1","label":"Paris"}}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hits, err := c.Search(ctx, []string{"munin_geo_data"}, query.M{"match_all": query.M{}}, 0, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "admin", hits[0].DocType)
	assert.Equal(t, 1.5, hits[0].Score)
}

func TestSearchRejectedQueryReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"parse_exception"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Search(context.Background(), []string{"munin"}, query.M{}, 0, 10)
	require.Error(t, err)
}

func TestExistsReturnsTrueOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	assert.True(t, c.Exists(context.Background(), "munin"))
}

func TestExistsReturnsFalseOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	assert.False(t, c.Exists(context.Background(), "missing"))
}

func TestBulkIndexSendsNDJSONAndChecksErrors(t *testing.T) {
	var bodyReceived []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		bodyReceived = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":false}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	docs := make(chan places.Place, 1)
	docs <- &places.Admin{IDValue: "admin:1", LabelStr: "Paris"}
	close(docs)

	err := c.BulkIndex(context.Background(), backend.ContainerConfig{IndexName: "munin_admin"}, docs)
	require.NoError(t, err)
	assert.Contains(t, string(bodyReceived), "munin_admin")
}

func TestBulkIndexEmptyChannelNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	docs := make(chan places.Place)
	close(docs)

	err := c.BulkIndex(context.Background(), backend.ContainerConfig{IndexName: "munin_admin"}, docs)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestStatusCombinesHealthAndVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/_cluster/health":
			_, _ = w.Write([]byte(`{"status":"green"}`))
		case "/":
			_, _ = w.Write([]byte(`{"version":{"number":"8.11.0"}}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "green", status.Health)
	assert.Equal(t, "8.11.0", status.Version)
}

func TestConfigureUsesIndexOrComponentPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	err := c.Configure(context.Background(), backend.ConfigureComponent, "munin_geo", map[string]interface{}{"template": map[string]interface{}{}})
	require.NoError(t, err)
	assert.Equal(t, "/_component_template/munin_geo", gotPath)
}
