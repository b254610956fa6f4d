// Package esclient implements the backend.SearchBackend port (C7) against
// an Elasticsearch-compatible HTTP API, using valyala/fasthttp as the
// transport the way the teacher's infrastructure clients use net/http —
// adapted here to fasthttp since that is the HTTP stack already present
// in the teacher's dependency graph as a fiber-indirect import, promoted
// to direct use for this purpose.
package esclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/backend"
	coreerrors "github.com/munin-search/autocomplete/internal/pkg/errors"
	"github.com/munin-search/autocomplete/internal/places"
	"github.com/munin-search/autocomplete/internal/query"
)

const scrollTTL = "1m"
const listPageSize = 500

// Client is a fasthttp-backed backend.SearchBackend implementation.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	logger     *zap.Logger
}

// New builds a Client pointed at baseURL (e.g. "http://localhost:9200").
// A nil logger falls back to zap.NewNop().
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &fasthttp.Client{
			MaxConnsPerHost: 128,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

var _ backend.SearchBackend = (*Client)(nil)

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*fasthttp.Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	var err error
	if ok {
		err = c.httpClient.DoDeadline(req, resp, deadline)
	} else {
		err = c.httpClient.Do(req, resp)
	}
	if err != nil {
		fasthttp.ReleaseResponse(resp)
		return nil, fmt.Errorf("%w: %s %s: %w", coreerrors.ErrConnection, method, path, err)
	}
	return resp, nil
}

type searchRequestBody struct {
	Query query.Expression `json:"query"`
	From  uint64           `json:"from"`
	Size  uint64           `json:"size"`
}

type searchResponseBody struct {
	Hits struct {
		Hits []struct {
			Type   string          `json:"_type"`
			Score  float64         `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search executes expr against the given indices (spec §4.6).
func (c *Client) Search(ctx context.Context, indices []string, expr query.Expression, from, size uint64) ([]backend.Hit, error) {
	reqBody, err := json.Marshal(searchRequestBody{Query: expr, From: from, Size: size})
	if err != nil {
		return nil, fmt.Errorf("esclient: marshal search request: %w", err)
	}

	path := "/" + strings.Join(indices, ",") + "/_search"
	resp, err := c.do(ctx, fasthttp.MethodPost, path, reqBody)
	if err != nil {
		return nil, err
	}
	defer fasthttp.ReleaseResponse(resp)

	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("%w: search returned status %d: %s", coreerrors.ErrQueryRejected, resp.StatusCode(), resp.Body())
	}

	var parsed searchResponseBody
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %w", coreerrors.ErrDecode, err)
	}

	hits := make([]backend.Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, backend.Hit{DocType: h.Type, Body: []byte(h.Source), Score: h.Score})
	}
	return hits, nil
}

// Exists reports whether indexName exists, via a HEAD request.
func (c *Client) Exists(ctx context.Context, indexName string) bool {
	resp, err := c.do(ctx, fasthttp.MethodHead, "/"+indexName, nil)
	if err != nil {
		c.logger.Warn("esclient: exists check failed", zap.String("index", indexName), zap.Error(err))
		return false
	}
	defer fasthttp.ReleaseResponse(resp)
	return resp.StatusCode() == fasthttp.StatusOK
}

type scrollResponseBody struct {
	ScrollID string `json:"_scroll_id"`
	Hits     struct {
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// List streams every document body in indexName using the scroll API,
// closing the returned channel once the scroll is exhausted or ctx is
// cancelled (spec §4.6).
func (c *Client) List(ctx context.Context, indexName string) (<-chan []byte, error) {
	out := make(chan []byte)

	initBody, err := json.Marshal(map[string]interface{}{"size": listPageSize, "query": map[string]interface{}{"match_all": map[string]interface{}{}}})
	if err != nil {
		return nil, fmt.Errorf("esclient: marshal scroll init: %w", err)
	}

	resp, err := c.do(ctx, fasthttp.MethodPost, "/"+indexName+"/_search?scroll="+scrollTTL, initBody)
	if err != nil {
		return nil, err
	}
	var page scrollResponseBody
	decodeErr := json.Unmarshal(resp.Body(), &page)
	fasthttp.ReleaseResponse(resp)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode scroll init: %w", coreerrors.ErrDecode, decodeErr)
	}

	go func() {
		defer close(out)
		scrollID := page.ScrollID
		for {
			for _, h := range page.Hits.Hits {
				select {
				case out <- []byte(h.Source):
				case <-ctx.Done():
					return
				}
			}
			if len(page.Hits.Hits) == 0 || scrollID == "" {
				return
			}

			scrollBody, _ := json.Marshal(map[string]interface{}{"scroll": scrollTTL, "scroll_id": scrollID})
			resp, err := c.do(ctx, fasthttp.MethodPost, "/_search/scroll", scrollBody)
			if err != nil {
				c.logger.Warn("esclient: scroll continuation failed", zap.String("index", indexName), zap.Error(err))
				return
			}
			var next scrollResponseBody
			err = json.Unmarshal(resp.Body(), &next)
			fasthttp.ReleaseResponse(resp)
			if err != nil {
				c.logger.Warn("esclient: scroll page undecodable", zap.Error(err))
				return
			}
			page = next
			scrollID = next.ScrollID
		}
	}()

	return out, nil
}

// BulkIndex drains docs and writes them via the _bulk NDJSON API (spec
// §4.6). A partial write fails the whole call.
func (c *Client) BulkIndex(ctx context.Context, cfg backend.ContainerConfig, docs <-chan places.Place) error {
	var buf bytes.Buffer
	count := 0
	for doc := range docs {
		action, err := json.Marshal(map[string]interface{}{
			"index": map[string]interface{}{"_index": cfg.IndexName, "_id": doc.ID()},
		})
		if err != nil {
			return fmt.Errorf("esclient: marshal bulk action: %w", err)
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("esclient: marshal bulk document %s: %w", doc.ID(), err)
		}
		buf.Write(action)
		buf.WriteByte('\n')
		buf.Write(body)
		buf.WriteByte('\n')
		count++
	}
	if count == 0 {
		return nil
	}

	resp, err := c.do(ctx, fasthttp.MethodPost, "/_bulk", buf.Bytes())
	if err != nil {
		return err
	}
	defer fasthttp.ReleaseResponse(resp)

	if resp.StatusCode() >= 400 {
		return fmt.Errorf("%w: bulk index returned status %d: %s", coreerrors.ErrQueryRejected, resp.StatusCode(), resp.Body())
	}

	var parsed struct {
		Errors bool `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return fmt.Errorf("%w: decode bulk response: %w", coreerrors.ErrDecode, err)
	}
	if parsed.Errors {
		return fmt.Errorf("esclient: bulk index reported per-item errors")
	}
	return nil
}

// Configure applies a merged template configuration, once per template
// file (spec §6 Template import surface).
func (c *Client) Configure(ctx context.Context, kind backend.ConfigureKind, name string, mergedConfig map[string]interface{}) error {
	body, err := json.Marshal(mergedConfig)
	if err != nil {
		return fmt.Errorf("%w: marshal template %s: %w", coreerrors.ErrConfigMerge, name, err)
	}

	var path string
	switch kind {
	case backend.ConfigureIndex:
		path = "/_index_template/" + name
	case backend.ConfigureComponent:
		path = "/_component_template/" + name
	default:
		return fmt.Errorf("%w: unknown configure kind %q", coreerrors.ErrConfigMerge, kind)
	}

	resp, err := c.do(ctx, fasthttp.MethodPut, path, body)
	if err != nil {
		return err
	}
	defer fasthttp.ReleaseResponse(resp)
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("%w: configure %s returned status %d: %s", coreerrors.ErrConfigMerge, name, resp.StatusCode(), resp.Body())
	}
	return nil
}

type healthResponseBody struct {
	Status string `json:"status"`
}

type rootResponseBody struct {
	Version struct {
		Number string `json:"number"`
	} `json:"version"`
}

// Status returns backend health and version, via two sub-requests (spec
// §4.6: "two kinds: health retrieval, version retrieval").
func (c *Client) Status(ctx context.Context) (backend.ClusterStatus, error) {
	healthResp, err := c.do(ctx, fasthttp.MethodGet, "/_cluster/health", nil)
	if err != nil {
		return backend.ClusterStatus{}, err
	}
	var health healthResponseBody
	healthErr := json.Unmarshal(healthResp.Body(), &health)
	fasthttp.ReleaseResponse(healthResp)
	if healthErr != nil {
		return backend.ClusterStatus{}, fmt.Errorf("%w: decode health: %w", coreerrors.ErrDecode, healthErr)
	}

	rootResp, err := c.do(ctx, fasthttp.MethodGet, "/", nil)
	if err != nil {
		return backend.ClusterStatus{}, err
	}
	var root rootResponseBody
	rootErr := json.Unmarshal(rootResp.Body(), &root)
	fasthttp.ReleaseResponse(rootResp)
	if rootErr != nil {
		return backend.ClusterStatus{}, fmt.Errorf("%w: decode version: %w", coreerrors.ErrDecode, rootErr)
	}

	return backend.ClusterStatus{Health: health.Status, Version: root.Version.Number}, nil
}
