// Package client is a Go consumer of the catalog HTTP API.
//
// The client prefers the paginated query contract and degrades to mirror
// mode against servers that only expose the bare collection: the full
// collection is fetched and the filter, search, sort, and pagination
// pipeline runs locally with the same semantics the server applies.
// Mirror mode sticks once detected, so later queries skip the probe.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ruchirachamara/assessment/pkg/models"
	"github.com/ruchirachamara/assessment/pkg/query"
)

// DefaultLimit is the page size used when a query does not set one. The
// browsing UI shows twelve cards per page, so the client default differs
// from the server's.
const DefaultLimit = 12

// APIError carries a problem+json error response from the server.
type APIError struct {
	Status int
	Title  string
	Detail string
}

func (e *APIError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("catalogd: status %d: %s", e.Status, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("catalogd: status %d: %s", e.Status, e.Title)
	default:
		return fmt.Sprintf("catalogd: status %d", e.Status)
	}
}

// ItemDraft is the payload for creating an item. Price is a pointer so a
// zero price survives the trip; the server rejects a nil price.
type ItemDraft struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client talks to a catalog server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	legacy bool
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Legacy reports whether the client has dropped to mirror mode.
func (c *Client) Legacy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.legacy
}

func (c *Client) setLegacy(v bool) {
	c.mu.Lock()
	c.legacy = v
	c.mu.Unlock()
}

// ListItems runs a query against the collection. Against a server with the
// query pipeline this is a single request; against a legacy server the whole
// collection is fetched and the pipeline runs locally. Detection costs at
// most one extra request, on the first query after startup.
func (c *Client) ListItems(ctx context.Context, q query.Query) (query.PageResult, error) {
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}

	if c.Legacy() {
		items, err := c.fetchCollection(ctx)
		if err != nil {
			return query.PageResult{}, err
		}
		return query.Apply(items, q), nil
	}

	status, body, err := c.roundTrip(ctx, http.MethodGet, "/api/items?"+q.Values().Encode(), nil)
	if err != nil {
		return query.PageResult{}, fmt.Errorf("catalogd: list items: %w", err)
	}

	switch {
	case status < 200 || status >= 300:
		// The server has no query pipeline; fall back to the bare
		// collection, once.
		c.setLegacy(true)
		items, err := c.fetchCollection(ctx)
		if err != nil {
			return query.PageResult{}, err
		}
		return query.Apply(items, q), nil

	case isArray(body):
		// The whole collection came back, meaning the parameters were
		// ignored. Reuse the body instead of fetching again.
		c.setLegacy(true)
		var items []models.Item
		if err := json.Unmarshal(body, &items); err != nil {
			return query.PageResult{}, fmt.Errorf("catalogd: list items: decode collection: %w", err)
		}
		return query.Apply(items, q), nil

	default:
		var page query.PageResult
		if err := json.Unmarshal(body, &page); err != nil {
			return query.PageResult{}, fmt.Errorf("catalogd: list items: decode page: %w", err)
		}
		return page, nil
	}
}

// Item fetches one item by ID. A missing item surfaces as an *APIError
// with status 404.
func (c *Client) Item(ctx context.Context, id int64) (models.Item, error) {
	var item models.Item
	if err := c.getJSON(ctx, fmt.Sprintf("/api/items/%d", id), "get item", &item); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// CreateItem appends a new item and returns it with its assigned ID and
// creation timestamp.
func (c *Client) CreateItem(ctx context.Context, draft ItemDraft) (models.Item, error) {
	status, body, err := c.roundTrip(ctx, http.MethodPost, "/api/items", draft)
	if err != nil {
		return models.Item{}, fmt.Errorf("catalogd: create item: %w", err)
	}
	if status < 200 || status >= 300 {
		return models.Item{}, parseAPIError(status, body)
	}
	var item models.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return models.Item{}, fmt.Errorf("catalogd: create item: decode response: %w", err)
	}
	return item, nil
}

// Categories fetches the distinct category index.
func (c *Client) Categories(ctx context.Context) (models.CategoryList, error) {
	var list models.CategoryList
	if err := c.getJSON(ctx, "/api/items/categories", "get categories", &list); err != nil {
		return models.CategoryList{}, err
	}
	return list, nil
}

// Stats fetches the collection aggregates.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	if err := c.getJSON(ctx, "/api/stats", "get stats", &stats); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

// StatsCacheStatus reports the server's stats cache state.
func (c *Client) StatsCacheStatus(ctx context.Context) (models.CacheStatus, error) {
	var status models.CacheStatus
	if err := c.getJSON(ctx, "/api/stats/cache/status", "get stats cache status", &status); err != nil {
		return models.CacheStatus{}, err
	}
	return status, nil
}

// InvalidateStatsCache drops the server's cached aggregates so the next
// stats read recomputes from the collection file.
func (c *Client) InvalidateStatsCache(ctx context.Context) error {
	status, body, err := c.roundTrip(ctx, http.MethodDelete, "/api/stats/cache", nil)
	if err != nil {
		return fmt.Errorf("catalogd: invalidate stats cache: %w", err)
	}
	if status < 200 || status >= 300 {
		return parseAPIError(status, body)
	}
	return nil
}

// fetchCollection pulls the whole collection from the bare endpoint.
func (c *Client) fetchCollection(ctx context.Context) ([]models.Item, error) {
	status, body, err := c.roundTrip(ctx, http.MethodGet, "/api/items", nil)
	if err != nil {
		return nil, fmt.Errorf("catalogd: fetch collection: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, parseAPIError(status, body)
	}
	if !isArray(body) {
		// The server speaks the paginated contract after all; undo the
		// downgrade so the next query probes again.
		c.setLegacy(false)
		return nil, fmt.Errorf("catalogd: fetch collection: expected a JSON array")
	}
	var items []models.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("catalogd: fetch collection: %w", err)
	}
	return items, nil
}

func (c *Client) getJSON(ctx context.Context, path, operation string, out any) error {
	status, body, err := c.roundTrip(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("catalogd: %s: %w", operation, err)
	}
	if status < 200 || status >= 300 {
		return parseAPIError(status, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalogd: %s: decode response: %w", operation, err)
	}
	return nil
}

// roundTrip performs one request and returns the status and body. Error
// statuses are not errors at this layer; callers decide what they mean.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// isArray reports whether a JSON payload is a bare array, the shape the
// legacy collection endpoint returns.
func isArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// parseAPIError turns a non-2xx body into an *APIError, tolerating servers
// that do not emit problem+json.
func parseAPIError(status int, body []byte) error {
	var p struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &p); err == nil && (p.Title != "" || p.Detail != "") {
		return &APIError{Status: status, Title: p.Title, Detail: p.Detail}
	}
	return &APIError{Status: status, Detail: strings.TrimSpace(string(body))}
}
