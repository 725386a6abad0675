// Package client is a Go client for the shopping-list API. Every failure,
// whether transport, decoding or an envelope with success=false, is logged
// and reported to the caller as "no data": a nil slice, a nil pointer or false.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/erazemk/shoplist/internal/model"
)

// Client calls the shopping-list API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient = &http.Client{Timeout: d}
	}
}

// New creates a client for the API served at baseURL (without the /api prefix).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestID reuses the id of the request being served, if any, so one
// browser action can be followed through the page and API logs.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// call performs one API request and decodes the envelope. ok is false on any
// failure; the failure has already been logged.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (data T, ok bool) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			slog.Warn("api request encoding failed", "method", method, "path", path, "error", err)
			return data, false
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		slog.Warn("api request failed", "method", method, "path", path, "error", err)
		return data, false
	}
	reqID := requestID(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		slog.Warn("api request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return data, false
	}
	defer resp.Body.Close()

	var env model.Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		slog.Warn("api response decoding failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"request_id", reqID,
			"error", err,
		)
		return data, false
	}
	if !env.Success {
		slog.Warn("api request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"request_id", reqID,
			"error", env.Error,
		)
		return data, false
	}
	return env.Data, true
}

func itemPath(id int64) string {
	return fmt.Sprintf("/api/items/%d", id)
}

// Items lists items matching filter, newest first.
func (c *Client) Items(ctx context.Context, filter model.Filter) []model.Item {
	path := "/api/items"
	if filter != "" && filter != model.FilterAll {
		path += "?" + url.Values{"filter": {string(filter)}}.Encode()
	}
	items, ok := call[[]model.Item](ctx, c, http.MethodGet, path, nil)
	if !ok {
		return nil
	}
	if items == nil {
		items = []model.Item{}
	}
	return items
}

// Item fetches one item.
func (c *Client) Item(ctx context.Context, id int64) *model.Item {
	item, _ := call[*model.Item](ctx, c, http.MethodGet, itemPath(id), nil)
	return item
}

// CreateItem adds an item and returns the stored row.
func (c *Client) CreateItem(ctx context.Context, req model.CreateItemRequest) *model.Item {
	item, _ := call[*model.Item](ctx, c, http.MethodPost, "/api/items", req)
	return item
}

// UpdateItem applies a partial update and returns the updated row.
func (c *Client) UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) *model.Item {
	item, _ := call[*model.Item](ctx, c, http.MethodPut, itemPath(id), req)
	return item
}

// DeleteItem removes an item and reports whether the API confirmed it.
func (c *Client) DeleteItem(ctx context.Context, id int64) bool {
	_, ok := call[any](ctx, c, http.MethodDelete, itemPath(id), nil)
	return ok
}

// Stats returns the aggregate counts of the whole list.
func (c *Client) Stats(ctx context.Context) *model.ItemStats {
	stats, _ := call[*model.ItemStats](ctx, c, http.MethodGet, "/api/items/stats", nil)
	return stats
}

// BulkCreate inserts all items or none of them.
func (c *Client) BulkCreate(ctx context.Context, items []model.CreateItemRequest) []model.Item {
	created, ok := call[[]model.Item](ctx, c, http.MethodPost, "/api/items/bulk", model.BulkCreateRequest{Items: items})
	if !ok {
		return nil
	}
	if created == nil {
		created = []model.Item{}
	}
	return created
}

// BulkUpdate applies every update and returns the rows that were updated.
func (c *Client) BulkUpdate(ctx context.Context, updates []model.BulkUpdateEntry) []model.Item {
	updated, ok := call[[]model.Item](ctx, c, http.MethodPut, "/api/items/bulk", model.BulkUpdateRequest{Updates: updates})
	if !ok {
		return nil
	}
	if updated == nil {
		updated = []model.Item{}
	}
	return updated
}

// BulkDelete removes the given items and reports how many existed.
func (c *Client) BulkDelete(ctx context.Context, ids []int64) *model.BulkDeleteResult {
	res, _ := call[*model.BulkDeleteResult](ctx, c, http.MethodDelete, "/api/items/bulk", model.BulkDeleteRequest{IDs: ids})
	return res
}
