// Package httpapi provides the HTTP implementation of upstream.Upstream.
// Every call is a single request to {BaseURL}/{resource}; there are no
// retries and nothing is cached.
package httpapi

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

	"github.com/dustin/go-humanize"

	"github.com/aanand-mishra/library-proxy/internal/config"
	"github.com/aanand-mishra/library-proxy/internal/envelope"
	"github.com/aanand-mishra/library-proxy/internal/http/middleware"
	"github.com/aanand-mishra/library-proxy/internal/types"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
)

// maxBodySize caps how much of an upstream body is read.
const maxBodySize = 10 << 20

// Client is the concrete implementation of upstream.Upstream.
// A single Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ upstream.Upstream = (*Client)(nil)

// New returns a Client for the upstream named by cfg.BaseURL.
func New(cfg *config.Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("httpapi.New: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("httpapi.New: base url %q is not absolute", cfg.BaseURL)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Upstream.Timeout},
	}, nil
}

func (c *Client) ListBooks(ctx context.Context, query url.Values) (types.Table, error) {
	raw, err := c.do(ctx, http.MethodGet, upstream.ResourceBooks, query, nil)
	if err != nil {
		return types.Table{}, fmt.Errorf("httpapi.ListBooks: %w", err)
	}
	table, err := envelope.Table[types.Book](raw)
	if err != nil {
		return types.Table{}, fmt.Errorf("httpapi.ListBooks: %w", err)
	}
	return table, nil
}

func (c *Client) CreateBook(ctx context.Context, body []byte) error {
	if _, err := c.do(ctx, http.MethodPost, upstream.ResourceBooks, nil, body); err != nil {
		return fmt.Errorf("httpapi.CreateBook: %w", err)
	}
	return nil
}

func (c *Client) ListStudents(ctx context.Context, query url.Values) (types.Table, error) {
	raw, err := c.do(ctx, http.MethodGet, upstream.ResourceStudents, query, nil)
	if err != nil {
		return types.Table{}, fmt.Errorf("httpapi.ListStudents: %w", err)
	}
	table, err := envelope.Table[types.Student](raw)
	if err != nil {
		return types.Table{}, fmt.Errorf("httpapi.ListStudents: %w", err)
	}
	// The student grid renders a full_name column.
	table.Items, err = envelope.StudentFullNames(table.Items)
	if err != nil {
		return types.Table{}, fmt.Errorf("httpapi.ListStudents: %w", err)
	}
	return table, nil
}

func (c *Client) GetDashboard(ctx context.Context) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, upstream.ResourceDashboard, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("httpapi.GetDashboard: %w", err)
	}
	data, err := envelope.Data[types.Dashboard](raw)
	if err != nil {
		return nil, fmt.Errorf("httpapi.GetDashboard: %w", err)
	}
	return data, nil
}

// do sends one request and returns the body of a 2xx response. Any other
// status becomes an *upstream.StatusError.
func (c *Client) do(ctx context.Context, method, resource string, query url.Values, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+resource, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, resource, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, resource, err)
	}

	slog.Debug("upstream response",
		slog.String("method", method),
		slog.String("resource", resource),
		slog.Int("status", resp.StatusCode),
		slog.String("size", humanize.Bytes(uint64(len(raw)))),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, fields := envelope.Problem(raw)
		return nil, &upstream.StatusError{
			Resource: resource,
			Code:     resp.StatusCode,
			Message:  msg,
			Errors:   fields,
		}
	}

	return raw, nil
}
