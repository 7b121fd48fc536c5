// Package upstreamtest provides an in-memory upstream.Upstream for handler
// tests.
package upstreamtest

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/aanand-mishra/library-proxy/internal/types"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
)

// Fake returns canned results and records what it was called with.
type Fake struct {
	Books     types.Table
	Students  types.Table
	Dashboard json.RawMessage
	Err       error

	LastQuery url.Values
	LastBody  []byte
	Calls     int
}

var _ upstream.Upstream = (*Fake)(nil)

func (f *Fake) ListBooks(_ context.Context, query url.Values) (types.Table, error) {
	f.Calls++
	f.LastQuery = query
	return f.Books, f.Err
}

func (f *Fake) CreateBook(_ context.Context, body []byte) error {
	f.Calls++
	f.LastBody = body
	return f.Err
}

func (f *Fake) ListStudents(_ context.Context, query url.Values) (types.Table, error) {
	f.Calls++
	f.LastQuery = query
	return f.Students, f.Err
}

func (f *Fake) GetDashboard(context.Context) (json.RawMessage, error) {
	f.Calls++
	return f.Dashboard, f.Err
}
