// Package upstream defines the Upstream interface — the contract any
// client of the external library API must satisfy to back the HTTP
// handlers — together with the errors those clients report.
//
// Handlers depend only on this interface. The concrete HTTP client lives
// in upstream/httpapi; tests pass a fake that satisfies the interface.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/aanand-mishra/library-proxy/internal/types"
)

// Resource path segments appended to the configured base URL.
const (
	ResourceBooks     = "books"
	ResourceStudents  = "students"
	ResourceDashboard = "dashboard"
)

// Upstream is the library API contract.
type Upstream interface {
	// ListBooks forwards query to GET {base}/books and returns the
	// narrowed page.
	ListBooks(ctx context.Context, query url.Values) (types.Table, error)

	// CreateBook forwards body to POST {base}/books. The created record
	// is not returned.
	CreateBook(ctx context.Context, body []byte) error

	// ListStudents forwards query to GET {base}/students and returns the
	// narrowed page, with full_name filled in on items that lack it.
	ListStudents(ctx context.Context, query url.Values) (types.Table, error)

	// GetDashboard calls GET {base}/dashboard and returns the unwrapped
	// data object.
	GetDashboard(ctx context.Context) (json.RawMessage, error)
}

var (
	// ErrMalformedResponse means the upstream body did not match the
	// expected envelope: bad JSON, missing fields, wrong types or values
	// outside a closed enum.
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrUnsuccessful means the upstream answered 2xx but flagged the
	// envelope with success=false.
	ErrUnsuccessful = errors.New("upstream reported failure")
)

// StatusError is returned when the upstream answers with a non-2xx code.
type StatusError struct {
	Resource string
	Code     int
	Message  string
	Errors   map[string][]string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s: status %d: %s", e.Resource, e.Code, e.Message)
	}
	return fmt.Sprintf("upstream %s: status %d", e.Resource, e.Code)
}
