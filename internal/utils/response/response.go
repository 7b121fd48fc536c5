// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses carry whatever shape the UI expects (a narrowed page,
// an unwrapped data object, a message). Error responses always look like:
//
//	{ "status": "error", "error": "...", "errors": { "field": ["..."] } }
//
// where "errors" is present only when the upstream API reported field errors.
package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/library-proxy/internal/upstream"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string              `json:"status"`
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// Message is the body returned by endpoints that only acknowledge an action.
type Message struct {
	Message string `json:"message"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// Example output:
//
//	{ "status": "error", "error": "field book_name is required, field status must be one of [available borrowed]" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of [%s]", e.Field(), e.Param()))
		case "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// UpstreamError maps a failed upstream call to an HTTP status code and an
// error Response:
//
//	upstream non-2xx        → same status, upstream message and field errors
//	deadline exceeded       → 504 Gateway Timeout
//	malformed / unsuccessful / unreachable → 502 Bad Gateway
func UpstreamError(err error) (int, Response) {
	var statusErr *upstream.StatusError
	switch {
	case errors.As(err, &statusErr):
		resp := GeneralError(err)
		if statusErr.Message != "" {
			resp.Error = statusErr.Message
		}
		resp.Errors = statusErr.Errors
		return statusErr.Code, resp
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		return http.StatusGatewayTimeout, GeneralError(err)
	default:
		return http.StatusBadGateway, GeneralError(err)
	}
}

// WriteUpstreamError writes the Response chosen by UpstreamError.
func WriteUpstreamError(w http.ResponseWriter, err error) {
	code, resp := UpstreamError(err)
	WriteJSON(w, code, resp)
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
