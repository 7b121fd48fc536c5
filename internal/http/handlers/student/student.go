// Package student contains the HTTP handlers for the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// A factory receives the dependencies (the upstream client) and returns a
// function with exactly that signature, closing over them:
//
//	router.HandleFunc("GET /api/students", student.List(api))
//	//                                          ^^^^^^^^^
//	//                         List(api) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
package student

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/library-proxy/internal/http/middleware"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
	"github.com/aanand-mishra/library-proxy/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/students
// Forwards the query string (page, size, search, status, ...) unchanged to
// GET {base}/students and keeps only the pagination totals and the items.
//
// Success response (200 OK):
//
//	{
//	  "totalPages": 2,
//	  "totalItems": 14,
//	  "items": [ { "id": 1, "student_id": "2024-0001", ... } ]
//	}
//
// Error responses:
//
//	4xx/5xx  — upstream status relayed
//	502      — upstream unreachable or returned a malformed page
//	504      — upstream timed out
// ─────────────────────────────────────────────────────────────────────────────
func List(api upstream.Upstream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing students",
			slog.String("query", r.URL.RawQuery),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())))

		table, err := api.ListStudents(r.Context(), r.URL.Query())
		if err != nil {
			slog.Error("error listing students", slog.String("error", err.Error()))
			response.WriteUpstreamError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, table)
	}
}
