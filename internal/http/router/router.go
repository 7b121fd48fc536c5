// Package router wires the handlers and middleware into a single
// http.Handler.
//
// Route table:
//
//	GET  /api/books            → list books (query forwarded upstream)
//	POST /api/books            → create a book
//	GET  /api/students         → list students (query forwarded upstream)
//	GET  /api/dashboard        → landing-page summary
//	GET  /api/columns/{table}  → table column definitions
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/library-proxy/internal/http/handlers/book"
	"github.com/aanand-mishra/library-proxy/internal/http/handlers/column"
	"github.com/aanand-mishra/library-proxy/internal/http/handlers/dashboard"
	"github.com/aanand-mishra/library-proxy/internal/http/handlers/student"
	"github.com/aanand-mishra/library-proxy/internal/http/middleware"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
)

// New returns the API handler. allowedOrigins feeds the CORS policy.
func New(api upstream.Upstream, log *slog.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/books", book.List(api))
	mux.HandleFunc("POST /api/books", book.Create(api))
	mux.HandleFunc("GET /api/students", student.List(api))
	mux.HandleFunc("GET /api/dashboard", dashboard.Get(api))
	mux.HandleFunc("GET /api/columns/{table}", column.Get())

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.CORS(allowedOrigins),
	)
}
