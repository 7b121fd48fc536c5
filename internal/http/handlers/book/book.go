// Package book contains the HTTP handlers for the Book resource.
//
// Handlers are built by factory functions that receive the upstream client
// and return the http.HandlerFunc the router needs:
//
//	router.HandleFunc("GET /api/books", book.List(api))
package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/sjson"

	"github.com/aanand-mishra/library-proxy/internal/http/middleware"
	"github.com/aanand-mishra/library-proxy/internal/types"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
	"github.com/aanand-mishra/library-proxy/internal/utils/response"
)

// CreatedMessage is returned by Create whatever the upstream echoes back.
const CreatedMessage = "Book created successfully"

// MaxBodyBytes caps the size of a create request body.
const MaxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/books
// Forwards the query string to GET {base}/books.
//
// Success response (200 OK):
//
//	{ "totalPages": 3, "totalItems": 25, "items": [ { "id": 1, ... } ] }
//
// Error responses: see response.UpstreamError.
// ─────────────────────────────────────────────────────────────────────────────
func List(api upstream.Upstream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing books",
			slog.String("query", r.URL.RawQuery),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())))

		table, err := api.ListBooks(r.Context(), r.URL.Query())
		if err != nil {
			slog.Error("error listing books", slog.String("error", err.Error()))
			response.WriteUpstreamError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, table)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /api/books
// Validates the body and forwards it to POST {base}/books without id,
// created_at or updated_at. Every other key is forwarded as sent.
//
// Request body (JSON):
//
//	{ "book_name": "Noli Me Tangere", "isbn": "978-971-0", "shelf_location": "A1",
//	  "author_name": "Jose Rizal", "publishers_name": "Berliner", "year": 1887,
//	  "status": "available" }
//
// Success response (200 OK):
//
//	{ "message": "Book created successfully" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	413 Too Large    — body over MaxBodyBytes
//	4xx/5xx          — relayed from upstream, see response.UpstreamError
// ─────────────────────────────────────────────────────────────────────────────
func Create(api upstream.Upstream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a book",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())))

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.WriteJSON(w, http.StatusRequestEntityTooLarge,
					response.GeneralError(fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if len(strings.TrimSpace(string(body))) == 0 {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}

		var book types.NewBook
		if err := json.Unmarshal(body, &book); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validate.Struct(book); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				response.WriteJSON(w, http.StatusBadRequest,
					response.ValidationError(validateErrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		for _, key := range types.ServerOwnedBookFields {
			body, err = sjson.DeleteBytes(body, key)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
		}

		if err := api.CreateBook(r.Context(), body); err != nil {
			slog.Error("error creating book", slog.String("error", err.Error()))
			response.WriteUpstreamError(w, err)
			return
		}

		slog.Info("book created", slog.String("book_name", book.BookName))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: CreatedMessage})
	}
}
