// Package column serves the table column definitions to the UI.
package column

import (
	"fmt"
	"net/http"

	"github.com/aanand-mishra/library-proxy/internal/columns"
	"github.com/aanand-mishra/library-proxy/internal/utils/response"
)

// Get handles GET /api/columns/{table}, where table is "books" or
// "students". Unknown tables are 404.
func Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := r.PathValue("table")

		cols, ok := columns.ByTable(table)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(fmt.Errorf("unknown table %q", table)))
			return
		}

		response.WriteJSON(w, http.StatusOK, cols)
	}
}
