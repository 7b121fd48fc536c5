// Package dashboard contains the HTTP handler for the landing-page summary.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/library-proxy/internal/http/middleware"
	"github.com/aanand-mishra/library-proxy/internal/upstream"
	"github.com/aanand-mishra/library-proxy/internal/utils/response"
)

// Get handles GET /api/dashboard and returns the upstream data object
// without its envelope.
func Get(api upstream.Upstream) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting dashboard",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())))

		data, err := api.GetDashboard(r.Context())
		if err != nil {
			slog.Error("error getting dashboard", slog.String("error", err.Error()))
			response.WriteUpstreamError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, data)
	}
}
