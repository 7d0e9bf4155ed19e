// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/dalemusser/peerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the analytics routes under the path where the caller
// mounts it. Typically: r.Mount("/analytics", analytics.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/average/{targetID}", h.HandleAverage)
		pr.Get("/series/{targetID}", h.HandleSeries)

		// Instructor-only, paginated.
		pr.Get("/rank", h.HandleRank)
		pr.Get("/completion", h.HandleCompletion)
	})

	return r
}
