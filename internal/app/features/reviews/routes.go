// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/dalemusser/peerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the review routes under the path where the caller mounts
// it. Typically: r.Mount("/reviews", reviews.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/", h.HandleSubmit)
		pr.Get("/{id}", h.HandleView)

		// Per-assignment listings, keyed by who wrote or who received.
		pr.Get("/by/{userID}", h.HandleListByReviewer)
		pr.Get("/about/{userID}", h.HandleListAboutTarget)
	})

	return r
}
