// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/peerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the assignment routes under the path where the caller
// mounts it. Typically: r.Mount("/assignments", assignments.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}", h.HandleView)
		pr.Patch("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)

		// External trigger for assignments whose window opened after create.
		pr.Post("/{id}/generate", h.HandleGenerate)
	})

	return r
}
