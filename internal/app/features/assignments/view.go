// internal/app/features/assignments/view.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleView returns one assignment. Assignments in other workspaces read
// as not found rather than forbidden, so IDs do not leak across courses.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "sign in required"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "assignment ID is not valid"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "assignment not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "load assignment", err))
		return
	}
	if a.WorkspaceID != authz.UserWorkspaceID(r) {
		respond.Error(w, h.Log, apperr.New(apperr.NotFound, "assignment not found"))
		return
	}
	respond.OK(w, a)
}
