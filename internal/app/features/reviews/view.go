// internal/app/features/reviews/view.go
package reviews

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleView returns a single review. Visible to the review's reviewer and
// to instructors of the assignment's workspace; everyone else reads it as
// not found.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "sign in required"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "review ID is not valid"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "review not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "load review", err))
		return
	}

	if rv.UserID != uid {
		a, err := h.Assignments.GetByID(ctx, rv.AssignmentID)
		if err != nil {
			respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "load assignment", err))
			return
		}
		instructorHere := role == models.RoleInstructor && authz.UserWorkspaceID(r) == a.WorkspaceID
		if !instructorHere {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "review not found"))
			return
		}
	}
	respond.OK(w, rv)
}
