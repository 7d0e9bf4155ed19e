// internal/app/features/assignments/delete.go
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

// HandleDelete removes an assignment and every review generated for it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok || !authz.IsInstructor(r) {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "instructor role required"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "assignment ID is not valid"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	isInstructor, err := h.Users.IsInstructor(ctx, uid, a.WorkspaceID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "verify instructor", err))
		return
	}
	if !isInstructor {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "not an instructor of this workspace"))
		return
	}

	reviewsDeleted, err := h.Assignments.DeleteCascade(ctx, id, h.Log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "assignment not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "delete assignment", err))
		return
	}

	h.AuditLog.AssignmentDeleted(ctx, uid, id, reviewsDeleted)
	respond.OK(w, deleteResponse{ReviewsDeleted: reviewsDeleted})
}
