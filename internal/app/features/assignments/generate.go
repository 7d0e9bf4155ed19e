// internal/app/features/assignments/generate.go
package assignments

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleGenerate triggers review graph generation for an assignment whose
// start date has been reached. This is the entry point for assignments
// created with a future window; an external scheduler (or the instructor)
// calls it once the window opens. Re-invocation is a no-op.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
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

	if a.StartDate.After(time.Now().UTC()) {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "assignment has not reached its start date"))
		return
	}

	res, err := h.Generator.GenerateFor(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.AuditLog.ReviewsGenerated(ctx, uid, id, res.Created)
	respond.OK(w, res)
}
