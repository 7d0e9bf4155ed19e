// internal/app/features/assignments/edit.go
package assignments

import (
	"context"
	"net/http"

	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/inputval"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleEdit applies a partial update to an assignment. Dates and
// description stay editable for the assignment's lifetime; the question
// list is frozen once review rows exist, because completed ratings are
// positionally aligned with it.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
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

	var in editInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, res.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	if in.Questions != nil {
		n, err := h.Reviews.CountByAssignment(ctx, id)
		if err != nil {
			respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "count reviews", err))
			return
		}
		if n > 0 {
			respond.Error(w, h.Log, apperr.New(apperr.Validation,
				"questions cannot be changed after reviews have been generated"))
			return
		}
	}

	// Window ordering must hold for the assignment as it will be after the
	// patch, whichever side of the window the patch touches.
	start, due := a.StartDate, a.DueDate
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	if in.DueDate != nil {
		due = in.DueDate.UTC()
	}
	if due.Before(start) {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "due_date must not be before start_date"))
		return
	}

	u := assignmentstore.Update{
		Description: in.Description,
		Questions:   in.Questions,
	}
	if in.StartDate != nil {
		u.StartDate = &start
	}
	if in.DueDate != nil {
		u.DueDate = &due
	}
	if err := h.Assignments.Update(ctx, id, u); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "assignment not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "update assignment", err))
		return
	}

	updated, err := h.Assignments.GetByID(ctx, id)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "reload assignment", err))
		return
	}

	h.AuditLog.AssignmentEdited(ctx, uid, id)
	respond.OK(w, updated)
}
