// internal/app/features/assignments/create.go
package assignments

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/inputval"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreate creates a review assignment. When the submission window is
// already open the review graph is generated in the same request; otherwise
// generation waits for the external trigger on /{id}/generate.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok || !authz.IsInstructor(r) {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "instructor role required"))
		return
	}

	var in createInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, res.First()))
		return
	}
	wsID, err := primitive.ObjectIDFromHex(in.WorkspaceID)
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "workspace_id is not a valid ID"))
		return
	}
	if in.DueDate.Before(in.StartDate) {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "due_date must not be before start_date"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	isInstructor, err := h.Users.IsInstructor(ctx, uid, wsID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "verify instructor", err))
		return
	}
	if !isInstructor {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "not an instructor of this workspace"))
		return
	}

	a, err := h.Assignments.Create(ctx, models.ReviewAssignment{
		WorkspaceID: wsID,
		Description: in.Description,
		Questions:   in.Questions,
		StartDate:   in.StartDate.UTC(),
		DueDate:     in.DueDate.UTC(),
	})
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "create assignment", err))
		return
	}

	resp := createResponse{Assignment: a}
	if !a.StartDate.After(time.Now().UTC()) {
		res, err := h.Generator.GenerateFor(ctx, a.ID)
		if err != nil {
			// The assignment must not exist half-opened: undo the create so
			// the caller can retry the whole operation.
			if _, delErr := h.Assignments.DeleteCascade(ctx, a.ID, h.Log); delErr != nil {
				h.Log.Error("rollback of failed open-on-create", zap.Error(delErr),
					zap.String("assignment_id", a.ID.Hex()))
			}
			respond.Error(w, h.Log, err)
			return
		}
		resp.Generation = &res
		h.AuditLog.ReviewsGenerated(ctx, uid, a.ID, res.Created)
	}

	h.AuditLog.AssignmentCreated(ctx, uid, wsID, a.ID, map[string]string{
		"questions": strconv.Itoa(len(a.Questions)),
	})
	respond.Created(w, resp)
}
