// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/dalemusser/peerhub/internal/domain/models"
)

// HandleList returns the caller's workspace assignments, ordered by due
// date. Instructors and students see the same list.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "sign in required"))
		return
	}
	wsID := authz.UserWorkspaceID(r)
	if wsID.IsZero() {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "no workspace on session"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Assignments.ListByWorkspace(ctx, wsID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "list assignments", err))
		return
	}
	if list == nil {
		list = []models.ReviewAssignment{}
	}
	respond.OK(w, list)
}
