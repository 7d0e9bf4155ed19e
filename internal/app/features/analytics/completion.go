// internal/app/features/analytics/completion.go
package analytics

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/store/queries/reviewanalytics"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/paging"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
)

type completionResponse struct {
	AssignmentID string                               `json:"assignment_id"`
	Page         int                                  `json:"page"`
	PerPage      int                                  `json:"per_page"`
	Rows         []reviewanalytics.ReviewerCompletion `json:"rows"`
}

// HandleCompletion returns reviewers ordered by completion fraction,
// least-complete first, excluding those already at 100%. Instructor-only.
func (h *Handler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := h.instructorAssignment(w, r)
	if !ok {
		return
	}

	p := paging.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := reviewanalytics.CompletionStatus(ctx, h.DB, assignmentID, p)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "completion status", err))
		return
	}
	if rows == nil {
		rows = []reviewanalytics.ReviewerCompletion{}
	}
	respond.OK(w, completionResponse{
		AssignmentID: assignmentID.Hex(),
		Page:         p.Page,
		PerPage:      p.PerPage,
		Rows:         rows,
	})
}
