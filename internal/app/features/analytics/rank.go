// internal/app/features/analytics/rank.go
package analytics

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/store/queries/reviewanalytics"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/paging"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type rankResponse struct {
	AssignmentID string                         `json:"assignment_id"`
	Page         int                            `json:"page"`
	PerPage      int                            `json:"per_page"`
	Rows         []reviewanalytics.RankedTarget `json:"rows"`
}

// HandleRank returns the assignment's reviewees ordered ascending by
// average rating, lowest first, paginated. Instructor-only.
func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	assignmentID, ok := h.instructorAssignment(w, r)
	if !ok {
		return
	}

	p := paging.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := reviewanalytics.RankByAssignment(ctx, h.DB, assignmentID, p)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "rank by assignment", err))
		return
	}
	if rows == nil {
		rows = []reviewanalytics.RankedTarget{}
	}
	respond.OK(w, rankResponse{
		AssignmentID: assignmentID.Hex(),
		Page:         p.Page,
		PerPage:      p.PerPage,
		Rows:         rows,
	})
}

// instructorAssignment resolves ?assignment_id and checks the caller is an
// instructor of the assignment's workspace. On failure it writes the error
// response and returns ok=false.
func (h *Handler) instructorAssignment(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	assignmentID, err := primitive.ObjectIDFromHex(query.Get(r, "assignment_id"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "assignment_id is required"))
		return primitive.NilObjectID, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "assignment not found"))
			return primitive.NilObjectID, false
		}
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "load assignment", err))
		return primitive.NilObjectID, false
	}

	if !authz.IsInstructor(r) || authz.UserWorkspaceID(r) != a.WorkspaceID {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "instructor role required"))
		return primitive.NilObjectID, false
	}
	return assignmentID, true
}
