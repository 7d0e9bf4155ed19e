// internal/app/features/analytics/average.go
package analytics

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/stats"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type averageResponse struct {
	TargetID     string    `json:"target_id"`
	AssignmentID string    `json:"assignment_id"`
	Average      float64   `json:"average"`
	ReviewCount  int       `json:"review_count"`
	PerQuestion  []float64 `json:"per_question,omitempty"`
}

// HandleAverage returns a user's average rating for one assignment: the
// mean of every individual rating across all completed reviews targeting
// them, flattened across questions. Pass breakdown=1 for per-question
// means alongside.
func (h *Handler) HandleAverage(w http.ResponseWriter, r *http.Request) {
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "targetID"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "target user ID is not valid"))
		return
	}
	assignmentID, err := primitive.ObjectIDFromHex(query.Get(r, "assignment_id"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "assignment_id is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, h.Log, apperr.New(apperr.NotFound, "assignment not found"))
			return
		}
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "load assignment", err))
		return
	}
	if !authz.CanViewAnalyticsFor(r, targetID, a.WorkspaceID) {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "not allowed to view this user's analytics"))
		return
	}

	completed, err := h.Reviews.ListCompletedForTarget(ctx, assignmentID, targetID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "load completed reviews", err))
		return
	}

	vectors := make([][]int, 0, len(completed))
	for _, rv := range completed {
		vectors = append(vectors, rv.Ratings)
	}
	avg, ok := stats.FlattenMean(vectors)
	if !ok {
		respond.Error(w, h.Log, apperr.New(apperr.NoData, "no completed reviews for this user and assignment"))
		return
	}

	resp := averageResponse{
		TargetID:     targetID.Hex(),
		AssignmentID: assignmentID.Hex(),
		Average:      avg,
		ReviewCount:  len(completed),
	}
	if query.Get(r, "breakdown") == "1" {
		means, _ := stats.PerQuestionMeans(vectors, len(a.Questions))
		resp.PerQuestion = means
	}
	respond.OK(w, resp)
}
