// internal/app/features/analytics/series.go
package analytics

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/store/queries/reviewanalytics"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type seriesResponse struct {
	TargetID    string                        `json:"target_id"`
	WorkspaceID string                        `json:"workspace_id"`
	Points      []reviewanalytics.SeriesPoint `json:"points"`
}

// HandleSeries returns a user's average rating per assignment across the
// caller's workspace, ordered by due date, for trend display. Assignments
// with no completed reviews for the user are omitted.
func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "targetID"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "target user ID is not valid"))
		return
	}

	wsID := authz.UserWorkspaceID(r)
	if wsID.IsZero() {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "no workspace on session"))
		return
	}
	if !authz.CanViewAnalyticsFor(r, targetID, wsID) {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "not allowed to view this user's analytics"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	points, err := reviewanalytics.SeriesForUser(ctx, h.DB, targetID, wsID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "series for user", err))
		return
	}
	if points == nil {
		points = []reviewanalytics.SeriesPoint{}
	}
	respond.OK(w, seriesResponse{
		TargetID:    targetID.Hex(),
		WorkspaceID: wsID.Hex(),
		Points:      points,
	})
}
