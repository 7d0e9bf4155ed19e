// internal/app/features/reviews/list.go
package reviews

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleListByReviewer returns the reviews a user was assigned to write
// for one assignment, pending and completed. Callers may list their own;
// instructors of the workspace may list anyone's.
func (h *Handler) HandleListByReviewer(w http.ResponseWriter, r *http.Request) {
	h.handleList(w, r, h.Reviews.ListByReviewer)
}

// HandleListAboutTarget returns the reviews targeting a user for one
// assignment, under the same authorization gate.
func (h *Handler) HandleListAboutTarget(w http.ResponseWriter, r *http.Request) {
	h.handleList(w, r, h.Reviews.ListAboutTarget)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, assignmentID, userID primitive.ObjectID) ([]models.Review, error)) {

	if _, _, _, ok := authz.UserCtx(r); !ok {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "sign in required"))
		return
	}

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "user ID is not valid"))
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
	if !authz.CanViewAnalyticsFor(r, userID, a.WorkspaceID) {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "not allowed to view this user's reviews"))
		return
	}

	rows, err := list(ctx, assignmentID, userID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Wrap(apperr.Internal, "list reviews", err))
		return
	}
	if rows == nil {
		rows = []models.Review{}
	}
	respond.OK(w, rows)
}
