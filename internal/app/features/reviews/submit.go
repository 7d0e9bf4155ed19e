// internal/app/features/reviews/submit.go
package reviews

import (
	"context"
	"net/http"

	"github.com/dalemusser/peerhub/internal/app/services/submission"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/app/system/authz"
	"github.com/dalemusser/peerhub/internal/app/system/inputval"
	"github.com/dalemusser/peerhub/internal/app/system/respond"
	"github.com/dalemusser/peerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleSubmit accepts a rating vector for one of the caller's generated
// pairings. Errors map the business rules one-for-one: 404 when the
// pairing was never generated, 403 outside the window, 400 on a schema
// mismatch.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, h.Log, apperr.New(apperr.Authorization, "sign in required"))
		return
	}

	var in submitInput
	if err := respond.Decode(r, &in); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, res.First()))
		return
	}
	assignmentID, err := primitive.ObjectIDFromHex(in.AssignmentID)
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "assignment_id is not a valid ID"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(in.TargetID)
	if err != nil {
		respond.Error(w, h.Log, apperr.New(apperr.Validation, "target_id is not a valid ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Submission.Submit(ctx, submission.Input{
		CallerID:     uid,
		ReviewerID:   uid,
		AssignmentID: assignmentID,
		TargetID:     targetID,
		Ratings:      in.Ratings,
		Comment:      in.Comment,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, submitResponse{ReviewID: id.Hex()})
}
