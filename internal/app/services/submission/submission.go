// Package submission validates and commits review submissions. It is the
// only writer that moves a review from pending to completed.
package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MaxCommentLength bounds the free-text comment.
const MaxCommentLength = 4000

// Validator accepts rating submissions for generated pairings.
type Validator struct {
	assignments *assignmentstore.Store
	reviews     *reviewstore.Store
	sanitize    *bluemonday.Policy
	log         *zap.Logger
	now         func() time.Time
}

// Input is one submission attempt. CallerID is the authenticated user;
// ReviewerID is whose pairing is being completed. They must match.
type Input struct {
	CallerID     primitive.ObjectID
	ReviewerID   primitive.ObjectID
	AssignmentID primitive.ObjectID
	TargetID     primitive.ObjectID
	Ratings      []int
	Comment      string
}

func New(db *mongo.Database, log *zap.Logger) *Validator {
	return &Validator{
		assignments: assignmentstore.New(db),
		reviews:     reviewstore.New(db),
		sanitize:    bluemonday.StrictPolicy(),
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the validator's clock. Test-only.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Submit validates in against the pairing, the submission window, and the
// assignment's question schema, then commits it as one atomic update.
// Returns the review ID. Re-submission of a completed review is allowed
// and fully replaces the previous ratings and comment.
func (v *Validator) Submit(ctx context.Context, in Input) (primitive.ObjectID, error) {
	a, err := v.assignments.GetByID(ctx, in.AssignmentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, apperr.New(apperr.NotFound, "assignment not found")
		}
		return primitive.NilObjectID, apperr.Wrap(apperr.Internal, "load assignment", err)
	}

	rv, err := v.reviews.GetByPairing(ctx, in.AssignmentID, in.ReviewerID, in.TargetID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, apperr.New(apperr.NotFound, "not assigned to review this person")
		}
		return primitive.NilObjectID, apperr.Wrap(apperr.Internal, "load review", err)
	}

	if in.CallerID != rv.UserID {
		return primitive.NilObjectID, apperr.New(apperr.Authorization, "only the assigned reviewer may submit this review")
	}

	if !a.IsOpenForSubmission(v.now()) {
		return primitive.NilObjectID, apperr.New(apperr.WindowClosed, "assignment is not open for submission")
	}

	if err := ValidateRatings(in.Ratings, len(a.Questions)); err != nil {
		return primitive.NilObjectID, err
	}
	comment, err := CleanComment(v.sanitize, in.Comment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, err := v.reviews.Complete(ctx, in.AssignmentID, in.ReviewerID, in.TargetID, in.Ratings, comment)
	if err != nil {
		// The pairing was read above; losing it here means a concurrent
		// assignment delete, which reads as not-found to the caller.
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, apperr.New(apperr.NotFound, "review no longer exists")
		}
		return primitive.NilObjectID, apperr.Wrap(apperr.Internal, "commit submission", err)
	}

	v.log.Info("review submitted",
		zap.String("review_id", id.Hex()),
		zap.String("assignment_id", in.AssignmentID.Hex()),
		zap.String("reviewer_id", in.ReviewerID.Hex()),
		zap.Bool("resubmission", rv.Completed))
	return id, nil
}

// ValidateRatings checks that ratings aligns positionally with the
// assignment's question list and that every value sits inside the rating
// scale. Out-of-range values are rejected, never clamped.
func ValidateRatings(ratings []int, questionCount int) error {
	if len(ratings) != questionCount {
		return apperr.Newf(apperr.Validation,
			"expected %d ratings, got %d", questionCount, len(ratings))
	}
	for i, r := range ratings {
		if r < models.RatingMin || r > models.RatingMax {
			return apperr.Newf(apperr.Validation,
				"rating %d out of range: %d (must be %d-%d)",
				i+1, r, models.RatingMin, models.RatingMax)
		}
	}
	return nil
}

// CleanComment strips markup from the free-text comment and enforces the
// length bound.
func CleanComment(p *bluemonday.Policy, comment string) (string, error) {
	cleaned := strings.TrimSpace(p.Sanitize(comment))
	if len(cleaned) > MaxCommentLength {
		return "", apperr.New(apperr.Validation,
			fmt.Sprintf("comment exceeds %d characters", MaxCommentLength))
	}
	return cleaned, nil
}
