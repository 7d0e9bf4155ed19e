package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating bounds. Submissions outside this range are rejected, not clamped.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is one directed (reviewer, target) rating task generated from
// group membership. Uniquely keyed by (assignment_id, user_id, target_id);
// GroupID snapshots the group the pair belonged to at generation time.
//
// Lifecycle: created pending (empty ratings, completed=false) by the review
// graph generator, mutated to completed=true by the submission validator.
// Re-submission while completed is an edit, not a new transition. No other
// actor creates or deletes Review rows except the cascading delete of the
// owning assignment.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignmentID primitive.ObjectID `bson:"assignment_id" json:"assignment_id"`
	GroupID      primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`     // reviewer
	TargetID     primitive.ObjectID `bson:"target_id" json:"target_id"` // reviewee

	Ratings   []int  `bson:"ratings" json:"ratings"` // positionally aligned with assignment questions
	Comment   string `bson:"comment,omitempty" json:"comment,omitempty"`
	Completed bool   `bson:"completed" json:"completed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
