package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewAssignment is one instructor-defined peer-review cycle: a fixed,
// ordered question list and a [StartDate, DueDate] submission window.
//
// Questions are positional: every Review generated for this assignment
// carries a ratings vector aligned index-for-index with Questions. Once
// reviews have been generated the question list is immutable (dates and
// description stay editable) so completed ratings never drift out of
// alignment with the schema they were submitted against.
type ReviewAssignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkspaceID primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`
	Description string             `bson:"description" json:"description"`
	Questions   []string           `bson:"questions" json:"questions"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	DueDate     time.Time          `bson:"due_date" json:"due_date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsOpenForSubmission reports whether now falls inside the assignment's
// submission window. Both ends are inclusive.
func (a ReviewAssignment) IsOpenForSubmission(now time.Time) bool {
	return !now.Before(a.StartDate) && !now.After(a.DueDate)
}
