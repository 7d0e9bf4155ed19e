// internal/app/features/reviews/types.go
package reviews

// submitInput defines validation rules for submitting a review. The
// reviewer is always the session user; ratings are checked against the
// assignment's question schema in the submission service.
type submitInput struct {
	AssignmentID string `json:"assignment_id" validate:"required,len=24,hexadecimal"`
	TargetID     string `json:"target_id" validate:"required,len=24,hexadecimal"`
	Ratings      []int  `json:"ratings" validate:"required"`
	Comment      string `json:"comment" validate:"max=4000"`
}

// submitResponse returns the completed review's identifier.
type submitResponse struct {
	ReviewID string `json:"review_id"`
}
