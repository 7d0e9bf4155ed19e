// internal/app/features/assignments/types.go
package assignments

import (
	"time"

	"github.com/dalemusser/peerhub/internal/app/services/reviewgen"
	"github.com/dalemusser/peerhub/internal/domain/models"
)

// createInput defines validation rules for creating an assignment.
type createInput struct {
	WorkspaceID string    `json:"workspace_id" validate:"required,len=24,hexadecimal"`
	Description string    `json:"description" validate:"max=2000"`
	Questions   []string  `json:"questions" validate:"required,min=1,dive,required,max=500"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// editInput defines validation rules for editing an assignment. All fields
// are optional; absent fields are left unchanged.
type editInput struct {
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Questions   []string   `json:"questions" validate:"omitempty,min=1,dive,required,max=500"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
}

// createResponse returns the new assignment and, when the window was
// already open, what the synchronous generation run produced.
type createResponse struct {
	Assignment models.ReviewAssignment `json:"assignment"`
	Generation *reviewgen.Result       `json:"generation,omitempty"`
}

// deleteResponse reports the cascade size.
type deleteResponse struct {
	ReviewsDeleted int64 `json:"reviews_deleted"`
}
