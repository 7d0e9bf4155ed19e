package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workspace role vocabulary. PeerHub has exactly two roles.
const (
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// User represents instructors and students.
//
// NOTE:
//   - Group membership is not embedded on User.
//     Use the group_memberships collection to discover a user's groups.
//   - Credentials and identity federation live in the identity service,
//     not here; this record carries only what the review engine needs.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	FullNameCI  string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email       string             `bson:"email" json:"email"`
	Role        string             `bson:"role" json:"role"` // instructor | student
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	WorkspaceID primitive.ObjectID `bson:"workspace_id" json:"workspace_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
