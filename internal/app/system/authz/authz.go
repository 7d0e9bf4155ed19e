// Package authz turns the session user into typed identifiers and answers
// the role questions the review engine asks.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/peerhub/internal/app/system/auth"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false — so ok=true always means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsInstructor reports whether the current request's user is an instructor.
func IsInstructor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleInstructor
}

// IsStudent reports whether the current request's user is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleStudent
}

// UserWorkspaceID returns the current user's workspace ID as an ObjectID,
// or NilObjectID if the user is not signed in or the ID is malformed.
func UserWorkspaceID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.WorkspaceID == "" {
		return primitive.NilObjectID
	}
	wsID, err := primitive.ObjectIDFromHex(user.WorkspaceID)
	if err != nil {
		return primitive.NilObjectID
	}
	return wsID
}

// CanViewAnalyticsFor reports whether the current user may read analytics
// about targetID within workspaceID: instructors of the workspace may read
// anyone's, and every user may read their own.
func CanViewAnalyticsFor(r *http.Request, targetID, workspaceID primitive.ObjectID) bool {
	role, _, uid, ok := UserCtx(r)
	if !ok {
		return false
	}
	if uid == targetID {
		return true
	}
	return role == models.RoleInstructor && UserWorkspaceID(r) == workspaceID
}
