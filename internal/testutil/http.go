package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/dalemusser/peerhub/internal/app/system/auth"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID          string
	Name        string
	Role        string
	WorkspaceID string
}

// InstructorUser returns a TestUser with the instructor role.
func InstructorUser(workspaceID primitive.ObjectID) TestUser {
	return TestUser{
		ID:          primitive.NewObjectID().Hex(),
		Name:        "Test Instructor",
		Role:        models.RoleInstructor,
		WorkspaceID: workspaceID.Hex(),
	}
}

// StudentUser returns a TestUser with the student role.
func StudentUser(workspaceID primitive.ObjectID) TestUser {
	return TestUser{
		ID:          primitive.NewObjectID().Hex(),
		Name:        "Test Student",
		Role:        models.RoleStudent,
		WorkspaceID: workspaceID.Hex(),
	}
}

// AsTestUser converts a fixture user into the session shape handlers see.
func AsTestUser(u models.User) TestUser {
	return TestUser{
		ID:          u.ID.Hex(),
		Name:        u.FullName,
		Role:        u.Role,
		WorkspaceID: u.WorkspaceID.Hex(),
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the session middleware and injects the user
// directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:          user.ID,
		Name:        user.Name,
		Role:        user.Role,
		WorkspaceID: user.WorkspaceID,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, body io.Reader, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return WithUser(req, user)
}
