package testutil

import (
	"context"
	"testing"
	"time"

	assignmentstore "github.com/dalemusser/peerhub/internal/app/store/assignments"
	groupstore "github.com/dalemusser/peerhub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/peerhub/internal/app/store/memberships"
	userstore "github.com/dalemusser/peerhub/internal/app/store/users"
	workspacestore "github.com/dalemusser/peerhub/internal/app/store/workspaces"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data. Seeding goes
// through the production stores so fixtures carry the same derived fields
// (folded names, status defaults, timestamps) real writes do.
type Fixtures struct {
	db          *mongo.Database
	t           *testing.T
	workspaces  *workspacestore.Store
	users       *userstore.Store
	groups      *groupstore.Store
	memberships *membershipstore.Store
	assignments *assignmentstore.Store
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{
		db:          db,
		t:           t,
		workspaces:  workspacestore.New(db),
		users:       userstore.New(db),
		groups:      groupstore.New(db),
		memberships: membershipstore.New(db),
		assignments: assignmentstore.New(db),
	}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateWorkspace creates an active test workspace with the given name.
func (f *Fixtures) CreateWorkspace(ctx context.Context, name string) models.Workspace {
	f.t.Helper()

	ws, err := f.workspaces.Create(ctx, models.Workspace{Name: name})
	if err != nil {
		f.t.Fatalf("failed to create test workspace: %v", err)
	}
	return ws
}

// CreateUser creates a test user with the given role in the workspace.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string, workspaceID primitive.ObjectID) models.User {
	f.t.Helper()

	user, err := f.users.Create(ctx, models.User{
		FullName:    fullName,
		Email:       email,
		Role:        role,
		WorkspaceID: workspaceID,
	})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateInstructor creates a test instructor in the workspace.
func (f *Fixtures) CreateInstructor(ctx context.Context, fullName, email string, workspaceID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleInstructor, workspaceID)
}

// CreateStudent creates a test student in the workspace.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string, workspaceID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudent, workspaceID)
}

// CreateGroup creates an active test group in the workspace.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, workspaceID primitive.ObjectID) models.Group {
	f.t.Helper()

	group, err := f.groups.Create(ctx, models.Group{
		Name:        name,
		Description: "Test group description",
		WorkspaceID: workspaceID,
	})
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateMembership links a user to a group.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, groupID, workspaceID primitive.ObjectID) models.GroupMembership {
	f.t.Helper()

	m, err := f.memberships.Create(ctx, models.GroupMembership{
		WorkspaceID: workspaceID,
		GroupID:     groupID,
		UserID:      userID,
	})
	if err != nil {
		f.t.Fatalf("failed to create test group membership: %v", err)
	}
	return m
}

// CreateGroupWithMembers creates a group and memberships for the given
// users in one call.
func (f *Fixtures) CreateGroupWithMembers(ctx context.Context, name string, workspaceID primitive.ObjectID, members ...models.User) models.Group {
	f.t.Helper()

	group := f.CreateGroup(ctx, name, workspaceID)
	for _, u := range members {
		f.CreateMembership(ctx, u.ID, group.ID, workspaceID)
	}
	return group
}

// CreateAssignment creates a review assignment with the given window.
func (f *Fixtures) CreateAssignment(ctx context.Context, workspaceID primitive.ObjectID, description string, questions []string, start, due time.Time) models.ReviewAssignment {
	f.t.Helper()

	a, err := f.assignments.Create(ctx, models.ReviewAssignment{
		WorkspaceID: workspaceID,
		Description: description,
		Questions:   questions,
		StartDate:   start,
		DueDate:     due,
	})
	if err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateOpenAssignment creates an assignment whose window is currently open.
func (f *Fixtures) CreateOpenAssignment(ctx context.Context, workspaceID primitive.ObjectID, questions []string) models.ReviewAssignment {
	f.t.Helper()

	now := time.Now().UTC()
	return f.CreateAssignment(ctx, workspaceID, "Open test assignment", questions,
		now.Add(-24*time.Hour), now.Add(24*time.Hour))
}

// CreateReview inserts a review row directly. This deliberately bypasses
// the generator and the submission validator: analytics tests need rows in
// arbitrary states (completed, pending, historical) that the production
// writers would refuse to produce in one step.
func (f *Fixtures) CreateReview(ctx context.Context, rv models.Review) models.Review {
	f.t.Helper()

	now := time.Now().UTC()
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	if rv.Ratings == nil {
		rv.Ratings = []int{}
	}
	rv.CreatedAt = now
	rv.UpdatedAt = now

	if _, err := f.db.Collection("reviews").InsertOne(ctx, rv); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return rv
}
