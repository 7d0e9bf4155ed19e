package membershipstore_test

import (
	"testing"

	membershipstore "github.com/dalemusser/peerhub/internal/app/store/memberships"
	"github.com/dalemusser/peerhub/internal/app/system/indexes"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/dalemusser/peerhub/internal/testutil"
	"go.uber.org/zap"
)

func TestStore_Create_AlreadyMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	ws := fixtures.CreateWorkspace(ctx, "CS 401")
	u := fixtures.CreateStudent(ctx, "Ada", "ada@test.com", ws.ID)
	g := fixtures.CreateGroup(ctx, "Solo", ws.ID)

	if _, err := store.Create(ctx, models.GroupMembership{
		WorkspaceID: ws.ID, GroupID: g.ID, UserID: u.ID,
	}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := store.Create(ctx, models.GroupMembership{
		WorkspaceID: ws.ID, GroupID: g.ID, UserID: u.ID,
	})
	if err != membershipstore.ErrAlreadyMember {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 402")
	a := fixtures.CreateStudent(ctx, "Ada", "ada@test.com", ws.ID)
	b := fixtures.CreateStudent(ctx, "Ben", "ben@test.com", ws.ID)
	g := fixtures.CreateGroupWithMembers(ctx, "Pair", ws.ID, a, b)

	list, err := store.ListByGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("memberships: got %d, want 2", len(list))
	}

	n, err := store.Delete(ctx, g.ID, a.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}
	n, err = store.Delete(ctx, g.ID, a.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second delete: got %d, want 0", n)
	}
}
