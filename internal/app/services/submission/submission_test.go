package submission_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/peerhub/internal/app/services/submission"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	"github.com/dalemusser/peerhub/internal/app/system/apperr"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/dalemusser/peerhub/internal/testutil"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestValidateRatings(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []int
		questions int
		wantErr   bool
	}{
		{"matching length in range", []int{4, 5, 3}, 3, false},
		{"too few ratings", []int{4, 5}, 3, true},
		{"too many ratings", []int{4, 5, 3, 2}, 3, true},
		{"empty against one question", []int{}, 1, true},
		{"below minimum", []int{0, 3}, 2, true},
		{"above maximum", []int{3, 6}, 2, true},
		{"boundary values", []int{1, 5}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := submission.ValidateRatings(tt.ratings, tt.questions)
			if tt.wantErr {
				if !apperr.Is(err, apperr.Validation) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCleanComment(t *testing.T) {
	p := bluemonday.StrictPolicy()

	got, err := submission.CleanComment(p, "  <script>alert(1)</script>Great work  ")
	if err != nil {
		t.Fatalf("CleanComment: %v", err)
	}
	if got != "Great work" {
		t.Errorf("sanitized comment: got %q", got)
	}

	_, err = submission.CleanComment(p, strings.Repeat("a", submission.MaxCommentLength+1))
	if !apperr.Is(err, apperr.Validation) {
		t.Errorf("expected validation error for oversize comment, got %v", err)
	}
}

// pairingFixture seeds a workspace, two students, and a pending review of
// target by reviewer, returning everything a Submit call needs.
type pairingFixture struct {
	assignment models.ReviewAssignment
	reviewer   models.User
	target     models.User
}

func seedPairing(t *testing.T, f *testutil.Fixtures, start, due time.Time) pairingFixture {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := f.CreateWorkspace(ctx, t.Name())
	reviewer := f.CreateStudent(ctx, "Reviewer", "reviewer@test.com", ws.ID)
	target := f.CreateStudent(ctx, "Target", "target@test.com", ws.ID)
	group := f.CreateGroupWithMembers(ctx, "Pair", ws.ID, reviewer, target)
	a := f.CreateAssignment(ctx, ws.ID, "Peer review", []string{"Effort?", "Quality?"}, start, due)

	f.CreateReview(ctx, models.Review{
		AssignmentID: a.ID,
		GroupID:      group.ID,
		UserID:       reviewer.ID,
		TargetID:     target.ID,
	})
	return pairingFixture{assignment: a, reviewer: reviewer, target: target}
}

func TestSubmitHappyPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx := seedPairing(t, fixtures, now.Add(-time.Hour), now.Add(time.Hour))

	v := submission.New(db, zap.NewNop())
	id, err := v.Submit(ctx, submission.Input{
		CallerID:     fx.reviewer.ID,
		ReviewerID:   fx.reviewer.ID,
		AssignmentID: fx.assignment.ID,
		TargetID:     fx.target.ID,
		Ratings:      []int{4, 5},
		Comment:      "Solid collaboration",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id.IsZero() {
		t.Fatal("Submit returned zero review ID")
	}

	rv, err := reviewstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !rv.Completed {
		t.Error("review not marked completed")
	}
	if len(rv.Ratings) != 2 || rv.Ratings[0] != 4 || rv.Ratings[1] != 5 {
		t.Errorf("ratings: got %v, want [4 5]", rv.Ratings)
	}
	if rv.Comment != "Solid collaboration" {
		t.Errorf("comment: got %q", rv.Comment)
	}
}

func TestSubmitResubmissionReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx := seedPairing(t, fixtures, now.Add(-time.Hour), now.Add(time.Hour))

	v := submission.New(db, zap.NewNop())
	in := submission.Input{
		CallerID:     fx.reviewer.ID,
		ReviewerID:   fx.reviewer.ID,
		AssignmentID: fx.assignment.ID,
		TargetID:     fx.target.ID,
		Ratings:      []int{2, 2},
		Comment:      "first pass",
	}
	firstID, err := v.Submit(ctx, in)
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	in.Ratings = []int{5, 4}
	in.Comment = "revised after the demo"
	secondID, err := v.Submit(ctx, in)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if firstID != secondID {
		t.Errorf("resubmission created a new row: %s vs %s", firstID.Hex(), secondID.Hex())
	}

	rv, err := reviewstore.New(db).GetByID(ctx, secondID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rv.Ratings[0] != 5 || rv.Ratings[1] != 4 {
		t.Errorf("ratings not replaced: got %v", rv.Ratings)
	}
	if rv.Comment != "revised after the demo" {
		t.Errorf("comment not replaced: got %q", rv.Comment)
	}
}

func TestSubmitUnassignedPairing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx := seedPairing(t, fixtures, now.Add(-time.Hour), now.Add(time.Hour))

	// The reverse pairing was never generated.
	_, err := submission.New(db, zap.NewNop()).Submit(ctx, submission.Input{
		CallerID:     fx.target.ID,
		ReviewerID:   fx.target.ID,
		AssignmentID: fx.assignment.ID,
		TargetID:     primitive.NewObjectID(),
		Ratings:      []int{3, 3},
	})
	if !apperr.Is(err, apperr.NotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestSubmitWrongCaller(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx := seedPairing(t, fixtures, now.Add(-time.Hour), now.Add(time.Hour))

	_, err := submission.New(db, zap.NewNop()).Submit(ctx, submission.Input{
		CallerID:     primitive.NewObjectID(), // not the assigned reviewer
		ReviewerID:   fx.reviewer.ID,
		AssignmentID: fx.assignment.ID,
		TargetID:     fx.target.ID,
		Ratings:      []int{3, 3},
	})
	if !apperr.Is(err, apperr.Authorization) {
		t.Errorf("expected authorization error, got %v", err)
	}
}

func TestSubmitOutsideWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// One fixed window, a movable clock: the same pairing is rejected on
	// both sides of the window and accepted inside it.
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	fx := seedPairing(t, fixtures, start, due)

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"before start", start.Add(-time.Minute), false},
		{"inside window", start.Add(24 * time.Hour), true},
		{"after due", due.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := submission.New(db, zap.NewNop()).WithClock(func() time.Time { return tt.at })
			_, err := v.Submit(ctx, submission.Input{
				CallerID:     fx.reviewer.ID,
				ReviewerID:   fx.reviewer.ID,
				AssignmentID: fx.assignment.ID,
				TargetID:     fx.target.ID,
				Ratings:      []int{3, 3},
			})
			if tt.open {
				if err != nil {
					t.Errorf("expected submission to succeed, got %v", err)
				}
				return
			}
			if !apperr.Is(err, apperr.WindowClosed) {
				t.Errorf("expected window-closed error, got %v", err)
			}
		})
	}
}

func TestSubmitSchemaMismatchLeavesRowUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fx := seedPairing(t, fixtures, now.Add(-time.Hour), now.Add(time.Hour))

	_, err := submission.New(db, zap.NewNop()).Submit(ctx, submission.Input{
		CallerID:     fx.reviewer.ID,
		ReviewerID:   fx.reviewer.ID,
		AssignmentID: fx.assignment.ID,
		TargetID:     fx.target.ID,
		Ratings:      []int{4}, // assignment has two questions
	})
	if !apperr.Is(err, apperr.Validation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	rv, err := reviewstore.New(db).GetByPairing(ctx, fx.assignment.ID, fx.reviewer.ID, fx.target.ID)
	if err != nil {
		t.Fatalf("GetByPairing: %v", err)
	}
	if rv.Completed {
		t.Error("rejected submission must leave the review pending")
	}
	if len(rv.Ratings) != 0 {
		t.Errorf("rejected submission must not write ratings, got %v", rv.Ratings)
	}
}
