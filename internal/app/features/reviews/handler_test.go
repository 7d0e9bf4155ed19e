package reviews_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/peerhub/internal/app/features/reviews"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/dalemusser/peerhub/internal/testutil"
	"go.uber.org/zap"
)

type reviewScenario struct {
	h          *reviews.Handler
	fixtures   *testutil.Fixtures
	assignment models.ReviewAssignment
	reviewer   models.User
	target     models.User
	instructor models.User
	review     models.Review
}

func newScenario(t *testing.T) reviewScenario {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 301")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)
	reviewer := fixtures.CreateStudent(ctx, "Reviewer", "reviewer@test.com", ws.ID)
	target := fixtures.CreateStudent(ctx, "Target", "target@test.com", ws.ID)
	group := fixtures.CreateGroupWithMembers(ctx, "Pair", ws.ID, reviewer, target)
	assignment := fixtures.CreateOpenAssignment(ctx, ws.ID, []string{"Effort?", "Quality?"})
	review := fixtures.CreateReview(ctx, models.Review{
		AssignmentID: assignment.ID,
		GroupID:      group.ID,
		UserID:       reviewer.ID,
		TargetID:     target.ID,
	})

	return reviewScenario{
		h:          reviews.NewHandler(db, zap.NewNop()),
		fixtures:   fixtures,
		assignment: assignment,
		reviewer:   reviewer,
		target:     target,
		instructor: instructor,
		review:     review,
	}
}

func submitBody(assignmentID, targetID string, ratings []int) *strings.Reader {
	b, _ := json.Marshal(map[string]any{
		"assignment_id": assignmentID,
		"target_id":     targetID,
		"ratings":       ratings,
		"comment":       "good sprint",
	})
	return strings.NewReader(string(b))
}

func TestHandleSubmitCompletesReview(t *testing.T) {
	s := newScenario(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/reviews",
		submitBody(s.assignment.ID.Hex(), s.target.ID.Hex(), []int{4, 5}),
		testutil.AsTestUser(s.reviewer))
	rec := httptest.NewRecorder()
	s.h.HandleSubmit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		ReviewID string `json:"review_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ReviewID != s.review.ID.Hex() {
		t.Errorf("review_id: got %s, want %s", resp.ReviewID, s.review.ID.Hex())
	}
}

func TestHandleSubmitStatusMapping(t *testing.T) {
	s := newScenario(t)

	tests := []struct {
		name       string
		user       models.User
		targetID   string
		ratings    []int
		wantStatus int
	}{
		{"unassigned pairing", s.target, s.reviewer.ID.Hex(), []int{3, 3}, http.StatusNotFound},
		{"schema mismatch", s.reviewer, s.target.ID.Hex(), []int{3}, http.StatusBadRequest},
		{"rating out of range", s.reviewer, s.target.ID.Hex(), []int{3, 9}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodPost, "/reviews",
				submitBody(s.assignment.ID.Hex(), tt.targetID, tt.ratings),
				testutil.AsTestUser(tt.user))
			rec := httptest.NewRecorder()
			s.h.HandleSubmit(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleSubmitClosedWindow(t *testing.T) {
	s := newScenario(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	closed := s.fixtures.CreateAssignment(ctx, s.assignment.WorkspaceID, "Closed", []string{"Effort?"},
		now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	s.fixtures.CreateReview(ctx, models.Review{
		AssignmentID: closed.ID,
		GroupID:      s.review.GroupID,
		UserID:       s.reviewer.ID,
		TargetID:     s.target.ID,
	})

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/reviews",
		submitBody(closed.ID.Hex(), s.target.ID.Hex(), []int{3}),
		testutil.AsTestUser(s.reviewer))
	rec := httptest.NewRecorder()
	s.h.HandleSubmit(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d; body: %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}
}

func TestHandleViewVisibility(t *testing.T) {
	s := newScenario(t)

	tests := []struct {
		name       string
		user       models.User
		wantStatus int
	}{
		{"reviewer sees own", s.reviewer, http.StatusOK},
		{"workspace instructor sees", s.instructor, http.StatusOK},
		{"target cannot see", s.target, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/reviews/"+s.review.ID.Hex(), nil,
				testutil.AsTestUser(tt.user))
			req = testutil.WithChiURLParam(req, "id", s.review.ID.Hex())
			rec := httptest.NewRecorder()
			s.h.HandleView(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleListByReviewerAuthorization(t *testing.T) {
	s := newScenario(t)

	target := "/reviews/by/" + s.reviewer.ID.Hex() + "?assignment_id=" + s.assignment.ID.Hex()

	// A student may list their own reviews.
	req := testutil.NewAuthenticatedRequest(http.MethodGet, target, nil, testutil.AsTestUser(s.reviewer))
	req = testutil.WithChiURLParam(req, "userID", s.reviewer.ID.Hex())
	rec := httptest.NewRecorder()
	s.h.HandleListByReviewer(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("self list status: got %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var rows []models.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows: got %d, want 1", len(rows))
	}

	// Another student may not.
	req = testutil.NewAuthenticatedRequest(http.MethodGet, target, nil, testutil.AsTestUser(s.target))
	req = testutil.WithChiURLParam(req, "userID", s.reviewer.ID.Hex())
	rec = httptest.NewRecorder()
	s.h.HandleListByReviewer(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cross-student list status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// The workspace instructor may.
	req = testutil.NewAuthenticatedRequest(http.MethodGet, target, nil, testutil.AsTestUser(s.instructor))
	req = testutil.WithChiURLParam(req, "userID", s.reviewer.ID.Hex())
	rec = httptest.NewRecorder()
	s.h.HandleListByReviewer(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("instructor list status: got %d, want %d", rec.Code, http.StatusOK)
	}
}
