package assignments_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/peerhub/internal/app/features/assignments"
	reviewstore "github.com/dalemusser/peerhub/internal/app/store/reviews"
	"github.com/dalemusser/peerhub/internal/app/system/auditlog"
	"github.com/dalemusser/peerhub/internal/domain/models"
	"github.com/dalemusser/peerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*assignments.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	h := assignments.NewHandler(db, auditlog.New(nil, zap.NewNop(), auditlog.Config{Admin: "off"}), zap.NewNop())
	return h, fixtures
}

func createBody(wsID string, questions []string, start, due time.Time) *strings.Reader {
	b, _ := json.Marshal(map[string]any{
		"workspace_id": wsID,
		"description":  "Sprint retro peer review",
		"questions":    questions,
		"start_date":   start,
		"due_date":     due,
	})
	return strings.NewReader(string(b))
}

func TestHandleCreateRequiresInstructor(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 201")
	student := fixtures.CreateStudent(ctx, "Student", "student@test.com", ws.ID)

	now := time.Now().UTC()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/assignments",
		createBody(ws.ID.Hex(), []string{"Effort?"}, now, now.Add(time.Hour)),
		testutil.AsTestUser(student))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleCreateRejectsInvertedWindow(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 202")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)

	now := time.Now().UTC()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/assignments",
		createBody(ws.ID.Hex(), []string{"Effort?"}, now, now.Add(-time.Hour)),
		testutil.AsTestUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateRejectsEmptyQuestions(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 203")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)

	now := time.Now().UTC()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/assignments",
		createBody(ws.ID.Hex(), []string{}, now, now.Add(time.Hour)),
		testutil.AsTestUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreateOpenWindowGeneratesSynchronously(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 204")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)
	a := fixtures.CreateStudent(ctx, "Ada", "ada@test.com", ws.ID)
	b := fixtures.CreateStudent(ctx, "Ben", "ben@test.com", ws.ID)
	c := fixtures.CreateStudent(ctx, "Cam", "cam@test.com", ws.ID)
	fixtures.CreateGroupWithMembers(ctx, "Trio", ws.ID, a, b, c)

	now := time.Now().UTC()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/assignments",
		createBody(ws.ID.Hex(), []string{"Effort?", "Quality?"}, now.Add(-time.Minute), now.Add(48*time.Hour)),
		testutil.AsTestUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Assignment models.ReviewAssignment `json:"assignment"`
		Generation *struct {
			Created int64 `json:"created"`
		} `json:"generation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Generation == nil {
		t.Fatal("open-window create did not generate reviews")
	}
	if resp.Generation.Created != 6 {
		t.Errorf("generated reviews: got %d, want 6", resp.Generation.Created)
	}

	count, err := reviewstore.New(fixtures.DB()).CountByAssignment(ctx, resp.Assignment.ID)
	if err != nil {
		t.Fatalf("CountByAssignment: %v", err)
	}
	if count != 6 {
		t.Errorf("persisted reviews: got %d, want 6", count)
	}
}

func TestHandleCreateFutureWindowDefersGeneration(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 205")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)
	a := fixtures.CreateStudent(ctx, "Ada", "ada@test.com", ws.ID)
	b := fixtures.CreateStudent(ctx, "Ben", "ben@test.com", ws.ID)
	fixtures.CreateGroupWithMembers(ctx, "Pair", ws.ID, a, b)

	now := time.Now().UTC()
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/assignments",
		createBody(ws.ID.Hex(), []string{"Effort?"}, now.Add(time.Hour), now.Add(48*time.Hour)),
		testutil.AsTestUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Assignment models.ReviewAssignment `json:"assignment"`
		Generation *json.RawMessage        `json:"generation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Generation != nil {
		t.Error("future-window create must not generate reviews")
	}

	// The external trigger refuses to run before the window opens.
	genReq := testutil.NewAuthenticatedRequest(http.MethodPost,
		fmt.Sprintf("/assignments/%s/generate", resp.Assignment.ID.Hex()), nil,
		testutil.AsTestUser(instructor))
	genReq = testutil.WithChiURLParam(genReq, "id", resp.Assignment.ID.Hex())
	genRec := httptest.NewRecorder()
	h.HandleGenerate(genRec, genReq)

	if genRec.Code != http.StatusBadRequest {
		t.Errorf("pre-window generate status: got %d, want %d", genRec.Code, http.StatusBadRequest)
	}
}

func TestHandleEditFreezesQuestionsAfterGeneration(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 206")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)
	a := fixtures.CreateStudent(ctx, "Ada", "ada@test.com", ws.ID)
	b := fixtures.CreateStudent(ctx, "Ben", "ben@test.com", ws.ID)
	group := fixtures.CreateGroupWithMembers(ctx, "Pair", ws.ID, a, b)
	assignment := fixtures.CreateOpenAssignment(ctx, ws.ID, []string{"Effort?"})
	fixtures.CreateReview(ctx, models.Review{
		AssignmentID: assignment.ID,
		GroupID:      group.ID,
		UserID:       a.ID,
		TargetID:     b.ID,
	})

	body := strings.NewReader(`{"questions":["Different question?"]}`)
	req := testutil.NewAuthenticatedRequest(http.MethodPatch, "/assignments/"+assignment.ID.Hex(), body,
		testutil.AsTestUser(instructor))
	req = testutil.WithChiURLParam(req, "id", assignment.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleEdit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}

	// Dates stay editable after generation.
	newDue := time.Now().UTC().Add(96 * time.Hour).Format(time.RFC3339)
	body = strings.NewReader(`{"due_date":"` + newDue + `"}`)
	req = testutil.NewAuthenticatedRequest(http.MethodPatch, "/assignments/"+assignment.ID.Hex(), body,
		testutil.AsTestUser(instructor))
	req = testutil.WithChiURLParam(req, "id", assignment.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleEdit(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("date edit status: got %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestHandleDeleteCascades(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ws := fixtures.CreateWorkspace(ctx, "CS 207")
	instructor := fixtures.CreateInstructor(ctx, "Prof", "prof@test.com", ws.ID)
	a := fixtures.CreateStudent(ctx, "Ada", "ada@test.com", ws.ID)
	b := fixtures.CreateStudent(ctx, "Ben", "ben@test.com", ws.ID)
	group := fixtures.CreateGroupWithMembers(ctx, "Pair", ws.ID, a, b)
	assignment := fixtures.CreateOpenAssignment(ctx, ws.ID, []string{"Effort?"})
	fixtures.CreateReview(ctx, models.Review{
		AssignmentID: assignment.ID, GroupID: group.ID, UserID: a.ID, TargetID: b.ID,
	})
	fixtures.CreateReview(ctx, models.Review{
		AssignmentID: assignment.ID, GroupID: group.ID, UserID: b.ID, TargetID: a.ID,
	})

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/assignments/"+assignment.ID.Hex(), nil,
		testutil.AsTestUser(instructor))
	req = testutil.WithChiURLParam(req, "id", assignment.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		ReviewsDeleted int64 `json:"reviews_deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ReviewsDeleted != 2 {
		t.Errorf("reviews_deleted: got %d, want 2", resp.ReviewsDeleted)
	}

	if _, err := h.Assignments.GetByID(ctx, assignment.ID); err != mongo.ErrNoDocuments {
		t.Errorf("assignment still present after delete: %v", err)
	}
}
