package inputval

import (
	"strings"
	"testing"
)

type createAssignmentInput struct {
	Questions []string `json:"questions" validate:"required,min=1,dive,required"`
	StartDate string   `json:"start_date" validate:"required"`
	DueDate   string   `json:"due_date" validate:"required"`
}

func TestValidate_Passes(t *testing.T) {
	in := createAssignmentInput{
		Questions: []string{"How well did they communicate?"},
		StartDate: "2026-09-01T00:00:00Z",
		DueDate:   "2026-09-08T00:00:00Z",
	}
	if res := Validate(in); res.HasErrors() {
		t.Errorf("expected no errors, got %v", res.Fields)
	}
}

func TestValidate_EmptyQuestions(t *testing.T) {
	in := createAssignmentInput{
		Questions: []string{},
		StartDate: "2026-09-01T00:00:00Z",
		DueDate:   "2026-09-08T00:00:00Z",
	}
	res := Validate(in)
	if !res.HasErrors() {
		t.Fatal("expected errors for empty questions")
	}
	if !strings.Contains(res.First(), "questions") {
		t.Errorf("error should name the json field: %q", res.First())
	}
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	in := createAssignmentInput{Questions: []string{"q"}}
	res := Validate(in)
	if !res.HasErrors() {
		t.Fatal("expected errors for missing dates")
	}
	for _, fe := range res.Fields {
		if fe.Field == "StartDate" || fe.Field == "DueDate" {
			t.Errorf("field names should come from json tags, got %q", fe.Field)
		}
	}
}
