package models

import (
	"testing"
	"time"
)

func TestIsOpenForSubmission(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	a := ReviewAssignment{StartDate: start, DueDate: due}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"mid window", start.Add(72 * time.Hour), true},
		{"exactly at due", due, true},
		{"after due", due.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.IsOpenForSubmission(tt.now); got != tt.want {
				t.Errorf("IsOpenForSubmission(%v): got %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
