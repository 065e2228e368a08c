package progress

import (
	"testing"
	"time"
)

func TestEvaluateMilestonesFirstUnawardedWins(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	awarded := map[string]bool{}

	// A history crossing several thresholds at once still yields one
	// milestone per pass, in definition order.
	totals := HistoryTotals{CompletedDays: 1, CompletedExercises: 5}

	first := EvaluateMilestones(totals, awarded, 1, now)
	if first == nil || first.ID != "first-exercise" {
		t.Fatalf("first pass = %+v, want first-exercise", first)
	}
	awarded[first.ID] = true

	second := EvaluateMilestones(totals, awarded, 1, now)
	if second == nil || second.ID != "first-workout" {
		t.Fatalf("second pass = %+v, want first-workout", second)
	}
	awarded[second.ID] = true

	if got := EvaluateMilestones(totals, awarded, 1, now); got != nil {
		t.Errorf("third pass = %+v, want nil", got)
	}
}

func TestEvaluateMilestonesIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	totals := HistoryTotals{CompletedExercises: 1}

	awarded := map[string]bool{"first-exercise": true}
	if got := EvaluateMilestones(totals, awarded, 3, now); got != nil {
		t.Errorf("replay = %+v, want nil", got)
	}
}

func TestEvaluateMilestonesThresholds(t *testing.T) {
	now := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		totals  HistoryTotals
		awarded []string
		wantID  string
	}{
		{
			name:   "below every threshold",
			totals: HistoryTotals{},
			wantID: "",
		},
		{
			name:    "seven completed days",
			totals:  HistoryTotals{CompletedDays: 7, CompletedExercises: 20},
			awarded: []string{"first-exercise", "first-workout"},
			wantID:  "seven-days",
		},
		{
			name:    "thirty completed days",
			totals:  HistoryTotals{CompletedDays: 30, CompletedExercises: 40},
			awarded: []string{"first-exercise", "first-workout", "seven-days"},
			wantID:  "thirty-days",
		},
		{
			name:    "fifty exercises",
			totals:  HistoryTotals{CompletedDays: 10, CompletedExercises: 50},
			awarded: []string{"first-exercise", "first-workout", "seven-days"},
			wantID:  "fifty-exercises",
		},
		{
			name: "two hundred fifty exercises",
			totals: HistoryTotals{
				CompletedDays:      40,
				CompletedExercises: 250,
			},
			awarded: []string{
				"first-exercise", "first-workout", "seven-days",
				"thirty-days", "fifty-exercises", "hundred-exercises",
			},
			wantID: "big-two-fifty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			awarded := map[string]bool{}
			for _, id := range tt.awarded {
				awarded[id] = true
			}

			got := EvaluateMilestones(tt.totals, awarded, 1, now)
			switch {
			case tt.wantID == "" && got != nil:
				t.Errorf("got %s, want none", got.ID)
			case tt.wantID != "" && got == nil:
				t.Errorf("got none, want %s", tt.wantID)
			case tt.wantID != "" && got.ID != tt.wantID:
				t.Errorf("got %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestSummarizeHistory(t *testing.T) {
	history := []Day{
		{
			IsWorkoutComplete: true,
			Exercises: []ExerciseProgress{
				{Status: ExerciseCompleted},
				{Status: ExerciseCompleted},
				{Status: ExerciseSkipped},
			},
		},
		{
			Exercises: []ExerciseProgress{
				{Status: ExerciseCompleted},
				{Status: ExercisePending},
			},
		},
		{IsRestDay: true},
	}

	totals := SummarizeHistory(history)
	if totals.CompletedDays != 1 {
		t.Errorf("completed days = %d, want 1", totals.CompletedDays)
	}
	if totals.CompletedExercises != 3 {
		t.Errorf("completed exercises = %d, want 3", totals.CompletedExercises)
	}
}
