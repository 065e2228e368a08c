package stats_test

import (
	"testing"
	"time"

	"github.com/tkoskela/fitplan/internal/progress"
	"github.com/tkoskela/fitplan/internal/stats"
)

// day builds a minimal tracked day for rollup tests.
func day(date time.Time, percent int, complete bool, completedExercises int) progress.Day {
	d := progress.Day{
		Date:              date,
		CompletionPercent: percent,
		IsWorkoutComplete: complete,
	}
	for range completedExercises {
		d.Exercises = append(d.Exercises, progress.ExerciseProgress{
			ExerciseID: "ex",
			Status:     progress.ExerciseCompleted,
		})
	}
	return d
}

// withFasting attaches a compliance reading to a day.
func withFasting(d progress.Day, compliance int) progress.Day {
	d.Fasting = &progress.FastingProgress{CompliancePercent: compliance, Started: true}
	return d
}

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{name: "monday maps to itself", date: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)},
		{name: "midweek maps back", date: time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC), want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)},
		{name: "sunday maps back six days", date: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), want: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := stats.WeekBounds(tt.date)
			if !start.Equal(tt.want) {
				t.Errorf("week start = %v, want %v", start, tt.want)
			}
			if !end.Equal(tt.want.AddDate(0, 0, 6)) {
				t.Errorf("week end = %v, want %v", end, tt.want.AddDate(0, 0, 6))
			}
		})
	}
}

func TestWeeklyExcludesAbsentDays(t *testing.T) {
	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	// Three tracked days in a seven-day week.
	history := []progress.Day{
		day(monday, 100, true, 3),
		day(monday.AddDate(0, 0, 1), 50, false, 1),
		day(monday.AddDate(0, 0, 2), 30, false, 0),
		// Outside the window, must be ignored.
		day(monday.AddDate(0, 0, -1), 100, true, 5),
	}

	got := stats.Weekly(history, monday.AddDate(0, 0, 3))

	if got.DaysTracked != 3 {
		t.Errorf("days tracked = %d, want 3", got.DaysTracked)
	}
	if got.WorkoutsCompleted != 1 {
		t.Errorf("workouts completed = %d, want 1", got.WorkoutsCompleted)
	}
	if got.ExercisesCompleted != 4 {
		t.Errorf("exercises completed = %d, want 4", got.ExercisesCompleted)
	}
	// Mean over tracked days only: (100+50+30)/3 = 60.
	if got.AverageCompletionPercent != 60 {
		t.Errorf("average completion = %d%%, want 60%%", got.AverageCompletionPercent)
	}
}

func TestWeeklyFastingComplianceAveragesReportingDays(t *testing.T) {
	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	// Two days report compliance, one does not: (80+90)/2 = 85.
	history := []progress.Day{
		withFasting(day(monday, 100, true, 2), 80),
		withFasting(day(monday.AddDate(0, 0, 1), 60, false, 1), 90),
		day(monday.AddDate(0, 0, 2), 40, false, 0),
	}

	got := stats.Weekly(history, monday)

	if got.AverageFastingCompliance != 85 {
		t.Errorf("average fasting compliance = %d%%, want 85%%", got.AverageFastingCompliance)
	}
	if got.DaysTracked != 3 {
		t.Errorf("days tracked = %d, want 3", got.DaysTracked)
	}
}

func TestWeeklyNoFastingReportsIsZero(t *testing.T) {
	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	got := stats.Weekly([]progress.Day{day(monday, 100, true, 2)}, monday)

	if got.AverageFastingCompliance != 0 {
		t.Errorf("average fasting compliance = %d%%, want 0%%", got.AverageFastingCompliance)
	}
}

func TestWeeklyEmptyHistory(t *testing.T) {
	got := stats.Weekly(nil, time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC))

	if got.DaysTracked != 0 || got.AverageCompletionPercent != 0 || got.WorkoutsCompleted != 0 {
		t.Errorf("empty history summary = %+v, want zeros", got)
	}
}

func TestMonthlyStreaks(t *testing.T) {
	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Seven consecutive completed days, then a gap day tracked but not
	// completed: the longest streak is 7 and the running streak is broken.
	var history []progress.Day
	for i := range 7 {
		history = append(history, day(first.AddDate(0, 0, i), 100, true, 2))
	}
	history = append(history, day(first.AddDate(0, 0, 7), 40, false, 1))

	got := stats.Monthly(history, first.AddDate(0, 0, 7))

	if got.LongestStreak != 7 {
		t.Errorf("longest streak = %d, want 7", got.LongestStreak)
	}
	if got.StreakDays != 0 {
		t.Errorf("streak days = %d, want 0 after broken streak", got.StreakDays)
	}
	if got.WorkoutsCompleted != 7 {
		t.Errorf("workouts completed = %d, want 7", got.WorkoutsCompleted)
	}
	if got.DaysTracked != 8 {
		t.Errorf("days tracked = %d, want 8", got.DaysTracked)
	}
}

func TestMonthlyMissingDayBreaksStreak(t *testing.T) {
	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// Completed on the 1st and 3rd with no record on the 2nd.
	history := []progress.Day{
		day(first, 100, true, 2),
		day(first.AddDate(0, 0, 2), 100, true, 2),
	}

	got := stats.Monthly(history, first.AddDate(0, 0, 2))

	if got.LongestStreak != 1 {
		t.Errorf("longest streak = %d, want 1", got.LongestStreak)
	}
}

func TestMonthlyStreakRunsToEndOfMonth(t *testing.T) {
	// August 2026 has 31 days. Complete the last three and query the last.
	var history []progress.Day
	for i := 29; i <= 31; i++ {
		history = append(history, day(time.Date(2026, 8, i, 0, 0, 0, 0, time.UTC), 100, true, 1))
	}

	got := stats.Monthly(history, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	if got.StreakDays != 3 {
		t.Errorf("streak days = %d, want 3", got.StreakDays)
	}
	if got.LongestStreak != 3 {
		t.Errorf("longest streak = %d, want 3", got.LongestStreak)
	}
}

func TestMonthlyStreakAliveAtQueryDate(t *testing.T) {
	// Complete the 13th through the 15th and ask for the 15th: the streak is
	// still alive, the empty rest of the month must not reset it.
	var history []progress.Day
	for i := 13; i <= 15; i++ {
		history = append(history, day(time.Date(2026, 8, i, 0, 0, 0, 0, time.UTC), 100, true, 1))
	}
	// A longer completed run later in the month counts for LongestStreak but
	// not for the running streak as of the 15th.
	for i := 20; i <= 23; i++ {
		history = append(history, day(time.Date(2026, 8, i, 0, 0, 0, 0, time.UTC), 100, true, 1))
	}

	got := stats.Monthly(history, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	if got.StreakDays != 3 {
		t.Errorf("streak days = %d, want 3", got.StreakDays)
	}
	if got.LongestStreak != 4 {
		t.Errorf("longest streak = %d, want 4", got.LongestStreak)
	}
	if got.DaysTracked != 7 {
		t.Errorf("days tracked = %d, want 7", got.DaysTracked)
	}
}

func TestMonthlyFastingComplianceAveragesReportingDays(t *testing.T) {
	first := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	history := []progress.Day{
		withFasting(day(first, 100, true, 2), 70),
		day(first.AddDate(0, 0, 1), 50, false, 1),
		withFasting(day(first.AddDate(0, 0, 2), 80, true, 2), 100),
	}

	got := stats.Monthly(history, first.AddDate(0, 0, 2))

	// (70+100)/2 = 85; the day without a reading stays out.
	if got.AverageFastingCompliance != 85 {
		t.Errorf("average fasting compliance = %d%%, want 85%%", got.AverageFastingCompliance)
	}
}

func TestMonthlyEmptyHistory(t *testing.T) {
	got := stats.Monthly(nil, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	if got.DaysTracked != 0 || got.LongestStreak != 0 || got.StreakDays != 0 {
		t.Errorf("empty history summary = %+v, want zeros", got)
	}
	if got.Year != 2026 || got.Month != time.August {
		t.Errorf("summary period = %d-%s, want 2026-August", got.Year, got.Month)
	}
}
