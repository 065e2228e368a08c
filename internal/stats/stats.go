// Package stats computes read-only rollups over progress history. All
// functions are pure; absent days never count against the user.
package stats

import (
	"math"
	"time"

	"github.com/tkoskela/fitplan/internal/progress"
)

// WeeklySummary aggregates one Monday-to-Sunday window.
type WeeklySummary struct {
	WeekStart                time.Time `json:"week_start"`
	WeekEnd                  time.Time `json:"week_end"`
	DaysTracked              int       `json:"days_tracked"`
	WorkoutsCompleted        int       `json:"workouts_completed"`
	ExercisesCompleted       int       `json:"exercises_completed"`
	MealsEaten               int       `json:"meals_eaten"`
	AverageCompletionPercent int       `json:"average_completion_percent"`
	// AverageFastingCompliance averages over the days that reported a
	// compliance reading; days without one stay out of the denominator.
	AverageFastingCompliance int `json:"average_fasting_compliance"`
}

// MonthlySummary aggregates one calendar month, including streaks.
type MonthlySummary struct {
	Year                     int        `json:"year"`
	Month                    time.Month `json:"month"`
	DaysTracked              int        `json:"days_tracked"`
	WorkoutsCompleted        int        `json:"workouts_completed"`
	ExercisesCompleted       int        `json:"exercises_completed"`
	AverageCompletionPercent int        `json:"average_completion_percent"`
	AverageFastingCompliance int        `json:"average_fasting_compliance"`
	// StreakDays is the run of consecutive completed workout days ending at
	// the queried date. Days after it have not happened yet and must not
	// break a streak that is still alive.
	StreakDays int `json:"streak_days"`
	// LongestStreak is the longest such run anywhere in the month.
	LongestStreak int `json:"longest_streak"`
}

// WeekBounds returns the Monday and Sunday of the week containing date.
func WeekBounds(date time.Time) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(day.Weekday() - time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// Weekly summarizes the Monday-to-Sunday window containing date. Only days
// with a progress record enter the averages: a day the user never opened the
// app does not drag the mean down.
func Weekly(history []progress.Day, date time.Time) WeeklySummary {
	start, end := WeekBounds(date)
	summary := WeeklySummary{
		WeekStart: start,
		WeekEnd:   end,
	}

	var percentSum, fastingSum, fastingDays int
	for _, d := range history {
		if d.Date.Before(start) || d.Date.After(end) {
			continue
		}
		summary.DaysTracked++
		summary.ExercisesCompleted += d.CompletedExercises()
		summary.MealsEaten += d.EatenMeals()
		percentSum += d.CompletionPercent
		if d.IsWorkoutComplete {
			summary.WorkoutsCompleted++
		}
		if d.Fasting != nil {
			fastingSum += d.Fasting.CompliancePercent
			fastingDays++
		}
	}

	if summary.DaysTracked > 0 {
		summary.AverageCompletionPercent = int(math.Round(float64(percentSum) / float64(summary.DaysTracked)))
	}
	if fastingDays > 0 {
		summary.AverageFastingCompliance = int(math.Round(float64(fastingSum) / float64(fastingDays)))
	}

	return summary
}

// Monthly summarizes the calendar month containing date. The streak scan
// walks every calendar day of the month in order: a completed workout extends
// the run, anything else, including a missing record, breaks it. StreakDays
// is the run as of the queried date, so an unbroken streak ending today stays
// alive even when the month has days left.
func Monthly(history []progress.Day, date time.Time) MonthlySummary {
	summary := MonthlySummary{
		Year:  date.Year(),
		Month: date.Month(),
	}

	byDate := make(map[string]progress.Day, len(history))
	for _, d := range history {
		if d.Date.Year() == date.Year() && d.Date.Month() == date.Month() {
			byDate[d.Date.Format(time.DateOnly)] = d
		}
	}

	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var percentSum, fastingSum, fastingDays, run int
	for day := first; day.Month() == date.Month(); day = day.AddDate(0, 0, 1) {
		d, tracked := byDate[day.Format(time.DateOnly)]
		if tracked {
			summary.DaysTracked++
			summary.ExercisesCompleted += d.CompletedExercises()
			percentSum += d.CompletionPercent
			if d.Fasting != nil {
				fastingSum += d.Fasting.CompliancePercent
				fastingDays++
			}
		}

		if tracked && d.IsWorkoutComplete {
			summary.WorkoutsCompleted++
			run++
			if run > summary.LongestStreak {
				summary.LongestStreak = run
			}
		} else {
			run = 0
		}

		if day.Equal(cutoff) {
			summary.StreakDays = run
		}
	}

	if summary.DaysTracked > 0 {
		summary.AverageCompletionPercent = int(math.Round(float64(percentSum) / float64(summary.DaysTracked)))
	}
	if fastingDays > 0 {
		summary.AverageFastingCompliance = int(math.Round(float64(fastingSum) / float64(fastingDays)))
	}

	return summary
}
