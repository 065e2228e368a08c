// Package progress owns the mutable execution record for each calendar date:
// sequential exercise completion, the meal lifecycle, stored fasting
// compliance, and one-time milestones derived from cumulative history.
package progress

import (
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/plan"
)

// ExerciseStatus is the lifecycle state of one exercise entry.
type ExerciseStatus string

const (
	ExercisePending    ExerciseStatus = "pending"
	ExerciseInProgress ExerciseStatus = "in_progress"
	ExerciseCompleted  ExerciseStatus = "completed"
	ExerciseSkipped    ExerciseStatus = "skipped"
)

// terminal reports whether the status admits no further transitions.
func (s ExerciseStatus) terminal() bool {
	return s == ExerciseCompleted || s == ExerciseSkipped
}

// MealStatus is the lifecycle state of one meal slot.
type MealStatus string

const (
	MealPending          MealStatus = "pending"
	MealOptionsAvailable MealStatus = "options_available"
	MealSelected         MealStatus = "selected"
	MealEaten            MealStatus = "eaten"
	MealSkipped          MealStatus = "skipped"
)

// terminal reports whether the status admits no further transitions.
func (s MealStatus) terminal() bool {
	return s == MealEaten || s == MealSkipped
}

// ExerciseProgress tracks one exercise of the day's workout.
type ExerciseProgress struct {
	ExerciseID      string         `json:"exercise_id"`
	Status          ExerciseStatus `json:"status"`
	StartedAt       time.Time      `json:"started_at,omitzero"`
	CompletedAt     time.Time      `json:"completed_at,omitzero"`
	SetsDone        int            `json:"sets_done"`
	RepsDone        int            `json:"reps_done"`
	DurationSeconds int            `json:"duration_seconds"`
}

// MealProgress tracks one meal slot. MealID can be rebound while the slot is
// still selectable; once eaten or skipped it is fixed.
type MealProgress struct {
	Slot          catalog.MealType `json:"slot"`
	MealID        string           `json:"meal_id"`
	Status        MealStatus       `json:"status"`
	ScheduledTime string           `json:"scheduled_time"`
}

// FastingProgress stores externally observed fasting compliance. The state
// machine never computes the percentage itself.
type FastingProgress struct {
	CompliancePercent int  `json:"compliance_percent"`
	Started           bool `json:"started"`
	Completed         bool `json:"completed"`
}

// Day is the execution record for one calendar date. Invariant: at most one
// exercise is in_progress, and only the exercise at CurrentExerciseIndex may
// enter that state.
type Day struct {
	Date                 time.Time          `json:"date"`
	IsRestDay            bool               `json:"is_rest_day"`
	Exercises            []ExerciseProgress `json:"exercises"`
	Meals                []MealProgress     `json:"meals"`
	Fasting              *FastingProgress   `json:"fasting,omitempty"`
	CurrentExerciseIndex int                `json:"current_exercise_index"`
	CompletionPercent    int                `json:"completion_percent"`
	IsWorkoutComplete    bool               `json:"is_workout_complete"`
	WorkoutCompletedAt   time.Time          `json:"workout_completed_at,omitzero"`
}

// Milestone is an immutable one-time achievement.
type Milestone struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DayNumber   int       `json:"day_number"`
	AchievedAt  time.Time `json:"achieved_at"`
}

// NewDay initializes the execution record for a daily plan. Exercise entries
// keep the workout's order; meal entries keep slot order.
func NewDay(p plan.DailyPlan) Day {
	d := Day{
		Date:      p.Date,
		IsRestDay: p.IsRestDay,
	}

	if p.Workout != nil {
		d.Exercises = make([]ExerciseProgress, 0, len(p.Workout.Exercises))
		for _, ex := range p.Workout.Exercises {
			d.Exercises = append(d.Exercises, ExerciseProgress{
				ExerciseID: ex.ID,
				Status:     ExercisePending,
			})
		}
	}

	d.Meals = make([]MealProgress, 0, len(p.Meals.Slots))
	for _, slot := range p.Meals.Slots {
		mp := MealProgress{
			Slot:          slot.Type,
			Status:        MealPending,
			ScheduledTime: slot.ScheduledTime,
		}
		if slot.Meal != nil {
			mp.MealID = slot.Meal.ID
		}
		d.Meals = append(d.Meals, mp)
	}

	return d
}
