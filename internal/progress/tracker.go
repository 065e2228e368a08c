package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
)

// ErrInvalidTransition signals a state change that violates a guard. The
// record is left untouched; nothing here is fatal.
var ErrInvalidTransition = errors.New("invalid transition")

// Completion percent blend weights.
const (
	exerciseWeight = 0.6
	mealWeight     = 0.4
)

// StartExercise moves the exercise at the cursor into in_progress and records
// the start instant. Guards: the target must sit exactly at
// CurrentExerciseIndex, be pending, and no other exercise may be in_progress.
func StartExercise(d *Day, exerciseID string, now time.Time) error {
	idx := exerciseIndex(d, exerciseID)
	if idx < 0 {
		return fmt.Errorf("%w: exercise %s not part of this day", ErrInvalidTransition, exerciseID)
	}
	if other := inProgressIndex(d); other >= 0 {
		return fmt.Errorf("%w: exercise %s is already in progress", ErrInvalidTransition, d.Exercises[other].ExerciseID)
	}
	if idx != d.CurrentExerciseIndex {
		return fmt.Errorf("%w: exercise %s is at position %d, cursor is at %d",
			ErrInvalidTransition, exerciseID, idx, d.CurrentExerciseIndex)
	}
	if d.Exercises[idx].Status != ExercisePending {
		return fmt.Errorf("%w: exercise %s is %s, want pending",
			ErrInvalidTransition, exerciseID, d.Exercises[idx].Status)
	}

	d.Exercises[idx].Status = ExerciseInProgress
	d.Exercises[idx].StartedAt = now
	return nil
}

// CompleteExercise finishes the in_progress exercise, records actual
// performance and elapsed duration, advances the cursor, and recomputes the
// derived fields.
func CompleteExercise(d *Day, exerciseID string, setsDone, repsDone int, now time.Time) error {
	idx := exerciseIndex(d, exerciseID)
	if idx < 0 {
		return fmt.Errorf("%w: exercise %s not part of this day", ErrInvalidTransition, exerciseID)
	}
	ex := &d.Exercises[idx]
	if ex.Status != ExerciseInProgress {
		return fmt.Errorf("%w: exercise %s is %s, want in_progress",
			ErrInvalidTransition, exerciseID, ex.Status)
	}

	ex.Status = ExerciseCompleted
	ex.CompletedAt = now
	ex.SetsDone = setsDone
	ex.RepsDone = repsDone
	if !ex.StartedAt.IsZero() {
		ex.DurationSeconds = int(now.Sub(ex.StartedAt).Seconds())
	}

	d.CurrentExerciseIndex = idx + 1
	recompute(d, now)
	return nil
}

// SkipExercise marks the exercise at the cursor as skipped, from pending or
// in_progress, and advances the cursor past it. Skipped is terminal.
func SkipExercise(d *Day, exerciseID string, now time.Time) error {
	idx := exerciseIndex(d, exerciseID)
	if idx < 0 {
		return fmt.Errorf("%w: exercise %s not part of this day", ErrInvalidTransition, exerciseID)
	}
	if idx != d.CurrentExerciseIndex {
		return fmt.Errorf("%w: exercise %s is at position %d, cursor is at %d",
			ErrInvalidTransition, exerciseID, idx, d.CurrentExerciseIndex)
	}
	ex := &d.Exercises[idx]
	if ex.Status != ExercisePending && ex.Status != ExerciseInProgress {
		return fmt.Errorf("%w: exercise %s is %s, want pending or in_progress",
			ErrInvalidTransition, exerciseID, ex.Status)
	}

	ex.Status = ExerciseSkipped
	ex.CompletedAt = now
	d.CurrentExerciseIndex = idx + 1
	recompute(d, now)
	return nil
}

// OfferMealOptions opens a pending slot for selection among alternatives.
func OfferMealOptions(d *Day, slot catalog.MealType) error {
	m, err := mealSlot(d, slot)
	if err != nil {
		return err
	}
	if m.Status != MealPending {
		return fmt.Errorf("%w: meal slot %s is %s, want pending", ErrInvalidTransition, slot, m.Status)
	}

	m.Status = MealOptionsAvailable
	return nil
}

// SelectMeal binds (or rebinds) a concrete meal to the slot. A slot can be
// reassigned any number of times until it is eaten or skipped.
func SelectMeal(d *Day, slot catalog.MealType, mealID string) error {
	m, err := mealSlot(d, slot)
	if err != nil {
		return err
	}
	if m.Status.terminal() {
		return fmt.Errorf("%w: meal slot %s is already %s", ErrInvalidTransition, slot, m.Status)
	}
	if mealID == "" {
		return fmt.Errorf("%w: meal slot %s cannot select an empty meal id", ErrInvalidTransition, slot)
	}

	m.MealID = mealID
	m.Status = MealSelected
	return nil
}

// MarkMealEaten finishes a slot. Valid once a concrete meal is bound, either
// through selection or because the plan bound one at initialization.
func MarkMealEaten(d *Day, slot catalog.MealType, now time.Time) error {
	m, err := mealSlot(d, slot)
	if err != nil {
		return err
	}
	if m.Status.terminal() {
		return fmt.Errorf("%w: meal slot %s is already %s", ErrInvalidTransition, slot, m.Status)
	}
	if m.MealID == "" {
		return fmt.Errorf("%w: meal slot %s has no meal bound", ErrInvalidTransition, slot)
	}

	m.Status = MealEaten
	recompute(d, now)
	return nil
}

// SkipMeal marks a slot skipped from any non-terminal state.
func SkipMeal(d *Day, slot catalog.MealType, now time.Time) error {
	m, err := mealSlot(d, slot)
	if err != nil {
		return err
	}
	if m.Status.terminal() {
		return fmt.Errorf("%w: meal slot %s is already %s", ErrInvalidTransition, slot, m.Status)
	}

	m.Status = MealSkipped
	recompute(d, now)
	return nil
}

// SetFastingCompliance stores an externally observed compliance percentage,
// clamped to 0..100.
func SetFastingCompliance(d *Day, percent int, started, completed bool) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	d.Fasting = &FastingProgress{
		CompliancePercent: percent,
		Started:           started,
		Completed:         completed,
	}
}

// recompute refreshes the derived fields after a mutation. The completion
// percent blends exercises at 60% and meals at 40%; on days without
// exercises the meal ratio carries the full weight.
func recompute(d *Day, now time.Time) {
	var completedExercises, eatenMeals int
	allExercisesTerminal := true
	for _, ex := range d.Exercises {
		switch ex.Status {
		case ExerciseCompleted:
			completedExercises++
		case ExerciseSkipped:
		default:
			allExercisesTerminal = false
		}
	}
	for _, m := range d.Meals {
		if m.Status == MealEaten {
			eatenMeals++
		}
	}

	var mealRatio float64
	if len(d.Meals) > 0 {
		mealRatio = float64(eatenMeals) / float64(len(d.Meals))
	}

	if len(d.Exercises) == 0 {
		d.CompletionPercent = int(math.Round(100 * mealRatio))
	} else {
		exerciseRatio := float64(completedExercises) / float64(len(d.Exercises))
		d.CompletionPercent = int(math.Round(100 * (exerciseWeight*exerciseRatio + mealWeight*mealRatio)))
	}

	if len(d.Exercises) > 0 && allExercisesTerminal && completedExercises > 0 && !d.IsWorkoutComplete {
		d.IsWorkoutComplete = true
		d.WorkoutCompletedAt = now
	}
}

// CompletedExercises counts the exercises finished so far.
func (d Day) CompletedExercises() int {
	var n int
	for _, ex := range d.Exercises {
		if ex.Status == ExerciseCompleted {
			n++
		}
	}
	return n
}

// EatenMeals counts the meal slots marked eaten.
func (d Day) EatenMeals() int {
	var n int
	for _, m := range d.Meals {
		if m.Status == MealEaten {
			n++
		}
	}
	return n
}

func exerciseIndex(d *Day, exerciseID string) int {
	for i, ex := range d.Exercises {
		if ex.ExerciseID == exerciseID {
			return i
		}
	}
	return -1
}

func inProgressIndex(d *Day) int {
	for i, ex := range d.Exercises {
		if ex.Status == ExerciseInProgress {
			return i
		}
	}
	return -1
}

func mealSlot(d *Day, slot catalog.MealType) (*MealProgress, error) {
	for i := range d.Meals {
		if d.Meals[i].Slot == slot {
			return &d.Meals[i], nil
		}
	}
	return nil, fmt.Errorf("%w: meal slot %s not part of this day", ErrInvalidTransition, slot)
}
