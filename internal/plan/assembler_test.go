package plan_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/personalization"
	"github.com/tkoskela/fitplan/internal/plan"
)

// mustCatalog loads the embedded default catalog.
func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	return c
}

func testResult() personalization.Result {
	return personalization.Result{
		FastingPlan:       catalog.FastingPlan16_8,
		WorkoutDifficulty: catalog.DifficultyBeginner,
		MealIntensity:     personalization.MealIntensityStandard,
	}
}

// date returns a date known to fall on the given weekday.
func date(t *testing.T, weekday time.Weekday) time.Time {
	t.Helper()
	// 2026-08-17 is a Monday.
	monday := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(time.Monday) + 7) % 7
	return monday.AddDate(0, 0, offset)
}

func TestAssembleRestDay(t *testing.T) {
	c := mustCatalog(t)

	p := plan.Assemble(date(t, time.Sunday), testResult(), c)

	if !p.IsRestDay {
		t.Error("expected Sunday to be a rest day")
	}
	if p.Workout != nil {
		t.Errorf("expected nil workout on rest day, got %s", p.Workout.ID)
	}
	if !p.IsValid {
		t.Errorf("expected a valid rest-day plan, warnings: %v", p.Warnings)
	}
}

func TestAssembleWorkoutSelection(t *testing.T) {
	c := mustCatalog(t)

	tests := []struct {
		name       string
		weekday    time.Weekday
		difficulty catalog.Difficulty
		wantID     string
	}{
		// Monday offers beginner and intermediate sessions.
		{name: "beginner sees beginner", weekday: time.Monday, difficulty: catalog.DifficultyBeginner, wantID: "wk-mon-beg"},
		{name: "intermediate sees intermediate", weekday: time.Monday, difficulty: catalog.DifficultyIntermediate, wantID: "wk-mon-int"},
		// Monday has no advanced session; the hardest allowed one wins.
		{name: "advanced falls to intermediate", weekday: time.Monday, difficulty: catalog.DifficultyAdvanced, wantID: "wk-mon-int"},
		// Tuesday offers beginner and advanced sessions.
		{name: "advanced sees advanced", weekday: time.Tuesday, difficulty: catalog.DifficultyAdvanced, wantID: "wk-tue-adv"},
		{name: "intermediate falls to beginner", weekday: time.Tuesday, difficulty: catalog.DifficultyIntermediate, wantID: "wk-tue-beg"},
		// Saturday only has a beginner session visible to everyone.
		{name: "saturday shared session", weekday: time.Saturday, difficulty: catalog.DifficultyAdvanced, wantID: "wk-sat-beg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testResult()
			result.WorkoutDifficulty = tt.difficulty

			p := plan.Assemble(date(t, tt.weekday), result, c)
			if p.Workout == nil {
				t.Fatal("expected a workout")
			}
			if p.Workout.ID != tt.wantID {
				t.Errorf("workout = %s, want %s", p.Workout.ID, tt.wantID)
			}
		})
	}
}

// TestAssembleWorkoutFallback checks the "always give some workout" rule:
// when no catalog entry matches the day, the first allowed entry on any day
// is chosen, deterministically.
func TestAssembleWorkoutFallback(t *testing.T) {
	workouts := []catalog.Workout{
		{ID: "only-friday", Name: "Friday Special", Weekday: int(time.Friday), Difficulty: catalog.DifficultyBeginner},
	}
	c, err := catalog.New(workouts, nil, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	first := plan.Assemble(date(t, time.Monday), testResult(), c)
	second := plan.Assemble(date(t, time.Monday), testResult(), c)

	if first.Workout == nil {
		t.Fatal("expected fallback workout")
	}
	if first.Workout.ID != "only-friday" {
		t.Errorf("fallback workout = %s, want only-friday", first.Workout.ID)
	}
	if diff := cmp.Diff(first.Workout, second.Workout); diff != "" {
		t.Errorf("fallback is not deterministic (-first +second):\n%s", diff)
	}
}

func TestAssembleNoMatchingWorkoutWarns(t *testing.T) {
	// Advanced-only catalog: invisible to a beginner.
	workouts := []catalog.Workout{
		{ID: "adv-only", Name: "Elite", Weekday: int(time.Monday), Difficulty: catalog.DifficultyAdvanced},
	}
	c, err := catalog.New(workouts, nil, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	p := plan.Assemble(date(t, time.Monday), testResult(), c)

	if p.Workout != nil {
		t.Errorf("expected nil workout, got %s", p.Workout.ID)
	}
	if p.IsValid {
		t.Error("expected plan to be flagged invalid")
	}
	if len(p.Warnings) == 0 {
		t.Error("expected warnings on content gap")
	}
}

// TestAssembleNutritionConservation checks the sum law: totals equal the
// exact sum of the four selected meals.
func TestAssembleNutritionConservation(t *testing.T) {
	c := mustCatalog(t)

	for _, intensity := range []personalization.MealIntensity{
		personalization.MealIntensityLight,
		personalization.MealIntensityStandard,
		personalization.MealIntensityHighEnergy,
	} {
		t.Run(string(intensity), func(t *testing.T) {
			result := testResult()
			result.MealIntensity = intensity

			p := plan.Assemble(date(t, time.Wednesday), result, c)

			var want plan.NutritionTotals
			for _, slot := range p.Meals.Slots {
				if slot.Meal == nil {
					t.Fatalf("slot %s resolved to no meal", slot.Type)
				}
				want.Calories += slot.Meal.Calories
				want.Protein += slot.Meal.Protein
				want.Carbs += slot.Meal.Carbs
				want.Fat += slot.Meal.Fat
			}

			if diff := cmp.Diff(want, p.Meals.Totals); diff != "" {
				t.Errorf("nutrition totals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssembleMealRotationPolicies(t *testing.T) {
	meals := []catalog.Meal{
		{ID: "b-mid", Type: catalog.MealTypeBreakfast, Calories: 400, Protein: 20},
		{ID: "b-low", Type: catalog.MealTypeBreakfast, Calories: 300, Protein: 30},
		{ID: "b-high", Type: catalog.MealTypeBreakfast, Calories: 500, Protein: 10},
	}
	c, err := catalog.New(nil, meals, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	// Monday: weekday index 1, three candidates, so index 1 of the ordered
	// list is selected.
	monday := date(t, time.Monday)

	tests := []struct {
		intensity personalization.MealIntensity
		wantID    string
	}{
		// Ascending calories: b-low, b-mid, b-high -> index 1 is b-mid.
		{intensity: personalization.MealIntensityLight, wantID: "b-mid"},
		// Descending protein: b-low, b-mid, b-high -> index 1 is b-mid.
		{intensity: personalization.MealIntensityHighEnergy, wantID: "b-mid"},
		// Catalog order: b-mid, b-low, b-high -> index 1 is b-low.
		{intensity: personalization.MealIntensityStandard, wantID: "b-low"},
	}

	for _, tt := range tests {
		t.Run(string(tt.intensity), func(t *testing.T) {
			result := testResult()
			result.MealIntensity = tt.intensity

			p := plan.Assemble(monday, result, c)

			breakfast := p.Meals.Slots[0]
			if breakfast.Meal == nil {
				t.Fatal("expected a breakfast meal")
			}
			if breakfast.Meal.ID != tt.wantID {
				t.Errorf("breakfast = %s, want %s", breakfast.Meal.ID, tt.wantID)
			}
		})
	}
}

func TestAssembleScheduledTimesInsideWindow(t *testing.T) {
	c := mustCatalog(t)

	p := plan.Assemble(date(t, time.Monday), testResult(), c)

	if p.Meals.Slots[0].ScheduledTime != p.Fasting.EatingStart {
		t.Errorf("breakfast scheduled at %s, want eating start %s",
			p.Meals.Slots[0].ScheduledTime, p.Fasting.EatingStart)
	}
	for _, slot := range p.Meals.Slots {
		if slot.ScheduledTime == "" {
			t.Errorf("slot %s has no scheduled time", slot.Type)
		}
	}
}
