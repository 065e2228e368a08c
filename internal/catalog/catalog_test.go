package catalog_test

import (
	"strings"
	"testing"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	if len(c.Workouts()) == 0 {
		t.Fatal("expected workouts in the default catalog")
	}

	// The planner relies on Sunday being empty.
	if got := c.WorkoutsByDay(time.Sunday); len(got) != 0 {
		t.Errorf("expected no workouts on Sunday, got %d", len(got))
	}

	// Every weekday from Monday to Saturday should carry a beginner workout
	// so that every user always gets some workout.
	for day := time.Monday; day <= time.Saturday; day++ {
		found := false
		for _, w := range c.WorkoutsByDay(day) {
			if w.Difficulty == catalog.DifficultyBeginner {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no beginner workout for %s", day)
		}
	}

	for _, mt := range catalog.MealTypes() {
		if len(c.MealsByType(mt)) == 0 {
			t.Errorf("no meals of type %s", mt)
		}
	}

	for _, plan := range []catalog.FastingPlan{
		catalog.FastingPlan16_8, catalog.FastingPlan14_10, catalog.FastingPlan12_12,
	} {
		w, ok := c.FastingWindow(plan)
		if !ok {
			t.Errorf("missing fasting window for plan %s", plan)
			continue
		}
		if w.FastingHours+w.EatingHours != 24 {
			t.Errorf("plan %s: fasting %d + eating %d != 24", plan, w.FastingHours, w.EatingHours)
		}
	}
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "weekday out of range",
			content: `
[[workouts]]
id = "w1"
name = "Broken"
weekday = 7
difficulty = "beginner"
`,
		},
		{
			name: "unknown difficulty",
			content: `
[[workouts]]
id = "w1"
name = "Broken"
weekday = 1
difficulty = "expert"
`,
		},
		{
			name: "unknown meal type",
			content: `
[[meals]]
id = "m1"
name = "Broken"
type = "brunch"
calories = 100
`,
		},
		{
			name: "duplicate fasting window",
			content: `
[[fasting_windows]]
plan = "16:8"
fasting_hours = 16
eating_hours = 8

[[fasting_windows]]
plan = "16:8"
fasting_hours = 16
eating_hours = 8
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := catalog.Load(strings.NewReader(tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestExerciseLookup(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	ex, ok := c.Exercise("ex-bw-squat")
	if !ok {
		t.Fatal("expected to find ex-bw-squat")
	}
	if ex.Name != "Bodyweight Squat" {
		t.Errorf("unexpected exercise name %q", ex.Name)
	}

	if _, ok = c.Exercise("no-such-exercise"); ok {
		t.Error("expected lookup miss for unknown id")
	}

	if _, ok = c.Meal("meal-oats"); !ok {
		t.Error("expected to find meal-oats")
	}
}
