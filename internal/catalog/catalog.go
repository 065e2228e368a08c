package catalog

import (
	"fmt"
	"time"
)

// Catalog holds the immutable content lists. Lookups go through index maps
// built once at load time; the backing slices keep catalog order because the
// plan assembler's fallback rules depend on it.
type Catalog struct {
	workouts []Workout
	meals    []Meal
	windows  map[FastingPlan]FastingWindow

	workoutsByDay map[time.Weekday][]Workout
	mealsByType   map[MealType][]Meal
	exercisesByID map[string]Exercise
}

// New builds a catalog from the given content and validates it.
func New(workouts []Workout, meals []Meal, windows []FastingWindow) (*Catalog, error) {
	c := &Catalog{
		workouts:      workouts,
		meals:         meals,
		windows:       make(map[FastingPlan]FastingWindow, len(windows)),
		workoutsByDay: make(map[time.Weekday][]Workout),
		mealsByType:   make(map[MealType][]Meal),
		exercisesByID: make(map[string]Exercise),
	}

	for _, w := range windows {
		if _, ok := c.windows[w.Plan]; ok {
			return nil, fmt.Errorf("duplicate fasting window for plan %s", w.Plan)
		}
		c.windows[w.Plan] = w
	}

	for _, w := range workouts {
		if w.Weekday < 0 || w.Weekday > 6 {
			return nil, fmt.Errorf("workout %s: weekday %d out of range", w.ID, w.Weekday)
		}
		switch w.Difficulty {
		case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		default:
			return nil, fmt.Errorf("workout %s: unknown difficulty %q", w.ID, w.Difficulty)
		}
		c.workoutsByDay[w.Day()] = append(c.workoutsByDay[w.Day()], w)
		for _, ex := range w.Exercises {
			c.exercisesByID[ex.ID] = ex
		}
	}

	for _, m := range meals {
		switch m.Type {
		case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		default:
			return nil, fmt.Errorf("meal %s: unknown meal type %q", m.ID, m.Type)
		}
		c.mealsByType[m.Type] = append(c.mealsByType[m.Type], m)
	}

	return c, nil
}

// Workouts returns all workouts in catalog order.
func (c *Catalog) Workouts() []Workout {
	return c.workouts
}

// WorkoutsByDay returns the workouts scheduled for a weekday in catalog order.
func (c *Catalog) WorkoutsByDay(day time.Weekday) []Workout {
	return c.workoutsByDay[day]
}

// Meals returns all meals in catalog order.
func (c *Catalog) Meals() []Meal {
	return c.meals
}

// MealsByType returns the meals of the given type in catalog order.
func (c *Catalog) MealsByType(mt MealType) []Meal {
	return c.mealsByType[mt]
}

// Meal looks up a meal by its id.
func (c *Catalog) Meal(id string) (Meal, bool) {
	for _, m := range c.meals {
		if m.ID == id {
			return m, true
		}
	}
	return Meal{}, false
}

// Exercise looks up an exercise by its id across all workouts.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	ex, ok := c.exercisesByID[id]
	return ex, ok
}

// FastingWindow returns the window for a fasting plan.
func (c *Catalog) FastingWindow(plan FastingPlan) (FastingWindow, bool) {
	w, ok := c.windows[plan]
	return w, ok
}
