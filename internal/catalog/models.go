// Package catalog provides the read-only content catalogs that the rest of
// the application consumes: exercises grouped into day-indexed workouts,
// meals by meal type, and the fasting windows for each fasting plan.
package catalog

import "time"

// Difficulty grades a workout for audience filtering.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// MealType identifies one of the four daily meal slots.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes lists the slots in the order they appear in a daily plan.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}
}

// FastingPlan is a fixed fast-hours:eat-hours pair.
type FastingPlan string

const (
	FastingPlan16_8  FastingPlan = "16:8"
	FastingPlan14_10 FastingPlan = "14:10"
	FastingPlan12_12 FastingPlan = "12:12"
)

// Exercise is a single movement inside a workout.
type Exercise struct {
	ID                  string `toml:"id"           json:"id"`
	Name                string `toml:"name"         json:"name"`
	DescriptionMarkdown string `toml:"description"  json:"description_markdown"`
	Sets                int    `toml:"sets"         json:"sets"`
	Reps                int    `toml:"reps"         json:"reps"`
	RestSeconds         int    `toml:"rest_seconds" json:"rest_seconds"`
}

// Workout is a day-indexed bundle of exercises at one difficulty.
type Workout struct {
	ID         string     `toml:"id"         json:"id"`
	Name       string     `toml:"name"       json:"name"`
	Weekday    int        `toml:"weekday"    json:"weekday"` // 0 = Sunday ... 6 = Saturday, as time.Weekday
	Difficulty Difficulty `toml:"difficulty" json:"difficulty"`
	Exercises  []Exercise `toml:"exercises"  json:"exercises"`
}

// Day returns the weekday as a time.Weekday.
func (w Workout) Day() time.Weekday {
	return time.Weekday(w.Weekday)
}

// Meal is a catalog meal with its nutrition facts.
type Meal struct {
	ID       string   `toml:"id"       json:"id"`
	Name     string   `toml:"name"     json:"name"`
	Type     MealType `toml:"type"     json:"type"`
	Calories int      `toml:"calories" json:"calories"`
	Protein  float64  `toml:"protein"  json:"protein_g"`
	Carbs    float64  `toml:"carbs"    json:"carbs_g"`
	Fat      float64  `toml:"fat"      json:"fat_g"`
}

// FastingWindow describes the daily eating window for a fasting plan.
type FastingWindow struct {
	Plan         FastingPlan `toml:"plan"          json:"plan"`
	FastingHours int         `toml:"fasting_hours" json:"fasting_hours"`
	EatingHours  int         `toml:"eating_hours"  json:"eating_hours"`
	EatingStart  string      `toml:"eating_start"  json:"eating_start"` // "HH:MM" wall-clock
	EatingEnd    string      `toml:"eating_end"    json:"eating_end"`
}
