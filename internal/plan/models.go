// Package plan assembles a day's content from a personalization result and
// the content catalogs: the workout (or rest day), the four meal slots, and
// the fasting window.
package plan

import (
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
)

// MealSlot is one of the four ordered meal slots of a day. Meal is nil when
// the catalog had no candidate for the slot.
type MealSlot struct {
	Type          catalog.MealType `json:"type"`
	Meal          *catalog.Meal    `json:"meal"`
	ScheduledTime string           `json:"scheduled_time"` // "HH:MM" wall-clock
}

// NutritionTotals is the exact sum over the day's selected meals.
type NutritionTotals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealPlan holds the ordered slots and their nutrition totals.
type MealPlan struct {
	Slots  []MealSlot      `json:"slots"`
	Totals NutritionTotals `json:"totals"`
}

// DailyPlan is the assembled content for one calendar date. It is created on
// demand and never mutated; a personalization change re-derives it.
type DailyPlan struct {
	Date      time.Time             `json:"date"`
	IsRestDay bool                  `json:"is_rest_day"`
	Workout   *catalog.Workout      `json:"workout"` // nil on rest days
	Meals     MealPlan              `json:"meals"`
	Fasting   catalog.FastingWindow `json:"fasting"`
	// IsValid is false when any warning was raised. Warnings are advisory:
	// the plan is still usable and the presentation layer decides how to
	// surface them.
	IsValid  bool     `json:"is_valid"`
	Warnings []string `json:"warnings,omitempty"`
}
