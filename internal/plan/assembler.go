package plan

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/personalization"
)

// RestDay is the fixed weekly rest day. No workout is scheduled on it
// regardless of catalog contents.
const RestDay = time.Sunday

// hoursInDay is the invariant a fasting window must satisfy.
const hoursInDay = 24

// Slot scheduling as fractions of the eating window, rounded to 15 minutes.
var slotWindowFractions = map[catalog.MealType]float64{
	catalog.MealTypeBreakfast: 0,
	catalog.MealTypeLunch:     0.4,
	catalog.MealTypeDinner:    0.85,
	catalog.MealTypeSnack:     0.6,
}

// Assemble builds the daily plan for a date. It is pure and deterministic:
// identical inputs always produce the identical plan, including fallback
// decisions. Content gaps surface as warnings, never as errors.
func Assemble(date time.Time, result personalization.Result, c *catalog.Catalog) DailyPlan {
	day := normalizeDate(date)
	p := DailyPlan{
		Date:      day,
		IsRestDay: day.Weekday() == RestDay,
	}

	if !p.IsRestDay {
		p.Workout = selectWorkout(day.Weekday(), result.WorkoutDifficulty, c)
		if p.Workout == nil {
			p.Warnings = append(p.Warnings, fmt.Sprintf(
				"no workout available for %s at difficulty %s", day.Weekday(), result.WorkoutDifficulty))
		}
	}

	p.Meals = selectMeals(day.Weekday(), result.MealIntensity, c, &p.Warnings)

	window, ok := c.FastingWindow(result.FastingPlan)
	if !ok {
		p.Warnings = append(p.Warnings, fmt.Sprintf("no fasting window for plan %s", result.FastingPlan))
	} else {
		p.Fasting = window
		if window.FastingHours+window.EatingHours != hoursInDay {
			p.Warnings = append(p.Warnings, fmt.Sprintf(
				"fasting window for plan %s covers %d hours, want %d",
				result.FastingPlan, window.FastingHours+window.EatingHours, hoursInDay))
		}
		scheduleMealSlots(p.Meals.Slots, window)
	}

	p.IsValid = len(p.Warnings) == 0
	return p
}

// allowedDifficulties returns the difficulty grades visible to a user.
// Beginner content is visible to everyone; harder content only to users at
// that level or above.
func allowedDifficulties(d catalog.Difficulty) []catalog.Difficulty {
	switch d {
	case catalog.DifficultyAdvanced:
		return []catalog.Difficulty{catalog.DifficultyBeginner, catalog.DifficultyIntermediate, catalog.DifficultyAdvanced}
	case catalog.DifficultyIntermediate:
		return []catalog.Difficulty{catalog.DifficultyBeginner, catalog.DifficultyIntermediate}
	default:
		return []catalog.Difficulty{catalog.DifficultyBeginner}
	}
}

// selectWorkout picks the workout for a weekday. It prefers an exact
// day-of-week match at an allowed difficulty, taking the hardest allowed
// grade among the day's candidates. When the day has no match it falls back
// to the first allowed workout on any day, in catalog order: some workout
// beats no workout.
func selectWorkout(day time.Weekday, difficulty catalog.Difficulty, c *catalog.Catalog) *catalog.Workout {
	allowed := allowedDifficulties(difficulty)

	// Walk allowed grades from hardest to easiest so an advanced user gets
	// the advanced session when the day offers several.
	for i := len(allowed) - 1; i >= 0; i-- {
		for _, w := range c.WorkoutsByDay(day) {
			if w.Difficulty == allowed[i] {
				workout := w
				return &workout
			}
		}
	}

	for _, w := range c.Workouts() {
		for _, grade := range allowed {
			if w.Difficulty == grade {
				workout := w
				return &workout
			}
		}
	}

	return nil
}

// selectMeals fills the four meal slots using the rotation policy for the
// meal intensity and accumulates the exact nutrition totals.
func selectMeals(day time.Weekday, intensity personalization.MealIntensity, c *catalog.Catalog, warnings *[]string) MealPlan {
	mp := MealPlan{Slots: make([]MealSlot, 0, len(catalog.MealTypes()))}

	for _, mt := range catalog.MealTypes() {
		slot := MealSlot{Type: mt}

		candidates := orderCandidates(c.MealsByType(mt), intensity)
		if len(candidates) == 0 {
			*warnings = append(*warnings, fmt.Sprintf("no %s meals in catalog", mt))
		} else {
			meal := candidates[int(day)%len(candidates)]
			slot.Meal = &meal
			mp.Totals.Calories += meal.Calories
			mp.Totals.Protein += meal.Protein
			mp.Totals.Carbs += meal.Carbs
			mp.Totals.Fat += meal.Fat
		}

		mp.Slots = append(mp.Slots, slot)
	}

	return mp
}

// orderCandidates applies the intensity's sort policy. Sorts are stable so
// catalog order breaks ties deterministically; standard intensity keeps plain
// catalog order.
func orderCandidates(meals []catalog.Meal, intensity personalization.MealIntensity) []catalog.Meal {
	ordered := make([]catalog.Meal, len(meals))
	copy(ordered, meals)

	switch intensity {
	case personalization.MealIntensityLight:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Calories < ordered[j].Calories
		})
	case personalization.MealIntensityHighEnergy:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Protein > ordered[j].Protein
		})
	}

	return ordered
}

// scheduleMealSlots assigns each slot a wall-clock time inside the eating
// window.
func scheduleMealSlots(slots []MealSlot, window catalog.FastingWindow) {
	start, err := parseClock(window.EatingStart)
	if err != nil {
		return
	}

	windowMinutes := window.EatingHours * 60
	for i := range slots {
		offset := slotWindowFractions[slots[i].Type] * float64(windowMinutes)
		rounded := int(math.Round(offset/15)) * 15
		slots[i].ScheduledTime = formatClock(start + rounded)
	}
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock converts minutes since midnight back to "HH:MM", wrapping at
// midnight.
func formatClock(minutes int) string {
	minutes %= hoursInDay * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// normalizeDate truncates a timestamp to midnight UTC so plans and progress
// records key on the calendar date alone.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
