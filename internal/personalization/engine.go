package personalization

import (
	"math"

	"github.com/tkoskela/fitplan/internal/catalog"
)

// Result is the derived personalization for one profile.
type Result struct {
	FastingPlan            catalog.FastingPlan `json:"fasting_plan"`
	WorkoutDifficulty      catalog.Difficulty  `json:"workout_difficulty"`
	MealIntensity          MealIntensity       `json:"meal_intensity"`
	DailyCalorieTarget     int                 `json:"daily_calorie_target"`
	DailyProteinTargetG    int                 `json:"daily_protein_target_g"`
	DailyHydrationTargetMl int                 `json:"daily_hydration_target_ml"`
	EstimatedWeeksToGoal   int                 `json:"estimated_weeks_to_goal"`
	// DefaultedFields lists profile fields that were substituted with
	// population-average defaults before rule evaluation.
	DefaultedFields []string `json:"defaulted_fields,omitempty"`
}

// fastingRule matches on activity level and an optional weight threshold.
// Rules are evaluated strictly in declared order; the first match wins.
type fastingRule struct {
	activity ActivityLevel
	// aboveWeightKg gates the rule to weights strictly above the threshold.
	// Zero means the rule matches any weight.
	aboveWeightKg float64
	plan          catalog.FastingPlan
}

// The rule order is significant: rule 2 and 3 both structurally match a heavy
// sedentary user, and the earlier one must win. Active users resolve to the
// tightest eating window (most fasting hours) before any weight rule runs.
var fastingRules = []fastingRule{
	{activity: ActivityActive, plan: catalog.FastingPlan16_8},
	{activity: ActivitySedentary, aboveWeightKg: 85, plan: catalog.FastingPlan16_8},
	{activity: ActivitySedentary, plan: catalog.FastingPlan14_10},
	{activity: ActivityModerate, aboveWeightKg: 95, plan: catalog.FastingPlan14_10},
	{activity: ActivityModerate, plan: catalog.FastingPlan12_12},
}

// Self-assessment score thresholds for workout difficulty.
const (
	intermediateScore = 15
	advancedScore     = 40
)

// Calorie derivation constants.
const (
	weightLossCalorieOffset = -500
	muscleGainCalorieOffset = 300
	minCalorieTarget        = 1200

	lightBandUpperCalories    = 1800
	standardBandUpperCalories = 2400

	proteinPerKgDefault    = 1.2
	proteinPerKgMuscleGain = 1.6
	hydrationMlPerKg       = 35

	weeklyLossKg = 0.5
	weeklyGainKg = 0.25
)

// activityFactors are the standard energy-expenditure multipliers.
var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityModerate:  1.55,
	ActivityActive:    1.725,
}

// bracketMidpointAge maps an age bracket to the age used in the BMR formula.
var bracketMidpointAge = map[AgeBracket]float64{
	AgeBracket18to29: 24,
	AgeBracket30to39: 35,
	AgeBracket40to49: 45,
	AgeBracket50to59: 55,
	AgeBracket60Plus: 65,
}

// Derive turns a profile into a personalization result. It is total: missing
// optional fields are defaulted (and reported) rather than failing.
func Derive(profile Profile) Result {
	resolved, defaulted := resolveProfile(profile)

	calories := deriveCalorieTarget(resolved)

	return Result{
		FastingPlan:            deriveFastingPlan(resolved),
		WorkoutDifficulty:      deriveDifficulty(resolved),
		MealIntensity:          mealIntensityForCalories(calories),
		DailyCalorieTarget:     calories,
		DailyProteinTargetG:    deriveProteinTarget(resolved),
		DailyHydrationTargetMl: int(math.Round(resolved.WeightKg * hydrationMlPerKg)),
		EstimatedWeeksToGoal:   estimateWeeksToGoal(resolved),
		DefaultedFields:        defaulted,
	}
}

// deriveFastingPlan evaluates the fasting rule table in priority order.
func deriveFastingPlan(p Profile) catalog.FastingPlan {
	for _, rule := range fastingRules {
		if rule.activity != p.ActivityLevel {
			continue
		}
		if rule.aboveWeightKg > 0 && p.WeightKg <= rule.aboveWeightKg {
			continue
		}
		return rule.plan
	}
	// Unreachable for known activity levels; a sane middle ground otherwise.
	return catalog.FastingPlan14_10
}

// deriveDifficulty maps the self-assessment to a difficulty level. Without an
// assessment everyone starts as a beginner.
func deriveDifficulty(p Profile) catalog.Difficulty {
	if p.Assessment == nil {
		return catalog.DifficultyBeginner
	}

	score := p.Assessment.PushUps + 3*p.Assessment.PullUps
	switch {
	case score >= advancedScore:
		return catalog.DifficultyAdvanced
	case score >= intermediateScore:
		return catalog.DifficultyIntermediate
	default:
		return catalog.DifficultyBeginner
	}
}

// deriveCalorieTarget computes the Mifflin-St Jeor estimate scaled by the
// activity factor, shifted by the goal offset, and rounded to a whole calorie.
func deriveCalorieTarget(p Profile) int {
	age := bracketMidpointAge[p.AgeBracket]

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*age
	switch p.Gender {
	case GenderMale:
		bmr += 5
	case GenderFemale:
		bmr -= 161
	default:
		// Midpoint between the male and female constants.
		bmr -= 78
	}

	expenditure := bmr * activityFactors[p.ActivityLevel]

	switch p.Goal {
	case GoalWeightLoss:
		expenditure += weightLossCalorieOffset
	case GoalMuscleGain:
		expenditure += muscleGainCalorieOffset
	}

	calories := int(math.Round(expenditure))
	if calories < minCalorieTarget {
		calories = minCalorieTarget
	}
	return calories
}

// mealIntensityForCalories maps the calorie target into one of three bands.
func mealIntensityForCalories(calories int) MealIntensity {
	switch {
	case calories < lightBandUpperCalories:
		return MealIntensityLight
	case calories <= standardBandUpperCalories:
		return MealIntensityStandard
	default:
		return MealIntensityHighEnergy
	}
}

// deriveProteinTarget scales protein to body weight, with a higher multiplier
// for muscle gain.
func deriveProteinTarget(p Profile) int {
	perKg := proteinPerKgDefault
	if p.Goal == GoalMuscleGain {
		perKg = proteinPerKgMuscleGain
	}
	return int(math.Round(p.WeightKg * perKg))
}

// estimateWeeksToGoal projects the timeline from the weight delta assuming a
// sustainable weekly rate: half a kilo down or a quarter kilo up.
func estimateWeeksToGoal(p Profile) int {
	delta := p.TargetWeightKg - p.WeightKg
	switch {
	case delta == 0:
		return 0
	case delta < 0:
		return int(math.Ceil(-delta / weeklyLossKg))
	default:
		return int(math.Ceil(delta / weeklyGainKg))
	}
}
