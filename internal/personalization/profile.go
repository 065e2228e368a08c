// Package personalization derives concrete plan parameters from a user's
// onboarding profile. Derivation is deterministic: the same profile always
// yields the same result.
package personalization

import "fmt"

// Gender as reported during onboarding.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// AgeBracket is the coarse age range collected during onboarding.
type AgeBracket string

const (
	AgeBracket18to29 AgeBracket = "18-29"
	AgeBracket30to39 AgeBracket = "30-39"
	AgeBracket40to49 AgeBracket = "40-49"
	AgeBracket50to59 AgeBracket = "50-59"
	AgeBracket60Plus AgeBracket = "60+"
)

// ActivityLevel is the self-reported baseline activity.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityActive    ActivityLevel = "active"
)

// Goal is the user's primary goal.
type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalMuscleGain Goal = "muscle_gain"
	GoalMaintain   Goal = "maintain"
)

// MealIntensity selects which calorie band of catalog meals populates a day.
type MealIntensity string

const (
	MealIntensityLight      MealIntensity = "light"
	MealIntensityStandard   MealIntensity = "standard"
	MealIntensityHighEnergy MealIntensity = "high_energy"
)

// Assessment holds the optional onboarding self-assessment counts.
type Assessment struct {
	PushUps int `json:"push_ups"`
	PullUps int `json:"pull_ups"`
}

// Profile is the onboarding questionnaire result. Zero values mark fields the
// user left unanswered; the engine substitutes population-average defaults
// and reports which fields it touched.
type Profile struct {
	Gender         Gender        `json:"gender"`
	AgeBracket     AgeBracket    `json:"age_bracket"`
	HeightCm       float64       `json:"height_cm"`
	WeightKg       float64       `json:"weight_kg"`
	TargetWeightKg float64       `json:"target_weight_kg"`
	ActivityLevel  ActivityLevel `json:"activity_level"`
	Goal           Goal          `json:"goal"`
	Assessment     *Assessment   `json:"assessment,omitempty"`
	Experience     string        `json:"experience,omitempty"`
}

// Validate rejects profiles carrying unknown enum values or negative
// measurements. Empty fields are fine, they mean unanswered.
func (p Profile) Validate() error {
	switch p.Gender {
	case "", GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("unknown gender %q", p.Gender)
	}
	switch p.AgeBracket {
	case "", AgeBracket18to29, AgeBracket30to39, AgeBracket40to49, AgeBracket50to59, AgeBracket60Plus:
	default:
		return fmt.Errorf("unknown age bracket %q", p.AgeBracket)
	}
	switch p.ActivityLevel {
	case "", ActivitySedentary, ActivityModerate, ActivityActive:
	default:
		return fmt.Errorf("unknown activity level %q", p.ActivityLevel)
	}
	switch p.Goal {
	case "", GoalWeightLoss, GoalMuscleGain, GoalMaintain:
	default:
		return fmt.Errorf("unknown goal %q", p.Goal)
	}
	if p.HeightCm < 0 || p.WeightKg < 0 || p.TargetWeightKg < 0 {
		return fmt.Errorf("measurements must not be negative")
	}
	if p.Assessment != nil && (p.Assessment.PushUps < 0 || p.Assessment.PullUps < 0) {
		return fmt.Errorf("assessment counts must not be negative")
	}
	return nil
}

// Population-average defaults applied by resolveProfile.
const (
	defaultHeightCm = 170.0
	defaultWeightKg = 75.0
)

// resolveProfile fills missing optional fields with defaults and returns the
// names of the substituted fields. All rule evaluation happens on the
// resolved profile so no rule ever sees a missing value.
func resolveProfile(p Profile) (Profile, []string) {
	var defaulted []string

	if p.Gender == "" {
		p.Gender = GenderOther
		defaulted = append(defaulted, "gender")
	}
	if p.AgeBracket == "" {
		p.AgeBracket = AgeBracket30to39
		defaulted = append(defaulted, "age_bracket")
	}
	if p.HeightCm <= 0 {
		p.HeightCm = defaultHeightCm
		defaulted = append(defaulted, "height_cm")
	}
	if p.WeightKg <= 0 {
		p.WeightKg = defaultWeightKg
		defaulted = append(defaulted, "weight_kg")
	}
	if p.TargetWeightKg <= 0 {
		p.TargetWeightKg = p.WeightKg
		defaulted = append(defaulted, "target_weight_kg")
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = ActivityModerate
		defaulted = append(defaulted, "activity_level")
	}
	if p.Goal == "" {
		p.Goal = GoalMaintain
		defaulted = append(defaulted, "goal")
	}

	return p, defaulted
}
