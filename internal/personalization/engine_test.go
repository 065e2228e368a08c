package personalization_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/personalization"
)

func fullProfile() personalization.Profile {
	return personalization.Profile{
		Gender:         personalization.GenderFemale,
		AgeBracket:     personalization.AgeBracket30to39,
		HeightCm:       168,
		WeightKg:       72,
		TargetWeightKg: 65,
		ActivityLevel:  personalization.ActivityModerate,
		Goal:           personalization.GoalWeightLoss,
		Assessment:     &personalization.Assessment{PushUps: 12, PullUps: 2},
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	profile := fullProfile()

	first := personalization.Derive(profile)
	second := personalization.Derive(profile)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Derive is not deterministic (-first +second):\n%s", diff)
	}
}

func TestDeriveFastingPlan(t *testing.T) {
	tests := []struct {
		name     string
		activity personalization.ActivityLevel
		weightKg float64
		want     catalog.FastingPlan
	}{
		// Active users land on the tightest window regardless of weight.
		{name: "active light", activity: personalization.ActivityActive, weightKg: 60, want: catalog.FastingPlan16_8},
		{name: "active heavy", activity: personalization.ActivityActive, weightKg: 95, want: catalog.FastingPlan16_8},
		{name: "sedentary below threshold", activity: personalization.ActivitySedentary, weightKg: 85, want: catalog.FastingPlan14_10},
		{name: "sedentary above threshold", activity: personalization.ActivitySedentary, weightKg: 85.5, want: catalog.FastingPlan16_8},
		{name: "moderate below threshold", activity: personalization.ActivityModerate, weightKg: 95, want: catalog.FastingPlan12_12},
		{name: "moderate above threshold", activity: personalization.ActivityModerate, weightKg: 96, want: catalog.FastingPlan14_10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := fullProfile()
			profile.ActivityLevel = tt.activity
			profile.WeightKg = tt.weightKg

			got := personalization.Derive(profile).FastingPlan
			if got != tt.want {
				t.Errorf("FastingPlan = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestFastingPlanMonotonicity sweeps weight for a fixed activity level and
// checks that the plan changes exactly once, never oscillating back.
func TestFastingPlanMonotonicity(t *testing.T) {
	for _, activity := range []personalization.ActivityLevel{
		personalization.ActivitySedentary,
		personalization.ActivityModerate,
		personalization.ActivityActive,
	} {
		t.Run(string(activity), func(t *testing.T) {
			profile := fullProfile()
			profile.ActivityLevel = activity

			var changes int
			var prev catalog.FastingPlan
			for weight := 50.0; weight <= 150.0; weight += 0.5 {
				profile.WeightKg = weight
				plan := personalization.Derive(profile).FastingPlan
				if prev != "" && plan != prev {
					changes++
				}
				prev = plan
			}

			if changes > 1 {
				t.Errorf("fasting plan changed %d times across the weight sweep, want at most 1", changes)
			}
			if activity == personalization.ActivityActive && changes != 0 {
				t.Errorf("active users should never change plan with weight, changed %d times", changes)
			}
		})
	}
}

func TestDeriveDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		assessment *personalization.Assessment
		want       catalog.Difficulty
	}{
		{name: "no assessment", assessment: nil, want: catalog.DifficultyBeginner},
		{name: "low score", assessment: &personalization.Assessment{PushUps: 8, PullUps: 1}, want: catalog.DifficultyBeginner},
		{name: "mid score", assessment: &personalization.Assessment{PushUps: 15, PullUps: 3}, want: catalog.DifficultyIntermediate},
		{name: "high score", assessment: &personalization.Assessment{PushUps: 25, PullUps: 5}, want: catalog.DifficultyAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := fullProfile()
			profile.Assessment = tt.assessment

			got := personalization.Derive(profile).WorkoutDifficulty
			if got != tt.want {
				t.Errorf("WorkoutDifficulty = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveDefaultsMissingFields(t *testing.T) {
	result := personalization.Derive(personalization.Profile{})

	want := []string{
		"gender", "age_bracket", "height_cm", "weight_kg",
		"target_weight_kg", "activity_level", "goal",
	}
	if diff := cmp.Diff(want, result.DefaultedFields); diff != "" {
		t.Errorf("DefaultedFields mismatch (-want +got):\n%s", diff)
	}

	// A fully defaulted profile must still produce usable targets.
	if result.DailyCalorieTarget < 1200 {
		t.Errorf("calorie target %d below floor", result.DailyCalorieTarget)
	}
	if result.DailyProteinTargetG <= 0 {
		t.Errorf("protein target %d not positive", result.DailyProteinTargetG)
	}
	if result.DailyHydrationTargetMl <= 0 {
		t.Errorf("hydration target %d not positive", result.DailyHydrationTargetMl)
	}
	if result.FastingPlan == "" {
		t.Error("fasting plan not derived")
	}
}

func TestDeriveCalorieTargets(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*personalization.Profile)
		wantCalories int
		wantBand     personalization.MealIntensity
	}{
		{
			// BMR = 10*72 + 6.25*168 - 5*35 - 161 = 1434; *1.55 = 2222.7;
			// -500 = 1722.7 -> 1723.
			name:         "moderate female weight loss",
			mutate:       func(p *personalization.Profile) {},
			wantCalories: 1723,
			wantBand:     personalization.MealIntensityLight,
		},
		{
			// BMR = 10*88 + 6.25*182 - 5*24 + 5 = 1902.5; *1.725 = 3281.8;
			// +300 = 3581.8 -> 3582.
			name: "active male muscle gain",
			mutate: func(p *personalization.Profile) {
				p.Gender = personalization.GenderMale
				p.AgeBracket = personalization.AgeBracket18to29
				p.HeightCm = 182
				p.WeightKg = 88
				p.TargetWeightKg = 92
				p.ActivityLevel = personalization.ActivityActive
				p.Goal = personalization.GoalMuscleGain
			},
			wantCalories: 3582,
			wantBand:     personalization.MealIntensityHighEnergy,
		},
		{
			// BMR = 10*70 + 6.25*175 - 5*45 + 5 = 1573.75; *1.2 = 1888.5 -> 1889.
			name: "sedentary male maintain",
			mutate: func(p *personalization.Profile) {
				p.Gender = personalization.GenderMale
				p.AgeBracket = personalization.AgeBracket40to49
				p.HeightCm = 175
				p.WeightKg = 70
				p.TargetWeightKg = 70
				p.ActivityLevel = personalization.ActivitySedentary
				p.Goal = personalization.GoalMaintain
			},
			wantCalories: 1889,
			wantBand:     personalization.MealIntensityStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := fullProfile()
			tt.mutate(&profile)

			result := personalization.Derive(profile)
			if result.DailyCalorieTarget != tt.wantCalories {
				t.Errorf("DailyCalorieTarget = %d, want %d", result.DailyCalorieTarget, tt.wantCalories)
			}
			if result.MealIntensity != tt.wantBand {
				t.Errorf("MealIntensity = %s, want %s", result.MealIntensity, tt.wantBand)
			}
		})
	}
}

func TestEstimateWeeksToGoal(t *testing.T) {
	tests := []struct {
		name           string
		weightKg       float64
		targetWeightKg float64
		want           int
	}{
		{name: "at goal", weightKg: 70, targetWeightKg: 70, want: 0},
		{name: "seven kilos down", weightKg: 72, targetWeightKg: 65, want: 14},
		{name: "four kilos up", weightKg: 88, targetWeightKg: 92, want: 16},
		{name: "partial week rounds up", weightKg: 70.3, targetWeightKg: 70, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := fullProfile()
			profile.WeightKg = tt.weightKg
			profile.TargetWeightKg = tt.targetWeightKg
			profile.Goal = personalization.GoalMaintain

			got := personalization.Derive(profile).EstimatedWeeksToGoal
			if got != tt.want {
				t.Errorf("EstimatedWeeksToGoal = %d, want %d", got, tt.want)
			}
		})
	}
}
