package main

import (
	"net/http"

	"github.com/tkoskela/fitplan/internal/contexthelpers"
	"github.com/tkoskela/fitplan/internal/personalization"
)

// profileGET returns the stored onboarding profile.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	profile, err := app.personalization.GetProfile(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"profile": profile})
}

// profilePUT replaces the onboarding profile and returns the new
// personalization derived from it.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	var profile personalization.Profile
	if !app.readJSON(w, r, &profile) {
		return
	}

	if err := app.personalization.SaveProfile(r.Context(), userID, profile); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := app.personalization.Personalize(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"profile":         profile,
		"personalization": result,
	})
}

// profileOverride is a partial profile change. Only the provided fields are
// touched.
type profileOverride struct {
	Gender         *personalization.Gender        `json:"gender"`
	AgeBracket     *personalization.AgeBracket    `json:"age_bracket"`
	HeightCm       *float64                       `json:"height_cm"`
	WeightKg       *float64                       `json:"weight_kg"`
	TargetWeightKg *float64                       `json:"target_weight_kg"`
	ActivityLevel  *personalization.ActivityLevel `json:"activity_level"`
	Goal           *personalization.Goal          `json:"goal"`
	Assessment     *personalization.Assessment    `json:"assessment"`
}

// profileOverridePOST amends individual profile fields, keeping the rest of
// the stored answers, and returns the recomputed personalization.
func (app *application) profileOverridePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	var override profileOverride
	if !app.readJSON(w, r, &override) {
		return
	}

	profile, err := app.personalization.AmendProfile(r.Context(), userID, func(p *personalization.Profile) {
		if override.Gender != nil {
			p.Gender = *override.Gender
		}
		if override.AgeBracket != nil {
			p.AgeBracket = *override.AgeBracket
		}
		if override.HeightCm != nil {
			p.HeightCm = *override.HeightCm
		}
		if override.WeightKg != nil {
			p.WeightKg = *override.WeightKg
		}
		if override.TargetWeightKg != nil {
			p.TargetWeightKg = *override.TargetWeightKg
		}
		if override.ActivityLevel != nil {
			p.ActivityLevel = *override.ActivityLevel
		}
		if override.Goal != nil {
			p.Goal = *override.Goal
		}
		if override.Assessment != nil {
			p.Assessment = override.Assessment
		}
	})
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := app.personalization.Personalize(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"profile":         profile,
		"personalization": result,
	})
}
