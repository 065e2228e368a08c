package main

import (
	"fmt"
	"net/http"

	"github.com/tkoskela/fitplan/internal/contexthelpers"
)

// progressGET returns the execution record for a date.
func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	day, err := app.progress.GetDay(r.Context(), userID, date)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

// progressInitializePOST assembles the plan for a date and opens its progress
// record. Calling it again for the same date returns the existing record.
func (app *application) progressInitializePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	dailyPlan, err := app.assemblePlan(r, userID, date)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	day, err := app.progress.InitializeDay(r.Context(), userID, dailyPlan)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

// exerciseStartPOST starts the exercise at the workout cursor.
func (app *application) exerciseStartPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	day, err := app.progress.StartExercise(r.Context(), userID, date, r.PathValue("exerciseID"))
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

type exerciseCompletion struct {
	SetsDone int `json:"sets_done"`
	RepsDone int `json:"reps_done"`
}

// exerciseCompletePOST finishes an in-progress exercise with the performed
// sets and reps.
func (app *application) exerciseCompletePOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	var body exerciseCompletion
	if !app.readJSON(w, r, &body) {
		return
	}
	if body.SetsDone < 0 || body.RepsDone < 0 {
		app.clientError(w, r, http.StatusBadRequest, "sets_done and reps_done must not be negative")
		return
	}

	day, err := app.progress.CompleteExercise(
		r.Context(), userID, date, r.PathValue("exerciseID"), body.SetsDone, body.RepsDone,
	)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

// exerciseSkipPOST skips the exercise at the workout cursor.
func (app *application) exerciseSkipPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	day, err := app.progress.SkipExercise(r.Context(), userID, date, r.PathValue("exerciseID"))
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

// mealOptionsPOST opens a meal slot for selection and returns the catalog
// meals that can fill it.
func (app *application) mealOptionsPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	slot, ok := app.parseSlotParam(w, r)
	if !ok {
		return
	}

	day, err := app.progress.OfferMealOptions(r.Context(), userID, date, slot)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"progress": day,
		"options":  app.catalog.MealsByType(slot),
	})
}

type mealSelection struct {
	MealID string `json:"meal_id"`
}

// mealSelectPOST binds a catalog meal to an open slot. The meal must exist
// and be of the slot's type.
func (app *application) mealSelectPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	slot, ok := app.parseSlotParam(w, r)
	if !ok {
		return
	}

	var body mealSelection
	if !app.readJSON(w, r, &body) {
		return
	}

	meal, found := app.catalog.Meal(body.MealID)
	if !found {
		app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown meal %q", body.MealID))
		return
	}
	if meal.Type != slot {
		app.clientError(w, r, http.StatusBadRequest,
			fmt.Sprintf("meal %q is a %s, not a %s", meal.ID, meal.Type, slot))
		return
	}

	day, err := app.progress.SelectMeal(r.Context(), userID, date, slot, meal.ID)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

// mealEatenPOST marks the selected meal as eaten.
func (app *application) mealEatenPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	slot, ok := app.parseSlotParam(w, r)
	if !ok {
		return
	}

	day, err := app.progress.MarkMealEaten(r.Context(), userID, date, slot)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

// mealSkipPOST skips a meal slot.
func (app *application) mealSkipPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	slot, ok := app.parseSlotParam(w, r)
	if !ok {
		return
	}

	day, err := app.progress.SkipMeal(r.Context(), userID, date, slot)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}

type fastingReport struct {
	CompliancePercent int  `json:"compliance_percent"`
	Started           bool `json:"started"`
	Completed         bool `json:"completed"`
}

// fastingPOST records the fasting compliance observed for a date.
func (app *application) fastingPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	var body fastingReport
	if !app.readJSON(w, r, &body) {
		return
	}

	day, err := app.progress.SetFastingCompliance(
		r.Context(), userID, date, body.CompliancePercent, body.Started, body.Completed,
	)
	if err != nil {
		app.transitionError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"progress": day})
}
