package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/contexthelpers"
	"github.com/tkoskela/fitplan/internal/plan"
	"github.com/tkoskela/fitplan/internal/stats"
	"golang.org/x/sync/errgroup"
)

type exerciseJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DescriptionHTML string `json:"description_html,omitempty"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	RestSeconds     int    `json:"rest_seconds"`
}

type workoutJSON struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Difficulty catalog.Difficulty `json:"difficulty"`
	Exercises  []exerciseJSON     `json:"exercises"`
}

type mealSlotJSON struct {
	Slot          catalog.MealType `json:"slot"`
	ScheduledTime string           `json:"scheduled_time"`
	Meal          *catalog.Meal    `json:"meal"`
}

type planJSON struct {
	Date      string                `json:"date"`
	IsRestDay bool                  `json:"is_rest_day"`
	Workout   *workoutJSON          `json:"workout"`
	Meals     []mealSlotJSON        `json:"meals"`
	Totals    plan.NutritionTotals  `json:"nutrition_totals"`
	Fasting   catalog.FastingWindow `json:"fasting"`
	IsValid   bool                  `json:"is_valid"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// toPlanJSON shapes a daily plan for the API, rendering exercise descriptions
// to HTML on the way out.
func toPlanJSON(p plan.DailyPlan) (planJSON, error) {
	out := planJSON{
		Date:      p.Date.Format(time.DateOnly),
		IsRestDay: p.IsRestDay,
		Totals:    p.Meals.Totals,
		Fasting:   p.Fasting,
		IsValid:   p.IsValid,
		Warnings:  p.Warnings,
	}

	if p.Workout != nil {
		w := workoutJSON{
			ID:         p.Workout.ID,
			Name:       p.Workout.Name,
			Difficulty: p.Workout.Difficulty,
			Exercises:  make([]exerciseJSON, 0, len(p.Workout.Exercises)),
		}
		for _, ex := range p.Workout.Exercises {
			html, err := renderMarkdown(ex.DescriptionMarkdown)
			if err != nil {
				return planJSON{}, fmt.Errorf("render description for %s: %w", ex.ID, err)
			}
			w.Exercises = append(w.Exercises, exerciseJSON{
				ID:              ex.ID,
				Name:            ex.Name,
				DescriptionHTML: html,
				Sets:            ex.Sets,
				Reps:            ex.Reps,
				RestSeconds:     ex.RestSeconds,
			})
		}
		out.Workout = &w
	}

	for _, slot := range p.Meals.Slots {
		out.Meals = append(out.Meals, mealSlotJSON{
			Slot:          slot.Type,
			ScheduledTime: slot.ScheduledTime,
			Meal:          slot.Meal,
		})
	}

	return out, nil
}

// planGET returns the assembled daily plan for a date.
func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	result, err := app.personalization.Personalize(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	out, err := toPlanJSON(plan.Assemble(date, result, app.catalog))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"plan": out})
}

// planWeekGET returns the plans for the Monday-to-Sunday week containing the
// date query parameter, defaulting to today. Personalization is resolved once
// and the seven days are assembled concurrently.
func (app *application) planWeekGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	anchor := app.now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		var err error
		if anchor, err = time.Parse(time.DateOnly, dateStr); err != nil {
			app.clientError(w, r, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
	}

	result, err := app.personalization.Personalize(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	monday, _ := stats.WeekBounds(anchor)
	week := make([]planJSON, 7) //nolint:mnd // 7 days in a week

	var g errgroup.Group
	for i := range week {
		g.Go(func() error {
			day := monday.AddDate(0, 0, i)
			out, planErr := toPlanJSON(plan.Assemble(day, result, app.catalog))
			if planErr != nil {
				return fmt.Errorf("plan %s: %w", day.Format(time.DateOnly), planErr)
			}
			week[i] = out
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{
		"week_start": monday.Format(time.DateOnly),
		"plans":      week,
	})
}

// assemblePlan resolves the personalization and builds the plan for a date.
// Shared by the progress initialization handler.
func (app *application) assemblePlan(r *http.Request, userID int64, date time.Time) (plan.DailyPlan, error) {
	result, err := app.personalization.Personalize(r.Context(), userID)
	if err != nil {
		return plan.DailyPlan{}, fmt.Errorf("personalize: %w", err)
	}
	return plan.Assemble(date, result, app.catalog), nil
}
