package main

import (
	"net/http"
	"time"

	"github.com/tkoskela/fitplan/internal/contexthelpers"
	"github.com/tkoskela/fitplan/internal/stats"
)

// statsDate reads the optional "date" query parameter, defaulting to today.
func (app *application) statsDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return app.now().UTC(), true
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

// statsWeeklyGET summarizes the Monday-to-Sunday week containing the date.
func (app *application) statsWeeklyGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.statsDate(w, r)
	if !ok {
		return
	}

	monday, sunday := stats.WeekBounds(date)
	history, err := app.progress.History(r.Context(), userID, monday, sunday)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"weekly": stats.Weekly(history, date)})
}

// statsMonthlyGET summarizes the calendar month containing the date.
func (app *application) statsMonthlyGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	date, ok := app.statsDate(w, r)
	if !ok {
		return
	}

	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	history, err := app.progress.History(r.Context(), userID, first, last)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"monthly": stats.Monthly(history, date)})
}

// milestonesGET lists the achievements earned so far.
func (app *application) milestonesGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	milestones, err := app.progress.Milestones(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"milestones": milestones})
}
