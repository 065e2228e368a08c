package main

import (
	"net/http"

	"github.com/tkoskela/fitplan/internal/contexthelpers"
)

// resetPOST wipes the user's profile, progress history and milestones.
func (app *application) resetPOST(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	if err := app.progress.Reset(r.Context(), userID); err != nil {
		app.serverError(w, r, err)
		return
	}
	if err := app.personalization.DeleteProfile(r.Context(), userID); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"status": "reset"})
}
