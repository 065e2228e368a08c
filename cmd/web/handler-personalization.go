package main

import (
	"net/http"

	"github.com/tkoskela/fitplan/internal/contexthelpers"
)

// personalizationGET returns the plan parameters derived from the stored
// profile. Unanswered fields fall back to defaults and are reported in
// defaulted_fields.
func (app *application) personalizationGET(w http.ResponseWriter, r *http.Request) {
	userID := contexthelpers.CurrentUserID(r.Context())

	result, err := app.personalization.Personalize(r.Context(), userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, envelope{"personalization": result})
}
