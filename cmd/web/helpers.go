package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkoskela/fitplan/internal/catalog"
	"github.com/tkoskela/fitplan/internal/progress"
	"github.com/yuin/goldmark"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", slog.Any("error", err))
	app.writeJSON(w, r, http.StatusInternalServerError, envelope{"error": "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeJSON(w, r, status, envelope{"error": message})
}

// transitionError maps domain errors to HTTP statuses: a rejected transition
// is the client's fault, a missing record is 404, anything else is ours.
func (app *application) transitionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, progress.ErrInvalidTransition):
		app.clientError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, progress.ErrNotFound):
		app.clientError(w, r, http.StatusNotFound, "no progress record for this date")
	default:
		app.serverError(w, r, err)
	}
}

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "marshal response", slog.Any("error", err))
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) //nolint:mnd // 1 MiB is plenty.
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		app.clientError(w, r, http.StatusBadRequest, fmt.Sprintf("malformed request body: %v", err))
		return false
	}
	return true
}

// parseDateParam parses the "date" path parameter from the request URL.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseDateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.PathValue("date")
	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		http.NotFound(w, r)
		return time.Time{}, false
	}
	return date, true
}

// parseSlotParam parses the "slot" path parameter into a meal type.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseSlotParam(w http.ResponseWriter, r *http.Request) (catalog.MealType, bool) {
	slot := catalog.MealType(r.PathValue("slot"))
	for _, mt := range catalog.MealTypes() {
		if slot == mt {
			return slot, true
		}
	}
	http.NotFound(w, r)
	return "", false
}

// renderMarkdown converts exercise description Markdown to HTML.
func renderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
