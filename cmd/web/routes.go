package main

import (
	"net/http"

	"github.com/rs/cors"
)

func (app *application) routes(corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	var (
		base = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(
				commonContext(app.timeout(next)))))
		}
		session = func(next http.Handler) http.Handler {
			return base(noCache(app.sessionManager.LoadAndSave(app.sessionUser(next))))
		}
	)

	mux.Handle("GET /api/healthy", base(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /profile", session(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /profile", session(http.HandlerFunc(app.profilePUT)))
	mux.Handle("POST /profile/override", session(http.HandlerFunc(app.profileOverridePOST)))

	mux.Handle("GET /personalization", session(http.HandlerFunc(app.personalizationGET)))

	mux.Handle("GET /plans/week", session(http.HandlerFunc(app.planWeekGET)))
	mux.Handle("GET /plans/{date}", session(http.HandlerFunc(app.planGET)))

	mux.Handle("GET /progress/{date}", session(http.HandlerFunc(app.progressGET)))
	mux.Handle("POST /progress/{date}/initialize", session(http.HandlerFunc(app.progressInitializePOST)))
	mux.Handle("POST /progress/{date}/exercises/{exerciseID}/start",
		session(http.HandlerFunc(app.exerciseStartPOST)))
	mux.Handle("POST /progress/{date}/exercises/{exerciseID}/complete",
		session(http.HandlerFunc(app.exerciseCompletePOST)))
	mux.Handle("POST /progress/{date}/exercises/{exerciseID}/skip",
		session(http.HandlerFunc(app.exerciseSkipPOST)))
	mux.Handle("POST /progress/{date}/meals/{slot}/options", session(http.HandlerFunc(app.mealOptionsPOST)))
	mux.Handle("POST /progress/{date}/meals/{slot}/select", session(http.HandlerFunc(app.mealSelectPOST)))
	mux.Handle("POST /progress/{date}/meals/{slot}/eaten", session(http.HandlerFunc(app.mealEatenPOST)))
	mux.Handle("POST /progress/{date}/meals/{slot}/skip", session(http.HandlerFunc(app.mealSkipPOST)))
	mux.Handle("POST /progress/{date}/fasting", session(http.HandlerFunc(app.fastingPOST)))

	mux.Handle("GET /stats/weekly", session(http.HandlerFunc(app.statsWeeklyGET)))
	mux.Handle("GET /stats/monthly", session(http.HandlerFunc(app.statsMonthlyGET)))
	mux.Handle("GET /milestones", session(http.HandlerFunc(app.milestonesGET)))

	mux.Handle("POST /reset", session(http.HandlerFunc(app.resetPOST)))

	if corsOrigin == "" {
		return mux
	}
	return cors.New(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)
}
