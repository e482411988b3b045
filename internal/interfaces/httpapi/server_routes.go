package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weeks/{weekID}/team-days", handler.ListTeamDays)
	mux.HandleFunc("GET /v1/weeks/{weekID}/team-weeks", handler.ListTeamWeeks)
	mux.HandleFunc("GET /v1/weeks/{weekID}/player-weeks", handler.ListPlayerWeeks)
	mux.HandleFunc("GET /v1/weeks/{weekID}/matchups", handler.ListMatchups)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/daily-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDailySyncJob)))
	mux.Handle("POST /v1/internal/jobs/weekly-rollup", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWeeklyRollupJob)))
	mux.Handle("POST /v1/internal/jobs/resolve-matchups", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResolveMatchupsJob)))
	mux.Handle("POST /v1/internal/jobs/backfill", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBackfillJob)))
}
