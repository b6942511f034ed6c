package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/challenges/{challengeID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/challenges/{challengeID}/members/{userID}/progress", handler.GetProgress)
	mux.HandleFunc("GET /v1/users/{userID}/dashboard", handler.GetDashboard)
	mux.HandleFunc("GET /v1/users/{userID}/heatmap", handler.GetHeatmap)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(next http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, next)
	}

	mux.Handle("POST /v1/internal/challenges/{challengeID}/leaderboard/invalidate", internal(handler.InvalidateLeaderboard))
	mux.Handle("POST /v1/internal/leaderboards/warm", internal(handler.WarmLeaderboards))
	mux.Handle("POST /v1/internal/challenges/{challengeID}/results", internal(handler.RecordResult))
	mux.Handle("POST /v1/internal/challenges/{challengeID}/penalties", internal(handler.RecordPenalty))
}
