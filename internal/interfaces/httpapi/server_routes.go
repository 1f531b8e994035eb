package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerOrgRoutes(mux *http.ServeMux, handler *Handler) {
	registerCompetitionRoutes(mux, handler)
	registerGameRoutes(mux, handler)
	registerStatsRoutes(mux, handler)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/divisions/{divisionID}/rounds", RequireOrg(http.HandlerFunc(handler.ListRoundsByDivision)))
	mux.Handle("POST /v1/divisions/{divisionID}/standings/recalculate", RequireOrg(http.HandlerFunc(handler.RecalculateDivisionStandings)))
	mux.Handle("GET /v1/rounds/{roundID}", RequireOrg(http.HandlerFunc(handler.GetRound)))
	mux.Handle("PATCH /v1/rounds/{roundID}", RequireOrg(http.HandlerFunc(handler.UpdateRound)))
	mux.Handle("GET /v1/rounds/{roundID}/standings", RequireOrg(http.HandlerFunc(handler.ListRoundStandings)))
	mux.Handle("POST /v1/rounds/{roundID}/schedule", RequireOrg(http.HandlerFunc(handler.GenerateSchedule)))
	mux.Handle("GET /v1/rounds/{roundID}/bonus-points", RequireOrg(http.HandlerFunc(handler.ListBonusPoints)))
	mux.Handle("POST /v1/rounds/{roundID}/bonus-points", RequireOrg(http.HandlerFunc(handler.CreateBonusPoint)))
	mux.Handle("PUT /v1/rounds/{roundID}/bonus-points/{bonusID}", RequireOrg(http.HandlerFunc(handler.UpdateBonusPoint)))
	mux.Handle("DELETE /v1/rounds/{roundID}/bonus-points/{bonusID}", RequireOrg(http.HandlerFunc(handler.DeleteBonusPoint)))
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/games/{gameID}", RequireOrg(http.HandlerFunc(handler.GetGame)))
	mux.Handle("POST /v1/games/{gameID}/complete", RequireOrg(http.HandlerFunc(handler.CompleteGame)))
	mux.Handle("POST /v1/games/{gameID}/reopen", RequireOrg(http.HandlerFunc(handler.ReopenGame)))
	mux.Handle("POST /v1/games/{gameID}/cancel", RequireOrg(http.HandlerFunc(handler.CancelGame)))
	mux.Handle("POST /v1/games/{gameID}/events", RequireOrg(http.HandlerFunc(handler.AddGameEvent)))
	mux.Handle("PUT /v1/games/{gameID}/events/{eventID}", RequireOrg(http.HandlerFunc(handler.UpdateGameEvent)))
	mux.Handle("DELETE /v1/games/{gameID}/events/{eventID}", RequireOrg(http.HandlerFunc(handler.DeleteGameEvent)))
	mux.Handle("PUT /v1/games/{gameID}/lineups/{teamID}", RequireOrg(http.HandlerFunc(handler.SetGameLineup)))
	mux.Handle("POST /v1/suspensions", RequireOrg(http.HandlerFunc(handler.CreateSuspension)))
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/seasons/{seasonID}/player-stats", RequireOrg(http.HandlerFunc(handler.ListPlayerSeasonStats)))
	mux.Handle("GET /v1/seasons/{seasonID}/goalies/leaderboard", RequireOrg(http.HandlerFunc(handler.GetGoalieLeaderboard)))
	mux.Handle("GET /v1/seasons/{seasonID}/penalties/players", RequireOrg(http.HandlerFunc(handler.ListPlayerPenalties)))
	mux.Handle("GET /v1/seasons/{seasonID}/penalties/teams", RequireOrg(http.HandlerFunc(handler.ListTeamPenalties)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recalculate", RequireInternalJobToken(internalJobToken, RequireOrg(http.HandlerFunc(handler.RunRecalculateJob))))
}
