package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/scoring/preview", handler.PreviewPoints)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/squads/preview", RequireAuth(verifier, http.HandlerFunc(handler.PreviewSquad)))
	mux.Handle("PUT /v1/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.SaveMyTeam)))
	mux.Handle("GET /v1/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))

	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("GET /v1/leagues/{leagueID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /v1/admin/clubs", admin(handler.CreateClub))
	mux.Handle("POST /v1/admin/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("POST /v1/admin/seasons", admin(handler.CreateSeason))
	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("POST /v1/admin/matches/{matchID}/finish", admin(handler.FinishMatch))
	mux.Handle("POST /v1/admin/matches/{matchID}/performances", admin(handler.RecordMatchPerformances))
	mux.Handle("POST /v1/admin/rounds/reset", admin(handler.ResetRound))
}
