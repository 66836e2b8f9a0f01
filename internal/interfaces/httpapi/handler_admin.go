package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/usecase"
)

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	var req clubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.adminService.CreateClub(ctx, usecase.CreateClubInput{
		Name:      req.Name,
		ShortName: req.ShortName,
		City:      req.City,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create club failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, clubToDTO(created))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.adminService.CreatePlayer(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.adminService.UpdatePlayer(ctx, usecase.UpdatePlayerInput{
		PlayerID:          playerID,
		CreatePlayerInput: req.toInput(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req seasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.adminService.CreateSeason(ctx, usecase.CreateSeasonInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(created))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req matchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoff, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: kickoffAt must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.adminService.CreateMatch(ctx, usecase.CreateMatchInput{
		SeasonID:   req.SeasonID,
		Round:      req.Round,
		HomeClubID: req.HomeClubID,
		AwayClubID: req.AwayClubID,
		KickoffAt:  kickoff,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req finishMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	finished, err := h.adminService.FinishMatch(ctx, usecase.FinishMatchInput{
		MatchID:   matchID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "finish match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(finished))
}

// RecordMatchPerformances answers 200 even when some rows fail; per-row
// outcomes are in the body.
func (h *Handler) RecordMatchPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchPerformances")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req recordPerformancesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.RecordPerformanceInput, 0, len(req.Performances))
	for _, item := range req.Performances {
		inputs = append(inputs, usecase.RecordPerformanceInput{
			PlayerID:      item.PlayerID,
			MatchID:       matchID,
			Goals:         item.Goals,
			Assists:       item.Assists,
			YellowCards:   item.YellowCards,
			RedCards:      item.RedCards,
			CleanSheet:    item.CleanSheet,
			MinutesPlayed: item.MinutesPlayed,
		})
	}

	result, err := h.scoringService.RecordMatchPerformances(ctx, matchID, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "record match performances failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, batchResultToDTO(result))
}

func (h *Handler) ResetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetRound")
	defer span.End()

	if err := h.scoringService.ResetCurrentWeek(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}
