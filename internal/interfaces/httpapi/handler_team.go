package httpapi

import (
	"net/http"

	"github.com/riskibarqy/spl-fantasy/internal/usecase"
)

func (h *Handler) PreviewSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewSquad")
	defer span.End()

	var req squadSelectionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.squadService.Preview(ctx, selectionInput(req.Players, req.CaptainID, req.ViceCaptainID))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(view, h.squadService.Rules().Budget))
}

func (h *Handler) SaveMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req saveTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.squadService.SaveTeam(ctx, usecase.SaveTeamInput{
		UserID:    principal.UserID,
		Name:      req.Name,
		LeagueID:  req.LeagueID,
		Selection: selectionInput(req.Players, req.CaptainID, req.ViceCaptainID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team, h.squadService.Rules().Budget))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team, err := h.squadService.GetMyTeam(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(team, h.squadService.Rules().Budget))
}
