package httpapi

import (
	"time"

	"github.com/riskibarqy/spl-fantasy/internal/domain/club"
	"github.com/riskibarqy/spl-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/spl-fantasy/internal/domain/league"
	"github.com/riskibarqy/spl-fantasy/internal/domain/match"
	"github.com/riskibarqy/spl-fantasy/internal/domain/player"
	"github.com/riskibarqy/spl-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/spl-fantasy/internal/usecase"
)

type squadEntryRequest struct {
	PlayerID     string `json:"playerId" validate:"required"`
	IsStartingXI *bool  `json:"isStartingXi"`
}

type squadSelectionRequest struct {
	Players       []squadEntryRequest `json:"players" validate:"required,min=1,dive"`
	CaptainID     string              `json:"captainId"`
	ViceCaptainID string              `json:"viceCaptainId"`
}

// Name and league are checked by the squad validator so that a rejected
// save reports them together with every other violation.
type saveTeamRequest struct {
	Name          string              `json:"name" validate:"max=100"`
	LeagueID      string              `json:"leagueId"`
	Players       []squadEntryRequest `json:"players" validate:"required,min=1,dive"`
	CaptainID     string              `json:"captainId"`
	ViceCaptainID string              `json:"viceCaptainId"`
}

type performanceRequest struct {
	Goals         int  `json:"goals" validate:"min=0"`
	Assists       int  `json:"assists" validate:"min=0"`
	YellowCards   int  `json:"yellowCards" validate:"min=0"`
	RedCards      int  `json:"redCards" validate:"min=0"`
	CleanSheet    bool `json:"cleanSheet"`
	MinutesPlayed int  `json:"minutesPlayed" validate:"min=0,max=120"`
}

type scoringPreviewRequest struct {
	Position string `json:"position" validate:"required"`
	performanceRequest
}

type matchPerformanceRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	performanceRequest
}

type recordPerformancesRequest struct {
	Performances []matchPerformanceRequest `json:"performances" validate:"required,min=1,dive"`
}

type createLeagueRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private"`
}

type joinLeagueRequest struct {
	LeagueID   string `json:"leagueId" validate:"required_without=InviteCode"`
	InviteCode string `json:"inviteCode" validate:"omitempty,min=4,max=32"`
}

type clubRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	ShortName string `json:"shortName" validate:"required,min=2,max=4"`
	City      string `json:"city" validate:"max=120"`
}

type playerRequest struct {
	ClubID   string `json:"clubId" validate:"required"`
	Name     string `json:"name" validate:"required,max=120"`
	Position string `json:"position" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

type seasonRequest struct {
	Name     string `json:"name" validate:"required,max=60"`
	IsActive bool   `json:"isActive"`
}

type matchRequest struct {
	SeasonID   string `json:"seasonId" validate:"required"`
	Round      int    `json:"round" validate:"required,min=1"`
	HomeClubID string `json:"homeClubId" validate:"required"`
	AwayClubID string `json:"awayClubId" validate:"required,nefield=HomeClubID"`
	KickoffAt  string `json:"kickoffAt" validate:"required"`
}

type finishMatchRequest struct {
	HomeScore *int `json:"homeScore" validate:"required,min=0"`
	AwayScore *int `json:"awayScore" validate:"required,min=0"`
}

// Prices are tenths of a budget unit; priceLabel is the display form.
type playerDTO struct {
	ID                string `json:"id"`
	ClubID            string `json:"clubId"`
	Name              string `json:"name"`
	Position          string `json:"position"`
	Price             int64  `json:"price"`
	PriceLabel        string `json:"priceLabel"`
	TotalPoints       int    `json:"totalPoints"`
	CurrentWeekPoints *int   `json:"currentWeekPoints"`
	ImageURL          string `json:"imageUrl,omitempty"`
}

type clubDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	City      string `json:"city,omitempty"`
}

type seasonDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type matchDTO struct {
	ID         string `json:"id"`
	SeasonID   string `json:"seasonId"`
	Round      int    `json:"round"`
	HomeClubID string `json:"homeClubId"`
	AwayClubID string `json:"awayClubId"`
	KickoffAt  string `json:"kickoffAt"`
	HomeScore  *int   `json:"homeScore,omitempty"`
	AwayScore  *int   `json:"awayScore,omitempty"`
	Status     string `json:"status"`
}

type lineItemDTO struct {
	Rule   string `json:"rule"`
	Count  int    `json:"count"`
	Points int    `json:"points"`
}

type pointsPreviewDTO struct {
	Position  string        `json:"position"`
	Points    int           `json:"points"`
	Breakdown []lineItemDTO `json:"breakdown"`
}

type squadEntryDTO struct {
	Player        playerDTO `json:"player"`
	IsStartingXI  bool      `json:"isStartingXi"`
	IsCaptain     bool      `json:"isCaptain"`
	IsViceCaptain bool      `json:"isViceCaptain"`
	Multiplier    float64   `json:"multiplier"`
}

type squadSummaryDTO struct {
	Budget          int64          `json:"budget"`
	TotalCost       int64          `json:"totalCost"`
	RemainingBudget int64          `json:"remainingBudget"`
	TotalPoints     float64        `json:"totalPoints"`
	PositionCounts  map[string]int `json:"positionCounts"`
	StartingXICount int            `json:"startingXiCount"`
	BenchCount      int            `json:"benchCount"`
	IsValid         bool           `json:"isValid"`
	Errors          []string       `json:"errors"`
}

type squadDTO struct {
	Players       []squadEntryDTO `json:"players"`
	CaptainID     string          `json:"captainId,omitempty"`
	ViceCaptainID string          `json:"viceCaptainId,omitempty"`
	Summary       squadSummaryDTO `json:"summary"`
}

type teamDTO struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	LeagueID     string   `json:"leagueId"`
	TotalPoints  float64  `json:"totalPoints"`
	Squad        squadDTO `json:"squad"`
	CreatedAtUTC string   `json:"createdAtUtc"`
	UpdatedAtUTC string   `json:"updatedAtUtc"`
}

type leagueDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerUserID  string `json:"ownerUserId"`
	Visibility   string `json:"visibility"`
	InviteCode   string `json:"inviteCode,omitempty"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type standingDTO struct {
	Rank     int     `json:"rank"`
	TeamID   string  `json:"teamId"`
	TeamName string  `json:"teamName"`
	UserID   string  `json:"userId"`
	Points   float64 `json:"points"`
}

type batchRowDTO struct {
	PlayerID      string `json:"playerId"`
	Status        string `json:"status"`
	Points        int    `json:"points"`
	TeamsCredited int    `json:"teamsCredited"`
	Message       string `json:"message,omitempty"`
}

type batchResultDTO struct {
	MatchID     string        `json:"matchId"`
	ScoredCount int           `json:"scoredCount"`
	FailedCount int           `json:"failedCount"`
	Rows        []batchRowDTO `json:"rows"`
}

func (r performanceRequest) toPerformance() scoring.Performance {
	return scoring.Performance{
		Goals:         r.Goals,
		Assists:       r.Assists,
		YellowCards:   r.YellowCards,
		RedCards:      r.RedCards,
		CleanSheet:    r.CleanSheet,
		MinutesPlayed: r.MinutesPlayed,
	}
}

func selectionInput(players []squadEntryRequest, captainID, viceCaptainID string) usecase.SquadSelectionInput {
	entries := make([]usecase.SquadEntryInput, 0, len(players))
	for _, p := range players {
		entries = append(entries, usecase.SquadEntryInput{PlayerID: p.PlayerID, IsStartingXI: p.IsStartingXI})
	}
	return usecase.SquadSelectionInput{
		Players:       entries,
		CaptainID:     captainID,
		ViceCaptainID: viceCaptainID,
	}
}

func (r playerRequest) toInput() usecase.CreatePlayerInput {
	return usecase.CreatePlayerInput{
		ClubID:   r.ClubID,
		Name:     r.Name,
		Position: r.Position,
		Price:    r.Price,
		ImageURL: r.ImageURL,
	}
}

func playerToDTO(p player.Player) playerDTO {
	var week *int
	if p.CurrentWeekPoints != nil {
		v := *p.CurrentWeekPoints
		week = &v
	}
	return playerDTO{
		ID:                p.ID,
		ClubID:            p.ClubID,
		Name:              p.Name,
		Position:          p.Position.String(),
		Price:             p.Price,
		PriceLabel:        player.FormatPrice(p.Price),
		TotalPoints:       p.TotalPoints,
		CurrentWeekPoints: week,
		ImageURL:          p.ImageURL,
	}
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, Name: c.Name, ShortName: c.ShortName, City: c.City}
}

func seasonToDTO(s match.Season) seasonDTO {
	return seasonDTO{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:         m.ID,
		SeasonID:   m.SeasonID,
		Round:      m.Round,
		HomeClubID: m.HomeClubID,
		AwayClubID: m.AwayClubID,
		KickoffAt:  m.KickoffAt.UTC().Format(time.RFC3339),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Status:     string(m.Status),
	}
}

func pointsPreviewToDTO(p usecase.PointsPreview) pointsPreviewDTO {
	return pointsPreviewDTO{
		Position:  p.Position.String(),
		Points:    p.Points,
		Breakdown: lineItemsToDTO(p.Breakdown),
	}
}

func lineItemsToDTO(items []scoring.LineItem) []lineItemDTO {
	out := make([]lineItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, lineItemDTO{Rule: item.Rule, Count: item.Count, Points: item.Points})
	}
	return out
}

func squadToDTO(view usecase.SquadView, budget int64) squadDTO {
	sel := view.Selection
	players := make([]squadEntryDTO, 0, len(sel.Entries))
	for _, e := range sel.Entries {
		players = append(players, squadEntryDTO{
			Player:        playerToDTO(e.Player),
			IsStartingXI:  e.IsStartingXI,
			IsCaptain:     sel.CaptainID != "" && e.Player.ID == sel.CaptainID,
			IsViceCaptain: sel.ViceCaptainID != "" && e.Player.ID == sel.ViceCaptainID,
			Multiplier:    sel.Multiplier(e.Player.ID),
		})
	}

	return squadDTO{
		Players:       players,
		CaptainID:     sel.CaptainID,
		ViceCaptainID: sel.ViceCaptainID,
		Summary:       summaryToDTO(view.Summary, budget),
	}
}

func summaryToDTO(s fantasy.Summary, budget int64) squadSummaryDTO {
	counts := make(map[string]int, len(player.Positions))
	for _, pos := range player.Positions {
		counts[pos.String()] = s.PositionCounts[pos]
	}
	errs := s.Validation.Errors
	if errs == nil {
		errs = []string{}
	}
	return squadSummaryDTO{
		Budget:          budget,
		TotalCost:       s.TotalCost,
		RemainingBudget: s.RemainingBudget,
		TotalPoints:     s.TotalPoints,
		PositionCounts:  counts,
		StartingXICount: len(s.StartingXI),
		BenchCount:      len(s.Bench),
		IsValid:         s.Validation.IsValid,
		Errors:          errs,
	}
}

func teamToDTO(t usecase.MyTeam, budget int64) teamDTO {
	return teamDTO{
		ID:           t.Team.ID,
		UserID:       t.Team.UserID,
		Name:         t.Team.Name,
		LeagueID:     t.Team.LeagueID,
		TotalPoints:  t.Team.TotalPoints,
		Squad:        squadToDTO(t.SquadView, budget),
		CreatedAtUTC: t.Team.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: t.Team.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// leagueToDTO only exposes the invite code of private leagues to their owner.
func leagueToDTO(l league.League, viewerID string) leagueDTO {
	out := leagueDTO{
		ID:           l.ID,
		Name:         l.Name,
		OwnerUserID:  l.OwnerUserID,
		Visibility:   string(l.Visibility),
		CreatedAtUTC: l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.IsPrivate() && l.OwnerUserID == viewerID {
		out.InviteCode = l.InviteCode
	}
	return out
}

func standingToDTO(s league.Standing) standingDTO {
	return standingDTO{
		Rank:     s.Rank,
		TeamID:   s.TeamID,
		TeamName: s.TeamName,
		UserID:   s.UserID,
		Points:   s.Points,
	}
}

func batchResultToDTO(result usecase.BatchResult) batchResultDTO {
	rows := make([]batchRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, batchRowDTO{
			PlayerID:      row.PlayerID,
			Status:        row.Status,
			Points:        row.Points,
			TeamsCredited: row.TeamsCredited,
			Message:       row.Message,
		})
	}
	return batchResultDTO{
		MatchID:     result.MatchID,
		ScoredCount: result.ScoredCount,
		FailedCount: result.FailedCount,
		Rows:        rows,
	}
}
