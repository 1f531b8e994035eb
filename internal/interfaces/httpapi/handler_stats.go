package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

func (h *Handler) ListPlayerSeasonStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerSeasonStats")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	position := strings.TrimSpace(r.URL.Query().Get("position"))
	stats, err := h.playerStatsService.ListBySeason(ctx, orgID, seasonID, position)
	if err != nil {
		h.logger.WarnContext(ctx, "list player season stats failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatDTO, 0, len(stats))
	for _, item := range stats {
		items = append(items, playerStatToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGoalieLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGoalieLeaderboard")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	board, err := h.goalieStatsService.Leaderboard(ctx, orgID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "goalie leaderboard failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	qualified := make([]goalieStatDTO, 0, len(board.Qualified))
	for _, item := range board.Qualified {
		qualified = append(qualified, goalieStatToDTO(ctx, item))
	}
	belowThreshold := make([]goalieStatDTO, 0, len(board.BelowThreshold))
	for _, item := range board.BelowThreshold {
		belowThreshold = append(belowThreshold, goalieStatToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, goalieLeaderboardDTO{
		MinGames:       board.MinGames,
		Qualified:      qualified,
		BelowThreshold: belowThreshold,
	})
}

func (h *Handler) ListPlayerPenalties(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerPenalties")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	summaries, err := h.penaltyService.PlayerPenalties(ctx, orgID, seasonID, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player penalties failed", "season_id", seasonID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerPenaltyDTO, 0, len(summaries))
	for _, item := range summaries {
		items = append(items, playerPenaltyDTO{
			PlayerID:     item.PlayerID,
			TeamID:       item.TeamID,
			Count:        item.Count,
			TotalMinutes: item.TotalMinutes,
			ByType:       penaltyBreakdownToDTO(ctx, item.ByType),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamPenalties(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPenalties")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	seasonID := r.PathValue("seasonID")
	summaries, err := h.penaltyService.TeamPenalties(ctx, orgID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team penalties failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamPenaltyDTO, 0, len(summaries))
	for _, item := range summaries {
		items = append(items, teamPenaltyDTO{
			TeamID:       item.TeamID,
			Count:        item.Count,
			TotalMinutes: item.TotalMinutes,
			ByType:       penaltyBreakdownToDTO(ctx, item.ByType),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type playerStatDTO struct {
	PlayerID       string `json:"playerId"`
	TeamID         string `json:"teamId"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	TotalPoints    int    `json:"totalPoints"`
	PenaltyMinutes int    `json:"penaltyMinutes"`
}

type goalieStatDTO struct {
	PlayerID     string `json:"playerId"`
	TeamID       string `json:"teamId"`
	GamesPlayed  int    `json:"gamesPlayed"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GAA          string `json:"gaa"`
}

type goalieLeaderboardDTO struct {
	MinGames       int             `json:"minGames"`
	Qualified      []goalieStatDTO `json:"qualified"`
	BelowThreshold []goalieStatDTO `json:"belowThreshold"`
}

type penaltyBreakdownDTO struct {
	PenaltyTypeID string `json:"penaltyTypeId"`
	Count         int    `json:"count"`
	Minutes       int    `json:"minutes"`
}

type playerPenaltyDTO struct {
	PlayerID     string                `json:"playerId"`
	TeamID       string                `json:"teamId"`
	Count        int                   `json:"count"`
	TotalMinutes int                   `json:"totalMinutes"`
	ByType       []penaltyBreakdownDTO `json:"byType"`
}

type teamPenaltyDTO struct {
	TeamID       string                `json:"teamId"`
	Count        int                   `json:"count"`
	TotalMinutes int                   `json:"totalMinutes"`
	ByType       []penaltyBreakdownDTO `json:"byType"`
}

func playerStatToDTO(ctx context.Context, v seasonstats.PlayerSeasonStat) playerStatDTO {
	ctx, span := startSpan(ctx, "httpapi.playerStatToDTO")
	defer span.End()

	return playerStatDTO{
		PlayerID:       v.PlayerID,
		TeamID:         v.TeamID,
		GamesPlayed:    v.GamesPlayed,
		Goals:          v.Goals,
		Assists:        v.Assists,
		TotalPoints:    v.TotalPoints,
		PenaltyMinutes: v.PenaltyMinutes,
	}
}

func goalieStatToDTO(ctx context.Context, v seasonstats.GoalieSeasonStat) goalieStatDTO {
	ctx, span := startSpan(ctx, "httpapi.goalieStatToDTO")
	defer span.End()

	return goalieStatDTO{
		PlayerID:     v.PlayerID,
		TeamID:       v.TeamID,
		GamesPlayed:  v.GamesPlayed,
		GoalsAgainst: v.GoalsAgainst,
		GAA:          v.FormatGAA(),
	}
}

func penaltyBreakdownToDTO(ctx context.Context, items []seasonstats.PenaltyTypeBreakdown) []penaltyBreakdownDTO {
	ctx, span := startSpan(ctx, "httpapi.penaltyBreakdownToDTO")
	defer span.End()

	out := make([]penaltyBreakdownDTO, 0, len(items))
	for _, item := range items {
		out = append(out, penaltyBreakdownDTO{
			PenaltyTypeID: item.PenaltyTypeID,
			Count:         item.Count,
			Minutes:       item.Minutes,
		})
	}
	return out
}
