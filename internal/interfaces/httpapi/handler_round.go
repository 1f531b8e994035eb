package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/usecase"
)

func (h *Handler) ListRoundsByDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundsByDivision")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	divisionID := r.PathValue("divisionID")
	rounds, err := h.roundService.ListByDivision(ctx, orgID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list rounds failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundDTO, 0, len(rounds))
	for _, item := range rounds {
		items = append(items, roundToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRound")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := r.PathValue("roundID")
	item, err := h.roundService.GetByID(ctx, orgID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(ctx, item))
}

func (h *Handler) UpdateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateRound")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req roundUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.Update(ctx, orgID, roundID, usecase.RoundUpdateInput{
		Name:                 req.Name,
		PointsWin:            req.PointsWin,
		PointsDraw:           req.PointsDraw,
		PointsLoss:           req.PointsLoss,
		CountsForPlayerStats: req.CountsForPlayerStats,
		CountsForGoalieStats: req.CountsForGoalieStats,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update round failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(ctx, item))
}

func (h *Handler) ListRoundStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundStandings")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := r.PathValue("roundID")
	standings, err := h.standingsService.ListByRound(ctx, orgID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, item := range standings {
		items = append(items, standingDTO{
			TeamID:         item.TeamID,
			GamesPlayed:    item.GamesPlayed,
			Wins:           item.Wins,
			Draws:          item.Draws,
			Losses:         item.Losses,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
			BonusPoints:    item.BonusPoints,
			TotalPoints:    item.TotalPoints,
			Rank:           item.Rank,
			PreviousRank:   item.PreviousRank,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// RecalculateDivisionStandings reruns the standings of every round in a
// division. This is the manual repair entry point for tables left stale by
// out-of-band data changes.
func (h *Handler) RecalculateDivisionStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateDivisionStandings")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	divisionID := r.PathValue("divisionID")
	if err := h.standingsService.RecalculateDivision(ctx, orgID, divisionID); err != nil {
		h.logger.WarnContext(ctx, "recalculate division standings failed", "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type roundUpdateRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=1,max=100"`
	PointsWin            *int    `json:"pointsWin" validate:"omitempty,min=0,max=10"`
	PointsDraw           *int    `json:"pointsDraw" validate:"omitempty,min=0,max=10"`
	PointsLoss           *int    `json:"pointsLoss" validate:"omitempty,min=0,max=10"`
	CountsForPlayerStats *bool   `json:"countsForPlayerStats"`
	CountsForGoalieStats *bool   `json:"countsForGoalieStats"`
}

type roundDTO struct {
	ID                   string `json:"id"`
	DivisionID           string `json:"divisionId"`
	Name                 string `json:"name"`
	PointsWin            int    `json:"pointsWin"`
	PointsDraw           int    `json:"pointsDraw"`
	PointsLoss           int    `json:"pointsLoss"`
	CountsForPlayerStats bool   `json:"countsForPlayerStats"`
	CountsForGoalieStats bool   `json:"countsForGoalieStats"`
}

type standingDTO struct {
	TeamID         string `json:"teamId"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	BonusPoints    int    `json:"bonusPoints"`
	TotalPoints    int    `json:"totalPoints"`
	Rank           int    `json:"rank"`
	PreviousRank   *int   `json:"previousRank"`
}

func roundToDTO(ctx context.Context, v round.Round) roundDTO {
	ctx, span := startSpan(ctx, "httpapi.roundToDTO")
	defer span.End()

	return roundDTO{
		ID:                   v.ID,
		DivisionID:           v.DivisionID,
		Name:                 v.Name,
		PointsWin:            v.PointsWin,
		PointsDraw:           v.PointsDraw,
		PointsLoss:           v.PointsLoss,
		CountsForPlayerStats: v.CountsForPlayerStats,
		CountsForGoalieStats: v.CountsForGoalieStats,
	}
}
