package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/hanakm/rinkleague/internal/usecase"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req scheduleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	interval := time.Duration(req.MatchdayIntervalDays) * 24 * time.Hour
	if !req.FirstMatchday.IsZero() && interval == 0 {
		interval = 7 * 24 * time.Hour
	}

	games, err := h.scheduleService.Generate(ctx, orgID, usecase.ScheduleInput{
		RoundID:          roundID,
		TeamIDs:          req.TeamIDs,
		DoubleRoundRobin: req.DoubleRoundRobin,
		FirstMatchday:    req.FirstMatchday,
		MatchdayInterval: interval,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "round_id", roundID, "team_count", len(req.TeamIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, item := range games {
		items = append(items, gameToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

type scheduleRequest struct {
	TeamIDs              []string  `json:"teamIds" validate:"required,min=2,max=64,unique,dive,required"`
	DoubleRoundRobin     bool      `json:"doubleRoundRobin"`
	FirstMatchday        time.Time `json:"firstMatchday"`
	MatchdayIntervalDays int       `json:"matchdayIntervalDays" validate:"min=0,max=60"`
}
