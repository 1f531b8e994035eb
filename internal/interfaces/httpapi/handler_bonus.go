package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/standing"
)

func (h *Handler) ListBonusPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBonusPoints")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := r.PathValue("roundID")
	bonuses, err := h.bonusPointService.ListByRound(ctx, orgID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "list bonus points failed", "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]bonusPointDTO, 0, len(bonuses))
	for _, item := range bonuses {
		items = append(items, bonusPointToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateBonusPoint(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBonusPoint")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	var req bonusPointRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.bonusPointService.Create(ctx, orgID, standing.BonusPoint{
		RoundID: roundID,
		TeamID:  req.TeamID,
		Points:  req.Points,
		Reason:  req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create bonus point failed", "round_id", roundID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bonusPointToDTO(ctx, item))
}

func (h *Handler) UpdateBonusPoint(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBonusPoint")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roundID := strings.TrimSpace(r.PathValue("roundID"))
	bonusID := strings.TrimSpace(r.PathValue("bonusID"))
	var req bonusPointRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.bonusPointService.Update(ctx, orgID, standing.BonusPoint{
		ID:      bonusID,
		RoundID: roundID,
		TeamID:  req.TeamID,
		Points:  req.Points,
		Reason:  req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update bonus point failed", "bonus_id", bonusID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bonusPointToDTO(ctx, item))
}

func (h *Handler) DeleteBonusPoint(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteBonusPoint")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bonusID := r.PathValue("bonusID")
	if err := h.bonusPointService.Delete(ctx, orgID, bonusID); err != nil {
		h.logger.WarnContext(ctx, "delete bonus point failed", "bonus_id", bonusID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type bonusPointRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	Points int    `json:"points" validate:"required,min=-100,max=100"`
	Reason string `json:"reason" validate:"max=500"`
}

type bonusPointDTO struct {
	ID      string `json:"id"`
	RoundID string `json:"roundId"`
	TeamID  string `json:"teamId"`
	Points  int    `json:"points"`
	Reason  string `json:"reason,omitempty"`
}

func bonusPointToDTO(ctx context.Context, v standing.BonusPoint) bonusPointDTO {
	ctx, span := startSpan(ctx, "httpapi.bonusPointToDTO")
	defer span.End()

	return bonusPointDTO{
		ID:      v.ID,
		RoundID: v.RoundID,
		TeamID:  v.TeamID,
		Points:  v.Points,
		Reason:  v.Reason,
	}
}
