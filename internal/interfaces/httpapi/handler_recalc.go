package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/hanakm/rinkleague/internal/usecase"
)

// RunRecalculateJob rebuilds derived tables for a season on demand. It is
// the manual repair entry point and sits behind the internal job token.
func (h *Handler) RunRecalculateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateJob")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := decodeRecalculateRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recalcService.Run(ctx, orgID, usecase.RecalcInput{
		SeasonID:   req.SeasonID,
		Targets:    req.Targets,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate job failed",
			"season_id", req.SeasonID,
			"targets", req.Targets,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recalculate job finished",
		"season_id", req.SeasonID,
		"round_count", result.RoundCount,
		"task_count", result.TaskCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeRecalculateRequest(r *http.Request) (recalculateRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req recalculateRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return recalculateRequest{}, fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return recalculateRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

type recalculateRequest struct {
	SeasonID   string   `json:"seasonId" validate:"required"`
	Targets    []string `json:"targets" validate:"omitempty,dive,required"`
	MaxWorkers int      `json:"maxWorkers" validate:"min=0,max=32"`
}
