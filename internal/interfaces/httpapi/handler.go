package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/hanakm/rinkleague/internal/platform/logging"
	"github.com/hanakm/rinkleague/internal/usecase"
)

type Handler struct {
	standingsService   *usecase.StandingsService
	playerStatsService *usecase.PlayerStatsService
	goalieStatsService *usecase.GoalieStatsService
	penaltyService     *usecase.PenaltyStatsService
	gameService        *usecase.GameService
	roundService       *usecase.RoundService
	scheduleService    *usecase.ScheduleService
	bonusPointService  *usecase.BonusPointService
	recalcService      *usecase.RecalcService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	standingsService *usecase.StandingsService,
	playerStatsService *usecase.PlayerStatsService,
	goalieStatsService *usecase.GoalieStatsService,
	penaltyService *usecase.PenaltyStatsService,
	gameService *usecase.GameService,
	roundService *usecase.RoundService,
	scheduleService *usecase.ScheduleService,
	bonusPointService *usecase.BonusPointService,
	recalcService *usecase.RecalcService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService:   standingsService,
		playerStatsService: playerStatsService,
		goalieStatsService: goalieStatsService,
		penaltyService:     penaltyService,
		gameService:        gameService,
		roundService:       roundService,
		scheduleService:    scheduleService,
		bonusPointService:  bonusPointService,
		recalcService:      recalcService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireOrg reads the tenant id placed in the context by the RequireOrg
// middleware. A miss means a route was registered outside that middleware.
func requireOrg(ctx context.Context) (string, error) {
	orgID, ok := orgIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: org id is missing from request context", usecase.ErrUnauthorized)
	}
	return orgID, nil
}

func decodeBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
