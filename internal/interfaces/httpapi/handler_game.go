package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := r.PathValue("gameID")
	item, err := h.gameService.GetByID(ctx, orgID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, item))
}

func (h *Handler) CompleteGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteGame")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := r.PathValue("gameID")
	item, err := h.gameService.Complete(ctx, orgID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, item))
}

func (h *Handler) ReopenGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReopenGame")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := r.PathValue("gameID")
	item, err := h.gameService.Reopen(ctx, orgID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "reopen game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, item))
}

func (h *Handler) CancelGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelGame")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := r.PathValue("gameID")
	item, err := h.gameService.Cancel(ctx, orgID, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(ctx, item))
}

func (h *Handler) AddGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddGameEvent")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	var req gameEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameService.AddEvent(ctx, orgID, game.Event{
		GameID:          gameID,
		TeamID:          req.TeamID,
		EventType:       req.EventType,
		Period:          req.Period,
		Minute:          req.Minute,
		ScorerID:        req.ScorerID,
		Assist1ID:       req.Assist1ID,
		Assist2ID:       req.Assist2ID,
		PenaltyPlayerID: req.PenaltyPlayerID,
		PenaltyMinutes:  req.PenaltyMinutes,
		PenaltyTypeID:   req.PenaltyTypeID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add game event failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(ctx, item))
}

func (h *Handler) UpdateGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameEvent")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	eventID := strings.TrimSpace(r.PathValue("eventID"))
	var req gameEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameService.UpdateEvent(ctx, orgID, game.Event{
		ID:              eventID,
		GameID:          gameID,
		TeamID:          req.TeamID,
		EventType:       req.EventType,
		Period:          req.Period,
		Minute:          req.Minute,
		ScorerID:        req.ScorerID,
		Assist1ID:       req.Assist1ID,
		Assist2ID:       req.Assist2ID,
		PenaltyPlayerID: req.PenaltyPlayerID,
		PenaltyMinutes:  req.PenaltyMinutes,
		PenaltyTypeID:   req.PenaltyTypeID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update game event failed", "game_id", gameID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(ctx, item))
}

func (h *Handler) DeleteGameEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteGameEvent")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	if err := h.gameService.DeleteEvent(ctx, orgID, eventID); err != nil {
		h.logger.WarnContext(ctx, "delete game event failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SetGameLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGameLineup")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req lineupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]game.LineupEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, game.LineupEntry{
			PlayerID:         entry.PlayerID,
			IsStartingGoalie: entry.IsStartingGoalie,
		})
	}

	if err := h.gameService.SetLineup(ctx, orgID, gameID, teamID, entries); err != nil {
		h.logger.WarnContext(ctx, "set game lineup failed", "game_id", gameID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) CreateSuspension(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSuspension")
	defer span.End()

	orgID, err := requireOrg(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req suspensionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gameService.CreateSuspension(ctx, orgID, game.Suspension{
		TeamID:         req.TeamID,
		PlayerID:       req.PlayerID,
		OriginGameID:   req.OriginGameID,
		OriginEventID:  req.OriginEventID,
		SuspendedGames: req.SuspendedGames,
		Reason:         req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create suspension failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, suspensionToDTO(ctx, item))
}

type gameEventRequest struct {
	TeamID          string  `json:"teamId" validate:"required"`
	EventType       string  `json:"eventType" validate:"required,oneof=goal penalty"`
	Period          int     `json:"period" validate:"min=1,max=10"`
	Minute          int     `json:"minute" validate:"min=0,max=240"`
	ScorerID        *string `json:"scorerId"`
	Assist1ID       *string `json:"assist1Id"`
	Assist2ID       *string `json:"assist2Id"`
	PenaltyPlayerID *string `json:"penaltyPlayerId"`
	PenaltyMinutes  int     `json:"penaltyMinutes" validate:"min=0,max=60"`
	PenaltyTypeID   *string `json:"penaltyTypeId"`
}

type lineupRequest struct {
	Entries []lineupEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type lineupEntryRequest struct {
	PlayerID         string `json:"playerId" validate:"required"`
	IsStartingGoalie bool   `json:"isStartingGoalie"`
}

type suspensionRequest struct {
	TeamID         string  `json:"teamId" validate:"required"`
	PlayerID       string  `json:"playerId" validate:"required"`
	OriginGameID   *string `json:"originGameId"`
	OriginEventID  *string `json:"originEventId"`
	SuspendedGames int     `json:"suspendedGames" validate:"required,min=1,max=50"`
	Reason         string  `json:"reason" validate:"max=500"`
}

type gameDTO struct {
	ID          string     `json:"id"`
	RoundID     string     `json:"roundId"`
	HomeTeamID  string     `json:"homeTeamId"`
	AwayTeamID  string     `json:"awayTeamId"`
	Status      string     `json:"status"`
	HomeScore   *int       `json:"homeScore"`
	AwayScore   *int       `json:"awayScore"`
	StartsAt    time.Time  `json:"startsAt"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`
}

type eventDTO struct {
	ID              string  `json:"id"`
	GameID          string  `json:"gameId"`
	TeamID          string  `json:"teamId"`
	EventType       string  `json:"eventType"`
	Period          int     `json:"period"`
	Minute          int     `json:"minute"`
	ScorerID        *string `json:"scorerId,omitempty"`
	Assist1ID       *string `json:"assist1Id,omitempty"`
	Assist2ID       *string `json:"assist2Id,omitempty"`
	PenaltyPlayerID *string `json:"penaltyPlayerId,omitempty"`
	PenaltyMinutes  int     `json:"penaltyMinutes,omitempty"`
	PenaltyTypeID   *string `json:"penaltyTypeId,omitempty"`
}

type suspensionDTO struct {
	ID             string  `json:"id"`
	TeamID         string  `json:"teamId"`
	PlayerID       string  `json:"playerId"`
	OriginGameID   *string `json:"originGameId,omitempty"`
	OriginEventID  *string `json:"originEventId,omitempty"`
	SuspendedGames int     `json:"suspendedGames"`
	ServedGames    int     `json:"servedGames"`
	RemainingGames int     `json:"remainingGames"`
	Reason         string  `json:"reason,omitempty"`
}

func gameToDTO(ctx context.Context, v game.Game) gameDTO {
	ctx, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:          v.ID,
		RoundID:     v.RoundID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		Status:      v.Status,
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
		StartsAt:    v.StartsAt,
		FinalizedAt: v.FinalizedAt,
	}
}

func eventToDTO(ctx context.Context, v game.Event) eventDTO {
	ctx, span := startSpan(ctx, "httpapi.eventToDTO")
	defer span.End()

	return eventDTO{
		ID:              v.ID,
		GameID:          v.GameID,
		TeamID:          v.TeamID,
		EventType:       v.EventType,
		Period:          v.Period,
		Minute:          v.Minute,
		ScorerID:        v.ScorerID,
		Assist1ID:       v.Assist1ID,
		Assist2ID:       v.Assist2ID,
		PenaltyPlayerID: v.PenaltyPlayerID,
		PenaltyMinutes:  v.PenaltyMinutes,
		PenaltyTypeID:   v.PenaltyTypeID,
	}
}

func suspensionToDTO(ctx context.Context, v game.Suspension) suspensionDTO {
	ctx, span := startSpan(ctx, "httpapi.suspensionToDTO")
	defer span.End()

	return suspensionDTO{
		ID:             v.ID,
		TeamID:         v.TeamID,
		PlayerID:       v.PlayerID,
		OriginGameID:   v.OriginGameID,
		OriginEventID:  v.OriginEventID,
		SuspendedGames: v.SuspendedGames,
		ServedGames:    v.ServedGames,
		RemainingGames: v.RemainingGames(),
		Reason:         v.Reason,
	}
}
