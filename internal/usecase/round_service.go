package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/round"
)

// RoundUpdateInput carries the editable round fields. Nil pointers leave the
// stored value untouched.
type RoundUpdateInput struct {
	Name                 *string
	PointsWin            *int
	PointsDraw           *int
	PointsLoss           *int
	CountsForPlayerStats *bool
	CountsForGoalieStats *bool
}

// RoundService edits round configuration. Point values only affect the next
// standings pass, so changing them reruns the round's standings; toggling an
// eligibility flag changes the season-wide scope of an aggregator and forces
// the matching season recompute.
type RoundService struct {
	roundRepo    round.Repository
	divisionRepo division.Repository
	standings    *StandingsService
	playerStats  *PlayerStatsService
	goalieStats  *GoalieStatsService
	penaltyStats *PenaltyStatsService
}

func NewRoundService(
	roundRepo round.Repository,
	divisionRepo division.Repository,
	standings *StandingsService,
	playerStats *PlayerStatsService,
	goalieStats *GoalieStatsService,
	penaltyStats *PenaltyStatsService,
) *RoundService {
	return &RoundService{
		roundRepo:    roundRepo,
		divisionRepo: divisionRepo,
		standings:    standings,
		playerStats:  playerStats,
		goalieStats:  goalieStats,
		penaltyStats: penaltyStats,
	}
}

func (s *RoundService) GetByID(ctx context.Context, orgID, roundID string) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.GetByID")
	defer span.End()

	r, ok, err := s.roundRepo.GetByID(ctx, orgID, strings.TrimSpace(roundID))
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !ok {
		return round.Round{}, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}
	return r, nil
}

func (s *RoundService) ListByDivision(ctx context.Context, orgID, divisionID string) ([]round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.ListByDivision")
	defer span.End()

	divisionID = strings.TrimSpace(divisionID)
	if divisionID == "" {
		return nil, fmt.Errorf("%w: division id is required", ErrInvalidInput)
	}

	items, err := s.roundRepo.ListByDivision(ctx, orgID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list rounds by division: %w", err)
	}
	return items, nil
}

func (s *RoundService) Update(ctx context.Context, orgID, roundID string, input RoundUpdateInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Update")
	defer span.End()

	r, err := s.GetByID(ctx, orgID, roundID)
	if err != nil {
		return round.Round{}, err
	}

	pointsChanged := false
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return round.Round{}, fmt.Errorf("%w: round name cannot be empty", ErrInvalidInput)
		}
		r.Name = name
	}
	if input.PointsWin != nil && *input.PointsWin != r.PointsWin {
		r.PointsWin = *input.PointsWin
		pointsChanged = true
	}
	if input.PointsDraw != nil && *input.PointsDraw != r.PointsDraw {
		r.PointsDraw = *input.PointsDraw
		pointsChanged = true
	}
	if input.PointsLoss != nil && *input.PointsLoss != r.PointsLoss {
		r.PointsLoss = *input.PointsLoss
		pointsChanged = true
	}

	playerFlagChanged := input.CountsForPlayerStats != nil && *input.CountsForPlayerStats != r.CountsForPlayerStats
	goalieFlagChanged := input.CountsForGoalieStats != nil && *input.CountsForGoalieStats != r.CountsForGoalieStats
	if playerFlagChanged {
		r.CountsForPlayerStats = *input.CountsForPlayerStats
	}
	if goalieFlagChanged {
		r.CountsForGoalieStats = *input.CountsForGoalieStats
	}

	if err := s.roundRepo.Update(ctx, orgID, r); err != nil {
		return round.Round{}, fmt.Errorf("update round: %w", err)
	}

	if pointsChanged {
		if err := s.standings.Recalculate(ctx, orgID, r.ID); err != nil {
			return round.Round{}, err
		}
	}

	if playerFlagChanged || goalieFlagChanged {
		seasonID, err := seasonIDForRound(ctx, s.roundRepo, s.divisionRepo, orgID, r.ID)
		if err != nil {
			return round.Round{}, err
		}
		if playerFlagChanged {
			if err := s.playerStats.RecalculateSeason(ctx, orgID, seasonID); err != nil {
				return round.Round{}, err
			}
			// Penalty aggregates share the player-stats eligibility flag.
			if s.penaltyStats != nil {
				s.penaltyStats.Invalidate(ctx, orgID, seasonID)
			}
		}
		if goalieFlagChanged {
			if err := s.goalieStats.RecalculateSeason(ctx, orgID, seasonID); err != nil {
				return round.Round{}, err
			}
		}
	}

	return r, nil
}
