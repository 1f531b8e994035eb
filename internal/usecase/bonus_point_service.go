package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/standing"
	"github.com/hanakm/rinkleague/internal/platform/id"
)

// BonusPointService manages manual standings adjustments. Every write
// reruns the affected round's standings so totalPoints never drifts from
// the bonus rows.
type BonusPointService struct {
	roundRepo round.Repository
	bonusRepo standing.BonusPointRepository
	standings *StandingsService
	idGen     id.Generator
}

func NewBonusPointService(
	roundRepo round.Repository,
	bonusRepo standing.BonusPointRepository,
	standings *StandingsService,
	idGen id.Generator,
) *BonusPointService {
	return &BonusPointService{
		roundRepo: roundRepo,
		bonusRepo: bonusRepo,
		standings: standings,
		idGen:     idGen,
	}
}

func (s *BonusPointService) ListByRound(ctx context.Context, orgID, roundID string) ([]standing.BonusPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BonusPointService.ListByRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	items, err := s.bonusRepo.ListByRound(ctx, orgID, roundID)
	if err != nil {
		return nil, fmt.Errorf("list bonus points: %w", err)
	}
	return items, nil
}

func (s *BonusPointService) Create(ctx context.Context, orgID string, item standing.BonusPoint) (standing.BonusPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BonusPointService.Create")
	defer span.End()

	if item.TeamID == "" {
		return standing.BonusPoint{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if _, ok, err := s.roundRepo.GetByID(ctx, orgID, item.RoundID); err != nil {
		return standing.BonusPoint{}, fmt.Errorf("get round: %w", err)
	} else if !ok {
		return standing.BonusPoint{}, fmt.Errorf("%w: round=%s", ErrNotFound, item.RoundID)
	}

	if item.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return standing.BonusPoint{}, fmt.Errorf("generate bonus point id: %w", err)
		}
		item.ID = newID
	}
	item.OrgID = orgID
	if err := s.bonusRepo.Create(ctx, orgID, item); err != nil {
		return standing.BonusPoint{}, fmt.Errorf("create bonus point: %w", err)
	}

	if err := s.standings.Recalculate(ctx, orgID, item.RoundID); err != nil {
		return standing.BonusPoint{}, err
	}
	return item, nil
}

func (s *BonusPointService) Update(ctx context.Context, orgID string, item standing.BonusPoint) (standing.BonusPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BonusPointService.Update")
	defer span.End()

	existing, ok, err := s.bonusRepo.GetByID(ctx, orgID, item.ID)
	if err != nil {
		return standing.BonusPoint{}, fmt.Errorf("get bonus point: %w", err)
	}
	if !ok {
		return standing.BonusPoint{}, fmt.Errorf("%w: bonus point=%s", ErrNotFound, item.ID)
	}

	// Round and team bindings are immutable; only points and reason move.
	existing.Points = item.Points
	existing.Reason = item.Reason
	if err := s.bonusRepo.Update(ctx, orgID, existing); err != nil {
		return standing.BonusPoint{}, fmt.Errorf("update bonus point: %w", err)
	}

	if err := s.standings.Recalculate(ctx, orgID, existing.RoundID); err != nil {
		return standing.BonusPoint{}, err
	}
	return existing, nil
}

func (s *BonusPointService) Delete(ctx context.Context, orgID, bonusID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BonusPointService.Delete")
	defer span.End()

	existing, ok, err := s.bonusRepo.GetByID(ctx, orgID, strings.TrimSpace(bonusID))
	if err != nil {
		return fmt.Errorf("get bonus point: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: bonus point=%s", ErrNotFound, bonusID)
	}

	if err := s.bonusRepo.Delete(ctx, orgID, existing.ID); err != nil {
		return fmt.Errorf("delete bonus point: %w", err)
	}
	return s.standings.Recalculate(ctx, orgID, existing.RoundID)
}
