package usecase

import (
	"context"
	"fmt"

	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/round"
)

// eligibleSeasonGames collects the season's completed games from rounds that
// pass the eligibility predicate. Every season-level aggregator shares this
// scope: completed games with derived scores, in rounds whose flag is on.
func eligibleSeasonGames(
	ctx context.Context,
	roundRepo round.Repository,
	gameRepo game.Repository,
	orgID, seasonID string,
	eligible func(round.Round) bool,
) ([]game.Game, error) {
	rounds, err := roundRepo.ListBySeason(ctx, orgID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list rounds by season: %w", err)
	}

	roundIDs := make([]string, 0, len(rounds))
	for _, item := range rounds {
		if eligible(item) {
			roundIDs = append(roundIDs, item.ID)
		}
	}
	if len(roundIDs) == 0 {
		return nil, nil
	}

	games, err := gameRepo.ListByRounds(ctx, orgID, roundIDs)
	if err != nil {
		return nil, fmt.Errorf("list games by rounds: %w", err)
	}

	out := make([]game.Game, 0, len(games))
	for _, item := range games {
		if item.CountsForAggregation() {
			out = append(out, item)
		}
	}

	return out, nil
}

// seasonIDForRound walks round -> division -> season.
func seasonIDForRound(
	ctx context.Context,
	roundRepo round.Repository,
	divisionRepo division.Repository,
	orgID, roundID string,
) (string, error) {
	r, ok, err := roundRepo.GetByID(ctx, orgID, roundID)
	if err != nil {
		return "", fmt.Errorf("get round: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	d, ok, err := divisionRepo.GetByID(ctx, orgID, r.DivisionID)
	if err != nil {
		return "", fmt.Errorf("get division: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: division=%s", ErrNotFound, r.DivisionID)
	}

	return d.SeasonID, nil
}

func gameIDs(games []game.Game) []string {
	out := make([]string, 0, len(games))
	for _, item := range games {
		out = append(out, item.ID)
	}
	return out
}
