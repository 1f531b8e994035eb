package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/standing"
)

// StandingsService derives the ranked table of one round from that round's
// completed games and bonus points. Every recalculation replaces the full
// table; stored rows are never trusted as input for the next pass except to
// carry previous ranks forward.
type StandingsService struct {
	roundRepo    round.Repository
	gameRepo     game.Repository
	standingRepo standing.Repository
	bonusRepo    standing.BonusPointRepository
}

func NewStandingsService(
	roundRepo round.Repository,
	gameRepo game.Repository,
	standingRepo standing.Repository,
	bonusRepo standing.BonusPointRepository,
) *StandingsService {
	return &StandingsService{
		roundRepo:    roundRepo,
		gameRepo:     gameRepo,
		standingRepo: standingRepo,
		bonusRepo:    bonusRepo,
	}
}

func (s *StandingsService) ListByRound(ctx context.Context, orgID, roundID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListByRound")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	if _, ok, err := s.roundRepo.GetByID(ctx, orgID, roundID); err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	items, err := s.standingRepo.ListByRound(ctx, orgID, roundID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Rank < items[j].Rank })

	return items, nil
}

// Recalculate rebuilds the round's standings from scratch and replaces the
// stored table atomically. The previous table contributes nothing but each
// team's prior rank.
func (s *StandingsService) Recalculate(ctx context.Context, orgID, roundID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Recalculate")
	defer span.End()

	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	r, ok, err := s.roundRepo.GetByID(ctx, orgID, roundID)
	if err != nil {
		return fmt.Errorf("get round: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: round=%s", ErrNotFound, roundID)
	}

	games, err := s.gameRepo.ListByRound(ctx, orgID, roundID)
	if err != nil {
		return fmt.Errorf("list games by round: %w", err)
	}

	bonuses, err := s.bonusRepo.ListByRound(ctx, orgID, roundID)
	if err != nil {
		return fmt.Errorf("list bonus points by round: %w", err)
	}
	bonusByTeam := make(map[string]int)
	for _, item := range bonuses {
		bonusByTeam[item.TeamID] += item.Points
	}

	previous, err := s.standingRepo.ListByRound(ctx, orgID, roundID)
	if err != nil {
		return fmt.Errorf("list previous standings: %w", err)
	}
	previousRankByTeam := make(map[string]int, len(previous))
	for _, item := range previous {
		previousRankByTeam[item.TeamID] = item.Rank
	}

	rows := buildStandings(r, games, bonusByTeam)
	for i := range rows {
		rows[i].OrgID = orgID
		if prior, ok := previousRankByTeam[rows[i].TeamID]; ok {
			priorCopy := prior
			rows[i].PreviousRank = &priorCopy
		}
	}

	if err := s.standingRepo.ReplaceByRound(ctx, orgID, roundID, rows); err != nil {
		return fmt.Errorf("replace standings: %w", err)
	}

	return nil
}

// RecalculateDivision reruns every round of a division through a small
// worker pool. Failed rounds do not stop the others; the joined error
// reports every failure.
func (s *StandingsService) RecalculateDivision(ctx context.Context, orgID, divisionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecalculateDivision")
	defer span.End()

	divisionID = strings.TrimSpace(divisionID)
	if divisionID == "" {
		return fmt.Errorf("%w: division id is required", ErrInvalidInput)
	}

	rounds, err := s.roundRepo.ListByDivision(ctx, orgID, divisionID)
	if err != nil {
		return fmt.Errorf("list rounds by division: %w", err)
	}
	if len(rounds) == 0 {
		return nil
	}

	pool, err := ants.NewPool(divisionRecalcWorkers(len(rounds)))
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var errs []error

	var workers sync.WaitGroup
	for _, item := range rounds {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if err := s.Recalculate(ctx, orgID, item.ID); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("round=%s: %w", item.ID, err))
				mu.Unlock()
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit round to worker pool: %w", err)
		}
	}
	workers.Wait()

	return errors.Join(errs...)
}

func divisionRecalcWorkers(roundCount int) int {
	const maxWorkers = 4
	if roundCount < maxWorkers {
		return roundCount
	}
	return maxWorkers
}

// buildStandings is the pure aggregation: completed games plus bonus sums in,
// ranked rows out. Only teams appearing in at least one completed game get a
// row; a bonus point for an idle team does not create one.
func buildStandings(r round.Round, games []game.Game, bonusByTeam map[string]int) []standing.Standing {
	byTeam := make(map[string]*standing.Standing)
	order := make([]string, 0)

	row := func(teamID string) *standing.Standing {
		if existing, ok := byTeam[teamID]; ok {
			return existing
		}
		created := &standing.Standing{RoundID: r.ID, TeamID: teamID}
		byTeam[teamID] = created
		order = append(order, teamID)
		return created
	}

	for _, g := range games {
		if !g.CountsForAggregation() {
			continue
		}
		home := row(g.HomeTeamID)
		away := row(g.AwayTeamID)
		homeScore, awayScore := *g.HomeScore, *g.AwayScore

		home.GamesPlayed++
		away.GamesPlayed++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Wins++
			away.Losses++
		case homeScore < awayScore:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
	}

	rows := make([]standing.Standing, 0, len(order))
	sort.Strings(order)
	for _, teamID := range order {
		item := byTeam[teamID]
		item.GoalDifference = item.GoalsFor - item.GoalsAgainst
		item.Points = item.Wins*r.PointsWin + item.Draws*r.PointsDraw + item.Losses*r.PointsLoss
		item.BonusPoints = bonusByTeam[teamID]
		item.TotalPoints = item.Points + item.BonusPoints
		rows = append(rows, *item)
	}

	// Tie-break order: total points, fewer games played, goal difference,
	// goals for. Equal-key teams keep their stable (team id) order and still
	// receive distinct sequential ranks.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed < b.GamesPlayed
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}
