package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/team"
	"github.com/hanakm/rinkleague/internal/platform/id"
)

// Fixture is one generated home/away pairing. Matchday groups the fixtures
// that can be played simultaneously; every team appears at most once per
// matchday.
type Fixture struct {
	Matchday   int
	HomeTeamID string
	AwayTeamID string
}

// ScheduleInput drives fixture generation for one round.
type ScheduleInput struct {
	RoundID string
	TeamIDs []string
	// DoubleRoundRobin adds the mirrored second leg with home/away swapped.
	DoubleRoundRobin bool
	// FirstMatchday anchors the generated games; each matchday advances by
	// MatchdayInterval. A zero FirstMatchday leaves the kickoff times zero.
	FirstMatchday    time.Time
	MatchdayInterval time.Duration
}

// ScheduleService turns a team list into scheduled games via round-robin
// pairing. Generation is the only game-creation path in this module and is
// rejected when the round already holds games.
type ScheduleService struct {
	roundRepo round.Repository
	teamRepo  team.Repository
	gameRepo  game.Repository
	idGen     id.Generator
}

func NewScheduleService(
	roundRepo round.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	idGen id.Generator,
) *ScheduleService {
	return &ScheduleService{
		roundRepo: roundRepo,
		teamRepo:  teamRepo,
		gameRepo:  gameRepo,
		idGen:     idGen,
	}
}

func (s *ScheduleService) Generate(ctx context.Context, orgID string, input ScheduleInput) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Generate")
	defer span.End()

	if _, ok, err := s.roundRepo.GetByID(ctx, orgID, input.RoundID); err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: round=%s", ErrNotFound, input.RoundID)
	}

	existing, err := s.gameRepo.ListByRound(ctx, orgID, input.RoundID)
	if err != nil {
		return nil, fmt.Errorf("list games by round: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: round %s already has %d games", ErrPreconditionFailed, input.RoundID, len(existing))
	}

	seen := make(map[string]struct{}, len(input.TeamIDs))
	for _, teamID := range input.TeamIDs {
		if _, dup := seen[teamID]; dup {
			return nil, fmt.Errorf("%w: team %s listed twice", ErrInvalidInput, teamID)
		}
		seen[teamID] = struct{}{}
		if _, ok, err := s.teamRepo.GetByID(ctx, orgID, teamID); err != nil {
			return nil, fmt.Errorf("get team: %w", err)
		} else if !ok {
			return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	fixtures, err := RoundRobinFixtures(input.TeamIDs, input.DoubleRoundRobin)
	if err != nil {
		return nil, err
	}

	games := make([]game.Game, 0, len(fixtures))
	for _, f := range fixtures {
		newID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate game id: %w", err)
		}
		g := game.Game{
			ID:         newID,
			OrgID:      orgID,
			RoundID:    input.RoundID,
			HomeTeamID: f.HomeTeamID,
			AwayTeamID: f.AwayTeamID,
			Status:     game.StatusScheduled,
		}
		if !input.FirstMatchday.IsZero() {
			g.StartsAt = input.FirstMatchday.Add(time.Duration(f.Matchday-1) * input.MatchdayInterval)
		}
		games = append(games, g)
	}

	if err := s.gameRepo.Create(ctx, orgID, games); err != nil {
		return nil, fmt.Errorf("create games: %w", err)
	}
	return games, nil
}

// RoundRobinFixtures pairs every team against every other team once (twice
// with the mirrored leg) using the circle method: one team stays fixed while
// the rest rotate. An odd team count adds a bye slot, so each matchday one
// team sits out.
func RoundRobinFixtures(teamIDs []string, double bool) ([]Fixture, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("%w: at least two teams are required, got %d", ErrInvalidInput, len(teamIDs))
	}

	slots := make([]string, len(teamIDs))
	copy(slots, teamIDs)
	if len(slots)%2 == 1 {
		slots = append(slots, "") // bye
	}

	n := len(slots)
	matchdays := n - 1
	half := n / 2

	fixtures := make([]Fixture, 0, matchdays*half)
	for day := 1; day <= matchdays; day++ {
		for i := 0; i < half; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == "" || away == "" {
				continue
			}
			// Alternate the fixed team's venue so it does not host every
			// matchday.
			if i == 0 && day%2 == 0 {
				home, away = away, home
			}
			fixtures = append(fixtures, Fixture{Matchday: day, HomeTeamID: home, AwayTeamID: away})
		}

		// Rotate all slots but the first.
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	if double {
		firstLeg := len(fixtures)
		for i := 0; i < firstLeg; i++ {
			f := fixtures[i]
			fixtures = append(fixtures, Fixture{
				Matchday:   f.Matchday + matchdays,
				HomeTeamID: f.AwayTeamID,
				AwayTeamID: f.HomeTeamID,
			})
		}
	}

	return fixtures, nil
}
