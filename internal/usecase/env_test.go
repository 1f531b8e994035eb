package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/contract"
	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/player"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	"github.com/hanakm/rinkleague/internal/domain/team"
	"github.com/hanakm/rinkleague/internal/infrastructure/repository/memory"
	"github.com/hanakm/rinkleague/internal/platform/cache"
	"github.com/hanakm/rinkleague/internal/platform/logging"
)

const (
	testOrgID      = "org-1"
	testSeasonID   = "s1"
	testDivisionID = "d1"
	testRoundID    = "r1"
)

// seqIDGenerator hands out deterministic ids so tests can reference created
// rows by name.
type seqIDGenerator struct {
	counter atomic.Int64
}

func (g *seqIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("gen-%03d", g.counter.Add(1)), nil
}

type testFixtures struct {
	Seasons     []season.Season
	Divisions   []division.Division
	Rounds      []round.Round
	Teams       []team.Team
	Players     []player.Player
	Contracts   []contract.Contract
	Games       []game.Game
	Events      []game.Event
	Lineups     []game.LineupEntry
	Suspensions []game.Suspension
}

type testEnv struct {
	rounds      *memory.RoundRepository
	games       *memory.GameRepository
	events      *memory.EventRepository
	lineups     *memory.LineupRepository
	suspensions *memory.SuspensionRepository
	standingsDB *memory.StandingRepository
	bonuses     *memory.BonusPointRepository
	playerDB    *memory.PlayerStatRepository
	goalieDB    *memory.GoalieStatRepository
	goalieGames *memory.GoalieGameStatRepository

	standings   *StandingsService
	playerStats *PlayerStatsService
	goalieStats *GoalieStatsService
	penalty     *PenaltyStatsService
	game        *GameService
	round       *RoundService
	schedule    *ScheduleService
	bonus       *BonusPointService
	recalc      *RecalcService
}

func newTestEnv(t *testing.T, fx testFixtures) *testEnv {
	t.Helper()

	seasonRepo := memory.NewSeasonRepository(fx.Seasons)
	divisionRepo := memory.NewDivisionRepository(fx.Divisions)
	roundRepo := memory.NewRoundRepository(fx.Rounds, fx.Divisions)
	teamRepo := memory.NewTeamRepository(fx.Teams)
	playerRepo := memory.NewPlayerRepository(fx.Players)
	contractRepo := memory.NewContractRepository(fx.Contracts)
	gameRepo := memory.NewGameRepository(fx.Games)
	eventRepo := memory.NewEventRepository(fx.Events)
	lineupRepo := memory.NewLineupRepository(fx.Lineups)
	suspensionRepo := memory.NewSuspensionRepository(fx.Suspensions)
	standingRepo := memory.NewStandingRepository()
	bonusRepo := memory.NewBonusPointRepository(nil)
	playerStatRepo := memory.NewPlayerStatRepository()
	goalieStatRepo := memory.NewGoalieStatRepository()
	goalieGameRepo := memory.NewGoalieGameStatRepository()

	idGen := &seqIDGenerator{}

	standings := NewStandingsService(roundRepo, gameRepo, standingRepo, bonusRepo)
	playerStats := NewPlayerStatsService(seasonRepo, roundRepo, gameRepo, eventRepo, lineupRepo, contractRepo, playerStatRepo)
	goalieStats := NewGoalieStatsService(seasonRepo, divisionRepo, roundRepo, gameRepo, eventRepo, lineupRepo, goalieGameRepo, goalieStatRepo)
	penalty := NewPenaltyStatsService(seasonRepo, roundRepo, gameRepo, eventRepo, cache.NewStore(time.Minute))
	gameService := NewGameService(
		roundRepo, divisionRepo, gameRepo, eventRepo, lineupRepo, suspensionRepo, playerRepo,
		standings, playerStats, goalieStats, penalty, idGen, logging.NewNop(),
	)
	roundService := NewRoundService(roundRepo, divisionRepo, standings, playerStats, goalieStats, penalty)
	scheduleService := NewScheduleService(roundRepo, teamRepo, gameRepo, idGen)
	bonusService := NewBonusPointService(roundRepo, bonusRepo, standings, idGen)
	recalcService := NewRecalcService(seasonRepo, divisionRepo, roundRepo, standings, playerStats, goalieStats, penalty)

	return &testEnv{
		rounds:      roundRepo,
		games:       gameRepo,
		events:      eventRepo,
		lineups:     lineupRepo,
		suspensions: suspensionRepo,
		standingsDB: standingRepo,
		bonuses:     bonusRepo,
		playerDB:    playerStatRepo,
		goalieDB:    goalieStatRepo,
		goalieGames: goalieGameRepo,

		standings:   standings,
		playerStats: playerStats,
		goalieStats: goalieStats,
		penalty:     penalty,
		game:        gameService,
		round:       roundService,
		schedule:    scheduleService,
		bonus:       bonusService,
		recalc:      recalcService,
	}
}

// defaultFixtures builds one season, one division, one round and three teams
// with small rosters. Games start out scheduled and unreported.
func defaultFixtures() testFixtures {
	seasonStart := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	teams := []team.Team{
		{ID: "team-a", OrgID: testOrgID, Name: "Team A", Short: "A"},
		{ID: "team-b", OrgID: testOrgID, Name: "Team B", Short: "B"},
		{ID: "team-c", OrgID: testOrgID, Name: "Team C", Short: "C"},
	}

	players := []player.Player{
		{ID: "player-a1", OrgID: testOrgID, FirstName: "Ada", LastName: "One", Number: 9},
		{ID: "player-a2", OrgID: testOrgID, FirstName: "Abe", LastName: "Two", Number: 14},
		{ID: "goalie-a", OrgID: testOrgID, FirstName: "Ari", LastName: "Net", Number: 30},
		{ID: "player-b1", OrgID: testOrgID, FirstName: "Ben", LastName: "One", Number: 11},
		{ID: "goalie-b", OrgID: testOrgID, FirstName: "Bo", LastName: "Net", Number: 31},
		{ID: "player-c1", OrgID: testOrgID, FirstName: "Cid", LastName: "One", Number: 7},
		{ID: "goalie-c", OrgID: testOrgID, FirstName: "Cam", LastName: "Net", Number: 29},
	}

	mkContract := func(id, playerID, teamID, position string) contract.Contract {
		return contract.Contract{
			ID: id, OrgID: testOrgID, PlayerID: playerID, TeamID: teamID,
			Position: position, ValidFrom: seasonStart,
		}
	}

	r := round.New(testOrgID, testDivisionID, "Regular")
	r.ID = testRoundID

	return testFixtures{
		Seasons: []season.Season{{
			ID: testSeasonID, OrgID: testOrgID, Name: "2025/26",
			StartsAt: seasonStart,
			EndsAt:   seasonStart.AddDate(0, 8, 0),
		}},
		Divisions: []division.Division{{
			ID: testDivisionID, OrgID: testOrgID, SeasonID: testSeasonID,
			Name: "Elite", GoalieMinGames: 3,
		}},
		Rounds:  []round.Round{r},
		Teams:   teams,
		Players: players,
		Contracts: []contract.Contract{
			mkContract("ct-a1", "player-a1", "team-a", contract.PositionForward),
			mkContract("ct-a2", "player-a2", "team-a", contract.PositionDefense),
			mkContract("ct-ag", "goalie-a", "team-a", contract.PositionGoalie),
			mkContract("ct-b1", "player-b1", "team-b", contract.PositionForward),
			mkContract("ct-bg", "goalie-b", "team-b", contract.PositionGoalie),
			mkContract("ct-c1", "player-c1", "team-c", contract.PositionForward),
			mkContract("ct-cg", "goalie-c", "team-c", contract.PositionGoalie),
		},
		Games: []game.Game{
			{ID: "game-1", OrgID: testOrgID, RoundID: testRoundID, HomeTeamID: "team-a", AwayTeamID: "team-b", Status: game.StatusScheduled},
			{ID: "game-2", OrgID: testOrgID, RoundID: testRoundID, HomeTeamID: "team-b", AwayTeamID: "team-c", Status: game.StatusScheduled},
			{ID: "game-3", OrgID: testOrgID, RoundID: testRoundID, HomeTeamID: "team-c", AwayTeamID: "team-a", Status: game.StatusScheduled},
		},
	}
}

// setLineups registers a minimal lineup for both teams of a game, with the
// team's goalie flagged as starting.
func (env *testEnv) setLineups(t *testing.T, gameID string, byTeam map[string][]game.LineupEntry) {
	t.Helper()
	for teamID, entries := range byTeam {
		if err := env.game.SetLineup(context.Background(), testOrgID, gameID, teamID, entries); err != nil {
			t.Fatalf("SetLineup %s/%s: %v", gameID, teamID, err)
		}
	}
}

func lineup(playerID string, startingGoalie bool) game.LineupEntry {
	return game.LineupEntry{PlayerID: playerID, IsStartingGoalie: startingGoalie}
}

func (env *testEnv) addGoal(t *testing.T, gameID, teamID, scorerID string, assists ...string) game.Event {
	t.Helper()
	event := game.Event{
		GameID:    gameID,
		TeamID:    teamID,
		EventType: game.EventTypeGoal,
		Period:    1,
	}
	if scorerID != "" {
		event.ScorerID = &scorerID
	}
	if len(assists) > 0 && assists[0] != "" {
		event.Assist1ID = &assists[0]
	}
	if len(assists) > 1 && assists[1] != "" {
		event.Assist2ID = &assists[1]
	}
	created, err := env.game.AddEvent(context.Background(), testOrgID, event)
	if err != nil {
		t.Fatalf("AddEvent goal %s/%s: %v", gameID, teamID, err)
	}
	return created
}

func (env *testEnv) addPenalty(t *testing.T, gameID, teamID, playerID string, minutes int, typeID string) game.Event {
	t.Helper()
	event := game.Event{
		GameID:          gameID,
		TeamID:          teamID,
		EventType:       game.EventTypePenalty,
		Period:          2,
		PenaltyPlayerID: &playerID,
		PenaltyMinutes:  minutes,
	}
	if typeID != "" {
		event.PenaltyTypeID = &typeID
	}
	created, err := env.game.AddEvent(context.Background(), testOrgID, event)
	if err != nil {
		t.Fatalf("AddEvent penalty %s/%s: %v", gameID, teamID, err)
	}
	return created
}

func (env *testEnv) complete(t *testing.T, gameID string) game.Game {
	t.Helper()
	g, err := env.game.Complete(context.Background(), testOrgID, gameID)
	if err != nil {
		t.Fatalf("Complete %s: %v", gameID, err)
	}
	return g
}

// reportGame sets default lineups for both teams, records the given number
// of goals per side via the first skater, and completes the game.
func (env *testEnv) reportGame(t *testing.T, gameID string, homeGoals, awayGoals int) game.Game {
	t.Helper()

	g, err := env.game.GetByID(context.Background(), testOrgID, gameID)
	if err != nil {
		t.Fatalf("GetByID %s: %v", gameID, err)
	}

	env.setLineups(t, gameID, map[string][]game.LineupEntry{
		g.HomeTeamID: defaultLineup(g.HomeTeamID),
		g.AwayTeamID: defaultLineup(g.AwayTeamID),
	})
	for i := 0; i < homeGoals; i++ {
		env.addGoal(t, gameID, g.HomeTeamID, firstSkater(g.HomeTeamID))
	}
	for i := 0; i < awayGoals; i++ {
		env.addGoal(t, gameID, g.AwayTeamID, firstSkater(g.AwayTeamID))
	}
	return env.complete(t, gameID)
}

func defaultLineup(teamID string) []game.LineupEntry {
	switch teamID {
	case "team-a":
		return []game.LineupEntry{lineup("player-a1", false), lineup("player-a2", false), lineup("goalie-a", true)}
	case "team-b":
		return []game.LineupEntry{lineup("player-b1", false), lineup("goalie-b", true)}
	case "team-c":
		return []game.LineupEntry{lineup("player-c1", false), lineup("goalie-c", true)}
	default:
		return nil
	}
}

func firstSkater(teamID string) string {
	switch teamID {
	case "team-a":
		return "player-a1"
	case "team-b":
		return "player-b1"
	case "team-c":
		return "player-c1"
	default:
		return ""
	}
}
