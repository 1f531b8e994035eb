package memory

import (
	"time"

	"github.com/hanakm/rinkleague/internal/domain/contract"
	"github.com/hanakm/rinkleague/internal/domain/division"
	"github.com/hanakm/rinkleague/internal/domain/game"
	"github.com/hanakm/rinkleague/internal/domain/player"
	"github.com/hanakm/rinkleague/internal/domain/round"
	"github.com/hanakm/rinkleague/internal/domain/season"
	"github.com/hanakm/rinkleague/internal/domain/team"
)

const (
	SeedOrgID      = "org-demo"
	SeedSeasonID   = "season-2025-26"
	SeedDivisionID = "div-elite"
	SeedRoundID    = "round-regular"
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:       SeedSeasonID,
			OrgID:    SeedOrgID,
			Name:     "2025/2026",
			StartsAt: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, time.April, 30, 23, 59, 59, 0, time.UTC),
		},
	}
}

func SeedDivisions() []division.Division {
	return []division.Division{
		{ID: SeedDivisionID, OrgID: SeedOrgID, SeasonID: SeedSeasonID, Name: "Elite", GoalieMinGames: 5},
	}
}

func SeedRounds() []round.Round {
	r := round.New(SeedOrgID, SeedDivisionID, "Regular Season")
	r.ID = SeedRoundID
	return []round.Round{r}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-bears", OrgID: SeedOrgID, Name: "Riverside Bears", Short: "BEA"},
		{ID: "team-wolves", OrgID: SeedOrgID, Name: "Northgate Wolves", Short: "WOL"},
		{ID: "team-falcons", OrgID: SeedOrgID, Name: "Harbor Falcons", Short: "FAL"},
		{ID: "team-lynx", OrgID: SeedOrgID, Name: "Summit Lynx", Short: "LYX"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "player-bea-g1", OrgID: SeedOrgID, FirstName: "Jonas", LastName: "Keller", Number: 31},
		{ID: "player-bea-f1", OrgID: SeedOrgID, FirstName: "Marek", LastName: "Svoboda", Number: 9},
		{ID: "player-bea-d1", OrgID: SeedOrgID, FirstName: "Luca", LastName: "Brandt", Number: 4},
		{ID: "player-wol-g1", OrgID: SeedOrgID, FirstName: "Tomas", LastName: "Ziegler", Number: 30},
		{ID: "player-wol-f1", OrgID: SeedOrgID, FirstName: "Erik", LastName: "Nilsen", Number: 17},
		{ID: "player-wol-d1", OrgID: SeedOrgID, FirstName: "Patrik", LastName: "Horvath", Number: 6},
		{ID: "player-fal-g1", OrgID: SeedOrgID, FirstName: "Simon", LastName: "Weiss", Number: 35},
		{ID: "player-fal-f1", OrgID: SeedOrgID, FirstName: "Anton", LastName: "Berg", Number: 11},
		{ID: "player-lyx-g1", OrgID: SeedOrgID, FirstName: "Filip", LastName: "Marek", Number: 29},
		{ID: "player-lyx-f1", OrgID: SeedOrgID, FirstName: "Oskar", LastName: "Lund", Number: 21},
	}
}

func SeedContracts() []contract.Contract {
	validFrom := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id, playerID, teamID, position string) contract.Contract {
		return contract.Contract{
			ID:        id,
			OrgID:     SeedOrgID,
			PlayerID:  playerID,
			TeamID:    teamID,
			Position:  position,
			ValidFrom: validFrom,
		}
	}
	return []contract.Contract{
		mk("contract-01", "player-bea-g1", "team-bears", contract.PositionGoalie),
		mk("contract-02", "player-bea-f1", "team-bears", contract.PositionForward),
		mk("contract-03", "player-bea-d1", "team-bears", contract.PositionDefense),
		mk("contract-04", "player-wol-g1", "team-wolves", contract.PositionGoalie),
		mk("contract-05", "player-wol-f1", "team-wolves", contract.PositionForward),
		mk("contract-06", "player-wol-d1", "team-wolves", contract.PositionDefense),
		mk("contract-07", "player-fal-g1", "team-falcons", contract.PositionGoalie),
		mk("contract-08", "player-fal-f1", "team-falcons", contract.PositionForward),
		mk("contract-09", "player-lyx-g1", "team-lynx", contract.PositionGoalie),
		mk("contract-10", "player-lyx-f1", "team-lynx", contract.PositionForward),
	}
}

func SeedGames() []game.Game {
	starts := time.Date(2025, time.September, 13, 18, 0, 0, 0, time.UTC)
	return []game.Game{
		{ID: "game-01", OrgID: SeedOrgID, RoundID: SeedRoundID, HomeTeamID: "team-bears", AwayTeamID: "team-wolves", Status: game.StatusScheduled, StartsAt: starts},
		{ID: "game-02", OrgID: SeedOrgID, RoundID: SeedRoundID, HomeTeamID: "team-falcons", AwayTeamID: "team-lynx", Status: game.StatusScheduled, StartsAt: starts.Add(2 * time.Hour)},
		{ID: "game-03", OrgID: SeedOrgID, RoundID: SeedRoundID, HomeTeamID: "team-bears", AwayTeamID: "team-falcons", Status: game.StatusScheduled, StartsAt: starts.Add(7 * 24 * time.Hour)},
		{ID: "game-04", OrgID: SeedOrgID, RoundID: SeedRoundID, HomeTeamID: "team-wolves", AwayTeamID: "team-lynx", Status: game.StatusScheduled, StartsAt: starts.Add(7*24*time.Hour + 2*time.Hour)},
	}
}
