package postgres

import (
	"time"

	"github.com/hanakm/rinkleague/internal/domain/seasonstats"
)

type playerSeasonStatTableModel struct {
	ID             int64      `db:"id"`
	OrgID          string     `db:"org_id"`
	SeasonID       string     `db:"season_public_id"`
	PlayerID       string     `db:"player_public_id"`
	TeamID         string     `db:"team_public_id"`
	GamesPlayed    int        `db:"games_played"`
	Goals          int        `db:"goals"`
	Assists        int        `db:"assists"`
	TotalPoints    int        `db:"total_points"`
	PenaltyMinutes int        `db:"penalty_minutes"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type playerSeasonStatInsertModel struct {
	OrgID          string `db:"org_id"`
	SeasonID       string `db:"season_public_id"`
	PlayerID       string `db:"player_public_id"`
	TeamID         string `db:"team_public_id"`
	GamesPlayed    int    `db:"games_played"`
	Goals          int    `db:"goals"`
	Assists        int    `db:"assists"`
	TotalPoints    int    `db:"total_points"`
	PenaltyMinutes int    `db:"penalty_minutes"`
}

func playerSeasonStatFromTable(row playerSeasonStatTableModel) seasonstats.PlayerSeasonStat {
	return seasonstats.PlayerSeasonStat{
		OrgID:          row.OrgID,
		SeasonID:       row.SeasonID,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		GamesPlayed:    row.GamesPlayed,
		Goals:          row.Goals,
		Assists:        row.Assists,
		TotalPoints:    row.TotalPoints,
		PenaltyMinutes: row.PenaltyMinutes,
	}
}

type goalieSeasonStatTableModel struct {
	ID            int64      `db:"id"`
	OrgID         string     `db:"org_id"`
	SeasonID      string     `db:"season_public_id"`
	PlayerID      string     `db:"player_public_id"`
	TeamID        string     `db:"team_public_id"`
	GamesPlayed   int        `db:"games_played"`
	GoalsAgainst  int        `db:"goals_against"`
	GAAHundredths int        `db:"gaa_hundredths"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type goalieSeasonStatInsertModel struct {
	OrgID         string `db:"org_id"`
	SeasonID      string `db:"season_public_id"`
	PlayerID      string `db:"player_public_id"`
	TeamID        string `db:"team_public_id"`
	GamesPlayed   int    `db:"games_played"`
	GoalsAgainst  int    `db:"goals_against"`
	GAAHundredths int    `db:"gaa_hundredths"`
}

func goalieSeasonStatFromTable(row goalieSeasonStatTableModel) seasonstats.GoalieSeasonStat {
	return seasonstats.GoalieSeasonStat{
		OrgID:         row.OrgID,
		SeasonID:      row.SeasonID,
		PlayerID:      row.PlayerID,
		TeamID:        row.TeamID,
		GamesPlayed:   row.GamesPlayed,
		GoalsAgainst:  row.GoalsAgainst,
		GAAHundredths: row.GAAHundredths,
	}
}

type goalieGameStatTableModel struct {
	ID           int64      `db:"id"`
	OrgID        string     `db:"org_id"`
	GameID       string     `db:"game_public_id"`
	PlayerID     string     `db:"player_public_id"`
	TeamID       string     `db:"team_public_id"`
	GoalsAgainst int        `db:"goals_against"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type goalieGameStatInsertModel struct {
	OrgID        string `db:"org_id"`
	GameID       string `db:"game_public_id"`
	PlayerID     string `db:"player_public_id"`
	TeamID       string `db:"team_public_id"`
	GoalsAgainst int    `db:"goals_against"`
}

func goalieGameStatFromTable(row goalieGameStatTableModel) seasonstats.GoalieGameStat {
	return seasonstats.GoalieGameStat{
		OrgID:        row.OrgID,
		GameID:       row.GameID,
		PlayerID:     row.PlayerID,
		TeamID:       row.TeamID,
		GoalsAgainst: row.GoalsAgainst,
	}
}
