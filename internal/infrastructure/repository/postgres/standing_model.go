package postgres

import (
	"database/sql"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/standing"
)

type standingTableModel struct {
	ID             int64         `db:"id"`
	OrgID          string        `db:"org_id"`
	RoundID        string        `db:"round_public_id"`
	TeamID         string        `db:"team_public_id"`
	GamesPlayed    int           `db:"games_played"`
	Wins           int           `db:"wins"`
	Draws          int           `db:"draws"`
	Losses         int           `db:"losses"`
	GoalsFor       int           `db:"goals_for"`
	GoalsAgainst   int           `db:"goals_against"`
	GoalDifference int           `db:"goal_difference"`
	Points         int           `db:"points"`
	BonusPoints    int           `db:"bonus_points"`
	TotalPoints    int           `db:"total_points"`
	Rank           int           `db:"rank"`
	PreviousRank   sql.NullInt32 `db:"previous_rank"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	DeletedAt      *time.Time    `db:"deleted_at"`
}

type standingInsertModel struct {
	OrgID          string        `db:"org_id"`
	RoundID        string        `db:"round_public_id"`
	TeamID         string        `db:"team_public_id"`
	GamesPlayed    int           `db:"games_played"`
	Wins           int           `db:"wins"`
	Draws          int           `db:"draws"`
	Losses         int           `db:"losses"`
	GoalsFor       int           `db:"goals_for"`
	GoalsAgainst   int           `db:"goals_against"`
	GoalDifference int           `db:"goal_difference"`
	Points         int           `db:"points"`
	BonusPoints    int           `db:"bonus_points"`
	TotalPoints    int           `db:"total_points"`
	Rank           int           `db:"rank"`
	PreviousRank   sql.NullInt32 `db:"previous_rank"`
}

func standingFromTable(row standingTableModel) standing.Standing {
	return standing.Standing{
		OrgID:          row.OrgID,
		RoundID:        row.RoundID,
		TeamID:         row.TeamID,
		GamesPlayed:    row.GamesPlayed,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		BonusPoints:    row.BonusPoints,
		TotalPoints:    row.TotalPoints,
		Rank:           row.Rank,
		PreviousRank:   nullInt32ToIntPtr(row.PreviousRank),
	}
}

type bonusPointTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	OrgID     string     `db:"org_id"`
	RoundID   string     `db:"round_public_id"`
	TeamID    string     `db:"team_public_id"`
	Points    int        `db:"points"`
	Reason    string     `db:"reason"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type bonusPointInsertModel struct {
	PublicID string `db:"public_id"`
	OrgID    string `db:"org_id"`
	RoundID  string `db:"round_public_id"`
	TeamID   string `db:"team_public_id"`
	Points   int    `db:"points"`
	Reason   string `db:"reason"`
}

func bonusPointFromTable(row bonusPointTableModel) standing.BonusPoint {
	return standing.BonusPoint{
		ID:      row.PublicID,
		OrgID:   row.OrgID,
		RoundID: row.RoundID,
		TeamID:  row.TeamID,
		Points:  row.Points,
		Reason:  row.Reason,
	}
}
