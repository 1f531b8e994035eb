package postgres

import "time"

type seasonTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	OrgID     string     `db:"org_id"`
	Name      string     `db:"name"`
	StartsAt  time.Time  `db:"starts_at"`
	EndsAt    time.Time  `db:"ends_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type divisionTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	OrgID          string     `db:"org_id"`
	SeasonID       string     `db:"season_public_id"`
	Name           string     `db:"name"`
	GoalieMinGames int        `db:"goalie_min_games"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type roundTableModel struct {
	ID                   int64      `db:"id"`
	PublicID             string     `db:"public_id"`
	OrgID                string     `db:"org_id"`
	DivisionID           string     `db:"division_public_id"`
	Name                 string     `db:"name"`
	PointsWin            int        `db:"points_win"`
	PointsDraw           int        `db:"points_draw"`
	PointsLoss           int        `db:"points_loss"`
	CountsForPlayerStats bool       `db:"counts_for_player_stats"`
	CountsForGoalieStats bool       `db:"counts_for_goalie_stats"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
	DeletedAt            *time.Time `db:"deleted_at"`
}
