package postgres

import (
	"database/sql"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type gameTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	OrgID       string        `db:"org_id"`
	RoundID     string        `db:"round_public_id"`
	HomeTeamID  string        `db:"home_team_public_id"`
	AwayTeamID  string        `db:"away_team_public_id"`
	Status      string        `db:"status"`
	HomeScore   sql.NullInt32 `db:"home_score"`
	AwayScore   sql.NullInt32 `db:"away_score"`
	StartsAt    time.Time     `db:"starts_at"`
	FinalizedAt sql.NullTime  `db:"finalized_at"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
	DeletedAt   *time.Time    `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID   string    `db:"public_id"`
	OrgID      string    `db:"org_id"`
	RoundID    string    `db:"round_public_id"`
	HomeTeamID string    `db:"home_team_public_id"`
	AwayTeamID string    `db:"away_team_public_id"`
	Status     string    `db:"status"`
	StartsAt   time.Time `db:"starts_at"`
}

func gameFromTable(row gameTableModel) game.Game {
	return game.Game{
		ID:          row.PublicID,
		OrgID:       row.OrgID,
		RoundID:     row.RoundID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		Status:      row.Status,
		HomeScore:   nullInt32ToIntPtr(row.HomeScore),
		AwayScore:   nullInt32ToIntPtr(row.AwayScore),
		StartsAt:    row.StartsAt,
		FinalizedAt: nullTimeToTimePtr(row.FinalizedAt),
	}
}
