package postgres

import (
	"database/sql"
	"time"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type suspensionTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	OrgID          string         `db:"org_id"`
	TeamID         string         `db:"team_public_id"`
	PlayerID       string         `db:"player_public_id"`
	OriginGameID   sql.NullString `db:"origin_game_public_id"`
	OriginEventID  sql.NullString `db:"origin_event_public_id"`
	SuspendedGames int            `db:"suspended_games"`
	ServedGames    int            `db:"served_games"`
	Reason         string         `db:"reason"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}

type suspensionInsertModel struct {
	PublicID       string         `db:"public_id"`
	OrgID          string         `db:"org_id"`
	TeamID         string         `db:"team_public_id"`
	PlayerID       string         `db:"player_public_id"`
	OriginGameID   sql.NullString `db:"origin_game_public_id"`
	OriginEventID  sql.NullString `db:"origin_event_public_id"`
	SuspendedGames int            `db:"suspended_games"`
	ServedGames    int            `db:"served_games"`
	Reason         string         `db:"reason"`
}

func suspensionFromTable(row suspensionTableModel) game.Suspension {
	return game.Suspension{
		ID:             row.PublicID,
		OrgID:          row.OrgID,
		TeamID:         row.TeamID,
		PlayerID:       row.PlayerID,
		OriginGameID:   nullStringToPtr(row.OriginGameID),
		OriginEventID:  nullStringToPtr(row.OriginEventID),
		SuspendedGames: row.SuspendedGames,
		ServedGames:    row.ServedGames,
		Reason:         row.Reason,
	}
}
