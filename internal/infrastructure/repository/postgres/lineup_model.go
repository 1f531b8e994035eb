package postgres

import (
	"time"

	"github.com/hanakm/rinkleague/internal/domain/game"
)

type lineupTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	OrgID            string     `db:"org_id"`
	GameID           string     `db:"game_public_id"`
	TeamID           string     `db:"team_public_id"`
	PlayerID         string     `db:"player_public_id"`
	IsStartingGoalie bool       `db:"is_starting_goalie"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type lineupInsertModel struct {
	PublicID         string `db:"public_id"`
	OrgID            string `db:"org_id"`
	GameID           string `db:"game_public_id"`
	TeamID           string `db:"team_public_id"`
	PlayerID         string `db:"player_public_id"`
	IsStartingGoalie bool   `db:"is_starting_goalie"`
}

func lineupFromTable(row lineupTableModel) game.LineupEntry {
	return game.LineupEntry{
		ID:               row.PublicID,
		OrgID:            row.OrgID,
		GameID:           row.GameID,
		TeamID:           row.TeamID,
		PlayerID:         row.PlayerID,
		IsStartingGoalie: row.IsStartingGoalie,
	}
}
