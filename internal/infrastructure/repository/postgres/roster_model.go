package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	OrgID     string     `db:"org_id"`
	Name      string     `db:"name"`
	Short     string     `db:"short"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	OrgID     string     `db:"org_id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	Number    int        `db:"number"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type contractTableModel struct {
	ID        int64        `db:"id"`
	PublicID  string       `db:"public_id"`
	OrgID     string       `db:"org_id"`
	PlayerID  string       `db:"player_public_id"`
	TeamID    string       `db:"team_public_id"`
	Position  string       `db:"position"`
	ValidFrom time.Time    `db:"valid_from"`
	ValidTo   sql.NullTime `db:"valid_to"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt *time.Time   `db:"deleted_at"`
}
