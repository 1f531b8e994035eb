package contract

import (
	"strings"
	"time"
)

const (
	PositionForward = "forward"
	PositionDefense = "defense"
	PositionGoalie  = "goalie"
)

// Contract binds a player to a team for a period. Position filtering of
// season stats resolves through the (player, team) contract at query time;
// stat rows carry no position of their own.
type Contract struct {
	ID        string
	OrgID     string
	PlayerID  string
	TeamID    string
	Position  string
	ValidFrom time.Time
	ValidTo   *time.Time
}

func NormalizePosition(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case PositionForward, "f":
		return PositionForward
	case PositionDefense, "d", "defence":
		return PositionDefense
	case PositionGoalie, "g", "goalkeeper":
		return PositionGoalie
	default:
		return ""
	}
}
