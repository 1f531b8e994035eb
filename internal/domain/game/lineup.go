package game

// LineupEntry registers one player for one team in one game.
type LineupEntry struct {
	ID               string
	OrgID            string
	GameID           string
	TeamID           string
	PlayerID         string
	IsStartingGoalie bool
}
