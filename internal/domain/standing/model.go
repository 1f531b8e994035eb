package standing

// Standing is one derived ranking row for a (round, team) pair. Every row is
// a pure function of the round's completed games and bonus points; the table
// is replaced whole on each recalculation, never patched in place.
// PreviousRank carries the rank from the prior recalculation pass and is nil
// for a team that had no row before.
type Standing struct {
	OrgID          string
	RoundID        string
	TeamID         string
	GamesPlayed    int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	BonusPoints    int
	TotalPoints    int
	Rank           int
	PreviousRank   *int
}

// BonusPoint is a manual per-(team, round) adjustment; points may be negative.
type BonusPoint struct {
	ID      string
	OrgID   string
	RoundID string
	TeamID  string
	Points  int
	Reason  string
}
