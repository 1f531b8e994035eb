package round

const (
	DefaultPointsWin  = 2
	DefaultPointsDraw = 1
	DefaultPointsLoss = 0
)

// Round is one competition phase inside a division. Its games always feed
// the round standings; the two eligibility flags decide whether they also
// feed season-level player and goalie aggregates.
type Round struct {
	ID                   string
	OrgID                string
	DivisionID           string
	Name                 string
	PointsWin            int
	PointsDraw           int
	PointsLoss           int
	CountsForPlayerStats bool
	CountsForGoalieStats bool
}

func New(orgID, divisionID, name string) Round {
	return Round{
		OrgID:                orgID,
		DivisionID:           divisionID,
		Name:                 name,
		PointsWin:            DefaultPointsWin,
		PointsDraw:           DefaultPointsDraw,
		PointsLoss:           DefaultPointsLoss,
		CountsForPlayerStats: true,
		CountsForGoalieStats: true,
	}
}
