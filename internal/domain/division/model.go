package division

// DefaultGoalieMinGames is the games-played threshold a goalie must reach
// to appear in the qualified section of the goalie leaderboard.
const DefaultGoalieMinGames = 7

// Division groups rounds within one season.
type Division struct {
	ID             string
	OrgID          string
	SeasonID       string
	Name           string
	GoalieMinGames int
}

func (d Division) MinGamesOrDefault() int {
	if d.GoalieMinGames <= 0 {
		return DefaultGoalieMinGames
	}
	return d.GoalieMinGames
}
