package seasonstats

import "fmt"

// PlayerSeasonStat is one aggregate row per (player, season, team). A player
// who changed teams mid-season keeps a separate row per team. Rows are fully
// recomputed from game data on every trigger.
type PlayerSeasonStat struct {
	OrgID          string
	SeasonID       string
	PlayerID       string
	TeamID         string
	GamesPlayed    int
	Goals          int
	Assists        int
	TotalPoints    int
	PenaltyMinutes int
}

// GoalieSeasonStat aggregates starting-goalie appearances. GAAHundredths is
// the goals-against average in hundredths, so 3.47 is stored as 347; a goalie
// with zero games gets no row at all.
type GoalieSeasonStat struct {
	OrgID         string
	SeasonID      string
	PlayerID      string
	TeamID        string
	GamesPlayed   int
	GoalsAgainst  int
	GAAHundredths int
}

func (s GoalieSeasonStat) FormatGAA() string {
	return fmt.Sprintf("%d.%02d", s.GAAHundredths/100, s.GAAHundredths%100)
}

// GAAHundredths computes a goals-against average rounded half-up to two
// decimal places. gamesPlayed must be positive.
func GAAHundredths(goalsAgainst, gamesPlayed int) int {
	if gamesPlayed <= 0 {
		return 0
	}
	return (goalsAgainst*200 + gamesPlayed) / (2 * gamesPlayed)
}

// GoalieGameStat records one starting goalie's goals-against for one game,
// written at completion time and regenerated on every re-completion.
type GoalieGameStat struct {
	OrgID        string
	GameID       string
	PlayerID     string
	TeamID       string
	GoalsAgainst int
}
