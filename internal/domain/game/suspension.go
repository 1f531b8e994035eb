package game

// Suspension tracks a multi-game ban. ServedGames advances by one for every
// other completed game of the suspended player's team after the origin game,
// never for the origin game itself, and retreats symmetrically on reopen.
// A suspension optionally links to the penalty event that caused it and is
// removed together with that event.
type Suspension struct {
	ID             string
	OrgID          string
	TeamID         string
	PlayerID       string
	OriginGameID   *string
	OriginEventID  *string
	SuspendedGames int
	ServedGames    int
	Reason         string
}

func (s Suspension) IsActive() bool {
	return s.ServedGames < s.SuspendedGames
}

func (s Suspension) RemainingGames() int {
	remaining := s.SuspendedGames - s.ServedGames
	if remaining < 0 {
		return 0
	}
	return remaining
}
