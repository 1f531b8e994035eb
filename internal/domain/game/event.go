package game

const (
	EventTypeGoal    = "goal"
	EventTypePenalty = "penalty"
)

// Event is one recorded goal or penalty within a game. Goal events carry
// the scorer and up to two independent assist slots; penalty events carry
// the penalized player, the minutes and a penalty type reference.
type Event struct {
	ID              string
	OrgID           string
	GameID          string
	TeamID          string
	EventType       string
	Period          int
	Minute          int
	ScorerID        *string
	Assist1ID       *string
	Assist2ID       *string
	PenaltyPlayerID *string
	PenaltyMinutes  int
	PenaltyTypeID   *string
}

func (e Event) IsGoal() bool {
	return e.EventType == EventTypeGoal
}

func (e Event) IsPenalty() bool {
	return e.EventType == EventTypePenalty
}
