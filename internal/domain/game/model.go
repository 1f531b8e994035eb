package game

import (
	"strings"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Game is one fixture inside a round. Scores are derived from goal events
// and are never edited directly while events exist; only completed games
// with non-nil scores participate in any aggregation.
type Game struct {
	ID          string
	OrgID       string
	RoundID     string
	HomeTeamID  string
	AwayTeamID  string
	Status      string
	HomeScore   *int
	AwayScore   *int
	StartsAt    time.Time
	FinalizedAt *time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func (g Game) IsCompleted() bool {
	return NormalizeStatus(g.Status) == StatusCompleted
}

func (g Game) IsCancelled() bool {
	return NormalizeStatus(g.Status) == StatusCancelled
}

// IsEditable reports whether report data (events, lineups) may still change.
func (g Game) IsEditable() bool {
	switch NormalizeStatus(g.Status) {
	case StatusScheduled, StatusInProgress:
		return true
	default:
		return false
	}
}

// CountsForAggregation is the single gate every aggregator applies.
func (g Game) CountsForAggregation() bool {
	return g.IsCompleted() && g.HomeScore != nil && g.AwayScore != nil
}

func (g Game) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}
