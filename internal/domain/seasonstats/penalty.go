package seasonstats

// UnknownPenaltyType buckets penalty events whose type reference no longer
// resolves.
const UnknownPenaltyType = "unknown"

// PenaltyTypeBreakdown is one (penalty type -> count, minutes) slice of a
// penalty summary.
type PenaltyTypeBreakdown struct {
	PenaltyTypeID string
	Count         int
	Minutes       int
}

// PlayerPenaltySummary is a computed-on-demand aggregate; it is never stored.
type PlayerPenaltySummary struct {
	PlayerID     string
	TeamID       string
	Count        int
	TotalMinutes int
	ByType       []PenaltyTypeBreakdown
}

type TeamPenaltySummary struct {
	TeamID       string
	Count        int
	TotalMinutes int
	ByType       []PenaltyTypeBreakdown
}
