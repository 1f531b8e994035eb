package season

import "time"

// Season identifies one competitive period. Start and end are inclusive
// UTC boundaries; overlap between seasons is not enforced.
type Season struct {
	ID       string
	OrgID    string
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

func (s Season) Contains(t time.Time) bool {
	return !t.Before(s.StartsAt) && !t.After(s.EndsAt)
}
