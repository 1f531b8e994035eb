package player

// Player is a registered person; team membership and position come from
// contracts, never from the player row itself.
type Player struct {
	ID        string
	OrgID     string
	FirstName string
	LastName  string
	Number    int
}

func (p Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}
