package team

// Team is a club registered with one organization.
type Team struct {
	ID    string
	OrgID string
	Name  string
	Short string
}
