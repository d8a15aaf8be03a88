package model

// Team groups members. Members are shared references: the same member
// may belong to several teams.
type Team struct {
	Code string
	Name string

	members []*Member
}

func NewTeam(code, name string) *Team {
	return &Team{Code: code, Name: name}
}

func (t *Team) AddMember(m *Member) {
	t.members = append(t.members, m)
}

// Members returns the team's members in the order they joined.
func (t *Team) Members() []*Member {
	return t.members
}
