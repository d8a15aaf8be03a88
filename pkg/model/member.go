package model

// Role tells a plain member apart from a manager.
type Role int

const (
	RoleMember Role = iota
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	default:
		return "member"
	}
}

// Member is a roster entry that owns tasks. Managers are members with
// RoleManager; they additionally accumulate expertise from the tags of
// every task they are given.
type Member struct {
	Name     string
	Username string
	Role     Role

	tasks     []*Task
	expertise []string
}

// NewMember creates a plain member.
func NewMember(name, username string) *Member {
	return &Member{Name: name, Username: username, Role: RoleMember}
}

// NewManager creates a manager with empty expertise.
func NewManager(name, username string) *Member {
	return &Member{Name: name, Username: username, Role: RoleManager}
}

// IsManager reports whether the member holds the manager role.
func (m *Member) IsManager() bool {
	return m.Role == RoleManager
}

// AddTask appends a task. For managers every new tag of the task is
// appended to the expertise set.
func (m *Member) AddTask(task *Task) {
	m.tasks = append(m.tasks, task)
	if m.Role != RoleManager {
		return
	}
	for _, tag := range task.Tags {
		if !m.HasExpertise(tag) {
			m.expertise = append(m.expertise, tag)
		}
	}
}

// Tasks returns the member's tasks in the order they were added.
func (m *Member) Tasks() []*Task {
	return m.tasks
}

// Expertise returns the manager's expertise tags in first-seen order.
// It is always empty for plain members.
func (m *Member) Expertise() []string {
	return m.expertise
}

// HasExpertise reports whether tag is part of the expertise set.
func (m *Member) HasExpertise(tag string) bool {
	for _, e := range m.expertise {
		if e == tag {
			return true
		}
	}
	return false
}
