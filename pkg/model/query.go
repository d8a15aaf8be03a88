package model

import "fmt"

// IsManagerExperiencedWith reports whether any manager on the team has tag
// in their expertise. Plain members are never considered.
func (t *Team) IsManagerExperiencedWith(tag string) bool {
	for _, m := range t.members {
		switch m.Role {
		case RoleManager:
			if m.HasExpertise(tag) {
				return true
			}
		case RoleMember:
		}
	}
	return false
}

// UrgentTasks returns the urgent tasks of every member, in member order
// and then task order.
func (t *Team) UrgentTasks() []*Task {
	var urgent []*Task
	for _, m := range t.members {
		urgent = append(urgent, m.UrgentTasks()...)
	}
	return urgent
}

// Workload sums the workload of every member.
func (t *Team) Workload() (float64, error) {
	var total float64
	for _, m := range t.members {
		hours, err := m.Workload()
		if err != nil {
			return 0, fmt.Errorf("team %s: %w", t.Code, err)
		}
		total += hours
	}
	return total, nil
}

// BusiestMember returns the member with the strictly greatest workload.
// Ties go to the member listed first. A team where nobody has more than
// zero hours has no busiest member.
func (t *Team) BusiestMember() (*Member, error) {
	var busiest *Member
	var maxHours float64
	for _, m := range t.members {
		hours, err := m.Workload()
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", t.Code, err)
		}
		if hours > maxHours {
			maxHours = hours
			busiest = m
		}
	}
	return busiest, nil
}

// TasksByProperty returns every task on the team whose property key
// equals value. Every visited task must carry key.
func (t *Team) TasksByProperty(key, value string) ([]*Task, error) {
	var matched []*Task
	for _, m := range t.members {
		tasks, err := m.TasksByProperty(key, value)
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", t.Code, err)
		}
		matched = append(matched, tasks...)
	}
	return matched, nil
}

func (m *Member) UrgentTasks() []*Task {
	var urgent []*Task
	for _, task := range m.tasks {
		if task.IsUrgent() {
			urgent = append(urgent, task)
		}
	}
	return urgent
}

// Workload sums estimatedhours over the member's tasks.
func (m *Member) Workload() (float64, error) {
	var total float64
	for _, task := range m.tasks {
		hours, err := task.EstimatedHours()
		if err != nil {
			return 0, fmt.Errorf("member %s: %w", m.Username, err)
		}
		total += hours
	}
	return total, nil
}

func (m *Member) TasksByProperty(key, value string) ([]*Task, error) {
	var matched []*Task
	for _, task := range m.tasks {
		ok, err := task.HasProperty(key, value)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m.Username, err)
		}
		if ok {
			matched = append(matched, task)
		}
	}
	return matched, nil
}
