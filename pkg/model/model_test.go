package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(code string, tags []string, props map[string]string) *Task {
	task := NewTask(code, "task "+code)
	for _, tag := range tags {
		task.AddTag(tag)
	}
	for k, v := range props {
		task.AddProperty(k, v)
	}
	return task
}

func withHours(code, hours string) *Task {
	return newTask(code, nil, map[string]string{EstimatedHoursProperty: hours})
}

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("", "")
	assert.Equal(t, "0", task.Code)
	assert.Equal(t, "Undefined", task.Name)
	assert.Empty(t, task.Tags)
	assert.NotNil(t, task.Properties)
}

func TestTaskPropertyLastWriteWins(t *testing.T) {
	task := NewTask("T1", "Fix login")
	task.AddProperty("priority", "low")
	task.AddProperty("priority", "high")

	got, err := task.Property("priority")
	require.NoError(t, err)
	assert.Equal(t, "high", got)

	_, err = task.Property("owner")
	assert.ErrorIs(t, err, ErrMissingProperty)
}

func TestTaskTagsKeepDuplicatesInOrder(t *testing.T) {
	task := newTask("T1", []string{"backend", "urgent", "backend"}, nil)
	assert.Equal(t, []string{"backend", "urgent", "backend"}, task.Tags)
	assert.True(t, task.IsUrgent())
}

func TestTaskIsUrgentIgnoresProperties(t *testing.T) {
	task := newTask("T1", []string{"backend"}, map[string]string{"Urgent": "true", "urgent": "yes"})
	assert.False(t, task.IsUrgent())
}

func TestTaskEstimatedHours(t *testing.T) {
	tests := []struct {
		name    string
		props   map[string]string
		want    float64
		wantErr error
	}{
		{name: "integer", props: map[string]string{EstimatedHoursProperty: "4"}, want: 4},
		{name: "fraction with spaces", props: map[string]string{EstimatedHoursProperty: " 2.5 "}, want: 2.5},
		{name: "missing", props: map[string]string{"priority": "high"}, wantErr: ErrMissingEstimate},
		{name: "not a number", props: map[string]string{EstimatedHoursProperty: "soon"}, wantErr: ErrInvalidEstimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask("T1", nil, tt.props)
			got, err := task.EstimatedHours()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMissingEstimateIsMissingProperty(t *testing.T) {
	_, err := NewTask("T1", "x").EstimatedHours()
	assert.True(t, errors.Is(err, ErrMissingProperty))
}

func TestTaskString(t *testing.T) {
	task := newTask("T1", []string{"urgent", "backend"}, map[string]string{"priority": "high", "estimatedhours": "3"})
	assert.Equal(t, "code: T1, name: task T1, tags: [urgent, backend], properties: {estimatedhours=3, priority=high}", task.String())
}

func TestManagerExpertiseIsOrderedUnion(t *testing.T) {
	mgr := NewManager("Bob Stone", "bob")
	mgr.AddTask(newTask("T1", []string{"backend", "urgent"}, nil))
	mgr.AddTask(newTask("T2", []string{"frontend", "backend"}, nil))
	mgr.AddTask(newTask("T3", nil, nil))
	mgr.AddTask(newTask("T4", []string{"urgent", "ops", "ops"}, nil))

	assert.Equal(t, []string{"backend", "urgent", "frontend", "ops"}, mgr.Expertise())
	assert.Len(t, mgr.Tasks(), 4)
	assert.True(t, mgr.IsManager())
}

func TestPlainMemberHasNoExpertise(t *testing.T) {
	m := NewMember("Alice Smith", "alice")
	m.AddTask(newTask("T1", []string{"backend"}, nil))

	assert.Empty(t, m.Expertise())
	assert.False(t, m.IsManager())
	assert.Equal(t, "member", m.Role.String())
}

func TestIsManagerExperiencedWith(t *testing.T) {
	plain := NewMember("Alice Smith", "alice")
	plain.AddTask(newTask("T1", []string{"security"}, nil))
	mgr := NewManager("Bob Stone", "bob")
	mgr.AddTask(newTask("T2", []string{"backend"}, nil))

	team := NewTeam("tx", "Team X")
	team.AddMember(plain)
	team.AddMember(mgr)

	assert.True(t, team.IsManagerExperiencedWith("backend"))
	assert.False(t, team.IsManagerExperiencedWith("security"), "plain member tags are not expertise")
	assert.False(t, team.IsManagerExperiencedWith("back"))
	assert.False(t, NewTeam("empty", "Empty").IsManagerExperiencedWith("backend"))
}

func TestUrgentTasksMemberThenTaskOrder(t *testing.T) {
	alice := NewMember("Alice Smith", "alice")
	first := newTask("A1", []string{"urgent"}, nil)
	alice.AddTask(first)
	alice.AddTask(newTask("A2", []string{"backend"}, nil))
	third := newTask("A3", []string{"ops", "urgent"}, nil)
	alice.AddTask(third)

	bob := NewManager("Bob Stone", "bob")
	bobs := newTask("B1", []string{"urgent"}, nil)
	bob.AddTask(bobs)

	assert.Equal(t, []*Task{first, third}, alice.UrgentTasks())

	team := NewTeam("tx", "Team X")
	team.AddMember(alice)
	team.AddMember(bob)
	assert.Equal(t, []*Task{first, third, bobs}, team.UrgentTasks())
}

func TestUrgentTasksSingle(t *testing.T) {
	m := NewMember("Alice Smith", "alice")
	urgent := newTask("T1", []string{"urgent"}, nil)
	m.AddTask(urgent)
	m.AddTask(newTask("T2", []string{"backend"}, nil))

	assert.Equal(t, []*Task{urgent}, m.UrgentTasks())
}

func TestWorkloadIsSumOfMembers(t *testing.T) {
	alice := NewMember("Alice Smith", "alice")
	alice.AddTask(withHours("A1", "2"))
	alice.AddTask(withHours("A2", "3.5"))
	bob := NewManager("Bob Stone", "bob")
	bob.AddTask(withHours("B1", "4"))
	idle := NewMember("Idle", "idle")

	team := NewTeam("tx", "Team X")
	for _, m := range []*Member{alice, bob, idle} {
		team.AddMember(m)
	}

	total, err := team.Workload()
	require.NoError(t, err)

	var sum float64
	for _, m := range team.Members() {
		hours, err := m.Workload()
		require.NoError(t, err)
		sum += hours
	}
	assert.InDelta(t, 9.5, total, 1e-9)
	assert.InDelta(t, sum, total, 1e-9)
}

func TestWorkloadFailsOnMissingEstimate(t *testing.T) {
	alice := NewMember("Alice Smith", "alice")
	alice.AddTask(withHours("A1", "2"))
	alice.AddTask(NewTask("A2", "no estimate"))

	team := NewTeam("tx", "Team X")
	team.AddMember(alice)

	_, err := team.Workload()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingEstimate)
	assert.Contains(t, err.Error(), "alice")
	assert.Contains(t, err.Error(), "A2")
}

func TestBusiestMember(t *testing.T) {
	member := func(username, hours string) *Member {
		m := NewMember(username, username)
		if hours != "" {
			m.AddTask(withHours(username+"1", hours))
		}
		return m
	}

	tests := []struct {
		name    string
		members []*Member
		want    string
	}{
		{name: "empty team", want: ""},
		{name: "only zero workloads", members: []*Member{member("a", "0"), member("b", "")}, want: ""},
		{name: "first to reach the max wins ties", members: []*Member{member("A", "5"), member("B", "9"), member("C", "9")}, want: "B"},
		{name: "single leader", members: []*Member{member("A", "1"), member("B", "0.5")}, want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := NewTeam("tx", "Team X")
			for _, m := range tt.members {
				team.AddMember(m)
			}
			got, err := team.BusiestMember()
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Username)
		})
	}
}

func TestBusiestMemberPropagatesErrors(t *testing.T) {
	m := NewMember("Alice Smith", "alice")
	m.AddTask(withHours("A1", "lots"))
	team := NewTeam("tx", "Team X")
	team.AddMember(m)

	got, err := team.BusiestMember()
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvalidEstimate)
}

func TestTasksByProperty(t *testing.T) {
	medium := newTask("T1", nil, map[string]string{"priority": "medium"})
	high := newTask("T2", nil, map[string]string{"priority": "high"})

	m := NewMember("Alice Smith", "alice")
	m.AddTask(medium)
	m.AddTask(high)
	team := NewTeam("tx", "Team X")
	team.AddMember(m)

	got, err := team.TasksByProperty("priority", "medium")
	require.NoError(t, err)
	assert.Equal(t, []*Task{medium}, got)

	m.AddTask(newTask("T3", nil, map[string]string{"owner": "alice"}))
	got, err = team.TasksByProperty("priority", "medium")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrMissingProperty)
}

func TestSharedMemberAcrossTeams(t *testing.T) {
	alice := NewMember("Alice Smith", "alice")
	one := NewTeam("one", "One")
	two := NewTeam("two", "Two")
	one.AddMember(alice)
	two.AddMember(alice)

	alice.AddTask(withHours("A1", "3"))

	w1, err := one.Workload()
	require.NoError(t, err)
	w2, err := two.Workload()
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
}
