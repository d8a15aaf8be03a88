package orgmode

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOrg = `#+TITLE: Sprint

* TODO [#A] Fix login :urgent:backend:
  :PROPERTIES:
  :ID:       a1b2
  :ASSIGNEE: alice
  :EFFORT:   1:30
  :Component: auth
  :END:
  Some notes about the bug.

* DONE Ship release :release:
  :PROPERTIES:
  :ASSIGNEE: bob
  :END:

* TODO Unowned chore
  :PROPERTIES:
  :ID: c3
  :END:

* Meeting notes
  :PROPERTIES:
  :ASSIGNEE: carol
  :END:

** TODO Review docs
   :PROPERTIES:
   :ASSIGNEE: carol
   :ESTIMATEDHOURS: 2
   :EFFORT: soon
   :END:
`

func TestParse(t *testing.T) {
	assignments, err := Parse(strings.NewReader(sampleOrg), "sprint.org")
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	alice := assignments[0]
	assert.Equal(t, "alice", alice.Username)
	assert.Equal(t, "a1b2", alice.Task.Code)
	assert.Equal(t, "Fix login", alice.Task.Name)
	assert.Equal(t, []string{"urgent", "backend"}, alice.Task.Tags)
	assert.True(t, alice.Task.IsUrgent())
	assert.Equal(t, "A", alice.Task.Properties["priority"])
	assert.Equal(t, "auth", alice.Task.Properties["component"])
	assert.Equal(t, "1:30", alice.Task.Properties["effort"])
	hours, err := alice.Task.EstimatedHours()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, hours, 1e-9)

	carol := assignments[1]
	assert.Equal(t, "carol", carol.Username)
	assert.Equal(t, "0", carol.Task.Code)
	assert.Equal(t, "Review docs", carol.Task.Name)
	assert.Empty(t, carol.Task.Tags)
	assert.Equal(t, "2", carol.Task.Properties["estimatedhours"])
}

func TestParseEffort(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1:30", 1.5, false},
		{"0:45", 0.75, false},
		{"2", 2, false},
		{"2.5", 2.5, false},
		{"1:75", 0, true},
		{"x:10", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEffort(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSourceLoad(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.org")
	second := filepath.Join(dir, "b.org")
	require.NoError(t, os.WriteFile(first, []byte(sampleOrg), 0644))
	require.NoError(t, os.WriteFile(second, []byte("* TODO Pager duty :oncall:\n:PROPERTIES:\n:ASSIGNEE: dave\n:END:\n"), 0644))

	src := &Source{Files: []string{first, second}}
	assignments, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, assignments, 3)

	src.Tag = "oncall"
	assignments, err = src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "dave", assignments[0].Username)

	src.Files = append(src.Files, filepath.Join(dir, "missing.org"))
	_, err = src.Load(context.Background())
	assert.Error(t, err)
}
