package tasksfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
tasks:
  - assignee: alice
    code: T1
    name: Fix login
    tags: [urgent, backend, urgent]
    properties:
      estimatedhours: 4
      priority: high
  - assignee: bob
    tags:
      - frontend
    properties:
      estimatedhours: "2.5"
`

func TestDecode(t *testing.T) {
	assignments, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	first := assignments[0]
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "T1", first.Task.Code)
	assert.Equal(t, "Fix login", first.Task.Name)
	assert.Equal(t, []string{"urgent", "backend", "urgent"}, first.Task.Tags)
	assert.Equal(t, map[string]string{"estimatedhours": "4", "priority": "high"}, first.Task.Properties)

	second := assignments[1]
	assert.Equal(t, "bob", second.Username)
	assert.Equal(t, "0", second.Task.Code)
	assert.Equal(t, "Undefined", second.Task.Name)
	hours, err := second.Task.EstimatedHours()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, hours, 1e-9)
}

func TestDecodeEmpty(t *testing.T) {
	assignments, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestDecodeMissingAssignee(t *testing.T) {
	_, err := Decode(strings.NewReader("tasks:\n  - code: T9\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing assignee")
}

func TestDecodeInvalidYAML(t *testing.T) {
	_, err := Decode(strings.NewReader("tasks: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode tasks file")
}

func TestSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	src := &Source{Path: path}
	assignments, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, assignments, 2)

	missing := &Source{Path: filepath.Join(dir, "missing.yaml")}
	_, err = missing.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	missing.Optional = true
	assignments, err = missing.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
