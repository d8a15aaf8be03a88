// Package tasksfile reads task assignments from a YAML document.
package tasksfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/teamload/pkg/model"
)

// Document is the top-level layout of a tasks file.
type Document struct {
	Tasks []Entry `yaml:"tasks"`
}

// Entry is one task and the username it belongs to.
type Entry struct {
	Assignee   string            `yaml:"assignee"`
	Code       string            `yaml:"code,omitempty"`
	Name       string            `yaml:"name,omitempty"`
	Tags       []string          `yaml:"tags,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Source loads assignments from a tasks file on disk.
type Source struct {
	Path string
	// Optional makes a missing file yield no tasks instead of an error.
	Optional bool
}

func (s *Source) Load(_ context.Context) ([]model.Assignment, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if s.Optional && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open tasks file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a tasks document. Entries without an assignee are rejected.
func Decode(r io.Reader) ([]model.Assignment, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode tasks file: %w", err)
	}

	assignments := make([]model.Assignment, 0, len(doc.Tasks))
	for i, e := range doc.Tasks {
		if e.Assignee == "" {
			return nil, fmt.Errorf("tasks file entry %d (%s): missing assignee", i+1, e.Code)
		}
		assignments = append(assignments, model.Assignment{Username: e.Assignee, Task: e.toTask()})
	}
	return assignments, nil
}

func (e Entry) toTask() *model.Task {
	task := model.NewTask(e.Code, e.Name)
	for _, tag := range e.Tags {
		task.AddTag(tag)
	}
	for k, v := range e.Properties {
		task.AddProperty(k, v)
	}
	return task
}
