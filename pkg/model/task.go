package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// UrgentTag marks a task as urgent.
	UrgentTag = "urgent"
	// EstimatedHoursProperty holds a task's estimate in hours, stored as text.
	EstimatedHoursProperty = "estimatedhours"

	defaultCode = "0"
	defaultName = "Undefined"
)

// Task represents a unit of work owned by a single member.
type Task struct {
	Code       string
	Name       string
	Tags       []string
	Properties map[string]string
}

// NewTask creates a task, falling back to placeholder values for an empty code or name.
func NewTask(code, name string) *Task {
	if code == "" {
		code = defaultCode
	}
	if name == "" {
		name = defaultName
	}
	return &Task{
		Code:       code,
		Name:       name,
		Properties: make(map[string]string),
	}
}

// AddTag appends a tag. Duplicates are kept.
func (t *Task) AddTag(tag string) {
	t.Tags = append(t.Tags, tag)
}

// AddProperty sets a property, replacing any previous value for the key.
func (t *Task) AddProperty(key, value string) {
	if t.Properties == nil {
		t.Properties = make(map[string]string)
	}
	t.Properties[key] = value
}

// Property returns the value stored under key, or ErrMissingProperty.
func (t *Task) Property(key string) (string, error) {
	value, ok := t.Properties[key]
	if !ok {
		return "", fmt.Errorf("task %s: %q: %w", t.Code, key, ErrMissingProperty)
	}
	return value, nil
}

// HasProperty reports whether the property key equals value.
// A task without the key is an error, not a mismatch.
func (t *Task) HasProperty(key, value string) (bool, error) {
	got, err := t.Property(key)
	if err != nil {
		return false, err
	}
	return got == value, nil
}

// EstimatedHours parses the estimatedhours property.
func (t *Task) EstimatedHours() (float64, error) {
	raw, ok := t.Properties[EstimatedHoursProperty]
	if !ok {
		return 0, fmt.Errorf("task %s: %w", t.Code, ErrMissingEstimate)
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("task %s: %q is not a number: %w", t.Code, raw, ErrInvalidEstimate)
	}
	return hours, nil
}

// IsUrgent reports whether the task carries the urgent tag.
func (t *Task) IsUrgent() bool {
	for _, tag := range t.Tags {
		if tag == UrgentTag {
			return true
		}
	}
	return false
}

func (t *Task) String() string {
	keys := make([]string, 0, len(t.Properties))
	for k := range t.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	props := make([]string, 0, len(keys))
	for _, k := range keys {
		props = append(props, k+"="+t.Properties[k])
	}
	return fmt.Sprintf("code: %s, name: %s, tags: [%s], properties: {%s}",
		t.Code, t.Name, strings.Join(t.Tags, ", "), strings.Join(props, ", "))
}

// Assignment pairs a task with the username it should be attached to.
type Assignment struct {
	Username string
	Task     *Task
}
