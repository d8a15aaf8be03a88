package taskwarrior

import (
	"encoding/json"
	"strconv"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	DELETED   = "deleted"
)

// Task is the subset of a Taskwarrior export record the roster needs.
// Any other top-level scalar field (typically a UDA) lands in UDA.
type Task struct {
	UUID        string   `json:"uuid"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Project     string   `json:"project,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Est         string   `json:"est,omitempty"` // ISO 8601 duration like "PT1H30M"

	UDA map[string]string `json:"-"`
}

// builtinFields are export keys that are never treated as UDAs.
var builtinFields = map[string]bool{
	"id": true, "uuid": true, "description": true, "status": true, "project": true,
	"priority": true, "tags": true, "est": true, "entry": true, "modified": true,
	"due": true, "scheduled": true, "start": true, "end": true, "wait": true,
	"until": true, "urgency": true, "annotations": true, "depends": true,
	"mask": true, "imask": true, "parent": true, "recur": true,
}

// UnmarshalJSON implements the json.Unmarshaler interface for Task.
func (t *Task) UnmarshalJSON(b []byte) error {
	type plain Task
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if builtinFields[key] {
			continue
		}
		switch v := value.(type) {
		case string:
			if p.UDA == nil {
				p.UDA = make(map[string]string)
			}
			p.UDA[key] = v
		case float64:
			if p.UDA == nil {
				p.UDA = make(map[string]string)
			}
			p.UDA[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	*t = Task(p)
	return nil
}
