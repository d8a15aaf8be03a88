package taskwarrior

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/harrisonrobin/teamload/pkg/model"
	"github.com/harrisonrobin/teamload/pkg/util"
)

// DefaultAssigneeUDA is the UDA that names the member a task belongs to.
const DefaultAssigneeUDA = "assignee"

// Source supplies roster tasks from Taskwarrior, either by running
// `task export` or by reading a saved export file.
type Source struct {
	Client      *Client
	Filter      []string
	AssigneeUDA string
	// ExportFile, when set, is read instead of invoking Taskwarrior.
	ExportFile string
}

func (s *Source) Load(ctx context.Context) ([]model.Assignment, error) {
	client := s.Client
	if client == nil {
		client = NewClient()
	}

	var tasks []Task
	var err error
	if s.ExportFile != "" {
		tasks, err = readExport(client, s.ExportFile)
	} else {
		tasks, err = client.GetTasks(ctx, s.Filter)
	}
	if err != nil {
		return nil, err
	}

	uda := s.AssigneeUDA
	if uda == "" {
		uda = DefaultAssigneeUDA
	}
	return Assignments(tasks, uda), nil
}

func readExport(client *Client, path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open taskwarrior export: %w", err)
	}
	defer f.Close()
	return client.ParseTasks(f)
}

// Assignments converts exported tasks into roster assignments. Deleted
// tasks and tasks without an assignee are left out.
func Assignments(tasks []Task, assigneeUDA string) []model.Assignment {
	var assignments []model.Assignment
	for _, t := range tasks {
		if t.Status == DELETED {
			continue
		}
		assignee := t.UDA[assigneeUDA]
		if assignee == "" {
			continue
		}
		assignments = append(assignments, model.Assignment{Username: assignee, Task: ConvertTask(t)})
	}
	return assignments
}

// ConvertTask maps a Taskwarrior task onto a roster task. The est UDA is
// turned into estimatedhours.
func ConvertTask(t Task) *model.Task {
	task := model.NewTask(t.UUID, t.Description)
	for _, tag := range t.Tags {
		task.AddTag(tag)
	}
	for k, v := range t.UDA {
		task.AddProperty(k, v)
	}
	if t.Status != "" {
		task.AddProperty("status", t.Status)
	}
	if t.Project != "" {
		task.AddProperty("project", t.Project)
	}
	if t.Priority != "" {
		task.AddProperty("priority", t.Priority)
	}
	if t.Est != "" {
		task.AddProperty("est", t.Est)
		if est, err := util.ParseDuration(t.Est); err == nil {
			task.AddProperty(model.EstimatedHoursProperty, util.FormatHours(est.Hours()))
		} else {
			slog.Debug("ignoring unparsable est", "uuid", t.UUID, "est", t.Est, "error", err)
		}
	}
	return task
}
