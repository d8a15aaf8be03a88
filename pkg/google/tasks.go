package google

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/tasks/v1"

	"github.com/harrisonrobin/teamload/pkg/model"
)

var (
	tagRegex      = regexp.MustCompile(`#([\p{L}\p{M}\p{N}_-]+)`)
	propertyRegex = regexp.MustCompile(`^([\p{L}\p{M}\p{N}_-]+)\s*:\s*(.*)$`)
)

// TasksClient reads roster tasks from Google Tasks. Each task list whose
// title is a username holds that member's tasks.
type TasksClient struct {
	srv *tasks.Service
}

func NewTasksClient(srv *tasks.Service) *TasksClient {
	return &TasksClient{srv: srv}
}

// Load fetches every open task from every task list.
func (c *TasksClient) Load(ctx context.Context) ([]model.Assignment, error) {
	var lists []*tasks.TaskList
	err := c.srv.Tasklists.List().Pages(ctx, func(page *tasks.TaskLists) error {
		lists = append(lists, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve task lists: %w", err)
	}

	var assignments []model.Assignment
	for _, list := range lists {
		username := strings.TrimSpace(list.Title)
		if username == "" {
			continue
		}
		err := c.srv.Tasks.List(list.Id).ShowCompleted(false).ShowDeleted(false).Pages(ctx, func(page *tasks.Tasks) error {
			for _, item := range page.Items {
				if item.Deleted || item.Status == "completed" {
					continue
				}
				assignments = append(assignments, model.Assignment{Username: username, Task: ConvertTask(item)})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve tasks from list '%s': %w", list.Title, err)
		}
	}
	return assignments, nil
}

// ConvertTask maps a Google task onto a roster task. Notes lines of the
// form "key: value" become properties; "#word" anywhere else becomes a tag.
func ConvertTask(item *tasks.Task) *model.Task {
	task := model.NewTask(item.Id, item.Title)
	for _, line := range strings.Split(item.Notes, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if matches := propertyRegex.FindStringSubmatch(line); matches != nil {
			task.AddProperty(matches[1], strings.TrimSpace(matches[2]))
			continue
		}
		for _, m := range tagRegex.FindAllStringSubmatch(line, -1) {
			task.AddTag(m[1])
		}
	}
	return task
}
