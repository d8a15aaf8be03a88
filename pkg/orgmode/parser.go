// Package orgmode reads task assignments from Org-mode files.
package orgmode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/harrisonrobin/teamload/pkg/model"
	"github.com/harrisonrobin/teamload/pkg/util"
)

// Drawer properties with a fixed meaning. Every other property is copied
// onto the task under its lowercased name.
const (
	AssigneeProperty = "assignee"
	IDProperty       = "id"
	EffortProperty   = "effort"
)

var (
	headingRegex  = regexp.MustCompile(`^\*+\s`)
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s*(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:(\w+(:\w+)*):))?\s*$`)
	propertyRegex = regexp.MustCompile(`^:([\w-]+):\s*(.*)$`)
)

// Source loads assignments from Org-mode files. With Tag set, only
// headlines carrying that tag are used.
type Source struct {
	Files []string
	Tag   string
}

func (s *Source) Load(_ context.Context) ([]model.Assignment, error) {
	assignments, err := ParseFiles(s.Files)
	if err != nil {
		return nil, err
	}
	if s.Tag == "" {
		return assignments, nil
	}
	return FilterAssignments(assignments, s.Tag), nil
}

func parseFile(filePath string) ([]model.Assignment, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open org file: %w", err)
	}
	defer file.Close()
	return Parse(file, filePath)
}

// ParseFiles parses multiple Org-mode files in order.
func ParseFiles(filePaths []string) ([]model.Assignment, error) {
	var all []model.Assignment
	for _, filePath := range filePaths {
		assignments, err := parseFile(filePath)
		if err != nil {
			return nil, err
		}
		all = append(all, assignments...)
	}
	return all, nil
}

type headline struct {
	line     int
	done     bool
	priority string
	title    string
	tags     []string
	props    map[string]string
	order    []string
}

// Parse reads TODO headlines and their property drawers. DONE headlines
// and headlines without an :ASSIGNEE: property are skipped.
func Parse(r io.Reader, source string) ([]model.Assignment, error) {
	slog.Debug("parsing org file", "file", source)
	scanner := bufio.NewScanner(r)
	var assignments []model.Assignment
	var current *headline
	inDrawer := false
	lineNo := 0

	flush := func() {
		if current == nil {
			return
		}
		if a, ok := current.assignment(source); ok {
			assignments = append(assignments, a)
		}
		current = nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if headingRegex.MatchString(line) {
			flush()
			inDrawer = false
			if matches := headlineRegex.FindStringSubmatch(line); matches != nil {
				current = &headline{
					line:     lineNo,
					done:     matches[1] == "DONE",
					priority: matches[2],
					title:    strings.TrimSpace(matches[3]),
					props:    make(map[string]string),
				}
				if matches[4] != "" {
					current.tags = strings.Split(strings.Trim(matches[4], ":"), ":")
				}
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case line == ":PROPERTIES:":
			inDrawer = true
		case line == ":END:":
			inDrawer = false
		case inDrawer:
			if matches := propertyRegex.FindStringSubmatch(line); matches != nil {
				key := strings.ToLower(matches[1])
				if _, seen := current.props[key]; !seen {
					current.order = append(current.order, key)
				}
				current.props[key] = strings.TrimSpace(matches[2])
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read org file %s: %w", source, err)
	}
	return assignments, nil
}

func (h *headline) assignment(source string) (model.Assignment, bool) {
	if h.done {
		return model.Assignment{}, false
	}
	assignee := h.props[AssigneeProperty]
	if assignee == "" {
		slog.Debug("org headline has no assignee", "file", source, "line", h.line, "title", h.title)
		return model.Assignment{}, false
	}

	task := model.NewTask(h.props[IDProperty], h.title)
	for _, tag := range h.tags {
		task.AddTag(tag)
	}
	if h.priority != "" {
		task.AddProperty("priority", h.priority)
	}
	for _, key := range h.order {
		switch key {
		case AssigneeProperty, IDProperty:
			continue
		case EffortProperty:
			if hours, err := ParseEffort(h.props[key]); err == nil {
				if _, ok := task.Properties[model.EstimatedHoursProperty]; !ok {
					task.AddProperty(model.EstimatedHoursProperty, util.FormatHours(hours))
				}
			} else {
				slog.Debug("ignoring unparsable effort", "file", source, "line", h.line, "effort", h.props[key])
			}
		}
		task.AddProperty(key, h.props[key])
	}
	return model.Assignment{Username: assignee, Task: task}, true
}

// ParseEffort converts an Org effort ("1:30", "0:45", or plain hours
// such as "2.5") to hours.
func ParseEffort(effort string) (float64, error) {
	effort = strings.TrimSpace(effort)
	if h, m, ok := strings.Cut(effort, ":"); ok {
		hours, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("invalid effort %q: %w", effort, err)
		}
		minutes, err := strconv.Atoi(m)
		if err != nil || minutes < 0 || minutes >= 60 {
			return 0, fmt.Errorf("invalid effort %q", effort)
		}
		return float64(hours) + float64(minutes)/60, nil
	}
	hours, err := strconv.ParseFloat(effort, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid effort %q: %w", effort, err)
	}
	return hours, nil
}

// FilterAssignments keeps the assignments whose task carries tag.
func FilterAssignments(assignments []model.Assignment, tag string) []model.Assignment {
	var filtered []model.Assignment
	for _, a := range assignments {
		for _, t := range a.Task.Tags {
			if t == tag {
				filtered = append(filtered, a)
				break
			}
		}
	}
	return filtered
}
