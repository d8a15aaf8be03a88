package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harrisonrobin/teamload/pkg/config"
	"github.com/harrisonrobin/teamload/pkg/google"
	"github.com/harrisonrobin/teamload/pkg/model"
	"github.com/harrisonrobin/teamload/pkg/orgmode"
	"github.com/harrisonrobin/teamload/pkg/roster"
	"github.com/harrisonrobin/teamload/pkg/tasksfile"
	"github.com/harrisonrobin/teamload/pkg/taskwarrior"
)

// taskSource supplies the tasks to attach to roster members.
type taskSource interface {
	Load(ctx context.Context) ([]model.Assignment, error)
}

// loadRoster parses the configured roster file and attaches tasks from
// the configured source.
func loadRoster(ctx context.Context) (*roster.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	res, err := roster.ParseFile(cfg.Roster.Path)
	if err != nil {
		return nil, err
	}
	for _, line := range res.Skipped {
		slog.Debug("skipped unrecognized roster line", "file", res.Source, "line", line)
	}
	for _, u := range res.Unresolved {
		slog.Debug("roster references undeclared username", "line", u.Line, "team", u.Team, "username", u.Username)
	}
	slog.Info("roster loaded", "file", res.Source, "teams", len(res.Teams), "members", len(res.Members), "managers", len(res.Managers))

	source, err := newTaskSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return res, nil
	}

	assignments, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks from %s: %w", cfg.Tasks.Source, err)
	}
	for _, a := range res.Assign(assignments) {
		slog.Warn("task assigned to unknown username", "username", a.Username, "task", a.Task.Code)
	}
	slog.Info("tasks loaded", "source", cfg.Tasks.Source, "count", len(assignments))
	return res, nil
}

func newTaskSource(ctx context.Context, cfg *config.Config) (taskSource, error) {
	switch cfg.Tasks.Source {
	case config.SourceFile:
		return &tasksfile.Source{
			Path:     cfg.Tasks.File,
			Optional: cfg.Tasks.File == config.Default().Tasks.File,
		}, nil
	case config.SourceTaskwarrior:
		tw := cfg.Tasks.Taskwarrior
		client := taskwarrior.NewClient()
		if tw.Command != "" {
			client.Command = tw.Command
		}
		return &taskwarrior.Source{
			Client:      client,
			Filter:      tw.Filter,
			AssigneeUDA: tw.AssigneeUDA,
			ExportFile:  tw.ExportFile,
		}, nil
	case config.SourceOrg:
		return &orgmode.Source{Files: cfg.Tasks.Org.Files, Tag: cfg.Tasks.Org.Tag}, nil
	case config.SourceGoogle:
		client, err := google.NewClient(ctx, config.ConfigDir())
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Tasks client: %w", err)
		}
		return client, nil
	default:
		return nil, nil
	}
}
