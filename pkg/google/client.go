package google

import (
	"context"

	"github.com/harrisonrobin/teamload/pkg/auth"
)

// NewClient creates a Google Tasks client authorized with the credentials
// and token stored in configDir.
func NewClient(ctx context.Context, configDir string) (*TasksClient, error) {
	srv, err := auth.GetTasksService(ctx, configDir)
	if err != nil {
		return nil, err
	}
	return NewTasksClient(srv), nil
}
