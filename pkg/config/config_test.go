package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("roster.path", "/srv/org.txt")
	viper.Set("tasks.source", SourceTaskwarrior)
	viper.Set("tasks.taskwarrior.assignee_uda", "owner")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/org.txt", cfg.Roster.Path)
	assert.Equal(t, SourceTaskwarrior, cfg.Tasks.Source)
	assert.Equal(t, "owner", cfg.Tasks.Taskwarrior.AssigneeUDA)
	assert.Equal(t, []string{"status:pending"}, cfg.Tasks.Taskwarrior.Filter)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty roster path", mutate: func(c *Config) { c.Roster.Path = " " }, wantErr: "roster.path"},
		{name: "unknown source", mutate: func(c *Config) { c.Tasks.Source = "jira" }, wantErr: `tasks.source "jira"`},
		{name: "file source without file", mutate: func(c *Config) { c.Tasks.File = "" }, wantErr: "tasks.file"},
		{name: "taskwarrior without uda", mutate: func(c *Config) {
			c.Tasks.Source = SourceTaskwarrior
			c.Tasks.Taskwarrior.AssigneeUDA = ""
		}, wantErr: "assignee_uda"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "lowercase log level", mutate: func(c *Config) { c.Logging.Level = "debug" }},
		{name: "org without files", mutate: func(c *Config) { c.Tasks.Source = SourceOrg }, wantErr: "tasks.org.files"},
		{name: "org with files", mutate: func(c *Config) {
			c.Tasks.Source = SourceOrg
			c.Tasks.Org.Files = []string{"sprint.org"}
		}},
		{name: "no task source", mutate: func(c *Config) { c.Tasks.Source = SourceNone; c.Tasks.File = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "teamload"), ConfigDir())
	assert.Equal(t, filepath.Join("/tmp/xdg", "teamload", "config.yaml"), ConfigFile())
}

func TestSave(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("roster.path", "team.txt")

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, Save(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "team.txt", v.GetString("roster.path"))
	assert.Equal(t, SourceFile, v.GetString("tasks.source"))
}
