package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	xdgAppName = "teamload"
	configFile = "config.yaml"
)

// Task source names accepted by tasks.source.
const (
	SourceNone        = "none"
	SourceFile        = "file"
	SourceTaskwarrior = "taskwarrior"
	SourceGoogle      = "google"
	SourceOrg         = "org"
)

// Config is the complete teamload configuration.
type Config struct {
	Roster  RosterConfig  `mapstructure:"roster"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RosterConfig locates the team/member record file.
type RosterConfig struct {
	Path string `mapstructure:"path"`
}

// TasksConfig selects where member tasks come from.
type TasksConfig struct {
	// Source is one of "none", "file", "taskwarrior", "google", "org".
	Source      string            `mapstructure:"source"`
	File        string            `mapstructure:"file"`
	Taskwarrior TaskwarriorConfig `mapstructure:"taskwarrior"`
	Org         OrgConfig         `mapstructure:"org"`
}

type TaskwarriorConfig struct {
	Command     string   `mapstructure:"command"`
	Filter      []string `mapstructure:"filter"`
	AssigneeUDA string   `mapstructure:"assignee_uda"`
	// ExportFile reads a saved `task export` instead of running Taskwarrior.
	ExportFile string `mapstructure:"export_file"`
}

// OrgConfig lists the Org-mode files read by the org source.
type OrgConfig struct {
	Files []string `mapstructure:"files"`
	// Tag, when set, keeps only headlines carrying it.
	Tag string `mapstructure:"tag"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	// Level is DEBUG, INFO, WARN or ERROR.
	Level string `mapstructure:"level"`
	// File, when set, receives JSON logs instead of stderr.
	File string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Roster: RosterConfig{Path: "data.txt"},
		Tasks: TasksConfig{
			Source: SourceFile,
			File:   "tasks.yaml",
			Taskwarrior: TaskwarriorConfig{
				Command:     "task",
				Filter:      []string{"status:pending"},
				AssigneeUDA: "assignee",
			},
			Org: OrgConfig{Files: []string{}},
		},
		Logging: LoggingConfig{Level: "WARN"},
	}
}

// SetDefaults registers Default() with viper.
func SetDefaults() {
	defaults := Default()
	viper.SetDefault("roster.path", defaults.Roster.Path)
	viper.SetDefault("tasks.source", defaults.Tasks.Source)
	viper.SetDefault("tasks.file", defaults.Tasks.File)
	viper.SetDefault("tasks.taskwarrior.command", defaults.Tasks.Taskwarrior.Command)
	viper.SetDefault("tasks.taskwarrior.filter", defaults.Tasks.Taskwarrior.Filter)
	viper.SetDefault("tasks.taskwarrior.assignee_uda", defaults.Tasks.Taskwarrior.AssigneeUDA)
	viper.SetDefault("tasks.taskwarrior.export_file", defaults.Tasks.Taskwarrior.ExportFile)
	viper.SetDefault("tasks.org.files", defaults.Tasks.Org.Files)
	viper.SetDefault("tasks.org.tag", defaults.Tasks.Org.Tag)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Roster.Path) == "" {
		problems = append(problems, "roster.path must not be empty")
	}
	switch c.Tasks.Source {
	case SourceNone, SourceGoogle:
	case SourceFile:
		if c.Tasks.File == "" {
			problems = append(problems, "tasks.file must be set when tasks.source is file")
		}
	case SourceTaskwarrior:
		if c.Tasks.Taskwarrior.AssigneeUDA == "" {
			problems = append(problems, "tasks.taskwarrior.assignee_uda must not be empty")
		}
	case SourceOrg:
		if len(c.Tasks.Org.Files) == 0 {
			problems = append(problems, "tasks.org.files must list at least one file when tasks.source is org")
		}
	default:
		problems = append(problems, fmt.Sprintf("tasks.source %q is not one of none, file, taskwarrior, google, org", c.Tasks.Source))
	}
	switch strings.ToUpper(c.Logging.Level) {
	case "", "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of DEBUG, INFO, WARN, ERROR", c.Logging.Level))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ConfigDir returns the directory holding the config file and OAuth files.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, xdgAppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + xdgAppName
	}
	return filepath.Join(home, ".config", xdgAppName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), configFile)
}

// Save writes the current viper settings to path, creating its directory.
func Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
