// Package cli wires the teamload commands together.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harrisonrobin/teamload/pkg/config"
	"github.com/harrisonrobin/teamload/pkg/logging"
	"github.com/harrisonrobin/teamload/pkg/report"
	"github.com/harrisonrobin/teamload/pkg/roster"
	"github.com/harrisonrobin/teamload/pkg/tui"
)

// ErrQueryFailed is returned when a query could not be answered for at
// least one team. The per-team errors have already been printed.
var ErrQueryFailed = errors.New("query failed for one or more teams")

// Execute runs the root command and prints any error it returns.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), errorMessage(err))
	}
	return err
}

func errorMessage(err error) string {
	var pathErr *fs.PathError
	if errors.Is(err, roster.ErrSourceUnavailable) && errors.As(err, &pathErr) {
		return "File could not be opened: " + pathErr.Error()
	}
	return "Error: " + err.Error()
}

// NewRootCommand builds the full command tree. Running it without a
// subcommand opens the interactive menu.
func NewRootCommand() *cobra.Command {
	var closeLog func() error

	root := &cobra.Command{
		Use:   "teamload",
		Short: "Query team rosters and member workloads",
		Long: `teamload reads a roster of teams, members and managers from a text file,
attaches each member's tasks from a task source and answers questions about them:
urgent tasks, workloads, the busiest member, manager expertise and property search.

Run without a subcommand for the interactive menu.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig()
			var err error
			closeLog, err = setupLogging(cmd)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(res, report.NewRenderer(nil))
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/teamload/config.yaml)")
	flags.StringP("roster", "r", "", "roster file to read (default data.txt)")
	flags.String("tasks-source", "", "where tasks come from: none, file, taskwarrior, google or org")
	flags.String("tasks-file", "", "YAML tasks file used by the file source (default tasks.yaml)")
	flags.String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("roster.path", flags.Lookup("roster"))
	_ = viper.BindPFlag("tasks.source", flags.Lookup("tasks-source"))
	_ = viper.BindPFlag("tasks.file", flags.Lookup("tasks-file"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))

	root.AddCommand(newTeamsCommand())
	root.AddCommand(newQueryCommands()...)
	root.AddCommand(newAuthCommand())
	root.AddCommand(newConfigCommand())
	return root
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("TEAMLOAD")
	// TEAMLOAD_TASKS_SOURCE for tasks.source
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not read config file", "error", err)
		}
	}
}

func setupLogging(cmd *cobra.Command) (func() error, error) {
	logger, closeLog, err := logging.New(cmd.ErrOrStderr(), viper.GetString("logging.file"), viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeLog, nil
}
