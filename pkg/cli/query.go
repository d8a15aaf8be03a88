package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/teamload/pkg/report"
)

type queryFlags struct {
	team  string
	tag   string
	key   string
	value string
	json  bool
}

func newQueryCommands() []*cobra.Command {
	expert := newQueryCommand(report.KindExpertise, "expert", "Check whether a team manager is experienced with a tag")
	expert.Example = "  teamload expert --team web --tag security"

	urgent := newQueryCommand(report.KindUrgent, "urgent", "List the urgent tasks of a team")
	urgent.Example = "  teamload urgent --team web"

	workload := newQueryCommand(report.KindWorkload, "workload", "Sum the estimated hours of a team")
	busiest := newQueryCommand(report.KindBusiest, "busiest", "Find the member with the highest workload")

	search := newQueryCommand(report.KindSearch, "search", "List tasks whose property equals a value")
	search.Example = "  teamload search --team web --key priority --value high"

	return []*cobra.Command{expert, urgent, workload, busiest, search}
}

func newQueryCommand(kind report.Kind, use, short string) *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := report.Query{Kind: kind, Team: qf.team, Tag: qf.tag, Key: qf.key, Value: qf.value}
			if err := q.Validate(); err != nil {
				return err
			}

			res, err := loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			out, err := report.Execute(res, q)
			if err != nil {
				return err
			}

			if qf.json {
				if err := report.WriteJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), report.NewRenderer(nil).Outcome(out))
			}
			if out.Failed() {
				return fmt.Errorf("%w: %w", ErrQueryFailed, out.Err())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&qf.team, "team", "t", "", "team code (default every team)")
	cmd.Flags().BoolVar(&qf.json, "json", false, "print the outcome as JSON")
	switch kind {
	case report.KindExpertise:
		cmd.Flags().StringVar(&qf.tag, "tag", "", "expertise tag to look for")
		_ = cmd.MarkFlagRequired("tag")
	case report.KindSearch:
		cmd.Flags().StringVarP(&qf.key, "key", "k", "", "property name")
		cmd.Flags().StringVarP(&qf.value, "value", "v", "", "property value to match")
		_ = cmd.MarkFlagRequired("key")
	}
	return cmd
}

func newTeamsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List every team with its members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), report.Teams(res))
			}
			fmt.Fprint(cmd.OutOrStdout(), report.NewRenderer(nil).Roster(res))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the roster as JSON")
	return cmd
}
