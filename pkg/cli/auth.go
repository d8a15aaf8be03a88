package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/teamload/pkg/auth"
	"github.com/harrisonrobin/teamload/pkg/config"
)

func newAuthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize read access to Google Tasks",
		Long: `Run the Google OAuth flow and store the token next to the config file.

The OAuth client secrets must already be saved as ` + auth.ClientSecretsFile + ` in the
config directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := config.ConfigDir()
			if err := auth.Authenticate(cmd.Context(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authentication successful. Token saved in %s\n", dir)
			return nil
		},
	}
}
