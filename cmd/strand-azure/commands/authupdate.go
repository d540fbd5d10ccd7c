package commands

import (
	"github.com/spf13/cobra"

	"github.com/strandhq/strand-azure/cmd/strand-azure/handlers"
)

// AuthUpdate returns the command that replaces the auth provider
// configuration of a running installation.
func AuthUpdate() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "auth-update <providers-file>",
		Short: "Update the authentication provider configuration",
		Long: `Update the authentication providers of a running installation.

The given file is written into the auth-providers secret and the server
deployment is restarted to pick it up.

Example:
  strand-azure auth-update providers.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.AuthUpdate(cmd.Context(), envFile, args[0])
		},
	}

	cmd.Flags().StringVarP(&envFile, "env-file", "e", "", "Path to env-format configuration file (default: .env)")

	return cmd
}
