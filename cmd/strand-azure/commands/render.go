package commands

import (
	"github.com/spf13/cobra"

	"github.com/strandhq/strand-azure/cmd/strand-azure/handlers"
)

// Render returns the command that prints the composed installation
// document without touching any resource.
func Render() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the composed installation document",
		Long: `Render composes the installation document from the configuration and
prints it as YAML. Nothing is provisioned or contacted; values that are
normally discovered during installation fall back to their name-derived
forms.

Example:
  strand-azure render -e production.env`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Render(cmd.Context(), envFile)
		},
	}

	cmd.Flags().StringVarP(&envFile, "env-file", "e", "", "Path to env-format configuration file (default: .env)")

	return cmd
}
