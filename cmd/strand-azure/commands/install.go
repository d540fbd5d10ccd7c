package commands

import (
	"github.com/spf13/cobra"

	"github.com/strandhq/strand-azure/cmd/strand-azure/handlers"
)

// Install returns the command that provisions or updates an installation.
//
// Optional flags:
//
//	--env-file, -e: Path to an env-format configuration file (default: .env when present)
//	--no-tui: Disable the progress dashboard and log plainly
func Install() *cobra.Command {
	var (
		envFile string
		noTUI   bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Create or update the platform installation",
		Long: `Create or update the full platform installation on Azure.

This command provisions the resource group, AKS cluster, container registry,
MySQL Flexible Server, storage account and (optionally) a DNS zone, writes
the generated credentials into cluster secrets, and deploys the platform
chart. It is idempotent: re-running converges on the configured state
without creating duplicates.

Configuration is read from environment variables, optionally overlaid from
an env-format file. Required: AZURE_SUBSCRIPTION_ID, AZURE_TENANT_ID,
RESOURCE_GROUP, CLUSTER_NAME, DOMAIN, LOCATION, REGISTRY_NAME.

Examples:
  # Install using the environment and ./.env
  strand-azure install

  # Install using a specific env file
  strand-azure install -e production.env

  # Re-run after configuration changes, without the dashboard
  strand-azure install --no-tui`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Install(cmd.Context(), handlers.InstallOptions{
				EnvFile: envFile,
				NoTUI:   noTUI,
			})
		},
	}

	cmd.Flags().StringVarP(&envFile, "env-file", "e", "", "Path to env-format configuration file (default: .env)")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable the progress dashboard")

	return cmd
}
