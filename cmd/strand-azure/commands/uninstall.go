package commands

import (
	"github.com/spf13/cobra"

	"github.com/strandhq/strand-azure/cmd/strand-azure/handlers"
)

// Uninstall returns the command that removes an installation.
//
// The command deletes the in-cluster pieces (pull and registry secrets, the
// proxy load balancer service, the platform release) and then the AKS
// cluster itself. The resource group, database server, storage account and
// DNS zone are retained.
func Uninstall() *cobra.Command {
	var (
		envFile string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Delete the platform installation and its cluster",
		Long: `Uninstall removes the platform installation from Azure.

The AKS cluster and everything running on it are deleted. Stateful
resources are retained for manual cleanup:
  - Resource group
  - MySQL Flexible Server (your data)
  - Storage account (your objects)
  - DNS zone (your delegation)

A confirmation prompt is shown on interactive terminals; pass --yes to
skip it. Without a terminal, --yes is required.

Example:
  strand-azure uninstall -e production.env --yes

WARNING: Deleting the cluster is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Uninstall(cmd.Context(), handlers.UninstallOptions{
				EnvFile: envFile,
				Yes:     yes,
			})
		},
	}

	cmd.Flags().StringVarP(&envFile, "env-file", "e", "", "Path to env-format configuration file (default: .env)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
