// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the strand-azure CLI. An unknown
// subcommand is an error: cobra prints usage and Execute returns non-nil,
// so main exits with a failure code.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strand-azure",
		Short: "Provision the Strand platform on Azure",
	}

	cmd.AddCommand(Install())
	cmd.AddCommand(Uninstall())
	cmd.AddCommand(AuthUpdate())
	cmd.AddCommand(Render())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
