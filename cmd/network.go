package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/restclient/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Check whether the network is available",
	Long: `Prints "available" when the host has a connected or connecting network interface
and "unavailable" otherwise. Loopback interfaces are ignored.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		prepareConfig(cmd)
		app.ExecuteNetworkCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(networkCmd)
}
