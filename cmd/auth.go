package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/restclient/internal/app"
	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/utils"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Inspect and refresh the configured credentials.

Use 'auth payload' to see what is attached to every request
and 'auth token' to fetch an OAuth2 access token.`,
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	authPayloadCmd = &cobra.Command{
		Use:   "payload",
		Short: "Print the auth payload as JSON",
		Long: `Prints the credentials and headers sent with every request.
Headers given with --header are merged over the configured ones.
Secrets are masked unless --show-secrets is set.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			prepareConfig(cmd)

			headerPairs, _ := cmd.Flags().GetStringArray("header")

			headers, err := utils.ParseKeyValuePairs(headerPairs)
			if err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			showSecrets, _ := cmd.Flags().GetBool("show-secrets")

			app.ExecuteAuthPayloadCommand(cmd.Context(), appConfig, headers, showSecrets)
		},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	authTokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Fetch an OAuth2 access token and save it",
		Long: `Requests an access token from '<site>/oauth/token' with the configured
client credentials, or with the username and password when grant_type is 'password'.

The token is saved to the configuration file, keeping its order and formatting.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			prepareConfig(cmd)
			app.ExecuteAuthTokenCommand(cmd.Context(), appConfig)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	payloadFlags := authPayloadCmd.Flags()
	payloadFlags.StringArrayP("header", "H", nil, "extra header as key=value, may be repeated.")
	payloadFlags.Bool("show-secrets", false, "print secrets in clear text.")

	authCmd.AddCommand(authPayloadCmd)
	authCmd.AddCommand(authTokenCmd)

	rootCmd.AddCommand(authCmd)
}
