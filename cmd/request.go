package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/restclient/internal/app"
	"github.com/oshokin/restclient/internal/client/rest"
	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/utils"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var requestCmd = &cobra.Command{
	Use:   "request [flags] {urls}",
	Short: "Send requests and print the responses",
	Long: `Sends one request per URL through the shared transport client with the configured credentials.
The requests run concurrently, limited by max_requests, and the responses are printed in order.

The request is sent with "Cache-Control: no-cache", the "os" platform header,
the Content-Type and Accept headers of the content kind, and the configured headers.
Headers given with --header are merged over the configured ones.

Interrupting the command cancels every call with the same tag,
or every call when no tag is given.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, urls []string) {
		prepareConfig(cmd)

		opts, err := requestOptionsFromFlags(cmd.Flags(), urls)
		if err != nil {
			logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
		}

		app.ExecuteRequestCommand(cmd.Context(), appConfig, opts)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	addRequestFlags(requestCmd.Flags())

	rootCmd.AddCommand(requestCmd)
}

func addRequestFlags(flags *pflag.FlagSet) {
	flags.StringP("method", "X", "GET", "HTTP method.")
	flags.StringP("tag", "t", "", "tag used to cancel the call together with others.")
	flags.StringP("body", "b", "", "request body.")
	flags.StringP("kind", "k", rest.ContentJSON.String(), "content kind: json, text, file.")
	flags.StringArrayP("header", "H", nil, "extra header as key=value, may be repeated.")
	flags.BoolP("include", "i", false, "print the response headers.")
	flags.Bool("skip-network-check", false, "send the request even if no active network is found.")
	flags.Bool("metrics", false, "print the dispatcher metrics after the response.")
}

func requestOptionsFromFlags(flags *pflag.FlagSet, urls []string) (app.RequestOptions, error) {
	kindName, _ := flags.GetString("kind")

	kind, err := rest.ParseContentKind(kindName)
	if err != nil {
		return app.RequestOptions{}, err
	}

	headerPairs, _ := flags.GetStringArray("header")

	headers, err := utils.ParseKeyValuePairs(headerPairs)
	if err != nil {
		return app.RequestOptions{}, err
	}

	opts := app.RequestOptions{
		URLs:    urls,
		Kind:    kind,
		Headers: headers,
	}

	opts.Method, _ = flags.GetString("method")
	opts.Tag, _ = flags.GetString("tag")
	opts.Body, _ = flags.GetString("body")
	opts.IncludeHeaders, _ = flags.GetBool("include")
	opts.SkipNetworkCheck, _ = flags.GetBool("skip-network-check")
	opts.PrintMetrics, _ = flags.GetBool("metrics")

	return opts, nil
}
