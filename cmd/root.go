package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/restclient/internal/config"
	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "restclient",
		Short: "Send authenticated HTTP requests through a shared, cancellable transport client.",
		Long: `restclient is a CLI for a thin HTTP client configurator.
It supports:
- Sending requests with Basic, Bearer, or OAuth2 credentials
- Tagging calls and cancelling them on interrupt
- Logging requests and responses in debug mode
- Checking whether the network is available
- Printing the auth payload and fetching OAuth2 tokens

Settings are read from a YAML file and can be overridden with flags.`,
		Version: version.Full(),
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		cobra.CheckErr(err)
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootFlags := rootCmd.PersistentFlags()

	rootFlags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	addConfigFlags(rootFlags)
}

// addConfigFlags registers the flags that override configuration values.
func addConfigFlags(rootFlags *pflag.FlagSet) {
	rootFlags.String(
		"auth-type",
		"",
		"authentication type: none, basic, oauth2, token.")

	rootFlags.String(
		"site",
		"",
		"base URL of the OAuth2 authorization server.")

	rootFlags.String(
		"token",
		"",
		"access token sent as a Bearer token with auth type 'token'.")

	rootFlags.Int64(
		"connect-timeout",
		0,
		"connect timeout in milliseconds, 0 disables it.")

	rootFlags.Int64(
		"read-timeout",
		0,
		"per-read timeout in milliseconds, 0 disables it.")

	rootFlags.Int64(
		"write-timeout",
		0,
		"per-write timeout in milliseconds, 0 disables it.")

	rootFlags.Int64(
		"max-requests",
		0,
		"maximum number of calls running at once, 0 uses the default.")

	rootFlags.BoolP(
		"debug",
		"d",
		false,
		"log every request and response.")

	rootFlags.String(
		"log-level",
		"",
		"log level: debug, info, warn, error.")
}

// prepareConfig loads the configuration, applies the flags, and sets the log level.
func prepareConfig(cmd *cobra.Command) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("auth-type"); flag != nil && flag.Changed {
		cfg.AuthType, _ = flags.GetString("auth-type")
	}

	if flag := flags.Lookup("site"); flag != nil && flag.Changed {
		cfg.Site, _ = flags.GetString("site")
	}

	if flag := flags.Lookup("token"); flag != nil && flag.Changed {
		cfg.Token, _ = flags.GetString("token")
	}

	if flag := flags.Lookup("connect-timeout"); flag != nil && flag.Changed {
		cfg.ConnectTimeoutMS, _ = flags.GetInt64("connect-timeout")
	}

	if flag := flags.Lookup("read-timeout"); flag != nil && flag.Changed {
		cfg.ReadTimeoutMS, _ = flags.GetInt64("read-timeout")
	}

	if flag := flags.Lookup("write-timeout"); flag != nil && flag.Changed {
		cfg.WriteTimeoutMS, _ = flags.GetInt64("write-timeout")
	}

	if flag := flags.Lookup("max-requests"); flag != nil && flag.Changed {
		cfg.MaxRequests, _ = flags.GetInt64("max-requests")
	}

	if flag := flags.Lookup("debug"); flag != nil && flag.Changed {
		cfg.DebugEnabled, _ = flags.GetBool("debug")
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return config.ValidateConfig(cfg)
}
