package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/restclient/internal/config"
	"github.com/oshokin/restclient/internal/logger"
)

// ExecuteNetworkCommand prints whether the host has an active network.
// It exits with a non-zero status when the network is unavailable.
func ExecuteNetworkCommand(ctx context.Context, cfg *config.Config) {
	application, err := New(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize client: %v", err)
	}

	defer application.Close()

	if err = application.CheckNetwork(ctx, os.Stdout); err != nil {
		logger.Fatalf(ctx, "Network check failed: %v", err)
	}
}

// CheckNetwork writes "available" or "unavailable" to out.
// An unavailable network is reported as ErrNetworkUnavailable after the line is written.
func (a *App) CheckNetwork(ctx context.Context, out io.Writer) error {
	unavailable := a.client.IsNetworkUnavailable(ctx, a.netCtx)

	status := "available"
	if unavailable {
		status = "unavailable"
	}

	if _, err := fmt.Fprintln(out, status); err != nil {
		return fmt.Errorf("failed to write network status: %w", err)
	}

	if unavailable {
		return ErrNetworkUnavailable
	}

	return nil
}
