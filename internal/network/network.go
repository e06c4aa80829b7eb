package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/restclient/internal/logger"
)

//go:generate $MOCKGEN -source=network.go -destination=mocks/network_mock.go

// ErrConnectivityPanic indicates that a connectivity query panicked.
var ErrConnectivityPanic = errors.New("connectivity query panicked")

// Info describes the active network.
type Info struct {
	// Name identifies the network, for example an interface name.
	Name string
	// Connected is true when the network carries traffic.
	Connected bool
	// Connecting is true while the network is being brought up.
	Connecting bool
}

// IsConnectedOrConnecting reports whether the network is usable now or soon.
func (i *Info) IsConnectedOrConnecting() bool {
	return i != nil && (i.Connected || i.Connecting)
}

// ConnectivityManager reports the active network.
type ConnectivityManager interface {
	// ActiveNetwork returns the active network, or nil when there is none.
	ActiveNetwork(ctx context.Context) (*Info, error)
}

// Context gives access to the platform connectivity service.
type Context interface {
	// ConnectivityManager returns the connectivity service, or nil when it is not available.
	ConnectivityManager() ConnectivityManager
}

// IsUnavailable reports whether the network should be treated as unavailable.
//
// The result for every failure mode is fixed:
//   - nil netCtx: unavailable.
//   - no connectivity manager: available, nothing can be checked.
//   - no active network, or one neither connected nor connecting: unavailable.
//   - an error or a panic while querying: unavailable.
func IsUnavailable(ctx context.Context, netCtx Context) bool {
	if netCtx == nil {
		return true
	}

	unavailable, err := query(ctx, netCtx)
	if err != nil {
		logger.Debugf(ctx, "Connectivity check failed, assuming the network is unavailable: %v", err)

		return true
	}

	return unavailable
}

func query(ctx context.Context, netCtx Context) (unavailable bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			unavailable, err = true, fmt.Errorf("%w: %v", ErrConnectivityPanic, r)
		}
	}()

	manager := netCtx.ConnectivityManager()
	if manager == nil {
		logger.Debugf(ctx, "No connectivity manager, assuming the network is available")

		return false, nil
	}

	info, err := manager.ActiveNetwork(ctx)
	if err != nil {
		return true, fmt.Errorf("failed to get active network: %w", err)
	}

	return !info.IsConnectedOrConnecting(), nil
}
