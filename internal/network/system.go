package network

import (
	"context"
	"fmt"
	"net"
)

// InterfacesFunc lists network interfaces, like net.Interfaces.
type InterfacesFunc func() ([]net.Interface, error)

// AddrsFunc lists the addresses of a network interface.
type AddrsFunc func(iface net.Interface) ([]net.Addr, error)

// SystemContext exposes the host's network interfaces as a connectivity service.
type SystemContext struct {
	manager *SystemConnectivityManager
}

// NewSystemContext creates a context backed by net.Interfaces.
func NewSystemContext() *SystemContext {
	return &SystemContext{
		manager: NewSystemConnectivityManager(net.Interfaces, func(iface net.Interface) ([]net.Addr, error) {
			return iface.Addrs()
		}),
	}
}

// ConnectivityManager implements Context.
func (c *SystemContext) ConnectivityManager() ConnectivityManager {
	if c == nil || c.manager == nil {
		return nil
	}

	return c.manager
}

// SystemConnectivityManager picks the first interface that is up, is not a loopback
// and has a global unicast address as the active network.
type SystemConnectivityManager struct {
	interfaces InterfacesFunc
	addrs      AddrsFunc
}

// NewSystemConnectivityManager creates a manager over custom interface listings.
func NewSystemConnectivityManager(interfaces InterfacesFunc, addrs AddrsFunc) *SystemConnectivityManager {
	return &SystemConnectivityManager{
		interfaces: interfaces,
		addrs:      addrs,
	}
}

// ActiveNetwork implements ConnectivityManager.
// An interface that is up but has no usable address yet is reported as connecting.
func (m *SystemConnectivityManager) ActiveNetwork(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ifaces, err := m.interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	var connecting *Info

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := m.addrs(iface)
		if err != nil {
			return nil, fmt.Errorf("failed to list addresses of '%s': %w", iface.Name, err)
		}

		if hasGlobalUnicast(addrs) {
			return &Info{Name: iface.Name, Connected: true}, nil
		}

		if connecting == nil {
			connecting = &Info{Name: iface.Name, Connecting: true}
		}
	}

	return connecting, nil
}

func hasGlobalUnicast(addrs []net.Addr) bool {
	for _, addr := range addrs {
		var ip net.IP

		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}

		if ip.IsGlobalUnicast() {
			return true
		}
	}

	return false
}
