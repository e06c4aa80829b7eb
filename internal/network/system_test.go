package network

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticAddrs returns fixed addresses per interface name.
func staticAddrs(addrs map[string][]net.Addr) AddrsFunc {
	return func(iface net.Interface) ([]net.Addr, error) {
		return addrs[iface.Name], nil
	}
}

// TestSystemConnectivityManager_ActiveNetwork tests interface selection.
func TestSystemConnectivityManager_ActiveNetwork(t *testing.T) {
	t.Parallel()

	globalAddr := &net.IPNet{IP: net.ParseIP("192.0.2.10"), Mask: net.CIDRMask(24, 32)}
	linkLocalAddr := &net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)}
	loopbackAddr := &net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(8, 32)}

	tests := []struct {
		name       string
		interfaces []net.Interface
		addrs      map[string][]net.Addr
		expected   *Info
	}{
		{
			name: "connected ethernet",
			interfaces: []net.Interface{
				{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
				{Name: "eth0", Flags: net.FlagUp | net.FlagRunning},
			},
			addrs:    map[string][]net.Addr{"lo": {loopbackAddr}, "eth0": {globalAddr}},
			expected: &Info{Name: "eth0", Connected: true},
		},
		{
			name: "link local only is connecting",
			interfaces: []net.Interface{
				{Name: "wlan0", Flags: net.FlagUp},
			},
			addrs:    map[string][]net.Addr{"wlan0": {linkLocalAddr}},
			expected: &Info{Name: "wlan0", Connecting: true},
		},
		{
			name: "connected wins over connecting",
			interfaces: []net.Interface{
				{Name: "wlan0", Flags: net.FlagUp},
				{Name: "eth0", Flags: net.FlagUp},
			},
			addrs:    map[string][]net.Addr{"eth0": {&net.IPAddr{IP: net.ParseIP("2001:db8::1")}}},
			expected: &Info{Name: "eth0", Connected: true},
		},
		{
			name: "down interfaces",
			interfaces: []net.Interface{
				{Name: "eth0"},
				{Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
			},
			addrs:    map[string][]net.Addr{"eth0": {globalAddr}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			manager := NewSystemConnectivityManager(func() ([]net.Interface, error) {
				return tt.interfaces, nil
			}, staticAddrs(tt.addrs))

			info, err := manager.ActiveNetwork(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, info)
		})
	}
}

// TestSystemConnectivityManager_Errors tests listing failures.
func TestSystemConnectivityManager_Errors(t *testing.T) {
	t.Parallel()

	errList := errors.New("permission denied")

	manager := NewSystemConnectivityManager(func() ([]net.Interface, error) {
		return nil, errList
	}, staticAddrs(nil))

	_, err := manager.ActiveNetwork(t.Context())
	require.ErrorIs(t, err, errList)

	manager = NewSystemConnectivityManager(func() ([]net.Interface, error) {
		return []net.Interface{{Name: "eth0", Flags: net.FlagUp}}, nil
	}, func(net.Interface) ([]net.Addr, error) {
		return nil, errList
	})

	_, err = manager.ActiveNetwork(t.Context())
	require.ErrorIs(t, err, errList)
}

// TestSystemContext tests the SystemContext type.
func TestSystemContext(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, NewSystemContext().ConnectivityManager())

	var empty *SystemContext

	assert.Nil(t, empty.ConnectivityManager())
}
