package http

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentListener accepts connections and never writes to them.
func silentListener(t *testing.T) net.Listener {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	conns := make(chan net.Conn, 8)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			conns <- conn
		}
	}()

	t.Cleanup(func() {
		listener.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

		for {
			select {
			case conn := <-conns:
				conn.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.
			default:
				return
			}
		}
	})

	return listener
}

// TestNewDeadlineDialer_ReadTimeout tests that a stalled read fails after the read timeout.
func TestNewDeadlineDialer_ReadTimeout(t *testing.T) {
	t.Parallel()

	listener := silentListener(t)
	dial := NewDeadlineDialer(time.Second, 20*time.Millisecond, time.Second)

	conn, err := dial(t.Context(), "tcp", listener.Addr().String())
	require.NoError(t, err)

	defer conn.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.IsType(t, &deadlineConn{}, conn)

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)

	started := time.Now()
	_, err = conn.Read(make([]byte, 1))

	var netErr net.Error

	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
	assert.Less(t, time.Since(started), time.Second)
}

// TestNewDeadlineDialer_NoTimeouts tests that connections are not wrapped without read/write timeouts.
func TestNewDeadlineDialer_NoTimeouts(t *testing.T) {
	t.Parallel()

	listener := silentListener(t)
	dial := NewDeadlineDialer(time.Second, 0, 0)

	conn, err := dial(t.Context(), "tcp", listener.Addr().String())
	require.NoError(t, err)

	defer conn.Close() //nolint:errcheck // Test cleanup, error is not critical.

	_, isWrapped := conn.(*deadlineConn)
	assert.False(t, isWrapped)
}

// TestNewDeadlineDialer_ConnectError tests that dial errors are returned.
func TestNewDeadlineDialer_ConnectError(t *testing.T) {
	t.Parallel()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	conn, err := NewDeadlineDialer(time.Second, time.Second, time.Second)(t.Context(), "tcp", address)
	require.Error(t, err)
	assert.Nil(t, conn)
}

// TestIdleConnTimeout tests that idle pooled connections never outlive the read timeout.
func TestIdleConnTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		readTimeout time.Duration
		expected    time.Duration
	}{
		{name: "no read timeout", readTimeout: 0, expected: DefaultIdleConnTimeout},
		{name: "short read timeout", readTimeout: 5 * time.Second, expected: 5 * time.Second},
		{name: "long read timeout", readTimeout: 5 * time.Minute, expected: DefaultIdleConnTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IdleConnTimeout(tt.readTimeout))
		})
	}
}
