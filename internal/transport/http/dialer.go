package http

import (
	"context"
	"net"
	"time"
)

// DialContextFunc matches http.Transport.DialContext.
type DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

// NewDeadlineDialer returns a dialer that gives up connecting after connectTimeout and
// wraps every connection so that each Read must make progress within readTimeout and each
// Write within writeTimeout. Zero timeouts disable the respective limit.
//
// An idle pooled connection keeps a pending Read, so it is closed once readTimeout
// passes without traffic. Pair the dialer with IdleConnTimeout to retire such
// connections from the pool first.
func NewDeadlineDialer(connectTimeout, readTimeout, writeTimeout time.Duration) DialContextFunc {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: DefaultKeepAlive,
	}

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, address)
		if err != nil {
			return nil, err
		}

		if readTimeout <= 0 && writeTimeout <= 0 {
			return conn, nil
		}

		return &deadlineConn{
			Conn:         conn,
			readTimeout:  readTimeout,
			writeTimeout: writeTimeout,
		}, nil
	}
}

// deadlineConn refreshes the read or write deadline before every I/O operation.
type deadlineConn struct {
	net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}

	return c.Conn.Read(b)
}

func (c *deadlineConn) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.Conn.Write(b)
}

// IdleConnTimeout returns how long a pooled connection dialed with readTimeout may stay idle.
func IdleConnTimeout(readTimeout time.Duration) time.Duration {
	if readTimeout > 0 && readTimeout < DefaultIdleConnTimeout {
		return readTimeout
	}

	return DefaultIdleConnTimeout
}
