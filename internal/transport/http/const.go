package http

import "time"

const (
	// DefaultMaxRequests is the default number of calls a Dispatcher runs at once.
	DefaultMaxRequests = 64

	// DefaultKeepAlive is the keep-alive period for dialed connections.
	DefaultKeepAlive = 30 * time.Second

	// DefaultIdleConnTimeout is how long an idle pooled connection is kept.
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultMaxIdleConnsPerHost is the size of the idle pool per host.
	DefaultMaxIdleConnsPerHost = 5
)
