package rest

import (
	"context"

	"github.com/oshokin/restclient/internal/auth"
	"github.com/oshokin/restclient/internal/logger"
	"github.com/oshokin/restclient/internal/network"
)

// Client configures and dispatches the calls of one API consumer over the shared transport client.
type Client struct {
	// cfg holds credentials, headers, and timeouts.
	cfg Config
	// provider owns the shared transport client.
	provider *TransportProvider
	// authorizer applies credentials to requests. Nil sends requests unauthenticated.
	authorizer auth.Authorizer
}

// NewClient creates a client. cfg is copied.
func NewClient(cfg Config, provider *TransportProvider, authorizer auth.Authorizer) *Client {
	return &Client{
		cfg:        cfg.clone(),
		provider:   provider,
		authorizer: authorizer,
	}
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

// Transport returns the shared transport client, creating it with this client's timeouts
// and debug flag if no client created it before.
func (c *Client) Transport() (*TransportClient, error) {
	return c.provider.GetOrCreate(c.cfg.transportOptions())
}

// CancelAllRequests cancels every queued and running call of the shared transport client
// and returns how many were cancelled. Cancelled callers get an error matching
// http_transport.ErrCallCanceled and context.Canceled.
func (c *Client) CancelAllRequests() (int, error) {
	transportClient, err := c.Transport()
	if err != nil {
		return 0, err
	}

	canceled := transportClient.Dispatcher().CancelAll()

	logger.Debugf(context.Background(), "Cancelled %d calls", canceled)

	return canceled, nil
}

// CancelRequestsByTag cancels the queued and running calls whose tag equals tag and
// returns how many were cancelled. Untagged calls, and calls whose tag cannot be
// compared with tag, are left running.
func (c *Client) CancelRequestsByTag(tag any) (int, error) {
	transportClient, err := c.Transport()
	if err != nil {
		return 0, err
	}

	canceled := transportClient.Dispatcher().CancelByTag(tag)

	logger.Debugf(context.Background(), "Cancelled %d calls tagged %v", canceled, tag)

	return canceled, nil
}

// IsNetworkUnavailable reports whether requests should not be attempted.
// See network.IsUnavailable for the result of every failure mode.
func (c *Client) IsNetworkUnavailable(ctx context.Context, netCtx network.Context) bool {
	return network.IsUnavailable(ctx, netCtx)
}

// BuildAuthPayload returns the client's credentials with a copy of its headers.
func (c *Client) BuildAuthPayload() auth.Payload {
	return auth.NewPayload(c.cfg.credentials(), c.cfg.Headers)
}

// BuildAuthPayloadWithHeaders returns the client's credentials with its headers merged with extra.
// For a key present in both, the extra value wins. An empty extra behaves like BuildAuthPayload.
// Neither the client's headers nor extra are modified.
func (c *Client) BuildAuthPayloadWithHeaders(extra map[string]string) auth.Payload {
	if len(extra) == 0 {
		return c.BuildAuthPayload()
	}

	return auth.NewPayload(c.cfg.credentials(), auth.MergeHeaders(c.cfg.Headers, extra))
}
