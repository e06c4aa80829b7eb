package rest

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/oshokin/restclient/internal/logger"
	http_transport "github.com/oshokin/restclient/internal/transport/http"
	"github.com/oshokin/restclient/internal/utils"
	"github.com/oshokin/restclient/internal/version"
)

// TransportOptions configure the shared transport client.
type TransportOptions struct {
	// ConnectTimeout bounds dialing and the TLS handshake. Zero means no limit.
	ConnectTimeout time.Duration
	// ReadTimeout bounds every read and the wait for response headers. Zero means no limit.
	ReadTimeout time.Duration
	// WriteTimeout bounds every write. Zero means no limit.
	WriteTimeout time.Duration
	// Debug attaches the request/response logger.
	Debug bool
	// MaxLogLength limits logged bodies, in bytes.
	MaxLogLength uint64
	// MaxRequests limits the calls running at once.
	MaxRequests int64
	// UserAgent is sent when a request has none. Empty means "restclient/<version>".
	UserAgent string
	// TLSConfig is the base TLS configuration. It is cloned before use.
	TLSConfig *tls.Config
}

// TransportClient is the shared HTTP engine: an *http.Client whose calls go through a Dispatcher.
type TransportClient struct {
	httpClient *http.Client
	dispatcher *http_transport.Dispatcher
	options    TransportOptions
}

// HTTPClient returns the underlying HTTP client.
func (c *TransportClient) HTTPClient() *http.Client {
	return c.httpClient
}

// Dispatcher returns the dispatcher tracking queued and running calls.
func (c *TransportClient) Dispatcher() *http_transport.Dispatcher {
	return c.dispatcher
}

// Options returns the options the client was created with.
func (c *TransportClient) Options() TransportOptions {
	return c.options
}

// CloseIdleConnections closes pooled connections that are not in use.
func (c *TransportClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// TransportProvider creates the shared transport client on first use and returns it afterwards.
// The composition root owns one provider and passes it to every Client.
type TransportProvider struct {
	mu       sync.Mutex
	client   *TransportClient
	pinner   *http_transport.CertificatePinner
	recorder http_transport.CallRecorder
}

// NewTransportProvider creates a provider. recorder receives dispatcher events and may be nil.
func NewTransportProvider(recorder http_transport.CallRecorder) *TransportProvider {
	return &TransportProvider{
		recorder: recorder,
	}
}

// SetCertificatePinner sets the pinner applied when the transport client is created.
// It fails once the transport client exists.
func (p *TransportProvider) SetCertificatePinner(pinner *http_transport.CertificatePinner) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return ErrTransportAlreadyCreated
	}

	p.pinner = pinner

	return nil
}

// GetOrCreate returns the shared transport client, creating it with opts on the first call.
//
// The first successful call wins: later calls return the same instance and ignore opts,
// even when they differ. A failed creation leaves the provider empty, so it can be retried.
func (p *TransportProvider) GetOrCreate(opts TransportOptions) (*TransportClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		if current := p.client.Options(); !sameTimeouts(current, opts) {
			logger.Debugf(context.Background(),
				"Transport client already exists, keeping connect: %s, read: %s, write: %s, debug: %t",
				current.ConnectTimeout, current.ReadTimeout, current.WriteTimeout, current.Debug)
		}

		return p.client, nil
	}

	client, err := newTransportClient(opts, p.pinner, p.recorder)
	if err != nil {
		return nil, err
	}

	logger.Debugf(context.Background(),
		"Created transport client (connect: %s, read: %s, write: %s, debug: %t, max requests: %d)",
		opts.ConnectTimeout, opts.ReadTimeout, opts.WriteTimeout, opts.Debug, client.dispatcher.MaxRequests())

	p.client = client

	return client, nil
}

func sameTimeouts(a, b TransportOptions) bool {
	return a.ConnectTimeout == b.ConnectTimeout &&
		a.ReadTimeout == b.ReadTimeout &&
		a.WriteTimeout == b.WriteTimeout &&
		a.Debug == b.Debug
}

// Current returns the shared transport client, or nil if it was not created yet.
func (p *TransportProvider) Current() *TransportClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.client
}

func newTransportClient(
	opts TransportOptions,
	pinner *http_transport.CertificatePinner,
	recorder http_transport.CallRecorder,
) (*TransportClient, error) {
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{name: "connect", value: opts.ConnectTimeout},
		{name: "read", value: opts.ReadTimeout},
		{name: "write", value: opts.WriteTimeout},
	}

	for _, timeout := range timeouts {
		if timeout.value < 0 {
			return nil, fmt.Errorf("%w: %s timeout is %s", ErrInvalidTimeout, timeout.name, timeout.value)
		}
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if opts.TLSConfig != nil {
		tlsConfig = opts.TLSConfig.Clone()
	}

	if pinner != nil {
		pinner.Apply(tlsConfig)
	}

	var next http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           http_transport.NewDeadlineDialer(opts.ConnectTimeout, opts.ReadTimeout, opts.WriteTimeout),
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   opts.ConnectTimeout,
		ResponseHeaderTimeout: opts.ReadTimeout,
		IdleConnTimeout:       http_transport.IdleConnTimeout(opts.ReadTimeout),
		MaxIdleConnsPerHost:   http_transport.DefaultMaxIdleConnsPerHost,
		ForceAttemptHTTP2:     true,
	}

	if opts.Debug {
		next = http_transport.NewLogTransport(next, opts.MaxLogLength)
	}

	userAgent := opts.UserAgent
	if utils.IsBlank(userAgent) {
		userAgent = "restclient/" + version.Short()
	}

	next = http_transport.NewHeaderInjector(next, utils.NewStaticHeaderProvider(map[string]string{
		"User-Agent": userAgent,
	}))

	dispatcher := http_transport.NewDispatcher(next, opts.MaxRequests, recorder)

	return &TransportClient{
		httpClient: &http.Client{Transport: dispatcher},
		dispatcher: dispatcher,
		options:    opts,
	}, nil
}
