package rest

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	http_transport "github.com/oshokin/restclient/internal/transport/http"
)

// TestTransportProvider_GetOrCreate_SameInstance tests that every call returns the first instance.
func TestTransportProvider_GetOrCreate_SameInstance(t *testing.T) {
	t.Parallel()

	provider := NewTransportProvider(nil)
	assert.Nil(t, provider.Current())

	first, err := provider.GetOrCreate(TransportOptions{
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		Debug:          true,
	})
	require.NoError(t, err)

	const callers = 16

	var (
		wg      sync.WaitGroup
		results = make([]*TransportClient, callers)
	)

	for i := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			client, err := provider.GetOrCreate(TransportOptions{
				ConnectTimeout: time.Duration(i) * time.Millisecond,
				Debug:          i%2 == 0,
				MaxRequests:    int64(i + 1),
			})
			assert.NoError(t, err)

			results[i] = client
		}()
	}

	wg.Wait()

	for _, client := range results {
		assert.Same(t, first, client)
	}

	// Later options were ignored.
	assert.Equal(t, time.Second, first.Options().ConnectTimeout)
	assert.Equal(t, int64(http_transport.DefaultMaxRequests), first.Dispatcher().MaxRequests())
	assert.Same(t, first, provider.Current())
}

// TestTransportProvider_GetOrCreate_Concurrent tests that racing first calls create one instance.
func TestTransportProvider_GetOrCreate_Concurrent(t *testing.T) {
	t.Parallel()

	provider := NewTransportProvider(nil)

	const callers = 16

	var (
		wg      sync.WaitGroup
		results = make([]*TransportClient, callers)
	)

	for i := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			client, err := provider.GetOrCreate(TransportOptions{ReadTimeout: time.Duration(i+1) * time.Second})
			assert.NoError(t, err)

			results[i] = client
		}()
	}

	wg.Wait()

	for _, client := range results {
		assert.Same(t, results[0], client)
	}
}

// TestTransportProvider_GetOrCreate_InvalidTimeout tests that a failed creation can be retried.
func TestTransportProvider_GetOrCreate_InvalidTimeout(t *testing.T) {
	t.Parallel()

	provider := NewTransportProvider(nil)

	client, err := provider.GetOrCreate(TransportOptions{ReadTimeout: -time.Second})
	require.ErrorIs(t, err, ErrInvalidTimeout)
	assert.Nil(t, client)
	assert.Nil(t, provider.Current())

	client, err = provider.GetOrCreate(TransportOptions{})
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, client.HTTPClient())

	client.CloseIdleConnections()
}

// TestTransportProvider_SetCertificatePinner tests that the pinner is fixed once the client exists.
func TestTransportProvider_SetCertificatePinner(t *testing.T) {
	t.Parallel()

	pinner, err := http_transport.NewCertificatePinner(nil)
	require.NoError(t, err)

	provider := NewTransportProvider(nil)
	require.NoError(t, provider.SetCertificatePinner(pinner))

	_, err = provider.GetOrCreate(TransportOptions{})
	require.NoError(t, err)

	require.ErrorIs(t, provider.SetCertificatePinner(pinner), ErrTransportAlreadyCreated)
}

// TestTransportProvider_CertificatePinning tests that pins are checked during the handshake.
func TestTransportProvider_CertificatePinning(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	serverTransport, ok := server.Client().Transport.(*http.Transport)
	require.True(t, ok)

	validPin := http_transport.Pin(server.Certificate())
	wrongPin := "sha256/AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

	tests := []struct {
		name        string
		pin         string
		expectError bool
	}{
		{name: "matching pin", pin: validPin},
		{name: "mismatching pin", pin: wrongPin, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pinner, err := http_transport.NewCertificatePinner(map[string][]string{"example.com": {tt.pin}})
			require.NoError(t, err)

			provider := NewTransportProvider(nil)
			require.NoError(t, provider.SetCertificatePinner(pinner))

			client, err := provider.GetOrCreate(TransportOptions{
				ConnectTimeout: 5 * time.Second,
				TLSConfig: &tls.Config{
					RootCAs:    serverTransport.TLSClientConfig.RootCAs,
					ServerName: "example.com",
					MinVersion: tls.VersionTLS12,
				},
			})
			require.NoError(t, err)

			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, http.NoBody)
			require.NoError(t, err)

			resp, err := client.HTTPClient().Do(req)
			if tt.expectError {
				require.ErrorIs(t, err, http_transport.ErrCertificatePinMismatch)

				return
			}

			require.NoError(t, err)
			resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

// TestTransportProvider_UserAgent tests the default User-Agent header.
func TestTransportProvider_UserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "restclient/")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewTransportProvider(nil).GetOrCreate(TransportOptions{})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.HTTPClient().Do(req)
	require.NoError(t, err)
	resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

	assert.Zero(t, client.Dispatcher().RunningCallsCount())
}

// TestSameTimeouts tests which option changes are reported for an existing transport client.
func TestSameTimeouts(t *testing.T) {
	t.Parallel()

	base := TransportOptions{ConnectTimeout: time.Second, ReadTimeout: time.Second, WriteTimeout: time.Second}

	tests := []struct {
		name     string
		modify   func(*TransportOptions)
		expected bool
	}{
		{name: "identical", modify: func(*TransportOptions) {}, expected: true},
		{name: "max requests only", modify: func(o *TransportOptions) { o.MaxRequests = 3 }, expected: true},
		{name: "connect timeout", modify: func(o *TransportOptions) { o.ConnectTimeout = 0 }, expected: false},
		{name: "read timeout", modify: func(o *TransportOptions) { o.ReadTimeout = time.Minute }, expected: false},
		{name: "write timeout", modify: func(o *TransportOptions) { o.WriteTimeout = time.Minute }, expected: false},
		{name: "debug", modify: func(o *TransportOptions) { o.Debug = true }, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			other := base
			tt.modify(&other)

			assert.Equal(t, tt.expected, sameTimeouts(base, other))
		})
	}
}
