package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/restclient/internal/utils"
	mock_utils "github.com/oshokin/restclient/internal/utils/mocks"
)

// TestNewHeaderInjector tests the NewHeaderInjector function.
func TestNewHeaderInjector(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestHeaderInjector_RoundTrip_WithExistingHeader tests that headers set by the caller win.
func TestHeaderInjector_RoundTrip_WithExistingHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().GetHeaders().Return(map[string]string{"os": "go"}).Times(1)

	// Create a test server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "android", r.Header.Get("os"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	// Create request with the header already present.
	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("os", "android")

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHeaderInjector_RoundTrip_WithoutHeader tests that missing headers are injected
// without touching the caller's request.
func TestHeaderInjector_RoundTrip_WithoutHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().GetHeaders().Return(map[string]string{
		"cache-control": "no-cache",
		"os":            "go",
		"":              "ignored",
	}).Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "go", r.Header.Get("os"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, req.Header.Get("os"))
}

// TestHeaderInjector_RoundTrip_ErrorHandling tests error handling in RoundTrip.
func TestHeaderInjector_RoundTrip_ErrorHandling(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockHeaderProvider(ctrl)
	mockProvider.EXPECT().GetHeaders().Return(map[string]string{"os": "go"}).AnyTimes()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider)

	// Create request with invalid URL that will definitely fail.
	req, err := http.NewRequest(http.MethodGet, "http://[::1]:0", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)

	resp, err = injector.RoundTrip(nil) //nolint:bodyclose // Body is empty on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestHeaderInjector_IntegrationWithStaticHeaderProvider tests integration with StaticHeaderProvider.
func TestHeaderInjector_IntegrationWithStaticHeaderProvider(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "IntegrationTest/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := utils.NewStaticHeaderProvider(map[string]string{"User-Agent": "IntegrationTest/1.0"})
	injector := NewHeaderInjector(http.DefaultTransport, provider)

	// Make multiple requests.
	for range 5 {
		req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
		require.NoError(t, err)

		resp, err := injector.RoundTrip(req)
		require.NoError(t, err)
		resp.Body.Close() //nolint:errcheck,gosec // Test cleanup, error is not critical.

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
