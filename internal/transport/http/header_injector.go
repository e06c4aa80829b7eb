package http

import (
	"net/http"

	"github.com/oshokin/restclient/internal/utils"
)

// HeaderInjector is a custom http.RoundTripper that injects default headers into HTTP requests.
// It wraps another http.RoundTripper and adds every provided header the request does not already carry.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// headerProvider provides the headers to inject.
	headerProvider utils.HeaderProvider
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
func NewHeaderInjector(next http.RoundTripper, headerProvider utils.HeaderProvider) http.RoundTripper {
	return &HeaderInjector{
		next:           next,
		headerProvider: headerProvider,
	}
}

// RoundTrip executes a single HTTP transaction and injects the missing default headers.
// The caller's request is never modified; a clone is sent when headers are added.
// It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	var cloned *http.Request

	for name, value := range t.headerProvider.GetHeaders() {
		if utils.IsBlank(name) || req.Header.Get(name) != "" {
			continue
		}

		if cloned == nil {
			cloned = req.Clone(req.Context())
		}

		cloned.Header.Set(name, value)
	}

	if cloned == nil {
		return t.next.RoundTrip(req)
	}

	return t.next.RoundTrip(cloned)
}
