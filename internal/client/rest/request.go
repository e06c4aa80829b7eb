package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/oshokin/restclient/internal/auth"
	http_transport "github.com/oshokin/restclient/internal/transport/http"
	"github.com/oshokin/restclient/internal/utils"
)

// ContentKind selects the Content-Type and Accept headers of a request.
type ContentKind int

const (
	// ContentJSON exchanges JSON documents.
	ContentJSON ContentKind = iota
	// ContentText exchanges plain text.
	ContentText
	// ContentFile sends a form and receives a file.
	ContentFile
)

// ParseContentKind parses "json", "text", or "file". An empty name means ContentJSON.
func ParseContentKind(name string) (ContentKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return ContentJSON, nil
	case "text":
		return ContentText, nil
	case "file":
		return ContentFile, nil
	default:
		return ContentJSON, fmt.Errorf("%w: '%s'", ErrUnknownContentKind, name)
	}
}

// String implements fmt.Stringer.
func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentFile:
		return "file"
	case ContentJSON:
		return "json"
	default:
		return fmt.Sprintf("ContentKind(%d)", int(k))
	}
}

// mimeTypes returns the Content-Type and Accept values.
func (k ContentKind) mimeTypes() (contentType, accept string) {
	switch k {
	case ContentText:
		return utils.TextMimeType, utils.TextMimeType
	case ContentFile:
		return utils.FormMimeType, utils.OctetStreamMimeType
	case ContentJSON:
		return utils.JSONMimeType, utils.JSONMimeType
	default:
		return utils.JSONMimeType, utils.JSONMimeType
	}
}

// ResponseCallback receives the outcome of an enqueued request.
// On success it owns the response and must close its body.
type ResponseCallback func(resp *http.Response, err error)

// NewRequest builds a request carrying tag, the default headers, the content headers
// of kind, and the client's headers. A nil tag leaves the request untagged.
func (c *Client) NewRequest(
	ctx context.Context,
	method, url string,
	tag any,
	body io.Reader,
	kind ContentKind,
) (*http.Request, error) {
	return c.NewRequestWithHeaders(ctx, method, url, tag, body, kind, nil)
}

// NewRequestWithHeaders is NewRequest with extra headers merged over the client's headers.
func (c *Client) NewRequestWithHeaders(
	ctx context.Context,
	method, url string,
	tag any,
	body io.Reader,
	kind ContentKind,
	extra map[string]string,
) (*http.Request, error) {
	if tag != nil {
		ctx = http_transport.WithTag(ctx, tag)
	}

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	platform := c.cfg.Platform
	if utils.IsBlank(platform) {
		platform = DefaultPlatform
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("os", platform)

	contentType, accept := kind.mimeTypes()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", accept)

	headers := c.BuildAuthPayloadWithHeaders(extra).Headers()
	for _, key := range utils.SortedKeys(headers) {
		value := headers[key]
		if utils.IsBlank(key) || utils.IsBlank(value) {
			continue
		}

		req.Header.Set(key, value)
	}

	return req, nil
}

// Do authorizes req with the client's credentials and sends it through the shared transport client.
// Credential failures wrap ErrAuthorization, transport failures and cancellations wrap ErrServerConnection.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWithPayload(req, c.BuildAuthPayload())
}

// DoWithPayload is Do with explicit credentials.
func (c *Client) DoWithPayload(req *http.Request, payload auth.Payload) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	transportClient, err := c.Transport()
	if err != nil {
		return nil, err
	}

	if c.authorizer != nil {
		req, err = c.authorizer.Authorize(req.Context(), req, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthorization, err)
		}
	}

	resp, err := transportClient.HTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServerConnection, err)
	}

	return resp, nil
}

// Enqueue sends req in the background and passes the outcome to callback.
// The call is registered with the dispatcher, so it can be cancelled like any other.
func (c *Client) Enqueue(req *http.Request, callback ResponseCallback) {
	payload := c.BuildAuthPayload()

	go func() {
		resp, err := c.DoWithPayload(req, payload)
		callback(resp, err)
	}()
}
