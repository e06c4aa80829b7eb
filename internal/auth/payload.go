package auth

import (
	"encoding/base64"
	"maps"
)

// Credentials are the credential fields of a client configuration.
type Credentials struct {
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// Site is the base URL of the authorization server.
	Site string
	// Token is a stored access token.
	Token string
	// GrantType is the OAuth2 grant, "password" or "client_credentials".
	GrantType string
	// Username is the resource owner name.
	Username string
	// Password is the resource owner password.
	Password string
	// Type selects how credentials are applied to requests.
	Type Type
}

// Payload is an immutable snapshot of credentials and headers.
// The zero value carries no credentials and no headers.
type Payload struct {
	credentials Credentials
	headers     map[string]string
}

// NewPayload creates a payload. headers is copied, so later changes to it are not visible.
func NewPayload(credentials Credentials, headers map[string]string) Payload {
	return Payload{
		credentials: credentials,
		headers:     cloneHeaders(headers),
	}
}

// Credentials returns the credential fields.
func (p Payload) Credentials() Credentials {
	return p.credentials
}

// ClientID returns the OAuth2 client identifier.
func (p Payload) ClientID() string {
	return p.credentials.ClientID
}

// ClientSecret returns the OAuth2 client secret.
func (p Payload) ClientSecret() string {
	return p.credentials.ClientSecret
}

// Site returns the base URL of the authorization server.
func (p Payload) Site() string {
	return p.credentials.Site
}

// Token returns the stored access token.
func (p Payload) Token() string {
	return p.credentials.Token
}

// GrantType returns the OAuth2 grant type.
func (p Payload) GrantType() string {
	return p.credentials.GrantType
}

// Username returns the resource owner name.
func (p Payload) Username() string {
	return p.credentials.Username
}

// Password returns the resource owner password.
func (p Payload) Password() string {
	return p.credentials.Password
}

// Type returns the authentication type.
func (p Payload) Type() Type {
	return p.credentials.Type
}

// Headers returns a copy of the payload headers.
func (p Payload) Headers() map[string]string {
	return cloneHeaders(p.headers)
}

// Header returns the value of a single header.
func (p Payload) Header(key string) (string, bool) {
	value, ok := p.headers[key]

	return value, ok
}

// BasicAuthorization returns base64("username:password").
func (p Payload) BasicAuthorization() string {
	return base64.StdEncoding.EncodeToString([]byte(p.credentials.Username + ":" + p.credentials.Password))
}

// MergeHeaders returns a new map holding base and extra headers.
// For a key present in both, the extra value wins. Neither argument is modified.
func MergeHeaders(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))

	maps.Copy(merged, base)
	maps.Copy(merged, extra)

	return merged
}

func cloneHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return map[string]string{}
	}

	return maps.Clone(headers)
}
