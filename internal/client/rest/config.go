package rest

import (
	"maps"
	"time"

	"github.com/oshokin/restclient/internal/auth"
)

const (
	// DefaultConnectTimeout is the default connect timeout.
	DefaultConnectTimeout = 60 * time.Millisecond
	// DefaultReadTimeout is the default per-read timeout.
	DefaultReadTimeout = 30 * time.Millisecond
	// DefaultWriteTimeout is the default per-write timeout.
	DefaultWriteTimeout = 30 * time.Millisecond
	// DefaultPlatform is the default value of the "os" request header.
	DefaultPlatform = "go"
)

// Config holds the settings of one client.
// It is owned by the client and must not be changed while requests are running.
type Config struct {
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// Site is the base URL of the authorization server.
	Site string
	// Token is a stored access token.
	Token string
	// GrantType is the OAuth2 grant type.
	GrantType string
	// Username is the resource owner name.
	Username string
	// Password is the resource owner password.
	Password string
	// AuthType selects how credentials are applied.
	AuthType auth.Type
	// Headers are sent with every request built by the client.
	Headers map[string]string
	// ConnectTimeout bounds establishing a connection.
	ConnectTimeout time.Duration
	// ReadTimeout bounds every single read from a connection.
	ReadTimeout time.Duration
	// WriteTimeout bounds every single write to a connection.
	WriteTimeout time.Duration
	// DebugEnabled attaches the request/response logger to the transport client.
	DebugEnabled bool
	// Platform is sent in the "os" header.
	Platform string
	// MaxLogLength limits logged bodies, in bytes. Zero means the transport default.
	MaxLogLength uint64
	// MaxRequests limits the calls running at once. Zero means the transport default.
	MaxRequests int64
}

// DefaultConfig returns a configuration with default timeouts and debug logging enabled.
func DefaultConfig() Config {
	return Config{
		AuthType:       auth.TypeNone,
		Headers:        map[string]string{},
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		DebugEnabled:   true,
		Platform:       DefaultPlatform,
	}
}

// credentials projects the credential fields.
func (c Config) credentials() auth.Credentials {
	return auth.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Site:         c.Site,
		Token:        c.Token,
		GrantType:    c.GrantType,
		Username:     c.Username,
		Password:     c.Password,
		Type:         c.AuthType,
	}
}

// transportOptions returns the options used to create the shared transport client.
func (c Config) transportOptions() TransportOptions {
	return TransportOptions{
		ConnectTimeout: c.ConnectTimeout,
		ReadTimeout:    c.ReadTimeout,
		WriteTimeout:   c.WriteTimeout,
		Debug:          c.DebugEnabled,
		MaxLogLength:   c.MaxLogLength,
		MaxRequests:    c.MaxRequests,
	}
}

func (c Config) clone() Config {
	if c.Headers != nil {
		c.Headers = maps.Clone(c.Headers)
	}

	return c
}
