package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/oshokin/restclient/internal/logger"
)

//go:generate $MOCKGEN -source=authorizer.go -destination=mocks/authorizer_mock.go

const (
	// GrantTypePassword is the resource owner password credentials grant.
	GrantTypePassword = "password"
	// GrantTypeClientCredentials is the client credentials grant.
	GrantTypeClientCredentials = "client_credentials"

	// DefaultTokenSourcesCacheSize is the number of token sources kept by default.
	DefaultTokenSourcesCacheSize = 16

	// tokenPath is appended to the site to form the token endpoint.
	tokenPath = "/oauth/token"
	// authorizationHeader is the header carrying credentials.
	authorizationHeader = "Authorization"
)

// Static error definitions for better error handling.
var (
	// ErrMissingSite indicates that OAuth2 was requested without an authorization server.
	ErrMissingSite = errors.New("site cannot be empty for oauth2 authentication")
	// ErrUnsupportedGrantType indicates that a grant type is neither password nor client_credentials.
	ErrUnsupportedGrantType = errors.New("unsupported grant type")
	// ErrTokenRequest indicates that an access token could not be obtained.
	ErrTokenRequest = errors.New("failed to obtain access token")
)

// Authorizer applies credentials to outgoing requests.
type Authorizer interface {
	// Authorize returns a copy of req carrying the credentials of payload.
	Authorize(ctx context.Context, req *http.Request, payload Payload) (*http.Request, error)
	// Token returns an OAuth2 access token for payload.
	Token(ctx context.Context, payload Payload) (*oauth2.Token, error)
}

// AuthorizerImpl implements Authorizer with golang.org/x/oauth2.
type AuthorizerImpl struct {
	// httpClient is used for token endpoint requests.
	httpClient *http.Client
	// tokenSources keeps reusable token sources by server, client and user.
	tokenSources *lru.Cache[string, oauth2.TokenSource]
}

// NewAuthorizer creates an authorizer. A nil httpClient means http.DefaultClient.
func NewAuthorizer(httpClient *http.Client, cacheSize int) (*AuthorizerImpl, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if cacheSize <= 0 {
		cacheSize = DefaultTokenSourcesCacheSize
	}

	tokenSources, err := lru.New[string, oauth2.TokenSource](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token sources cache: %w", err)
	}

	return &AuthorizerImpl{
		httpClient:   httpClient,
		tokenSources: tokenSources,
	}, nil
}

// Authorize returns a copy of req carrying the credentials of payload.
// The original request is never modified. Types without credentials return req itself.
func (a *AuthorizerImpl) Authorize(ctx context.Context, req *http.Request, payload Payload) (*http.Request, error) {
	switch payload.Type() {
	case TypeBasic:
		authorized := req.Clone(req.Context())
		authorized.Header.Set(authorizationHeader, "Basic "+payload.BasicAuthorization())

		return authorized, nil
	case TypeToken:
		if strings.TrimSpace(payload.Token()) == "" {
			logger.Debugf(ctx, "Token authentication requested without a token, sending %s %s anonymously",
				req.Method, req.URL)

			return req, nil
		}

		authorized := req.Clone(req.Context())
		authorized.Header.Set(authorizationHeader, "Bearer "+payload.Token())

		return authorized, nil
	case TypeOAuth2:
		token, err := a.Token(ctx, payload)
		if err != nil {
			return nil, err
		}

		authorized := req.Clone(req.Context())
		token.SetAuthHeader(authorized)

		return authorized, nil
	case TypeNone, "":
		return req, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownType, payload.Type())
	}
}

// Token returns an OAuth2 access token for payload.
// Token sources are reused between calls, so a live token is not requested twice.
func (a *AuthorizerImpl) Token(ctx context.Context, payload Payload) (*oauth2.Token, error) {
	source, err := a.tokenSource(payload)
	if err != nil {
		return nil, err
	}

	token, err := source.Token()
	if err != nil {
		// A failed source may hold a revoked refresh token; start over next time.
		a.tokenSources.Remove(tokenSourceKey(payload))

		return nil, fmt.Errorf("%w: %w", ErrTokenRequest, err)
	}

	logger.Debugf(ctx, "Using %s access token for client '%s' (expires: %s)",
		token.Type(), payload.ClientID(), token.Expiry)

	return token, nil
}

func (a *AuthorizerImpl) tokenSource(payload Payload) (oauth2.TokenSource, error) {
	key := tokenSourceKey(payload)

	if source, ok := a.tokenSources.Get(key); ok {
		return source, nil
	}

	site := strings.TrimRight(strings.TrimSpace(payload.Site()), "/")
	if site == "" {
		return nil, ErrMissingSite
	}

	// Token sources outlive the request that created them.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, a.httpClient)
	tokenURL := site + tokenPath

	var source oauth2.TokenSource

	switch strings.ToLower(strings.TrimSpace(payload.GrantType())) {
	case GrantTypePassword:
		cfg := &oauth2.Config{
			ClientID:     payload.ClientID(),
			ClientSecret: payload.ClientSecret(),
			Endpoint: oauth2.Endpoint{
				TokenURL: tokenURL,
			},
		}

		source = oauth2.ReuseTokenSource(nil, &passwordTokenSource{
			ctx:      ctx,
			config:   cfg,
			username: payload.Username(),
			password: payload.Password(),
		})
	case GrantTypeClientCredentials, "":
		cfg := &clientcredentials.Config{
			ClientID:     payload.ClientID(),
			ClientSecret: payload.ClientSecret(),
			TokenURL:     tokenURL,
		}

		source = cfg.TokenSource(ctx)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedGrantType, payload.GrantType())
	}

	a.tokenSources.Add(key, source)

	return source, nil
}

// passwordTokenSource requests a new token with the resource owner credentials every time.
// It is always wrapped in oauth2.ReuseTokenSource.
type passwordTokenSource struct {
	ctx      context.Context //nolint:containedctx // oauth2 token sources carry their own context.
	config   *oauth2.Config
	username string
	password string
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	return s.config.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

func tokenSourceKey(payload Payload) string {
	return strings.Join([]string{
		strings.TrimRight(strings.TrimSpace(payload.Site()), "/"),
		strings.ToLower(strings.TrimSpace(payload.GrantType())),
		payload.ClientID(),
		payload.Username(),
	}, "|")
}
