package app

import "errors"

// Static error definitions for better error handling.
var (
	// ErrNetworkUnavailable indicates that the host has no active network.
	ErrNetworkUnavailable = errors.New("network is unavailable")
	// ErrTokenNotSupported indicates that tokens can only be fetched for OAuth2 credentials.
	ErrTokenNotSupported = errors.New("token can only be fetched for auth type 'oauth2'")
	// ErrEmptyAccessToken indicates that the authorization server returned no access token.
	ErrEmptyAccessToken = errors.New("authorization server returned an empty access token")
)
